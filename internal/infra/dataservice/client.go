// Package dataservice talks to the MinMod backend: the REST data service for
// grade-tonnage rows and the SPARQL endpoint for knowledge-graph queries.
package dataservice

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"minmod/config"
	"minmod/internal/errors"
)

const (
	gradeTonnagePath = "/mineral_site_grade_and_tonnage/"
	defaultTimeout   = 60 * time.Second
	maxErrorBody     = 512
)

// GradeTonnageRow is one mineral site as returned by the data service.
// Numeric fields are pointers so that absent values can be told apart from zero.
type GradeTonnageRow struct {
	MineralSite    string   `json:"ms"`
	Name           string   `json:"ms_name"`
	Location       string   `json:"location"` // WKT, e.g. "POINT (-117.2 45.1)"
	DepositType    string   `json:"deposit_type"`
	Country        string   `json:"country"`
	TotalTonnage   *float64 `json:"total_tonnage"`
	TotalGrade     *float64 `json:"total_grade"`
	ContainedMetal *float64 `json:"total_contained_metal"`
}

// StatusError reports a non-2xx answer from the backend.
type StatusError struct {
	URL    string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: http %d", e.URL, e.Status)
	}

	return fmt.Sprintf("%s: http %d: %s", e.URL, e.Status, e.Body)
}

// Client fetches site data from the MinMod backend.
type Client struct {
	apiEndpoint    string
	sparqlEndpoint string
	httpClient     *http.Client
	logger         *slog.Logger
}

// NewClient builds a client from configuration.
// TLS verification is skipped when InsecureSkipVerify is set, matching the public MinMod deployment.
func NewClient(cfg *config.DataServiceConfig, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // configurable, the public backend uses a self-signed chain
	}

	return &Client{
		apiEndpoint:    strings.TrimRight(strings.TrimSpace(cfg.APIEndpoint), "/"),
		sparqlEndpoint: strings.TrimSpace(cfg.SPARQLEndpoint),
		httpClient:     &http.Client{Timeout: timeout, Transport: transport},
		logger:         logger.With(slog.String("component", "dataservice")),
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	clone := *c
	clone.httpClient = hc

	return &clone
}

// GradeTonnage returns the grade-tonnage rows of every mineral site reporting commodity.
func (c *Client) GradeTonnage(ctx context.Context, commodity string) ([]GradeTonnageRow, error) {
	commodity = strings.TrimSpace(commodity)
	if commodity == "" {
		return nil, errors.New("commodity is required")
	}

	endpoint := c.apiEndpoint + gradeTonnagePath + url.PathEscape(commodity)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create grade-tonnage request")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	var rows []GradeTonnageRow
	if err := c.doJSON(req, &rows); err != nil {
		return nil, err
	}

	c.logger.Debug("Fetched grade-tonnage rows",
		slog.String("commodity", commodity),
		slog.Int("rows", len(rows)),
		slog.Duration("elapsed", time.Since(start)))

	return rows, nil
}

func (c *Client) doJSON(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "request %s", req.URL.Redacted())
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

		return errors.WithStack(&StatusError{
			URL:    req.URL.Redacted(),
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(body)),
		})
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decode %s", req.URL.Redacted())
	}

	return nil
}
