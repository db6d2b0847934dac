package dataservice

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"minmod/internal/domain/entity"
	"minmod/internal/errors"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const sparqlPrefixes = `PREFIX dcterms: <http://purl.org/dc/terms/>
PREFIX rdfs: <http://www.w3.org/2000/01/rdf-schema#>
PREFIX : <https://minmod.isi.edu/resource/>
PREFIX xsd: <http://www.w3.org/2001/XMLSchema#>
PREFIX owl: <http://www.w3.org/2002/07/owl#>
PREFIX gkbi: <https://geokb.wikibase.cloud/entity/>
PREFIX gkbp: <https://geokb.wikibase.cloud/wiki/Property:>
PREFIX gkbt: <https://geokb.wikibase.cloud/prop/direct/>
PREFIX geo: <http://www.opengis.net/ont/geosparql#>
`

// commodityInventoryQuery counts mineral inventories with both ore and grade per commodity.
const commodityInventoryQuery = `SELECT ?commodity (COUNT(?o_inv) AS ?count)
WHERE {
	?s :mineral_inventory ?o_inv .
	?o_inv :category ?cat .
	?o_inv :commodity [ :name ?commodity ] .
	?o_inv :ore [ :ore_value ?ore ] .
	?o_inv :grade [ :grade_value ?grade ] .
}
GROUP BY ?commodity`

// Binding is one solution of a SPARQL SELECT, keyed by variable name.
type Binding map[string]struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Value returns the lexical value bound to name, or "" when unbound.
func (b Binding) Value(name string) string {
	return b[name].Value
}

type sparqlResults struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results struct {
		Bindings []Binding `json:"bindings"`
	} `json:"results"`
}

// Query runs a SPARQL SELECT with the MinMod prefixes prepended.
func (c *Client) Query(ctx context.Context, query string) ([]Binding, error) {
	form := url.Values{}
	form.Set("query", sparqlPrefixes+query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.sparqlEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.Wrap(err, "create sparql request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/sparql-results+json")

	var res sparqlResults
	if err := c.doJSON(req, &res); err != nil {
		return nil, err
	}

	return res.Results.Bindings, nil
}

// ListCommodities lists the commodities having at least one graded inventory, sorted by name.
func (c *Client) ListCommodities(ctx context.Context) ([]entity.Commodity, error) {
	bindings, err := c.Query(ctx, commodityInventoryQuery)
	if err != nil {
		return nil, err
	}

	title := cases.Title(language.English)
	out := make([]entity.Commodity, 0, len(bindings))
	for _, b := range bindings {
		name := strings.TrimSpace(b.Value("commodity"))
		if name == "" {
			continue
		}
		count, err := strconv.Atoi(b.Value("count"))
		if err != nil {
			c.logger.Warn("Skipping commodity with unparsable count",
				slog.String("commodity", name),
				slog.String("count", b.Value("count")))

			continue
		}
		out = append(out, entity.Commodity{
			Name:        strings.ToLower(name),
			Label:       title.String(name),
			Inventories: count,
		})
	}

	slices.SortFunc(out, func(a, b entity.Commodity) int {
		return strings.Compare(a.Name, b.Name)
	})

	return out, nil
}
