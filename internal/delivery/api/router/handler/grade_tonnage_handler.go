package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"minmod/internal/delivery/api/response"
	"minmod/internal/errors"
	"minmod/internal/infra/sitetable"
	"minmod/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const (
	mimeTextCSV        = "text/csv; charset=utf-8"
	mimeGeoJSON        = "application/geo+json"
	maxCommodityLength = 64
)

// GradeTonnageHandlerParams holds dependencies for GradeTonnageHandler, injected by Fx.
type GradeTonnageHandlerParams struct {
	fx.In

	GradeTonnageUC usecase.GradeTonnageUsecase
	Logger         *slog.Logger
}

// GradeTonnageHandler serves the grade-tonnage model.
type GradeTonnageHandler struct {
	gradeTonnageUC usecase.GradeTonnageUsecase
	logger         *slog.Logger
}

// NewGradeTonnageHandler is the constructor for GradeTonnageHandler
func NewGradeTonnageHandler(params GradeTonnageHandlerParams) *GradeTonnageHandler {
	return &GradeTonnageHandler{
		gradeTonnageUC: params.GradeTonnageUC,
		logger:         params.Logger,
	}
}

// GradeTonnageRequest is the query of every grade-tonnage endpoint.
// commodity may be repeated or comma separated.
type GradeTonnageRequest struct {
	Commodities []string `query:"commodity" validate:"required,min=1,dive,required"`
	Threshold   string   `query:"threshold" validate:"omitempty,numeric"`
}

// CacheStatusResponse renders the cache retention as a duration string.
type CacheStatusResponse struct {
	usecase.CacheStatus
	Retention string `json:"retention"`
}

// Aggregate returns the proximity groups and a summary as JSON.
func (h *GradeTonnageHandler) Aggregate(c echo.Context) error {
	result, err := h.aggregate(c)
	if err != nil {
		return writeError(c, err)
	}

	return response.Success(c, http.StatusOK, result)
}

// ExportCSV streams the proximity groups as a CSV attachment.
func (h *GradeTonnageHandler) ExportCSV(c echo.Context) error {
	result, err := h.aggregate(c)
	if err != nil {
		return writeError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentType, mimeTextCSV)
	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="`+exportName(result.Summary.Commodities)+`.csv"`)
	c.Response().WriteHeader(http.StatusOK)

	if err := sitetable.WriteGroupsCSV(c.Response(), result.Groups); err != nil {
		h.logger.Warn("Failed to stream CSV export", slog.Any("error", err))

		return errors.WithStack(err)
	}

	return nil
}

// ExportGeoJSON returns the proximity groups as a GeoJSON feature collection.
func (h *GradeTonnageHandler) ExportGeoJSON(c echo.Context) error {
	result, err := h.aggregate(c)
	if err != nil {
		return writeError(c, err)
	}

	body, err := sitetable.GroupsFeatureCollection(result.Groups).MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "marshal feature collection")
	}

	return c.Blob(http.StatusOK, mimeGeoJSON, body)
}

// ListCommodities returns the commodities known to the data service.
func (h *GradeTonnageHandler) ListCommodities(c echo.Context) error {
	commodities, err := h.gradeTonnageUC.ListCommodities(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, commodities)
}

// CacheStatus reports the distance cache content.
func (h *GradeTonnageHandler) CacheStatus(c echo.Context) error {
	status := h.gradeTonnageUC.CacheStatus()

	return response.Success(c, http.StatusOK, CacheStatusResponse{
		CacheStatus: status,
		Retention:   status.Retention.String(),
	})
}

// requestError is a rejected query, answered with 400.
type requestError struct {
	code    string
	message string
}

func (e *requestError) Error() string {
	return e.message
}

func (h *GradeTonnageHandler) aggregate(c echo.Context) (*usecase.GradeTonnageResult, error) {
	var req GradeTonnageRequest
	if err := c.Bind(&req); err != nil {
		return nil, &requestError{code: "INVALID_INPUT", message: "Invalid grade-tonnage query"}
	}

	req.Commodities = splitCommodities(req.Commodities)
	if err := c.Validate(&req); err != nil {
		return nil, &requestError{code: "VALIDATION_ERROR", message: err.Error()}
	}
	for _, commodity := range req.Commodities {
		if len(commodity) > maxCommodityLength {
			return nil, &requestError{code: "VALIDATION_ERROR", message: "commodity name is too long"}
		}
	}

	input := &usecase.GradeTonnageInput{Commodities: req.Commodities}
	if req.Threshold != "" {
		threshold, err := strconv.ParseFloat(req.Threshold, 64)
		if err != nil {
			return nil, &requestError{code: "VALIDATION_ERROR", message: "threshold must be a number"}
		}
		input.Threshold = &threshold
	}

	return h.gradeTonnageUC.Aggregate(c.Request().Context(), input)
}

func writeError(c echo.Context, err error) error {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		return response.BadRequest(c, reqErr.code, reqErr.message)
	}

	return response.HandleAppError(c, err)
}

func splitCommodities(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				out = append(out, name)
			}
		}
	}

	return out
}

func exportName(commodities []string) string {
	if len(commodities) == 0 {
		return "grade-tonnage"
	}

	return "grade-tonnage-" + strings.Join(commodities, "-")
}
