package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/isisteel/yard-turnaround/internal/http/middleware"
	"github.com/isisteel/yard-turnaround/internal/model"
	"github.com/isisteel/yard-turnaround/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	turnaround *service.TurnaroundService
	log        zerolog.Logger
}

func NewHandler(turnaround *service.TurnaroundService, log zerolog.Logger) *Handler {
	return &Handler{turnaround: turnaround, log: log}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	api := router.Group("/api/v1")
	api.GET("/visits", h.listVisits)
	api.GET("/waiting", h.listWaiting)
	api.GET("/status-summary", h.statusSummary)
	api.GET("/summary/products", h.productSummary)
	api.GET("/summary/trucks", h.truckSummary)

	protected := api.Group("/reports")
	protected.Use(authMiddleware)
	protected.POST("/export", h.exportWorkbook)
	protected.POST("/export/pdf", h.exportPDF)
}

func (h *Handler) listVisits(c *gin.Context) {
	query, err := parseVisitQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	visits, err := h.turnaround.Visits(c.Request.Context(), query)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"visits": visitsToDTO(visits)})
}

func (h *Handler) listWaiting(c *gin.Context) {
	query, err := parseVisitQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	waiting, err := h.turnaround.CurrentWaiting(c.Request.Context(), query)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"waiting": waitingToDTO(waiting)})
}

func (h *Handler) statusSummary(c *gin.Context) {
	query, err := parseVisitQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	counts, err := h.turnaround.StatusSummary(c.Request.Context(), query)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, statusCountsDTO{
		Waiting:      counts.Waiting,
		StartLoading: counts.StartLoading,
		Completed:    counts.Completed,
	})
}

func (h *Handler) productSummary(c *gin.Context) {
	query, err := parseVisitQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	products, err := h.turnaround.ProductSummaries(c.Request.Context(), query)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": productsToDTO(products)})
}

func (h *Handler) truckSummary(c *gin.Context) {
	query, err := parseVisitQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trucks, err := h.turnaround.TruckTurnarounds(c.Request.Context(), query)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trucks": trucksToDTO(trucks)})
}

func (h *Handler) exportWorkbook(c *gin.Context) {
	input, ok := h.parseExportInput(c)
	if !ok {
		return
	}

	result, err := h.turnaround.ExportWorkbook(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, xlsxContentType, result.Content)
}

func (h *Handler) exportPDF(c *gin.Context) {
	input, ok := h.parseExportInput(c)
	if !ok {
		return
	}

	result, err := h.turnaround.ExportPDF(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/pdf", result.Content)
}

type exportRequest struct {
	Date                  string   `json:"date"`
	StartDate             string   `json:"start_date"`
	EndDate               string   `json:"end_date"`
	Products              []string `json:"products"`
	Direction             string   `json:"direction"`
	TruckCondition        string   `json:"truck_condition"`
	UseFallbackCompletion bool     `json:"use_fallback_completion"`
}

func (h *Handler) parseExportInput(c *gin.Context) (service.ExportInput, bool) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return service.ExportInput{}, false
	}

	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return service.ExportInput{}, false
	}

	query := service.VisitQuery{
		Products:              req.Products,
		UseFallbackCompletion: req.UseFallbackCompletion,
	}

	var err error
	if query.Date, err = parseOptionalDate(req.Date, "date"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return service.ExportInput{}, false
	}
	if query.StartDate, err = parseOptionalDate(req.StartDate, "start_date"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return service.ExportInput{}, false
	}
	if query.EndDate, err = parseOptionalDate(req.EndDate, "end_date"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return service.ExportInput{}, false
	}
	if query.Direction, err = parseOptionalDirection(req.Direction); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return service.ExportInput{}, false
	}
	if condition := strings.TrimSpace(req.TruckCondition); condition != "" {
		query.TruckCondition = &condition
	}

	return service.ExportInput{Query: query, Principal: principal}, true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSourceUnavailable):
		h.log.Error().Err(err).Msg("sheet source unavailable")
		c.JSON(http.StatusBadGateway, gin.H{"error": "source unavailable"})
	default:
		h.log.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseVisitQuery(c *gin.Context) (service.VisitQuery, error) {
	var (
		query service.VisitQuery
		err   error
	)

	if query.Date, err = parseOptionalDate(c.Query("date"), "date"); err != nil {
		return service.VisitQuery{}, err
	}
	if query.StartDate, err = parseOptionalDate(c.Query("start"), "start"); err != nil {
		return service.VisitQuery{}, err
	}
	if query.EndDate, err = parseOptionalDate(c.Query("end"), "end"); err != nil {
		return service.VisitQuery{}, err
	}
	if query.Direction, err = parseOptionalDirection(c.Query("direction")); err != nil {
		return service.VisitQuery{}, err
	}

	if raw := strings.TrimSpace(c.Query("products")); raw != "" {
		for _, product := range strings.Split(raw, ",") {
			if product = strings.TrimSpace(product); product != "" {
				query.Products = append(query.Products, product)
			}
		}
	}
	if condition := strings.TrimSpace(c.Query("condition")); condition != "" {
		query.TruckCondition = &condition
	}
	query.UseFallbackCompletion = c.Query("fallback_completion") == "true"

	return query, nil
}

func parseOptionalDate(raw, name string) (*model.Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	date, err := model.ParseDate(raw)
	if err != nil {
		return nil, errors.New("invalid " + name + ": expected YYYY-MM-DD")
	}
	return &date, nil
}

func parseOptionalDirection(raw string) (*model.Direction, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return nil, nil
	case "loading":
		direction := model.DirectionLoading
		return &direction, nil
	case "unloading":
		direction := model.DirectionUnloading
		return &direction, nil
	default:
		return nil, errors.New("invalid direction: expected loading or unloading")
	}
}
