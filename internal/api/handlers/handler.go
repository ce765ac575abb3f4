package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/2or5/football-manager/internal/domain"
	"github.com/2or5/football-manager/internal/service"
)

type Handler struct {
	teamService     *service.TeamService
	playerService   *service.PlayerService
	transferService *service.TransferService
	statsService    *service.StatsService
	logger          *slog.Logger
}

func NewHandler(
	teamService *service.TeamService,
	playerService *service.PlayerService,
	transferService *service.TransferService,
	statsService *service.StatsService,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		teamService:     teamService,
		playerService:   playerService,
		transferService: transferService,
		statsService:    statsService,
		logger:          logger,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.GetHealth)
	r.GET("/stats", h.GetStats)

	r.GET("/teams", h.TeamList)
	r.POST("/teams", h.TeamCreate)
	r.GET("/teams/:id", h.TeamGet)
	r.PATCH("/teams/:id", h.TeamUpdate)
	r.DELETE("/teams/:id", h.TeamDelete)

	r.GET("/players", h.PlayerList)
	r.POST("/players", h.PlayerCreate)
	r.GET("/players/:id", h.PlayerGet)
	r.PATCH("/players/:id", h.PlayerUpdate)
	r.DELETE("/players/:id", h.PlayerDelete)

	r.POST("/players/:id/transfer/:teamId", h.PlayerTransfer)
}

// /health
func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// /stats
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.statsService.GetStats(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Helper functions

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	apiErr := domain.ToAPIError(err)

	var statusCode int
	switch apiErr.Code {
	case domain.CodeBadRequest, domain.CodeInsufficientBalance, domain.CodeValidationFailed:
		statusCode = http.StatusBadRequest
	case domain.CodeNotFound:
		statusCode = http.StatusNotFound
	case domain.CodeConflict:
		statusCode = http.StatusConflict
	default:
		statusCode = http.StatusInternalServerError
	}

	h.logger.Error("request error",
		slog.String("code", string(apiErr.Code)),
		slog.String("message", apiErr.Message),
		slog.Int("status", statusCode),
	)

	c.JSON(statusCode, apiErr)
}

// handleValidationError rejects the request with per-field reasons before any
// domain logic runs
func (h *Handler) handleValidationError(c *gin.Context, err error) {
	fields := fieldErrors(err)
	if len(fields) == 0 {
		h.handleError(c, domain.ErrInvalidInput)
		return
	}

	h.rejectFields(c, fields)
}

// rejectFields responds with a per-field validation failure map
func (h *Handler) rejectFields(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"code":      domain.CodeValidationFailed,
		"timestamp": time.Now().UTC().Format("2006-01-02 15:04"),
		"fields":    fields,
	})
}

// fieldErrors converts binding failures into a field -> reason map
func fieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[jsonFieldName(fe.Field())] = fieldReason(fe)
	}
	return fields
}

func fieldReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required and cannot be blank"
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("cannot exceed %s", fe.Param())
	default:
		return "is invalid"
	}
}

func jsonFieldName(structField string) string {
	if structField == "" {
		return structField
	}
	return strings.ToLower(structField[:1]) + structField[1:]
}
