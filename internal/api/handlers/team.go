package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/2or5/football-manager/internal/domain"
)

type teamRequest struct {
	Name                 string           `json:"name" binding:"required"`
	Balance              *decimal.Decimal `json:"balance" binding:"required"`
	CommissionPercentage *int             `json:"commissionPercentage" binding:"required,gte=0,lte=100"`
}

// GET /teams
func (h *Handler) TeamList(c *gin.Context) {
	teams, err := h.teamService.GetAllTeams(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response := make([]gin.H, len(teams))
	for i := range teams {
		response[i] = teamWithPlayersResponse(&teams[i])
	}

	c.JSON(http.StatusOK, response)
}

// GET /teams/:id
func (h *Handler) TeamGet(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.handleError(c, domain.ErrInvalidInput)
		return
	}

	team, err := h.teamService.GetTeam(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, teamWithPlayersResponse(team))
}

// POST /teams
func (h *Handler) TeamCreate(c *gin.Context) {
	var req teamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleValidationError(c, err)
		return
	}

	if req.Balance.IsNegative() {
		h.rejectFields(c, map[string]string{"balance": "must be at least 0"})
		return
	}

	team := domain.NewTeam(req.Name, *req.Balance, *req.CommissionPercentage)

	created, err := h.teamService.CreateTeam(c.Request.Context(), team)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, teamResponse(created))
}

// PATCH /teams/:id
func (h *Handler) TeamUpdate(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.handleError(c, domain.ErrInvalidInput)
		return
	}

	var req teamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleValidationError(c, err)
		return
	}

	if req.Balance.IsNegative() {
		h.rejectFields(c, map[string]string{"balance": "must be at least 0"})
		return
	}

	patch := domain.NewTeam(req.Name, *req.Balance, *req.CommissionPercentage)

	updated, err := h.teamService.UpdateTeam(c.Request.Context(), id, patch)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, teamResponse(updated))
}

// DELETE /teams/:id
func (h *Handler) TeamDelete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.handleError(c, domain.ErrInvalidInput)
		return
	}

	if err := h.teamService.DeleteTeam(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Team deleted successfully",
	})
}

func teamResponse(t *domain.Team) gin.H {
	return gin.H{
		"id":                   t.ID,
		"name":                 t.Name,
		"balance":              t.Balance,
		"commissionPercentage": t.CommissionPercentage,
	}
}

func teamWithPlayersResponse(t *domain.TeamWithPlayers) gin.H {
	players := make([]gin.H, len(t.Players))
	for i := range t.Players {
		p := &t.Players[i]
		players[i] = gin.H{
			"id":               p.ID,
			"firstName":        p.FirstName,
			"lastName":         p.LastName,
			"age":              p.Age(),
			"experienceMonths": p.ExperienceMonths,
		}
	}

	response := teamResponse(&t.Team)
	response["players"] = players
	return response
}
