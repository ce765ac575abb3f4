package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/2or5/football-manager/internal/domain"
)

const birthDateLayout = "2006-01-02"

type playerRequest struct {
	FirstName        string `json:"firstName" binding:"required"`
	LastName         string `json:"lastName" binding:"required"`
	BirthDate        string `json:"birthDate" binding:"required"`
	ExperienceMonths *int   `json:"experienceMonths" binding:"required,gte=0"`
	TeamID           *int64 `json:"teamId"`
}

// toDomain parses the request into a domain player; the birth date must be a
// valid date strictly in the past
func (req *playerRequest) toDomain() (*domain.Player, map[string]string) {
	birthDate, err := time.Parse(birthDateLayout, req.BirthDate)
	if err != nil {
		return nil, map[string]string{"birthDate": "must be a date in format YYYY-MM-DD"}
	}
	if !birthDate.Before(time.Now()) {
		return nil, map[string]string{"birthDate": "must be in the past"}
	}

	return domain.NewPlayer(req.FirstName, req.LastName, birthDate, *req.ExperienceMonths, req.TeamID), nil
}

// GET /players
func (h *Handler) PlayerList(c *gin.Context) {
	players, err := h.playerService.GetAllPlayers(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response := make([]gin.H, len(players))
	for i := range players {
		response[i] = playerWithTeamResponse(&players[i])
	}

	c.JSON(http.StatusOK, response)
}

// GET /players/:id
func (h *Handler) PlayerGet(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.handleError(c, domain.ErrInvalidInput)
		return
	}

	player, err := h.playerService.GetPlayer(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, playerWithTeamResponse(player))
}

// POST /players
func (h *Handler) PlayerCreate(c *gin.Context) {
	var req playerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleValidationError(c, err)
		return
	}

	player, fields := req.toDomain()
	if fields != nil {
		h.rejectFields(c, fields)
		return
	}

	created, err := h.playerService.CreatePlayer(c.Request.Context(), player)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, playerWithTeamResponse(created))
}

// PATCH /players/:id
func (h *Handler) PlayerUpdate(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.handleError(c, domain.ErrInvalidInput)
		return
	}

	var req playerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleValidationError(c, err)
		return
	}

	patch, fields := req.toDomain()
	if fields != nil {
		h.rejectFields(c, fields)
		return
	}

	updated, err := h.playerService.UpdatePlayer(c.Request.Context(), id, patch)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, playerWithTeamResponse(updated))
}

// DELETE /players/:id
func (h *Handler) PlayerDelete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.handleError(c, domain.ErrInvalidInput)
		return
	}

	if err := h.playerService.DeletePlayer(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Player deleted successfully",
	})
}

// POST /players/:id/transfer/:teamId
func (h *Handler) PlayerTransfer(c *gin.Context) {
	playerID, ok := parseIDParam(c, "id")
	if !ok {
		h.handleError(c, domain.ErrInvalidInput)
		return
	}
	teamID, ok := parseIDParam(c, "teamId")
	if !ok {
		h.handleError(c, domain.ErrInvalidInput)
		return
	}

	result, err := h.transferService.Transfer(c.Request.Context(), playerID, teamID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":               result.Player.ID,
		"firstName":        result.Player.FirstName,
		"lastName":         result.Player.LastName,
		"age":              result.Player.Age(),
		"experienceMonths": result.Player.ExperienceMonths,
		"team":             teamResponse(&result.DestinationTeam),
	})
}

func playerWithTeamResponse(p *domain.PlayerWithTeam) gin.H {
	response := gin.H{
		"id":               p.ID,
		"firstName":        p.FirstName,
		"lastName":         p.LastName,
		"age":              p.Age(),
		"experienceMonths": p.ExperienceMonths,
	}

	if p.Team != nil {
		response["team"] = teamResponse(p.Team)
	} else {
		response["team"] = nil
	}

	return response
}
