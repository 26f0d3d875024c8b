package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/team-management-api/internal/dto"
	"github.com/yukikurage/team-management-api/internal/services"
)

type TeamHandler struct {
	teamService *services.TeamService
}

func NewTeamHandler(teamService *services.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

func (h *TeamHandler) ListTeams(c *gin.Context) {
	result, err := h.teamService.ListTeams(c.Request.Context(), listInput(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListResponse(result.Page, result.Query, dto.ToTeamDTO))
}

func (h *TeamHandler) CreateTeam(c *gin.Context) {
	var req services.TeamInput
	if !bindJSON(c, &req) {
		return
	}

	team, notice, err := h.teamService.CreateTeam(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"team":   dto.ToTeamDTO(*team),
		"notice": notice,
	})
}

func (h *TeamHandler) UpdateTeam(c *gin.Context) {
	var req services.TeamInput
	if !bindJSON(c, &req) {
		return
	}

	team, err := h.teamService.UpdateTeam(c.Request.Context(), c.Param("slug"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTeamDTO(*team))
}

func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	if err := h.teamService.DeleteTeam(c.Request.Context(), c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
