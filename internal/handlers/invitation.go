package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/team-management-api/internal/dto"
	"github.com/yukikurage/team-management-api/internal/services"
)

type InvitationHandler struct {
	invitationService *services.InvitationService
}

func NewInvitationHandler(invitationService *services.InvitationService) *InvitationHandler {
	return &InvitationHandler{invitationService: invitationService}
}

func (h *InvitationHandler) ListInvitations(c *gin.Context) {
	result, err := h.invitationService.ListInvitations(c.Request.Context(), listInput(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListResponse(result.Page, result.Query, dto.ToInvitationDTO))
}

// CreateInvitation stores the invitation and mails the registration link.
func (h *InvitationHandler) CreateInvitation(c *gin.Context) {
	inviterID, ok := currentEmployeeID(c)
	if !ok {
		return
	}

	var req services.CreateInvitationInput
	if !bindJSON(c, &req) {
		return
	}

	invitation, notice, err := h.invitationService.CreateInvitation(c.Request.Context(), req, inviterID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"invitation": dto.ToInvitationDTO(*invitation),
		"notice":     notice,
	})
}

// GetInvitation is public so the invitee can open the registration form.
func (h *InvitationHandler) GetInvitation(c *gin.Context) {
	invitation, err := h.invitationService.GetInvitation(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToInvitationDTO(*invitation))
}
