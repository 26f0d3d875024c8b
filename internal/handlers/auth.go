package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/yukikurage/team-management-api/internal/constants"
	"github.com/yukikurage/team-management-api/internal/dto"
	apierrors "github.com/yukikurage/team-management-api/internal/errors"
	"github.com/yukikurage/team-management-api/internal/middleware"
	"github.com/yukikurage/team-management-api/internal/models"
	"github.com/yukikurage/team-management-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService       *services.AuthService
	invitationService *services.InvitationService
	secureCookies     bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, invitationService *services.InvitationService, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authService:       authService,
		invitationService: invitationService,
		secureCookies:     secureCookies,
	}
}

// Login authenticates an employee and initializes the session. Without
// remember_me the cookie lasts until the browser closes.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginInput
	if !bindJSON(c, &req) {
		return
	}

	employee, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	maxAge := 0
	if req.RememberMe {
		maxAge = constants.SessionMaxAge
	}
	if !h.startSession(c, employee, maxAge) {
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeDTO(*employee))
}

// Register accepts an invitation and signs the new employee in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegistrationInput
	if !bindJSON(c, &req) {
		return
	}

	employee, err := h.invitationService.AcceptInvitation(c.Request.Context(), c.Param("slug"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	if !h.startSession(c, employee, constants.SessionMaxAge) {
		return
	}

	c.JSON(http.StatusCreated, dto.ToEmployeeDTO(*employee))
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(middleware.SessionOptions(h.secureCookies, -1))
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetCurrentEmployee returns the authenticated employee.
func (h *AuthHandler) GetCurrentEmployee(c *gin.Context) {
	employeeID, ok := currentEmployeeID(c)
	if !ok {
		return
	}

	employee, err := h.authService.GetEmployee(c.Request.Context(), employeeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeDTO(*employee))
}

func (h *AuthHandler) startSession(c *gin.Context, employee *models.Employee, maxAge int) bool {
	session := sessions.Default(c)
	session.Set(constants.ContextKeyEmployeeID, employee.ID)
	session.Options(middleware.SessionOptions(h.secureCookies, maxAge))
	if err := session.Save(); err != nil {
		middleware.GetLogger(c).WithError(err).Error("failed to save session")
		apierrors.InternalError(c, "Failed to save session")
		return false
	}
	return true
}
