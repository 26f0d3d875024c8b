package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/team-management-api/internal/dto"
	"github.com/yukikurage/team-management-api/internal/services"
)

type EmployeeHandler struct {
	employeeService *services.EmployeeService
}

func NewEmployeeHandler(employeeService *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// ListEmployees returns one page of employees ranked by ?query
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	input := listInput(c)
	result, err := h.employeeService.ListEmployees(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListResponse(result.Page, result.Query, dto.ToEmployeeDTO))
}

func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	var req services.UpdateEmployeeInput
	if !bindJSON(c, &req) {
		return
	}

	employee, err := h.employeeService.UpdateEmployee(c.Request.Context(), c.Param("slug"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeDTO(*employee))
}

func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	actorID, ok := currentEmployeeID(c)
	if !ok {
		return
	}

	if err := h.employeeService.DeleteEmployee(c.Request.Context(), c.Param("slug"), actorID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
