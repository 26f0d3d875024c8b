package dto

import (
	"time"

	"github.com/yukikurage/team-management-api/internal/models"
)

// EmployeeDTO represents an employee in API responses
type EmployeeDTO struct {
	ID        uint64       `json:"id"`
	Username  string       `json:"username"`
	Email     string       `json:"email"`
	FirstName string       `json:"first_name"`
	LastName  string       `json:"last_name"`
	FullName  string       `json:"full_name"`
	Slug      string       `json:"slug"`
	Position  *CatalogItem `json:"position,omitempty"`
}

// EmployeeRefDTO is the short form used inside other resources
type EmployeeRefDTO struct {
	ID       uint64 `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Slug     string `json:"slug"`
}

// CatalogItem represents a position, task type or task tag
type CatalogItem struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// InvitationDTO represents an invitation in API responses
type InvitationDTO struct {
	ID        uint64                  `json:"id"`
	Email     string                  `json:"email"`
	Slug      string                  `json:"slug"`
	Status    models.InvitationStatus `json:"status"`
	CreatedAt time.Time               `json:"created_at"`
	Position  *CatalogItem            `json:"position,omitempty"`
	InvitedBy *EmployeeRefDTO         `json:"invited_by,omitempty"`
}

func ToCatalogItem[T models.CatalogEntry](entry T) CatalogItem {
	return CatalogItem{ID: entry.EntryID(), Name: entry.EntryName()}
}

// ToEmployeeDTO converts an Employee model to EmployeeDTO
func ToEmployeeDTO(employee models.Employee) EmployeeDTO {
	dto := EmployeeDTO{
		ID:        employee.ID,
		Username:  employee.Username,
		Email:     employee.Email,
		FirstName: employee.FirstName,
		LastName:  employee.LastName,
		FullName:  employee.FullName(),
		Slug:      employee.Slug,
	}

	// Include position if preloaded
	if employee.Position.ID != 0 {
		position := ToCatalogItem(employee.Position)
		dto.Position = &position
	}
	return dto
}

func ToEmployeeRefDTO(employee models.Employee) EmployeeRefDTO {
	return EmployeeRefDTO{
		ID:       employee.ID,
		FullName: employee.FullName(),
		Email:    employee.Email,
		Slug:     employee.Slug,
	}
}

func ToEmployeeRefDTOs(employees []models.Employee) []EmployeeRefDTO {
	refs := make([]EmployeeRefDTO, len(employees))
	for i, e := range employees {
		refs[i] = ToEmployeeRefDTO(e)
	}
	return refs
}

// ToInvitationDTO converts an Invitation model to InvitationDTO
func ToInvitationDTO(inv models.Invitation) InvitationDTO {
	dto := InvitationDTO{
		ID:        inv.ID,
		Email:     inv.Email,
		Slug:      inv.Slug,
		Status:    inv.Status(),
		CreatedAt: inv.CreatedAt,
	}

	if inv.Position.ID != 0 {
		position := ToCatalogItem(inv.Position)
		dto.Position = &position
	}
	if inv.InvitedBy.ID != 0 {
		inviter := ToEmployeeRefDTO(inv.InvitedBy)
		dto.InvitedBy = &inviter
	}
	return dto
}
