package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/yukikurage/team-management-api/internal/mailer"
	"github.com/yukikurage/team-management-api/internal/metrics"
	"github.com/yukikurage/team-management-api/internal/models"
	"github.com/yukikurage/team-management-api/internal/repository"
	"github.com/yukikurage/team-management-api/internal/search"
	"github.com/yukikurage/team-management-api/internal/slug"
	"github.com/yukikurage/team-management-api/internal/validation"
)

var (
	ErrInvitationNotFound        = errors.New("invitation not found")
	ErrInvitationAlreadyAccepted = errors.New("invitation has already been accepted")
	ErrInvitationMailFailed      = errors.New("failed to send invitation email")
	ErrEmployeeExists            = errors.New("an employee with this email already exists")
)

const (
	msgInvitationExists = "Invitation with this email already exists."
	msgInvalidChoice    = "Select a valid choice. That choice is not one of the available choices."
)

// InvitationService drives the invitation lifecycle: pending on creation,
// accepted exactly once on registration.
type InvitationService struct {
	invitationRepo repository.InvitationRepository
	employeeRepo   repository.EmployeeRepository
	positionRepo   repository.CatalogRepository[models.Position]
	mailer         mailer.Mailer
	baseURL        string
	log            *logrus.Logger
	now            func() time.Time
}

// NewInvitationService creates a new InvitationService
func NewInvitationService(
	invitationRepo repository.InvitationRepository,
	employeeRepo repository.EmployeeRepository,
	positionRepo repository.CatalogRepository[models.Position],
	m mailer.Mailer,
	baseURL string,
	log *logrus.Logger,
) *InvitationService {
	return &InvitationService{
		invitationRepo: invitationRepo,
		employeeRepo:   employeeRepo,
		positionRepo:   positionRepo,
		mailer:         m,
		baseURL:        strings.TrimRight(baseURL, "/"),
		log:            log,
		now:            time.Now,
	}
}

// CreateInvitationInput represents input for inviting a new employee
type CreateInvitationInput struct {
	Email      string `json:"email" validate:"required,email,max=254"`
	PositionID uint64 `json:"position_id" validate:"required"`
}

// RegistrationInput represents the form an invitee fills in to register
type RegistrationInput struct {
	FirstName string `json:"first_name" validate:"required,max=150"`
	LastName  string `json:"last_name" validate:"required,max=150"`
	Password  string `json:"password" validate:"required,min=8"`
	Password2 string `json:"password2" validate:"required,eqfield=Password"`
}

// ListInvitations returns one page of invitations ranked by the search query
func (s *InvitationService) ListInvitations(ctx context.Context, input ListInput) (ListResult[models.Invitation], error) {
	invitations, err := s.invitationRepo.List(ctx)
	if err != nil {
		return ListResult[models.Invitation]{}, fmt.Errorf("failed to list invitations: %w", err)
	}
	return searchPage(invitations, input, search.Invitations), nil
}

// GetInvitation returns an invitation by slug
func (s *InvitationService) GetInvitation(ctx context.Context, slug string) (*models.Invitation, error) {
	invitation, err := s.invitationRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to find invitation: %w", err)
	}
	return invitation, nil
}

// CreateInvitation stores a pending invitation and emails the registration
// link. The invitation is only kept if the email was sent.
func (s *InvitationService) CreateInvitation(ctx context.Context, input CreateInvitationInput, inviterID uint64) (*models.Invitation, Notice, error) {
	input.Email = strings.TrimSpace(input.Email)

	errs := validation.Struct(input)
	if _, bad := errs["email"]; !bad {
		taken, err := s.invitationRepo.EmailExists(ctx, input.Email)
		if err != nil {
			return nil, Notice{}, fmt.Errorf("failed to check invitation email: %w", err)
		}
		if taken {
			errs.Add("email", msgInvitationExists)
		}
	}

	var position *models.Position
	if input.PositionID != 0 {
		p, err := s.positionRepo.FindByID(ctx, input.PositionID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			errs.Add("position_id", msgInvalidChoice)
		case err != nil:
			return nil, Notice{}, fmt.Errorf("failed to find position: %w", err)
		default:
			position = p
		}
	}
	if err := errs.Err(); err != nil {
		return nil, Notice{}, err
	}

	inviter, err := s.employeeRepo.FindByID(ctx, inviterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, Notice{}, ErrEmployeeNotFound
		}
		return nil, Notice{}, fmt.Errorf("failed to find inviter: %w", err)
	}

	createdAt := s.now()
	invitationSlug, err := slug.Unique(ctx, s.invitationRepo.SlugExists, position.Name, createdAt.Format("2006-01-02 15:04:05.000000"))
	if err != nil {
		return nil, Notice{}, fmt.Errorf("failed to generate slug: %w", err)
	}

	invitation := &models.Invitation{
		Email:       input.Email,
		PositionID:  position.ID,
		InvitedByID: inviter.ID,
		CreatedAt:   createdAt,
		Slug:        invitationSlug,
	}

	err = s.invitationRepo.Create(ctx, invitation, func(inv *models.Invitation) error {
		return s.mailer.SendInvitation(ctx, mailer.InvitationMessage{
			To:              inv.Email,
			InviterName:     inviter.FullName(),
			PositionName:    position.Name,
			RegistrationURL: s.RegistrationURL(inv.Slug),
		})
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotifyInvitee) {
			s.log.WithError(err).WithField("email", input.Email).Error("Invitation email failed, invitation discarded")
			return nil, Notice{}, fmt.Errorf("%w: %w", ErrInvitationMailFailed, err)
		}
		return nil, Notice{}, integrityOr(err, "failed to create invitation")
	}

	invitation.Position = *position
	invitation.InvitedBy = *inviter
	metrics.InvitationCreated()
	s.log.WithFields(logrus.Fields{
		"invitation_id": invitation.ID,
		"email":         invitation.Email,
		"invited_by":    inviter.ID,
	}).Info("Invitation created")

	return invitation, success("Invitation sent successfully"), nil
}

// RegistrationURL is the link sent to the invitee.
func (s *InvitationService) RegistrationURL(invitationSlug string) string {
	return s.baseURL + "/employees/register/" + invitationSlug
}

// AcceptInvitation registers the invitee as an employee and consumes the
// invitation. A second registration against the same invitation fails.
func (s *InvitationService) AcceptInvitation(ctx context.Context, invitationSlug string, input RegistrationInput) (*models.Employee, error) {
	invitation, err := s.GetInvitation(ctx, invitationSlug)
	if err != nil {
		return nil, err
	}
	if invitation.IsAccepted {
		return nil, ErrInvitationAlreadyAccepted
	}

	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	if err := validation.Struct(input).Err(); err != nil {
		return nil, err
	}

	if _, err := s.employeeRepo.FindByEmail(ctx, invitation.Email); err == nil {
		return nil, ErrEmployeeExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check employee email: %w", err)
	}

	passwordHash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	username, err := s.uniqueUsername(ctx, invitation.Email)
	if err != nil {
		return nil, err
	}
	employeeSlug, err := slug.Unique(ctx, s.employeeRepo.SlugExists, username, input.FirstName, input.LastName)
	if err != nil {
		return nil, fmt.Errorf("failed to generate slug: %w", err)
	}

	employee := &models.Employee{
		Username:     username,
		Email:        invitation.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: passwordHash,
		PositionID:   invitation.PositionID,
		Slug:         employeeSlug,
	}

	if err := s.invitationRepo.Accept(ctx, invitation, employee); err != nil {
		if errors.Is(err, repository.ErrInvitationAlreadyAccepted) {
			return nil, ErrInvitationAlreadyAccepted
		}
		return nil, integrityOr(err, "failed to accept invitation")
	}

	employee.Position = invitation.Position
	metrics.InvitationAccepted()
	s.log.WithFields(logrus.Fields{
		"invitation_id": invitation.ID,
		"employee_id":   employee.ID,
	}).Info("Invitation accepted")

	return employee, nil
}

// uniqueUsername derives the username from the local part of the email,
// adding a numeric suffix while it is taken.
func (s *InvitationService) uniqueUsername(ctx context.Context, email string) (string, error) {
	base, _, _ := strings.Cut(email, "@")
	candidate := base
	for i := 2; ; i++ {
		taken, err := s.employeeRepo.UsernameExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check username: %w", err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", base, i)
	}
}
