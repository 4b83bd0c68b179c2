package service

import (
	"context"
	"errors"

	"github.com/landhub/backoffice/internal/model"
	"github.com/landhub/backoffice/internal/repository"
)

// Authentication errors.
var (
	ErrInvalidCredentials = errors.New("wrong username or password")
	ErrAccountLocked      = errors.New("account locked, try again later")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrStaffNotFound      = errors.New("staff not found")
	ErrUsernameExists     = errors.New("username already taken")
)

// AuthService verifies staff credentials and manages passwords. The engines
// never see credentials; they only receive the authenticated actor id and
// position this layer produces.
type AuthService interface {
	Authenticate(ctx context.Context, username, password string) (*model.Staff, error)
	ChangePassword(ctx context.Context, staffID, oldPassword, newPassword string) error
	// CreateStaff registers an account with a validated position.
	CreateStaff(ctx context.Context, staff *model.Staff, password string) error
	GetStaff(ctx context.Context, staffID string) (*model.Staff, error)
	UnlockAccount(ctx context.Context, staffID string) error
}

type authService struct {
	staffRepo repository.StaffRepository
}

// NewAuthService creates the authentication service.
func NewAuthService(staffRepo repository.StaffRepository) AuthService {
	return &authService{staffRepo: staffRepo}
}

func (s *authService) Authenticate(ctx context.Context, username, password string) (*model.Staff, error) {
	staff, err := s.staffRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if staff.IsLocked() {
		return nil, ErrAccountLocked
	}
	if !staff.IsActive() {
		return nil, ErrAccountDisabled
	}

	if !staff.VerifyPassword(password) {
		staff.IncrementFailedLogin()
		_ = s.staffRepo.Update(ctx, staff)
		return nil, ErrInvalidCredentials
	}

	if staff.FailedLoginCount > 0 {
		staff.ResetFailedLogin()
		_ = s.staffRepo.Update(ctx, staff)
	}

	return staff, nil
}

func (s *authService) ChangePassword(ctx context.Context, staffID, oldPassword, newPassword string) error {
	staff, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return ErrStaffNotFound
	}

	if !staff.VerifyPassword(oldPassword) {
		return ErrInvalidCredentials
	}

	if err := staff.SetPassword(newPassword); err != nil {
		return err
	}
	return s.staffRepo.Update(ctx, staff)
}

func (s *authService) CreateStaff(ctx context.Context, staff *model.Staff, password string) error {
	if !model.ValidPosition(staff.Position) {
		return ErrInvalidPosition
	}

	exists, err := s.staffRepo.ExistsByUsername(ctx, staff.Username)
	if err != nil {
		return err
	}
	if exists {
		return ErrUsernameExists
	}

	if err := staff.SetPassword(password); err != nil {
		return err
	}
	if staff.Status == "" {
		staff.Status = model.StatusActive
	}
	return s.staffRepo.Create(ctx, staff)
}

func (s *authService) GetStaff(ctx context.Context, staffID string) (*model.Staff, error) {
	staff, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return nil, ErrStaffNotFound
	}
	return staff, nil
}

func (s *authService) UnlockAccount(ctx context.Context, staffID string) error {
	staff, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return ErrStaffNotFound
	}
	staff.ResetFailedLogin()
	return s.staffRepo.Update(ctx, staff)
}
