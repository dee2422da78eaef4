package services

import (
	"context"
	"strings"

	"github.com/ddiazp/maintenance-orders-api/models"
	"github.com/ddiazp/maintenance-orders-api/store"
)

// UserService administers the users range. Deletion blanks a row's cells
// instead of removing it, so positional indices of other rows stay stable.
type UserService struct {
	store store.RowStore
}

var userServiceInstance *UserService

// InitUserService initializes the user service.
func InitUserService(st store.RowStore) *UserService {
	userServiceInstance = &UserService{store: st}
	return userServiceInstance
}

// GetUserService returns the initialized user service instance
func GetUserService() *UserService {
	return userServiceInstance
}

// SetUserService sets the user service instance (primarily for testing)
func SetUserService(s *UserService) {
	userServiceInstance = s
}

// List returns every live user. Blanked (soft-deleted) rows are skipped.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	rows, err := s.store.FetchAll(ctx, models.UserSchema.RangeID)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, len(rows))
	for _, row := range rows {
		user := models.UserFromCells(row.Cells)
		if user.Username == "" {
			continue
		}
		users = append(users, user)
	}
	return users, nil
}

// Create appends a new user row. Username, secret, and role are all
// required; username must be unique under case-insensitive comparison.
func (s *UserService) Create(ctx context.Context, user models.User) error {
	if strings.TrimSpace(user.Username) == "" {
		return NewValidationError("username is required")
	}
	if user.Secret == "" {
		return NewValidationError("secret is required")
	}
	if user.Role == "" {
		return NewValidationError("role is required")
	}
	if !models.IsValidRole(user.Role) {
		return NewValidationError("role must be one of superadmin, admin, technician")
	}

	if _, _, err := s.locateUser(ctx, user.Username); err == nil {
		return NewValidationError("user %q already exists", user.Username)
	} else if _, ok := err.(*NotFoundError); !ok {
		return err
	}

	return s.store.Append(ctx, models.UserSchema.RangeID, user.Cells())
}

// Update partially updates a user: secret and/or role, located by
// case-insensitive username.
func (s *UserService) Update(ctx context.Context, username, secret, role string) (models.User, error) {
	if strings.TrimSpace(username) == "" {
		return models.User{}, NewValidationError("username is required")
	}
	if role != "" && !models.IsValidRole(role) {
		return models.User{}, NewValidationError("role must be one of superadmin, admin, technician")
	}

	row, user, err := s.locateUser(ctx, username)
	if err != nil {
		return models.User{}, err
	}

	if secret != "" {
		user.Secret = secret
	}
	if role != "" {
		user.Role = role
	}

	if err := s.store.OverwriteRow(ctx, models.UserSchema.RangeID, row.Position, row.Version, user.Cells()); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Delete soft-deletes a user by blanking the row's cells.
func (s *UserService) Delete(ctx context.Context, username string) error {
	if strings.TrimSpace(username) == "" {
		return NewValidationError("username is required")
	}

	row, _, err := s.locateUser(ctx, username)
	if err != nil {
		return err
	}

	blank := make([]string, models.UserSchema.Width())
	return s.store.OverwriteRow(ctx, models.UserSchema.RangeID, row.Position, row.Version, blank)
}

// locateUser finds the first live row matching username case-insensitively.
func (s *UserService) locateUser(ctx context.Context, username string) (store.Row, models.User, error) {
	rows, err := s.store.FetchAll(ctx, models.UserSchema.RangeID)
	if err != nil {
		return store.Row{}, models.User{}, err
	}

	for _, row := range rows {
		user := models.UserFromCells(row.Cells)
		if user.Username == "" {
			continue
		}
		if strings.EqualFold(user.Username, username) {
			return row, user, nil
		}
	}
	return store.Row{}, models.User{}, &NotFoundError{Kind: "user", Key: username}
}
