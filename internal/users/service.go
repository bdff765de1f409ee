package users

import (
	"context"
	"errors"
	"strings"

	"karoo-backend/internal/access"
	"karoo-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("User not found")
	ErrInvalidRole  = errors.New("Invalid role")
)

// Service implements profile and account-administration operations.
type Service struct {
	DB *gorm.DB
}

// GetByID fetches a user row.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	if err := s.DB.WithContext(ctx).Where("user_id = ?", id).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// UpdateProfile updates allowed profile fields only.
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*models.User, error) {
	if len(fields) == 0 {
		return nil, errors.New("Missing update fields")
	}
	allowed := map[string]bool{"fullname": true, "phone": true, "photo_url": true, "preferences": true}
	upd := make(map[string]interface{})
	for k, v := range fields {
		if allowed[k] {
			upd[k] = v
		}
	}
	if len(upd) == 0 {
		return nil, errors.New("No valid changes provided")
	}
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(u).Updates(upd).Error; err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// SaveProperty adds a property id to the user's saved set. Adding an id that
// is already present is a no-op.
func (s *Service) SaveProperty(ctx context.Context, userID uuid.UUID, propertyID uuid.UUID) (*models.User, error) {
	return s.mutateSet(ctx, userID, "saved_properties", propertyID.String(), true)
}

// UnsaveProperty removes a property id from the saved set.
func (s *Service) UnsaveProperty(ctx context.Context, userID uuid.UUID, propertyID uuid.UUID) (*models.User, error) {
	return s.mutateSet(ctx, userID, "saved_properties", propertyID.String(), false)
}

// MarkViewed records a property id in the viewed set.
func (s *Service) MarkViewed(ctx context.Context, userID uuid.UUID, propertyID uuid.UUID) (*models.User, error) {
	return s.mutateSet(ctx, userID, "viewed_properties", propertyID.String(), true)
}

// mutateSet performs an add/remove on one of the JSON id-set columns inside a
// transaction, so two concurrent toggles on the same user do not clobber each
// other.
func (s *Service) mutateSet(ctx context.Context, userID uuid.UUID, column, value string, add bool) (*models.User, error) {
	var out *models.User
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u models.User
		if err := tx.Where("user_id = ?", userID).First(&u).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrUserNotFound
			}
			return err
		}
		var set []string
		if column == "saved_properties" {
			set = u.SavedProperties
		} else {
			set = u.ViewedProperties
		}
		next := applySetOp(set, value, add)
		if err := tx.Model(&u).Update(column, datatypes.JSONSlice[string](next)).Error; err != nil {
			return err
		}
		if column == "saved_properties" {
			u.SavedProperties = next
		} else {
			u.ViewedProperties = next
		}
		out = &u
		return nil
	})
	return out, err
}

func applySetOp(set []string, value string, add bool) []string {
	out := make([]string, 0, len(set)+1)
	present := false
	for _, v := range set {
		if v == value {
			present = true
			if !add {
				continue
			}
		}
		out = append(out, v)
	}
	if add && !present {
		out = append(out, value)
	}
	return out
}

// PromoteUserRole looks up a user by email with a linear scan (no unique
// index assumed) and sets the role. A missing user is a distinct failure from
// a write error.
func (s *Service) PromoteUserRole(ctx context.Context, email, targetRole string) (*models.User, error) {
	if access.ParseRole(targetRole) == access.Anonymous {
		return nil, ErrInvalidRole
	}
	needle := strings.TrimSpace(strings.ToLower(email))

	var all []models.User
	if err := s.DB.WithContext(ctx).Find(&all).Error; err != nil {
		return nil, err
	}
	for i := range all {
		if strings.ToLower(all[i].Email) == needle {
			if err := s.DB.WithContext(ctx).Model(&all[i]).Update("role", targetRole).Error; err != nil {
				return nil, err
			}
			all[i].Role = targetRole
			return &all[i], nil
		}
	}
	return nil, ErrUserNotFound
}

// BackfillRoleField sets role='user', is_active=true on rows missing a role.
// Idempotent: a second run updates zero rows.
func (s *Service) BackfillRoleField(ctx context.Context) (int64, error) {
	res := s.DB.WithContext(ctx).Model(&models.User{}).
		Where("role IS NULL OR role = ?", "").
		Updates(map[string]interface{}{"role": access.RoleUser.String(), "is_active": true})
	return res.RowsAffected, res.Error
}
