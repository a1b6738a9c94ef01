package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/parishworks/reportsdb/internal/auth"
	"github.com/parishworks/reportsdb/internal/models"
)

// AccountSummary is the public view of an account.
type AccountSummary struct {
	AccountID   string `json:"accountId"`
	Handle      string `json:"handle"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	OrgName     string `json:"orgName,omitempty"`
	Role        string `json:"role"`
}

// RegisterInput carries the optional registration fields.
type RegisterInput struct {
	Email       string
	DisplayName string
	OrgName     string
}

// Register creates a new account. The secret is stored only as a bcrypt
// hash. Duplicate handles, and duplicate non-empty emails owned by another
// account, fail with ErrConflict.
func (s *Store) Register(ctx context.Context, handle, secret string, in RegisterInput) (string, error) {
	if len(handle) < 3 {
		return "", fmt.Errorf("%w: handle must be at least 3 characters", ErrValidation)
	}
	if len(secret) < 6 {
		return "", fmt.Errorf("%w: secret must be at least 6 characters", ErrValidation)
	}

	hash, err := auth.HashSecret(secret)
	if err != nil {
		return "", storageErr(err)
	}

	account := models.Account{
		AccountID:   uuid.NewString(),
		Handle:      handle,
		Email:       in.Email,
		SecretHash:  hash,
		DisplayName: in.DisplayName,
		OrgName:     in.OrgName,
		Role:        "user",
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Account{}).Where("handle = ?", handle).Count(&count).Error; err != nil {
			return storageErr(err)
		}
		if count > 0 {
			return fmt.Errorf("%w: handle %q is taken", ErrConflict, handle)
		}

		if in.Email != "" {
			if err := tx.Model(&models.Account{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
				return storageErr(err)
			}
			if count > 0 {
				return fmt.Errorf("%w: email %q is registered to another account", ErrConflict, in.Email)
			}
		}

		if err := tx.Create(&account).Error; err != nil {
			return storageErr(err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return account.AccountID, nil
}

// Authenticate verifies a handle/secret pair. Unknown handle and wrong
// secret both return ErrUnauthorized so the caller cannot tell them apart.
// On success the account's last-login timestamp is advanced.
func (s *Store) Authenticate(ctx context.Context, handle, secret string) (*AccountSummary, error) {
	var account models.Account
	err := s.db.WithContext(ctx).Where("handle = ?", handle).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, storageErr(err)
	}

	if auth.CheckSecret(account.SecretHash, secret) != nil {
		return nil, ErrUnauthorized
	}

	now := time.Now()
	if err := s.db.WithContext(ctx).Model(&account).Update("last_login_at", &now).Error; err != nil {
		return nil, storageErr(err)
	}

	return &AccountSummary{
		AccountID:   account.AccountID,
		Handle:      account.Handle,
		Email:       account.Email,
		DisplayName: account.DisplayName,
		OrgName:     account.OrgName,
		Role:        account.Role,
	}, nil
}
