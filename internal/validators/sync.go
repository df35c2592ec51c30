package validators

import (
	"context"
	"fmt"

	"github.com/Konduru-Hemesh/secure-password-demo/models"
)

// SyncValidator validates the inbound sync surface: credentials on the auth
// routes and deltas on the sync route. It dispatches on the dynamic type of
// the value passed to Validate.
type SyncValidator struct {
}

// NewSyncValidator returns a Validator for models.User, models.SyncDelta,
// and models.VaultEntry values.
func NewSyncValidator() Validator {
	return &SyncValidator{}
}

// Validate checks the provided value against the rules for its type. Both
// value and pointer forms are accepted. Values of any other type yield
// [ErrUnsupportedType].
func (v *SyncValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.User:
		return v.validateUser(value)
	case *models.User:
		return v.validateUser(*value)
	case models.SyncDelta:
		return v.validateDelta(value)
	case *models.SyncDelta:
		return v.validateDelta(*value)
	case models.VaultEntry:
		return v.validateEntry(value)
	case *models.VaultEntry:
		return v.validateEntry(*value)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}
}

func (v *SyncValidator) validateUser(user models.User) error {
	if user.Login == "" || user.Password == "" {
		return ErrEmptyCredentials
	}
	return nil
}

func (v *SyncValidator) validateDelta(delta models.SyncDelta) error {
	if delta.EventID == "" {
		return ErrEmptyEventID
	}
	if delta.BaseVersion < 0 {
		return ErrNegativeBaseVersion
	}

	for _, entry := range delta.Added {
		if err := v.validateEntry(entry); err != nil {
			return fmt.Errorf("added entry: %w", err)
		}
	}
	for _, entry := range delta.Updated {
		if err := v.validateEntry(entry); err != nil {
			return fmt.Errorf("updated entry: %w", err)
		}
	}
	for _, id := range delta.Deleted {
		if id == "" {
			return ErrEmptyDeletedID
		}
	}

	return nil
}

func (v *SyncValidator) validateEntry(entry models.VaultEntry) error {
	if entry.ID == "" {
		return ErrEntryWithoutID
	}
	return nil
}
