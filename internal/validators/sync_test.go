// SPDX-License-Identifier: MIT

package validators

import (
	"context"
	"errors"
	"testing"

	"github.com/Konduru-Hemesh/secure-password-demo/models"
)

func validDelta() models.SyncDelta {
	return models.SyncDelta{
		EventID:     "evt-1",
		DeviceID:    "device-a",
		Updated:     []models.VaultEntry{{ID: "entry-1", Password: "enc"}},
		BaseVersion: 3,
	}
}

func TestValidate_Dispatch(t *testing.T) {
	v := NewSyncValidator()
	ctx := context.Background()

	delta := validDelta()
	user := models.User{Login: "alice", Password: "secret"}
	entry := models.VaultEntry{ID: "entry-1"}

	tests := []struct {
		name string
		obj  any
		want error
	}{
		{"user value", user, nil},
		{"user pointer", &user, nil},
		{"delta value", delta, nil},
		{"delta pointer", &delta, nil},
		{"entry value", entry, nil},
		{"entry pointer", &entry, nil},
		{"unsupported", 42, ErrUnsupportedType},
		{"unsupported string", "delta", ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.obj)
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate(%T) = %v, want %v", tt.obj, err, tt.want)
			}
		})
	}
}

func TestValidateDelta(t *testing.T) {
	v := NewSyncValidator()
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*models.SyncDelta)
		want   error
	}{
		{"valid", func(d *models.SyncDelta) {}, nil},
		{"empty event id", func(d *models.SyncDelta) { d.EventID = "" }, ErrEmptyEventID},
		{"negative base version", func(d *models.SyncDelta) { d.BaseVersion = -1 }, ErrNegativeBaseVersion},
		{"base version zero is valid", func(d *models.SyncDelta) { d.BaseVersion = 0 }, nil},
		{"updated entry without id", func(d *models.SyncDelta) { d.Updated[0].ID = "" }, ErrEntryWithoutID},
		{"added entry without id", func(d *models.SyncDelta) {
			d.Added = []models.VaultEntry{{}}
		}, ErrEntryWithoutID},
		{"empty deleted id", func(d *models.SyncDelta) {
			d.Deleted = []string{"entry-2", ""}
		}, ErrEmptyDeletedID},
		{"empty delta is valid", func(d *models.SyncDelta) {
			d.Added, d.Updated, d.Deleted = nil, nil, nil
		}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delta := validDelta()
			tt.mutate(&delta)

			err := v.Validate(ctx, delta)
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidateUser(t *testing.T) {
	v := NewSyncValidator()
	ctx := context.Background()

	tests := []struct {
		name string
		user models.User
		want error
	}{
		{"valid", models.User{Login: "alice", Password: "secret"}, nil},
		{"missing login", models.User{Password: "secret"}, ErrEmptyCredentials},
		{"missing password", models.User{Login: "alice"}, ErrEmptyCredentials},
		{"missing both", models.User{}, ErrEmptyCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.user)
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}
