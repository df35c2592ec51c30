// SPDX-License-Identifier: MIT

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Konduru-Hemesh/secure-password-demo/models"
)

func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()
	a := NewHTTPServerAdapter(HTTPClientConfig{BaseURL: serverURL, Timeout: 5 * time.Second})
	return a.(*httpServerAdapter)
}

// ── Register / Login ────────────────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/register", r.URL.Path)

		w.Header().Set("Authorization", "Bearer test-token")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	token, err := a.Register(context.Background(), models.User{Login: "alice", Password: "secret"})

	require.NoError(t, err)
	assert.Equal(t, "test-token", token.SignedString)
	assert.Equal(t, "test-token", a.Token())
}

func TestRegister_LoginTaken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("login already exists"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Register(context.Background(), models.User{Login: "alice"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrVersionConflict)
}

func TestLogin_WrongPassword(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Login(context.Background(), models.User{Login: "alice", Password: "wrong"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, a.Token())
}

// ── GetVault ────────────────────────────────────────────────────────────────

func TestGetVault_Success(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	want := models.VaultResponse{
		VaultVersion: 3,
		EncryptedEntries: []models.VaultEntry{
			{ID: "e1", Website: "example.com", Version: 3, UpdatedAt: now},
		},
		LastSyncedAt: now,
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/vault", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("test-token")

	got, err := a.GetVault(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.VaultVersion)
	require.Len(t, got.EncryptedEntries, 1)
	assert.Equal(t, "e1", got.EncryptedEntries[0].ID)
}

func TestGetVault_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.GetVault(context.Background())

	assert.ErrorIs(t, err, ErrUnauthorized)
}

// ── PushDelta ───────────────────────────────────────────────────────────────

func TestPushDelta_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/vault/sync", r.URL.Path)

		var delta models.SyncDelta
		require.NoError(t, json.NewDecoder(r.Body).Decode(&delta))
		assert.Equal(t, "evt-1", delta.EventID)
		assert.Equal(t, int64(2), delta.BaseVersion)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.SyncResult{
			Success:      true,
			VaultVersion: 3,
			Entries:      []models.VaultEntry{{ID: "e1", Version: 3}},
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("test-token")

	result, conflict, err := a.PushDelta(context.Background(), models.SyncDelta{
		EventID:     "evt-1",
		BaseVersion: 2,
		Updated:     []models.VaultEntry{{ID: "e1"}},
	})

	require.NoError(t, err)
	assert.Nil(t, conflict)
	assert.True(t, result.Success)
	assert.Equal(t, int64(3), result.VaultVersion)
}

func TestPushDelta_ConflictCarriesServerState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(models.ConflictResponse{
			Error:             "Sync Conflict",
			ServerBaseVersion: 5,
			VaultVersion:      5,
			EncryptedEntries:  []models.VaultEntry{{ID: "e1", Version: 5}},
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("test-token")

	_, conflict, err := a.PushDelta(context.Background(), models.SyncDelta{EventID: "evt-1", BaseVersion: 3})

	require.ErrorIs(t, err, ErrVersionConflict)
	require.NotNil(t, conflict)
	assert.Equal(t, int64(5), conflict.VaultVersion)
	assert.Equal(t, int64(5), conflict.ServerBaseVersion)
	require.Len(t, conflict.EncryptedEntries, 1)
}

func TestPushDelta_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, conflict, err := a.PushDelta(context.Background(), models.SyncDelta{EventID: "evt-1"})

	assert.Nil(t, conflict)
	assert.ErrorIs(t, err, ErrInternalServerError)
}
