// SPDX-License-Identifier: MIT

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Konduru-Hemesh/secure-password-demo/internal/app"
	"github.com/Konduru-Hemesh/secure-password-demo/internal/logger"
	"github.com/Konduru-Hemesh/secure-password-demo/internal/service"
	"github.com/Konduru-Hemesh/secure-password-demo/internal/utils"
	"github.com/Konduru-Hemesh/secure-password-demo/models"
)

func (h *Handler) getVault(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.getVault").Msg("no user ID was given")
		http.Error(w, app.MsgNoUserIDProvided, http.StatusBadRequest)
		return
	}

	vault, err := h.services.VaultService.GetVault(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getVault").Msg("error reading vault")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	response := models.VaultResponse{
		VaultVersion:     vault.VaultVersion,
		EncryptedEntries: vault.Entries,
		LastSyncedAt:     vault.LastSyncedAt,
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) sync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.sync").Msg("no user ID was given")
		http.Error(w, app.MsgNoUserIDProvided, http.StatusBadRequest)
		return
	}

	var delta models.SyncDelta
	if err := json.NewDecoder(r.Body).Decode(&delta); err != nil {
		log.Err(err).Str("func", "*Handler.sync").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	vault, err := h.services.VaultService.ApplySync(ctx, userID, delta)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid sync delta")
			http.Error(w, app.MsgInvalidSyncDelta, http.StatusBadRequest)
			return
		case errors.Is(err, service.ErrSyncConflict):
			// The conflict body carries the full current server state so
			// the client can resolve without an extra round trip.
			log.Info().
				Int64("base_version", delta.BaseVersion).
				Int64("vault_version", vault.VaultVersion).
				Msg("sync conflict")
			utils.WriteJSON(w, models.ConflictResponse{
				Error:             app.MsgSyncConflict,
				ServerBaseVersion: vault.VaultVersion,
				VaultVersion:      vault.VaultVersion,
				EncryptedEntries:  vault.Entries,
			}, http.StatusConflict)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during sync")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, models.SyncResult{
		Success:      true,
		VaultVersion: vault.VaultVersion,
		Entries:      vault.Entries,
		LastSyncedAt: vault.LastSyncedAt,
	}, http.StatusOK)
}
