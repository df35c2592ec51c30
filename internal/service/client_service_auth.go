package service

import (
	"context"
	"fmt"

	"github.com/Konduru-Hemesh/secure-password-demo/internal/adapter"
	"github.com/Konduru-Hemesh/secure-password-demo/internal/logger"
	"github.com/Konduru-Hemesh/secure-password-demo/internal/store"
	"github.com/Konduru-Hemesh/secure-password-demo/models"
)

type clientAuthService struct {
	server     adapter.ServerAdapter
	vaultStore store.LocalVaultStore
	outbox     store.OutboxStore
	logger     *logger.Logger
}

func NewClientAuthService(server adapter.ServerAdapter, vaultStore store.LocalVaultStore, outbox store.OutboxStore, logger *logger.Logger) ClientAuthService {
	return &clientAuthService{
		server:     server,
		vaultStore: vaultStore,
		outbox:     outbox,
		logger:     logger,
	}
}

func (c *clientAuthService) Register(ctx context.Context, user models.User) error {
	log := c.logger.With().Str("func", "clientAuthService.Register").Str("login", user.Login).Logger()

	if user.Login == "" || user.Password == "" {
		return ErrInvalidDataProvided
	}

	if _, err := c.server.Register(ctx, user); err != nil {
		log.Err(err).Msg("registration failed")
		return fmt.Errorf("registration failed: %w", err)
	}

	log.Info().Msg("registered")
	return nil
}

func (c *clientAuthService) Login(ctx context.Context, user models.User) error {
	log := c.logger.With().Str("func", "clientAuthService.Login").Str("login", user.Login).Logger()

	if user.Login == "" || user.Password == "" {
		return ErrInvalidDataProvided
	}

	if _, err := c.server.Login(ctx, user); err != nil {
		log.Err(err).Msg("login failed")
		return fmt.Errorf("login failed: %w", err)
	}

	log.Info().Msg("logged in")
	return nil
}

// Logout drops the session: the bearer token, the local snapshot, and the
// outbox. Queued-but-unsent changes are discarded with it; callers should
// drain the outbox first if that matters. The device id is intentionally
// kept.
func (c *clientAuthService) Logout(ctx context.Context) error {
	log := c.logger.With().Str("func", "clientAuthService.Logout").Logger()

	c.server.SetToken("")

	if err := c.outbox.Clear(ctx); err != nil {
		log.Err(err).Msg("failed to clear outbox")
		return fmt.Errorf("failed to clear outbox: %w", err)
	}
	if err := c.vaultStore.Purge(ctx); err != nil {
		log.Err(err).Msg("failed to purge local vault")
		return fmt.Errorf("failed to purge local vault: %w", err)
	}

	log.Info().Msg("logged out, local state purged")
	return nil
}
