package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Konduru-Hemesh/secure-password-demo/internal/utils"
	"github.com/Konduru-Hemesh/secure-password-demo/models"
)

type HTTPClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

type httpServerAdapter struct {
	client *resty.Client

	mu    sync.RWMutex
	token string
}

func NewHTTPServerAdapter(cfg HTTPClientConfig) ServerAdapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &httpServerAdapter{client: cli}
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) Register(ctx context.Context, user models.User) (models.Token, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/auth/register")
	if err != nil {
		return models.Token{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Token{}, err
	}

	return h.takeToken(resp)
}

func (h *httpServerAdapter) Login(ctx context.Context, user models.User) (models.Token, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/auth/login")
	if err != nil {
		return models.Token{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Token{}, err
	}

	return h.takeToken(resp)
}

func (h *httpServerAdapter) GetVault(ctx context.Context) (models.VaultResponse, error) {
	var vault models.VaultResponse

	resp, err := h.authedRequest(ctx).
		SetResult(&vault).
		Get("/api/vault")
	if err != nil {
		return models.VaultResponse{}, fmt.Errorf("get vault request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VaultResponse{}, err
	}

	return vault, nil
}

// PushDelta submits a delta. A 409 is not a transport failure: the conflict
// payload carries everything the engine needs to resolve and retry, so it is
// decoded and returned alongside ErrVersionConflict.
func (h *httpServerAdapter) PushDelta(ctx context.Context, delta models.SyncDelta) (models.SyncResult, *models.ConflictResponse, error) {
	var result models.SyncResult

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(delta).
		SetResult(&result).
		Post("/api/vault/sync")
	if err != nil {
		return models.SyncResult{}, nil, fmt.Errorf("sync request: %w", err)
	}

	if resp.StatusCode() == http.StatusConflict {
		var conflict models.ConflictResponse
		if decodeErr := json.Unmarshal(resp.Body(), &conflict); decodeErr != nil {
			return models.SyncResult{}, nil, fmt.Errorf("%w: undecodable conflict body: %w", ErrVersionConflict, decodeErr)
		}
		return models.SyncResult{}, &conflict, ErrVersionConflict
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SyncResult{}, nil, err
	}

	return result, nil, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func (h *httpServerAdapter) takeToken(resp *resty.Response) (models.Token, error) {
	raw, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.Token{}, fmt.Errorf("parse bearer token: %w", err)
	}

	h.SetToken(raw)
	return models.Token{SignedString: raw}, nil
}
