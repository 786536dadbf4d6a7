package adapter

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-file-vault/internal/config"
	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/utils"
	"github.com/MKhiriev/go-file-vault/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient
	token  string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the REST implementation of [ServerAdapter]
// bound to cfg.ServerURL. A URL without a scheme is treated as http.
func NewHTTPServerAdapter(cfg config.ClientConfig, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	return h.token
}

func (h *httpServerAdapter) Register(ctx context.Context, req models.RegisterRequest) (models.UserProfile, error) {
	var profile models.UserProfile

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&profile).
		Post("/api/user/register")
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserProfile{}, err
	}

	return profile, nil
}

// Login prefers the token from the Authorization header and falls back to
// the one in the body.
func (h *httpServerAdapter) Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	var loginResp models.LoginResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&loginResp).
		Post("/api/user/login")
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.LoginResponse{}, err
	}

	if header := resp.Header().Get("Authorization"); header != "" {
		token, err := utils.ParseBearerToken(header)
		if err != nil {
			return models.LoginResponse{}, fmt.Errorf("login parse bearer token: %w", err)
		}
		loginResp.Token = token
	}
	if loginResp.Token == "" {
		return models.LoginResponse{}, fmt.Errorf("login: server returned no token")
	}

	h.SetToken(loginResp.Token)
	h.logger.Debug().Str("user_id", loginResp.Profile.UserID).Msg("logged in")
	return loginResp, nil
}

func (h *httpServerAdapter) Me(ctx context.Context) (models.UserProfile, error) {
	var profile models.UserProfile
	if err := h.getJSON(ctx, "/api/user/me", &profile); err != nil {
		return models.UserProfile{}, err
	}
	return profile, nil
}

func (h *httpServerAdapter) Usage(ctx context.Context) (models.StorageUsage, error) {
	var usage models.StorageUsage
	if err := h.getJSON(ctx, "/api/user/storage", &usage); err != nil {
		return models.StorageUsage{}, err
	}
	return usage, nil
}

func (h *httpServerAdapter) Upload(ctx context.Context, filename string, content io.Reader) (models.File, error) {
	var file models.File

	resp, err := h.authedRequest(ctx).
		SetFileReader("file", filename, content).
		SetResult(&file).
		Post("/api/files/")
	if err != nil {
		return models.File{}, fmt.Errorf("upload request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.File{}, err
	}

	return file, nil
}

func (h *httpServerAdapter) List(ctx context.Context) ([]models.File, error) {
	var files []models.File
	if err := h.getJSON(ctx, "/api/files/", &files); err != nil {
		return nil, err
	}
	return files, nil
}

func (h *httpServerAdapter) Download(ctx context.Context, fileID string) (models.DecryptedFile, error) {
	var decrypted models.DecryptedFile
	if err := h.getJSON(ctx, "/api/files/"+url.PathEscape(fileID)+"/content", &decrypted); err != nil {
		return models.DecryptedFile{}, err
	}
	return decrypted, nil
}

func (h *httpServerAdapter) Delete(ctx context.Context, fileID string) error {
	resp, err := h.authedRequest(ctx).Delete("/api/files/" + url.PathEscape(fileID))
	if err != nil {
		return fmt.Errorf("delete request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.String()), nil
}

func (h *httpServerAdapter) getJSON(ctx context.Context, path string, result any) error {
	resp, err := h.authedRequest(ctx).
		SetResult(result).
		Get(path)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}
