package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/zero-waste-market/internal/config"
	"github.com/MKhiriev/zero-waste-market/internal/logger"
	"github.com/MKhiriev/zero-waste-market/internal/retry"
	"github.com/MKhiriev/zero-waste-market/internal/utils"
	"github.com/MKhiriev/zero-waste-market/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	// reads is the retry policy for idempotent GET requests.
	reads retry.Policy

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// envelope mirrors the server's response envelope with the payload left raw.
type envelope struct {
	Success bool              `json:"success"`
	Data    json.RawMessage   `json:"data"`
	Error   *models.ErrorBody `json:"error"`
	Message string            `json:"message"`
}

// NewHTTPServerAdapter constructs the REST implementation of [ServerAdapter].
// It normalises adapterCfg.HTTPAddress into a base URL and configures the
// request timeout and the retry policy for reads.
//
// Returns an error if the address is empty or is not a valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient(adapterCfg.RequestTimeout)
	client.SetBaseURL(baseURL)

	a := &httpServerAdapter{client: client, logger: logger}
	a.reads = retry.Policy{
		MaxRetries: uint64(max(adapterCfg.MaxRetries, 0)),
		BaseDelay:  adapterCfg.RetryBaseDelay,
		Retryable:  retryableRead,
		OnRetry: func(attempt int, delay time.Duration, err error) {
			logger.Debug().Err(err).Int("attempt", attempt).Dur("delay", delay).Msg("retrying request")
		},
	}
	if adapterCfg.MaxRetries <= 0 {
		// a zero policy means library defaults; one attempt is wanted here
		a.reads.MaxRetries, a.reads.BaseDelay = 0, time.Millisecond
	}

	return a, nil
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

// SetToken implements [ServerAdapter].
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) Register(ctx context.Context, req models.RegisterRequest) (models.PublicUser, error) {
	resp, err := h.request(ctx).SetBody(req).Post("/api/auth/register")
	return decode[models.PublicUser](resp, err, "register")
}

func (h *httpServerAdapter) Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	resp, err := h.request(ctx).SetBody(req).Post("/api/auth/login")
	login, err := decode[models.LoginResponse](resp, err, "login")
	if err != nil {
		return models.LoginResponse{}, err
	}
	if login.Token == "" {
		return models.LoginResponse{}, fmt.Errorf("login: %w: no token in response", ErrUnexpectedResponse)
	}

	h.SetToken(login.Token)
	return login, nil
}

func (h *httpServerAdapter) Logout(ctx context.Context) error {
	defer h.SetToken("")

	resp, err := h.request(ctx).Post("/api/auth/logout")
	_, err = decode[json.RawMessage](resp, err, "logout")
	return err
}

func (h *httpServerAdapter) GetProfile(ctx context.Context) (models.User, error) {
	resp, err := h.get(ctx, "/api/user/profile", nil)
	return decode[models.User](resp, err, "get profile")
}

func (h *httpServerAdapter) UpdateProfile(ctx context.Context, req models.ProfileUpdateRequest) (models.User, error) {
	resp, err := h.request(ctx).SetBody(req).Put("/api/user/profile")
	return decode[models.User](resp, err, "update profile")
}

func (h *httpServerAdapter) ListItems(ctx context.Context, filter models.ItemFilter) ([]models.Item, error) {
	resp, err := h.get(ctx, "/api/items", filterQuery(filter))
	return decode[[]models.Item](resp, err, "list items")
}

func (h *httpServerAdapter) GetItem(ctx context.Context, id string) (models.Item, error) {
	resp, err := h.get(ctx, "/api/items/"+url.PathEscape(id), nil)
	return decode[models.Item](resp, err, "get item")
}

func (h *httpServerAdapter) CreateItem(ctx context.Context, req models.ItemRequest) (models.Item, error) {
	resp, err := h.request(ctx).SetBody(req).Post("/api/items")
	return decode[models.Item](resp, err, "create item")
}

func (h *httpServerAdapter) UpdateItem(ctx context.Context, id string, req models.ItemRequest) (models.Item, error) {
	resp, err := h.request(ctx).SetBody(req).Put("/api/items/" + url.PathEscape(id))
	return decode[models.Item](resp, err, "update item")
}

func (h *httpServerAdapter) DeleteItem(ctx context.Context, id string) error {
	resp, err := h.request(ctx).Delete("/api/items/" + url.PathEscape(id))
	_, err = decode[json.RawMessage](resp, err, "delete item")
	return err
}

func (h *httpServerAdapter) ListUserItems(ctx context.Context, filter models.ItemFilter) ([]models.Item, error) {
	resp, err := h.get(ctx, "/api/user/items", filterQuery(filter))
	return decode[[]models.Item](resp, err, "list user items")
}

func (h *httpServerAdapter) GetVersion(ctx context.Context) (models.BuildInfo, error) {
	resp, err := h.get(ctx, "/api/version", nil)
	return decode[models.BuildInfo](resp, err, "get version")
}

// request starts a request carrying the bearer token, if one is held.
func (h *httpServerAdapter) request(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

// get performs an idempotent GET under the read retry policy. Transport
// failures and gateway errors are retried; any other response is final.
func (h *httpServerAdapter) get(ctx context.Context, path string, query url.Values) (*resty.Response, error) {
	return retry.Do(ctx, h.reads, func(ctx context.Context) (*resty.Response, error) {
		resp, err := h.request(ctx).SetQueryParamsFromValues(query).Get(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrTransport, err)
		}
		if err = mapHTTPError(resp); err != nil {
			return nil, err
		}
		return resp, nil
	})
}

func retryableRead(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrTransport) {
		return true
	}
	var respErr *ResponseError
	return errors.As(err, &respErr) && respErr.Retryable()
}

func filterQuery(filter models.ItemFilter) url.Values {
	query := url.Values{}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	if filter.Status != "" {
		query.Set("status", string(filter.Status))
	}
	if filter.Search != "" {
		query.Set("q", filter.Search)
	}
	return query
}

// decode checks the outcome of a request and unwraps the envelope's data
// into T. op names the operation in wrapped errors.
func decode[T any](resp *resty.Response, err error, op string) (T, error) {
	var zero T
	if err != nil {
		if errors.Is(err, ErrTransport) {
			return zero, fmt.Errorf("%s: %w", op, err)
		}
		var respErr *ResponseError
		if errors.As(err, &respErr) {
			return zero, err
		}
		return zero, fmt.Errorf("%s request: %w: %w", op, ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return zero, err
	}

	var env envelope
	if err = json.Unmarshal(resp.Body(), &env); err != nil {
		return zero, fmt.Errorf("%s: %w: %w", op, ErrUnexpectedResponse, err)
	}
	if !env.Success {
		return zero, fmt.Errorf("%s: %w: unsuccessful envelope", op, ErrUnexpectedResponse)
	}

	var data T
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return data, nil
	}
	if err = json.Unmarshal(env.Data, &data); err != nil {
		return zero, fmt.Errorf("decode %s response: %w", op, err)
	}
	return data, nil
}

// mapHTTPError returns nil for 2xx responses and a [*ResponseError]
// otherwise, filled from the error envelope when the body carries one.
func mapHTTPError(resp *resty.Response) error {
	status := resp.StatusCode()
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return nil
	}

	respErr := &ResponseError{Status: status}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err == nil && env.Error != nil {
		respErr.Code = env.Error.Code
		respErr.Message = env.Error.Message
		respErr.Fields = env.Error.Errors
	}
	if respErr.Message == "" {
		respErr.Message = strings.TrimSpace(string(resp.Body()))
	}
	if respErr.Message == "" {
		respErr.Message = http.StatusText(status)
	}

	return respErr
}
