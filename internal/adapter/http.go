package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/vrudenko/calendar-keeper/internal/logger"
	"github.com/vrudenko/calendar-keeper/internal/utils"
	"github.com/vrudenko/calendar-keeper/models"
)

// HTTPClientConfig carries the settings for the REST implementation of
// [ServerAdapter].
type HTTPClientConfig struct {
	// BaseURL is the server address, with or without a scheme
	// (e.g. "localhost:8080" or "https://calendar.example.com").
	BaseURL string

	// Timeout bounds every request issued by the adapter.
	Timeout time.Duration
}

type httpServerAdapter struct {
	client *resty.Client

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from cfg and
// configures the underlying resty client with the resolved base URL and
// request timeout.
//
// Returns an error if cfg.BaseURL is empty or cannot be parsed as a valid URL.
func NewHTTPServerAdapter(cfg HTTPClientConfig, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout)

	return &httpServerAdapter{client: client, logger: logger}, nil
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

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed)
// for use in the Authorization header of all subsequent authenticated
// requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter]. It returns the bearer token currently
// held by the adapter, or an empty string if none has been set.
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// authRequest returns a request primed with the stored bearer token.
func (h *httpServerAdapter) authRequest(ctx context.Context) *resty.Request {
	return h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+h.Token())
}

// Register implements [ServerAdapter]. It POSTs the registration form to
// POST /api/auth/register. The server does not issue a token on
// registration; callers log in afterwards.
func (h *httpServerAdapter) Register(ctx context.Context, request models.RegisterRequest) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(request).
		Post("/api/auth/register")
	if err != nil {
		return fmt.Errorf("register request: %w", err)
	}

	return mapHTTPError(resp)
}

// Login implements [ServerAdapter]. It POSTs the credentials to
// POST /api/auth/login. On success the bearer token is extracted from the
// Authorization response header and stored via SetToken, and the public user
// profile from the response body is returned.
func (h *httpServerAdapter) Login(ctx context.Context, credentials models.Credentials) (models.UserProfile, error) {
	var loginResponse models.LoginResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(credentials).
		SetResult(&loginResponse).
		Post("/api/auth/login")
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserProfile{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("login parse bearer token: %w", err)
	}
	h.SetToken(token)

	if loginResponse.User == nil {
		return models.UserProfile{}, fmt.Errorf("login response carries no user")
	}

	return *loginResponse.User, nil
}

// CreateEvent implements [ServerAdapter].
func (h *httpServerAdapter) CreateEvent(ctx context.Context, event models.Event) (int64, error) {
	var createResponse models.CreateEventResponse

	resp, err := h.authRequest(ctx).
		SetBody(event).
		SetResult(&createResponse).
		Post("/api/events")
	if err != nil {
		return 0, fmt.Errorf("create event request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return 0, err
	}

	return createResponse.EventID, nil
}

// GetUserEvents implements [ServerAdapter].
func (h *httpServerAdapter) GetUserEvents(ctx context.Context, userID int64) ([]models.Event, error) {
	var eventsResponse models.EventsResponse

	resp, err := h.authRequest(ctx).
		SetResult(&eventsResponse).
		Get("/api/events/" + strconv.FormatInt(userID, 10))
	if err != nil {
		return nil, fmt.Errorf("list events request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return eventsResponse.Events, nil
}

// GetUserEventsByDateRange implements [ServerAdapter]. Boundaries are sent
// as RFC 3339 timestamps.
func (h *httpServerAdapter) GetUserEventsByDateRange(ctx context.Context, userID int64, dateRange models.DateRange) ([]models.Event, error) {
	var eventsResponse models.EventsResponse

	resp, err := h.authRequest(ctx).
		SetQueryParams(map[string]string{
			"start": dateRange.Start.Format(time.RFC3339),
			"end":   dateRange.End.Format(time.RFC3339),
		}).
		SetResult(&eventsResponse).
		Get("/api/events/" + strconv.FormatInt(userID, 10) + "/range")
	if err != nil {
		return nil, fmt.Errorf("list events by range request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return eventsResponse.Events, nil
}

// UpdateEvent implements [ServerAdapter]. The acting user is taken from the
// bearer token server-side, so the payload carries only the changed fields.
func (h *httpServerAdapter) UpdateEvent(ctx context.Context, eventID int64, update models.EventUpdate) error {
	resp, err := h.authRequest(ctx).
		SetBody(update).
		Put("/api/events/" + strconv.FormatInt(eventID, 10))
	if err != nil {
		return fmt.Errorf("update event request: %w", err)
	}

	return mapHTTPError(resp)
}

// DeleteEvent implements [ServerAdapter].
func (h *httpServerAdapter) DeleteEvent(ctx context.Context, eventID int64) error {
	resp, err := h.authRequest(ctx).
		Delete("/api/events/" + strconv.FormatInt(eventID, 10))
	if err != nil {
		return fmt.Errorf("delete event request: %w", err)
	}

	return mapHTTPError(resp)
}

// CreateEventSummary implements [ServerAdapter].
func (h *httpServerAdapter) CreateEventSummary(ctx context.Context, eventID int64, summaryText string) error {
	resp, err := h.authRequest(ctx).
		SetBody(models.SummaryRequest{SummaryText: summaryText}).
		Post("/api/events/" + strconv.FormatInt(eventID, 10) + "/summary")
	if err != nil {
		return fmt.Errorf("create summary request: %w", err)
	}

	return mapHTTPError(resp)
}
