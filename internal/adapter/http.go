package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/loopp-client/internal/config"
	"github.com/MKhiriev/loopp-client/internal/logger"
	"github.com/MKhiriev/loopp-client/internal/metrics"
	"github.com/MKhiriev/loopp-client/internal/utils"
	"github.com/MKhiriev/loopp-client/models"
)

// Operation names used in logs and metrics.
const (
	opSignUp         = "sign_up"
	opLogin          = "login"
	opCurrentUser    = "get_current_user"
	opUsersByRole    = "get_users_by_role"
	opListServices   = "list_services"
	opSearchServices = "search_services"
	opAddService     = "add_service"
	opEditService    = "edit_service"
	opDeleteService  = "delete_service"
)

type httpServerAdapter struct {
	client     *utils.HTTPClient
	tokens     TokenSource
	searchPath string

	metrics *metrics.Metrics
	logger  *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from adapterCfg.BaseURL and
// configures the underlying HTTP client with the resolved base URL and
// request timeout. tokens is consulted on every request; m may be nil.
//
// Returns an error if adapterCfg.BaseURL is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, tokens TokenSource, m *metrics.Metrics, log *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter base url: %w", err)
	}

	searchPath := adapterCfg.SearchPath
	if searchPath == "" {
		searchPath = config.DefaultSearchPath
	}

	if tokens == nil {
		tokens = StaticToken("")
	}
	if log == nil {
		log = logger.Nop()
	}

	return &httpServerAdapter{
		client:     utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		tokens:     tokens,
		searchPath: searchPath,
		metrics:    m,
		logger:     log,
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

// SignUp implements [ServerAdapter].
func (h *httpServerAdapter) SignUp(ctx context.Context, req models.SignUpRequest) (models.AuthResponse, error) {
	var out models.AuthResponse

	err := h.do(ctx, opSignUp, MsgSignUpFailed,
		h.newRequest(ctx).SetBody(req), http.MethodPost, "/users/sign-up", &out)
	if err != nil {
		return models.AuthResponse{}, err
	}

	return out, nil
}

// Login implements [ServerAdapter].
func (h *httpServerAdapter) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	var out models.AuthResponse

	err := h.do(ctx, opLogin, MsgLoginFailed,
		h.newRequest(ctx).SetBody(req), http.MethodPost, "/users/sign-in", &out)
	if err != nil {
		return models.AuthResponse{}, err
	}

	return out, nil
}

// GetCurrentUser implements [ServerAdapter]. The backend answers either a
// bare user record or one wrapped as {"user": {...}}; both are accepted.
func (h *httpServerAdapter) GetCurrentUser(ctx context.Context) (models.User, bool, error) {
	req, ok := h.authedRequest(ctx)
	if !ok {
		return models.User{}, false, nil
	}

	var raw json.RawMessage
	if err := h.do(ctx, opCurrentUser, MsgUnexpected, req, http.MethodGet, "/users/get-user-info", &raw); err != nil {
		return models.User{}, false, err
	}

	var wrapped struct {
		User *models.User `json:"user"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.User != nil {
		return *wrapped.User, true, nil
	}

	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return models.User{}, false, transportError(fmt.Errorf("decode current user: %w", err))
	}

	return user, true, nil
}

// GetUsersByRole implements [ServerAdapter].
func (h *httpServerAdapter) GetUsersByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	req, ok := h.authedRequest(ctx)
	if !ok {
		return []models.User{}, nil
	}

	var out models.UsersResponse
	err := h.do(ctx, opUsersByRole, MsgUnexpected,
		req.SetPathParam("role", role.String()), http.MethodGet, "/users/get-user-by-role/{role}", &out)
	if err != nil {
		return nil, err
	}

	if out.Users == nil {
		out.Users = []models.User{}
	}
	return out.Users, nil
}

// ListServices implements [ServerAdapter].
func (h *httpServerAdapter) ListServices(ctx context.Context, params models.ListServicesParams) (models.ServicesPage, error) {
	var out models.ServicesPage

	req := h.newRequest(ctx).SetQueryParams(map[string]string{
		"page":  strconv.Itoa(params.Page),
		"limit": strconv.Itoa(params.Limit),
	})
	if err := h.do(ctx, opListServices, MsgListingFailed, req, http.MethodGet, "/services/get-services", &out); err != nil {
		return models.ServicesPage{}, err
	}

	if out.Services == nil {
		out.Services = []models.Service{}
	}
	return out, nil
}

// SearchServices implements [ServerAdapter].
func (h *httpServerAdapter) SearchServices(ctx context.Context, term string) ([]models.Service, error) {
	var out models.SearchResponse

	req := h.newRequest(ctx).SetQueryParam("term", strings.TrimSpace(term))
	if err := h.do(ctx, opSearchServices, MsgUnexpected, req, http.MethodGet, h.searchPath, &out); err != nil {
		return nil, err
	}

	if out.Results == nil {
		out.Results = []models.Service{}
	}
	return out.Results, nil
}

// AddService implements [ServerAdapter].
func (h *httpServerAdapter) AddService(ctx context.Context, payload models.ServicePayload) (models.ServiceResponse, error) {
	var out models.ServiceResponse

	if err := h.do(ctx, opAddService, MsgUnexpected,
		h.multipartRequest(ctx, payload), http.MethodPost, "/services/add-service", &out); err != nil {
		return models.ServiceResponse{}, err
	}

	return out, nil
}

// EditService implements [ServerAdapter].
func (h *httpServerAdapter) EditService(ctx context.Context, id string, payload models.ServicePayload) (models.ServiceResponse, error) {
	var out models.ServiceResponse

	req := h.multipartRequest(ctx, payload).SetPathParam("id", id)
	if err := h.do(ctx, opEditService, MsgUnexpected, req, http.MethodPost, "/services/edit-service/{id}", &out); err != nil {
		return models.ServiceResponse{}, err
	}

	return out, nil
}

// DeleteService implements [ServerAdapter].
func (h *httpServerAdapter) DeleteService(ctx context.Context, id string) (models.MessageResponse, error) {
	var out models.MessageResponse

	req := h.newRequest(ctx).SetPathParam("id", id)
	if err := h.do(ctx, opDeleteService, MsgUnexpected, req, http.MethodDelete, "/services/delete-service/{id}", &out); err != nil {
		return models.MessageResponse{}, err
	}

	return out, nil
}

// newRequest starts a request carrying the bearer token, if any, and the
// request id from ctx.
func (h *httpServerAdapter) newRequest(ctx context.Context) *resty.Request {
	req, _ := h.authedRequest(ctx)
	return req
}

// authedRequest is like newRequest but also reports whether a token was
// attached.
func (h *httpServerAdapter) authedRequest(ctx context.Context) (*resty.Request, bool) {
	req := h.client.R().SetContext(ctx)

	if id, ok := utils.GetRequestIDFromContext(ctx); ok {
		req.SetHeader("X-Request-ID", id)
	}

	token := strings.TrimSpace(h.tokens.Token(ctx))
	if token == "" {
		return req, false
	}

	req.SetHeader("Authorization", utils.BearerHeader(token))
	return req, true
}

// multipartRequest encodes payload as multipart/form-data. Booleans are
// sent as "true"/"false"; the file part is named "file".
func (h *httpServerAdapter) multipartRequest(ctx context.Context, payload models.ServicePayload) *resty.Request {
	req := h.newRequest(ctx).SetMultipartFormData(payload.FormFields())
	if payload.File != nil && payload.File.Reader != nil {
		req.SetFileReader("file", payload.File.Name, payload.File.Reader)
	}
	return req
}

// do executes req and decodes a 2xx body into out. Every failure is
// returned as an [*APIError].
func (h *httpServerAdapter) do(ctx context.Context, op, fallback string, req *resty.Request, method, path string, out any) error {
	log := h.logger.With().Str("func", "httpServerAdapter.do").Str("operation", op).Logger()
	start := time.Now()

	resp, err := req.Execute(method, path)
	took := time.Since(start)
	if err != nil {
		h.metrics.ObserveRequest(op, metrics.OutcomeTransport, took)
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
			err = fmt.Errorf("%w: %w", err, ctxErr)
		}
		log.Warn().Err(err).Str("method", method).Dur("took", took).Msg("request failed")
		return transportError(fmt.Errorf("%s request: %w", op, err))
	}

	if err = mapHTTPError(resp, fallback); err != nil {
		h.metrics.ObserveRequest(op, metrics.OutcomeHTTPError, took)
		log.Warn().
			Str("method", method).
			Str("path", resp.Request.URL).
			Int("status", resp.StatusCode()).
			Str("message", err.Error()).
			Msg("backend rejected request")
		return err
	}

	if out != nil && len(resp.Body()) > 0 {
		if err = json.Unmarshal(resp.Body(), out); err != nil {
			h.metrics.ObserveRequest(op, metrics.OutcomeTransport, took)
			log.Error().Err(err).Int("status", resp.StatusCode()).Msg("undecodable response body")
			return transportError(fmt.Errorf("decode %s response: %w", op, err))
		}
	}

	h.metrics.ObserveRequest(op, metrics.OutcomeSuccess, took)
	log.Debug().
		Str("method", method).
		Str("path", resp.Request.URL).
		Int("status", resp.StatusCode()).
		Dur("took", took).
		Msg("request completed")

	return nil
}
