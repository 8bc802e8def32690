// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/loopp-client/internal/config"
	"github.com/MKhiriev/loopp-client/internal/logger"
	"github.com/MKhiriev/loopp-client/internal/metrics"
	"github.com/MKhiriev/loopp-client/internal/utils"
	"github.com/MKhiriev/loopp-client/models"
)

// newTestAdapter creates an httpServerAdapter pointed at the test server.
func newTestAdapter(t *testing.T, serverURL string, token string) *httpServerAdapter {
	t.Helper()
	cfg := config.ClientAdapter{BaseURL: serverURL, RequestTimeout: 2 * time.Second}

	a, err := NewHTTPServerAdapter(cfg, StaticToken(token), nil, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

func newBackend(t *testing.T, setup func(r chi.Router)) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	setup(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ── SignUp / Login ──────────────────────────────────────────────────────────

func TestSignUp_Success(t *testing.T) {
	srv := newBackend(t, func(r chi.Router) {
		r.Post("/users/sign-up", func(w http.ResponseWriter, r *http.Request) {
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "ada@loopp.dev", body["email"])
			assert.Equal(t, "project-owner", body["userRole"])
			assert.Empty(t, r.Header.Get("Authorization"))

			writeJSON(w, http.StatusCreated, map[string]any{
				"token": "tok-1",
				"user":  map[string]any{"_id": "u1", "firstName": "Ada", "userRole": "project-owner"},
			})
		})
	})

	a := newTestAdapter(t, srv.URL, "")
	got, err := a.SignUp(context.Background(), models.SignUpRequest{
		FirstName: "Ada", LastName: "L", Email: "ada@loopp.dev", Role: models.RoleProjectOwner, Password: "secret1",
	})

	require.NoError(t, err)
	assert.Equal(t, "tok-1", got.Token)
	assert.Equal(t, "u1", got.User.ID)
	assert.Equal(t, models.RoleProjectOwner, got.User.Role)
}

func TestSignUp_BackendMessagePassedThrough(t *testing.T) {
	srv := newBackend(t, func(r chi.Router) {
		r.Post("/users/sign-up", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusConflict, map[string]string{"message": "Email already in use"})
		})
	})

	a := newTestAdapter(t, srv.URL, "")
	_, err := a.SignUp(context.Background(), models.SignUpRequest{Email: "ada@loopp.dev"})

	require.Error(t, err)
	assert.Equal(t, "Email already in use", err.Error())
	assert.ErrorIs(t, err, ErrConflict)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
}

func TestSignUp_FallbackMessage(t *testing.T) {
	srv := newBackend(t, func(r chi.Router) {
		r.Post("/users/sign-up", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"status": "nope"})
		})
	})

	a := newTestAdapter(t, srv.URL, "")
	_, err := a.SignUp(context.Background(), models.SignUpRequest{})

	require.Error(t, err)
	assert.Equal(t, MsgSignUpFailed, err.Error())
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestLogin_Success(t *testing.T) {
	srv := newBackend(t, func(r chi.Router) {
		r.Post("/users/sign-in", func(w http.ResponseWriter, r *http.Request) {
			var body models.LoginRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "pm@loopp.dev", body.Email)

			writeJSON(w, http.StatusOK, map[string]any{
				"token": "tok-pm",
				"user":  map[string]any{"id": "u2", "userRole": "project-manager"},
			})
		})
	})

	a := newTestAdapter(t, srv.URL, "")
	got, err := a.Login(context.Background(), models.LoginRequest{Email: "pm@loopp.dev", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, "tok-pm", got.Token)
	assert.Equal(t, models.RoleProjectManager, got.User.Role)
}

func TestLogin_Unauthorized(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"message field", `{"message":"Invalid credentials"}`, "Invalid credentials"},
		{"error field", `{"error":"User not found"}`, "User not found"},
		{"plain text body", `nope`, MsgLoginFailed},
		{"empty body", ``, MsgLoginFailed},
		{"non-string message", `{"message":{"code":1}}`, MsgLoginFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newBackend(t, func(r chi.Router) {
				r.Post("/users/sign-in", func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusUnauthorized)
					_, _ = io.WriteString(w, tt.body)
				})
			})

			a := newTestAdapter(t, srv.URL, "")
			_, err := a.Login(context.Background(), models.LoginRequest{Email: "x@y.z", Password: "pw"})

			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.ErrorIs(t, err, ErrUnauthorized)
		})
	}
}

// ── Users ───────────────────────────────────────────────────────────────────

func TestGetCurrentUser_NoTokenSendsNothing(t *testing.T) {
	var calls atomic.Int32
	srv := newBackend(t, func(r chi.Router) {
		r.Get("/users/get-user-info", func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			writeJSON(w, http.StatusOK, map[string]any{"id": "u1"})
		})
	})

	a := newTestAdapter(t, srv.URL, "")
	user, ok, err := a.GetCurrentUser(context.Background())

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, models.User{}, user)
	assert.Zero(t, calls.Load())
}

func TestGetCurrentUser_Shapes(t *testing.T) {
	tests := []struct {
		name string
		body any
	}{
		{"bare record", map[string]any{"_id": "u1", "firstName": "Ada", "userRole": "project-engineer"}},
		{"wrapped record", map[string]any{"user": map[string]any{"id": "u1", "firstName": "Ada", "userRole": "project-engineer"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newBackend(t, func(r chi.Router) {
				r.Get("/users/get-user-info", func(w http.ResponseWriter, r *http.Request) {
					token, err := utils.ParseBearerToken(r.Header.Get("Authorization"))
					require.NoError(t, err)
					assert.Equal(t, "tok", token)
					writeJSON(w, http.StatusOK, tt.body)
				})
			})

			a := newTestAdapter(t, srv.URL, "tok")
			user, ok, err := a.GetCurrentUser(context.Background())

			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "u1", user.ID)
			assert.Equal(t, "Ada", user.FirstName)
			assert.Equal(t, models.RoleProjectEngineer, user.Role)
		})
	}
}

func TestGetCurrentUser_TransportErrorPropagates(t *testing.T) {
	srv := newBackend(t, func(r chi.Router) {})
	url := srv.URL
	srv.Close()

	a := newTestAdapter(t, url, "tok")
	_, ok, err := a.GetCurrentUser(context.Background())

	require.Error(t, err)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrTransport)
	assert.Equal(t, MsgUnexpected, err.Error())
}

func TestGetUsersByRole(t *testing.T) {
	srv := newBackend(t, func(r chi.Router) {
		r.Get("/users/get-user-by-role/{role}", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "project-engineer", chi.URLParam(r, "role"))
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			writeJSON(w, http.StatusOK, map[string]any{"users": []map[string]any{
				{"_id": "e1", "firstName": "Grace"},
				{"_id": "e2", "firstName": "Linus"},
			}})
		})
	})

	a := newTestAdapter(t, srv.URL, "tok")
	users, err := a.GetUsersByRole(context.Background(), models.RoleProjectEngineer)

	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "e1", users[0].ID)
	assert.Equal(t, "Linus", users[1].FirstName)
}

func TestGetUsersByRole_NoToken(t *testing.T) {
	a := newTestAdapter(t, "http://127.0.0.1:1", "")
	users, err := a.GetUsersByRole(context.Background(), models.RoleProjectEngineer)

	require.NoError(t, err)
	assert.Empty(t, users)
}

// ── Services ────────────────────────────────────────────────────────────────

func TestListServices(t *testing.T) {
	srv := newBackend(t, func(r chi.Router) {
		r.Get("/services/get-services", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "2", r.URL.Query().Get("page"))
			assert.Equal(t, "12", r.URL.Query().Get("limit"))
			writeJSON(w, http.StatusOK, map[string]any{
				"services":      []map[string]any{{"_id": "s1", "name": "Vision", "category": "Computer Vision", "verified": true}},
				"servicesCount": 13,
			})
		})
	})

	a := newTestAdapter(t, srv.URL, "")
	page, err := a.ListServices(context.Background(), models.ListServicesParams{Page: 2, Limit: 12})

	require.NoError(t, err)
	assert.Equal(t, 13, page.ServicesCount)
	require.Len(t, page.Services, 1)
	assert.Equal(t, "s1", page.Services[0].ID)
	assert.True(t, page.Services[0].Verified)
	assert.False(t, page.Services[0].Pro)
}

func TestListServices_FallbackMessage(t *testing.T) {
	srv := newBackend(t, func(r chi.Router) {
		r.Get("/services/get-services", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
	})

	a := newTestAdapter(t, srv.URL, "")
	_, err := a.ListServices(context.Background(), models.ListServicesParams{Page: 1, Limit: 12})

	require.Error(t, err)
	assert.Equal(t, MsgListingFailed, err.Error())
	assert.ErrorIs(t, err, ErrInternalServerError)
}

func TestListServices_MalformedBody(t *testing.T) {
	srv := newBackend(t, func(r chi.Router) {
		r.Get("/services/get-services", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"services": [`)
		})
	})

	a := newTestAdapter(t, srv.URL, "")
	_, err := a.ListServices(context.Background(), models.ListServicesParams{Page: 1, Limit: 12})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.Equal(t, MsgUnexpected, err.Error())
}

func TestListServices_Timeout(t *testing.T) {
	srv := newBackend(t, func(r chi.Router) {
		r.Get("/services/get-services", func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-time.After(time.Second):
			case <-r.Context().Done():
			}
		})
	})

	cfg := config.ClientAdapter{BaseURL: srv.URL, RequestTimeout: 50 * time.Millisecond}
	a, err := NewHTTPServerAdapter(cfg, nil, nil, logger.Nop())
	require.NoError(t, err)

	_, err = a.ListServices(context.Background(), models.ListServicesParams{Page: 1, Limit: 12})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.Equal(t, MsgUnexpected, err.Error())
}

func TestSearchServices(t *testing.T) {
	srv := newBackend(t, func(r chi.Router) {
		r.Get("/services/find", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "vision ai", r.URL.Query().Get("term"))
			writeJSON(w, http.StatusOK, map[string]any{"results": []map[string]any{{"id": "s1"}, {"id": "s2"}}})
		})
	})

	cfg := config.ClientAdapter{BaseURL: srv.URL, RequestTimeout: time.Second, SearchPath: "/services/find"}
	a, err := NewHTTPServerAdapter(cfg, nil, nil, logger.Nop())
	require.NoError(t, err)

	got, err := a.SearchServices(context.Background(), "  vision ai ")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "s2", got[1].ID)
}

func TestSearchServices_DefaultPathAndEmptyResults(t *testing.T) {
	srv := newBackend(t, func(r chi.Router) {
		r.Get(config.DefaultSearchPath, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{})
		})
	})

	a := newTestAdapter(t, srv.URL, "")
	got, err := a.SearchServices(context.Background(), "nothing")

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAddService_Multipart(t *testing.T) {
	srv := newBackend(t, func(r chi.Router) {
		r.Post("/services/add-service", func(w http.ResponseWriter, r *http.Request) {
			assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"))
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			require.NoError(t, r.ParseMultipartForm(1<<20))

			assert.Equal(t, "Vision API", r.FormValue("name"))
			assert.Equal(t, "Computer Vision", r.FormValue("category"))
			assert.Equal(t, "Detects things", r.FormValue("description"))
			assert.Equal(t, "true", r.FormValue("verified"))
			assert.Equal(t, "false", r.FormValue("pro"))

			f, hdr, err := r.FormFile("file")
			require.NoError(t, err)
			defer f.Close()
			data, _ := io.ReadAll(f)
			assert.Equal(t, "cover.png", hdr.Filename)
			assert.Equal(t, "png-bytes", string(data))

			writeJSON(w, http.StatusCreated, map[string]any{
				"service": map[string]any{"_id": "s9", "name": "Vision API"},
				"message": "Service added",
			})
		})
	})

	a := newTestAdapter(t, srv.URL, "tok")
	got, err := a.AddService(context.Background(), models.ServicePayload{
		Name:        "Vision API",
		Category:    "Computer Vision",
		Description: "Detects things",
		Verified:    true,
		File:        &models.FileUpload{Name: "cover.png", Reader: strings.NewReader("png-bytes")},
	})

	require.NoError(t, err)
	assert.Equal(t, "s9", got.Service.ID)
	assert.Equal(t, "Service added", got.Message)
}

func TestEditService_WithoutFile(t *testing.T) {
	srv := newBackend(t, func(r chi.Router) {
		r.Post("/services/edit-service/{id}", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "s9", chi.URLParam(r, "id"))
			require.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Equal(t, "true", r.FormValue("pro"))
			_, _, err := r.FormFile("file")
			assert.ErrorIs(t, err, http.ErrMissingFile)

			writeJSON(w, http.StatusOK, map[string]any{"service": map[string]any{"id": "s9", "pro": true}, "message": "Updated"})
		})
	})

	a := newTestAdapter(t, srv.URL, "tok")
	got, err := a.EditService(context.Background(), "s9", models.ServicePayload{Name: "V", Category: "Healthcare", Pro: true})

	require.NoError(t, err)
	assert.True(t, got.Service.Pro)
	assert.Equal(t, "Updated", got.Message)
}

func TestDeleteService(t *testing.T) {
	srv := newBackend(t, func(r chi.Router) {
		r.Delete("/services/delete-service/{id}", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "s1", chi.URLParam(r, "id"))
			writeJSON(w, http.StatusOK, map[string]string{"message": "Service deleted"})
		})
	})

	a := newTestAdapter(t, srv.URL, "tok")
	got, err := a.DeleteService(context.Background(), "s1")

	require.NoError(t, err)
	assert.Equal(t, "Service deleted", got.Message)
}

func TestDeleteService_Forbidden(t *testing.T) {
	srv := newBackend(t, func(r chi.Router) {
		r.Delete("/services/delete-service/{id}", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusForbidden, map[string]string{"message": "Only project managers can delete services"})
		})
	})

	a := newTestAdapter(t, srv.URL, "tok")
	_, err := a.DeleteService(context.Background(), "s1")

	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, "Only project managers can delete services", Message(err))
}

// ── Cross-cutting ───────────────────────────────────────────────────────────

func TestRequestID_Forwarded(t *testing.T) {
	srv := newBackend(t, func(r chi.Router) {
		r.Get("/services/get-services", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "req-42", r.Header.Get("X-Request-ID"))
			writeJSON(w, http.StatusOK, map[string]any{"services": []any{}, "servicesCount": 0})
		})
	})

	a := newTestAdapter(t, srv.URL, "")
	_, err := a.ListServices(utils.WithRequestID(context.Background(), "req-42"), models.ListServicesParams{Page: 1, Limit: 1})
	require.NoError(t, err)
}

func TestMetrics_Recorded(t *testing.T) {
	srv := newBackend(t, func(r chi.Router) {
		r.Get("/services/get-services", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"services": []any{}, "servicesCount": 0})
		})
		r.Delete("/services/delete-service/{id}", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
	})

	m := metrics.New(prometheus.NewRegistry())
	a, err := NewHTTPServerAdapter(config.ClientAdapter{BaseURL: srv.URL, RequestTimeout: time.Second}, nil, m, logger.Nop())
	require.NoError(t, err)

	_, err = a.ListServices(context.Background(), models.ListServicesParams{Page: 1, Limit: 1})
	require.NoError(t, err)
	_, err = a.DeleteService(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues(opListServices, metrics.OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues(opDeleteService, metrics.OutcomeHTTPError)))
}

func TestUnexpectedStatus(t *testing.T) {
	srv := newBackend(t, func(r chi.Router) {
		r.Get("/services/get-services", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		})
	})

	a := newTestAdapter(t, srv.URL, "")
	_, err := a.ListServices(context.Background(), models.ListServicesParams{Page: 1, Limit: 1})

	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Equal(t, MsgListingFailed, err.Error())
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, MsgUnexpected, Message(errors.New("dial tcp: refused")))
	assert.Equal(t, "Nope", Message(&APIError{StatusCode: 400, Message: "Nope"}))
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "http://localhost:5000/api/v1/", want: "http://localhost:5000/api/v1"},
		{in: "localhost:5000", want: "http://localhost:5000"},
		{in: "  https://api.loopp.dev  ", want: "https://api.loopp.dev"},
		{in: "", wantErr: true},
		{in: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHTTPServerAdapter_InvalidURL(t *testing.T) {
	_, err := NewHTTPServerAdapter(config.ClientAdapter{}, nil, nil, nil)
	assert.Error(t, err)
}
