package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/auth"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/metrics"
)

type stubAuthorizer struct {
	principal *auth.Principal
	err       error
	gotToken  string
}

func (s *stubAuthorizer) Authorize(_ context.Context, token string) (*auth.Principal, error) {
	s.gotToken = token
	return s.principal, s.err
}

func TestAuth(t *testing.T) {
	customer := &auth.Principal{UserID: uuid.New(), Role: domain.RoleCustomer}

	tests := []struct {
		name       string
		authorizer *stubAuthorizer
		roles      []domain.Role
		wantStatus int
	}{
		{name: "allowed role", authorizer: &stubAuthorizer{principal: customer}, roles: []domain.Role{domain.RoleCustomer}, wantStatus: http.StatusOK},
		{name: "any role", authorizer: &stubAuthorizer{principal: customer}, wantStatus: http.StatusOK},
		{name: "wrong role", authorizer: &stubAuthorizer{principal: customer}, roles: []domain.Role{domain.RoleAdmin}, wantStatus: http.StatusForbidden},
		{name: "unauthorized", authorizer: &stubAuthorizer{err: auth.ErrInvalidToken}, wantStatus: http.StatusUnauthorized},
		{name: "blocked", authorizer: &stubAuthorizer{err: auth.ErrAccountBlocked}, wantStatus: http.StatusForbidden},
		{name: "internal", authorizer: &stubAuthorizer{err: errors.New("db down")}, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen *auth.Principal
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = GetPrincipal(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer abc")
			rec := httptest.NewRecorder()

			Auth(tt.authorizer, logger.NewNop(), tt.roles...)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "Bearer abc", tt.authorizer.gotToken)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, customer, seen)
			} else {
				assert.Nil(t, seen)
			}
		})
	}
}

func TestGetPrincipal_Missing(t *testing.T) {
	_, ok := GetPrincipal(context.Background())
	assert.False(t, ok)
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg, "test")

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/slots/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}).Methods(http.MethodDelete)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodDelete, "/slots/"+uuid.NewString(), nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	require.Equal(t, 1, testutil.CollectAndCount(m.HTTPRequestsTotal))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodDelete, "/slots/{id}", "409")))
}
