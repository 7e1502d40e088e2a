// Copyright 2026 ClimaBill Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"encoding/json"
	"errors"
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/climabill/climabill/internal/authorization"
	"github.com/climabill/climabill/internal/logging"
	"github.com/climabill/climabill/internal/monitoring"
	"github.com/climabill/climabill/internal/tracing"
	"github.com/climabill/climabill/internal/types"
	"github.com/climabill/climabill/pkg/audit"
	"github.com/climabill/climabill/pkg/authentication"
	"github.com/climabill/climabill/pkg/ratelimit"
	"github.com/climabill/climabill/pkg/validation"
)

// AuthAPI exposes signup, login, refresh, seat and API key management.
type AuthAPI struct {
	service    authentication.ServiceInterface
	authorizer authorization.AuthorizerInterface
	validator  *validation.Validator
	recorder   audit.RecorderInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewAuthAPI(service authentication.ServiceInterface, authorizer authorization.AuthorizerInterface, validator *validation.Validator, recorder audit.RecorderInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *AuthAPI {
	a := new(AuthAPI)

	a.service = service
	a.authorizer = authorizer
	a.validator = validator
	a.recorder = recorder

	a.logger = logger
	a.tracer = tracer
	a.monitor = monitor

	return a
}

func (a *AuthAPI) RegisterEndpoints(mux *chi.Mux) {
	mux.Post("/api/auth/register", a.handleRegister)
	mux.Post("/api/auth/login", a.handleLogin)
	mux.Post("/api/auth/refresh", a.handleRefresh)
	mux.Post("/api/auth/api-keys", a.handleCreateAPIKey)
	mux.Get("/api/auth/api-keys", a.handleListAPIKeys)
	mux.Post("/api/users", a.handleAddUser)
}

type registerRequest struct {
	TenantName   string `json:"tenant_name"`
	TenantDomain string `json:"tenant_domain"`
	Plan         string `json:"plan"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
}

func (a *AuthAPI) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "web.AuthAPI.handleRegister")
	defer span.End()

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	name, err := a.validator.String(req.TenantName)
	if err != nil || name == "" {
		writeError(w, http.StatusBadRequest, "invalid tenant name")
		return
	}
	domain, err := a.validator.String(req.TenantDomain)
	if err != nil || domain == "" {
		writeError(w, http.StatusBadRequest, "invalid tenant domain")
		return
	}
	email, err := a.validator.Email(req.Email)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid email address")
		return
	}
	if len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}
	firstName, err := a.validator.String(req.FirstName)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid first name")
		return
	}
	lastName, err := a.validator.String(req.LastName)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid last name")
		return
	}

	pair, err := a.service.Register(ctx, &authentication.RegisterRequest{
		TenantName:   name,
		TenantDomain: domain,
		Plan:         types.Plan(req.Plan),
		Email:        email,
		Password:     req.Password,
		FirstName:    firstName,
		LastName:     lastName,
	})
	if err != nil {
		if errors.Is(err, authentication.ErrDuplicateTenant) || errors.Is(err, authentication.ErrDuplicateUser) {
			writeError(w, http.StatusConflict, "already registered")
			return
		}
		a.logger.Errorf("registration failed: %v", err)
		writeError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	writeJSON(w, http.StatusCreated, pair)
}

type loginRequest struct {
	TenantDomain string `json:"tenant_domain"`
	Email        string `json:"email"`
	Password     string `json:"password"`
}

func (a *AuthAPI) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "web.AuthAPI.handleLogin")
	defer span.End()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	email, err := a.validator.Email(req.Email)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	pair, err := a.service.Login(ctx, req.TenantDomain, email, req.Password)
	if err != nil {
		if errors.Is(err, authentication.ErrInvalidCredentials) {
			a.recorder.Record(ctx, types.EventLoginFailure, audit.SeverityWarning, a.requestMeta(r),
				map[string]interface{}{"tenant_domain": req.TenantDomain})
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		a.logger.Errorf("login failed: %v", err)
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	a.recorder.Record(ctx, types.EventLoginSuccess, audit.SeverityInfo, a.requestMeta(r),
		map[string]interface{}{"tenant_domain": req.TenantDomain})
	writeJSON(w, http.StatusOK, pair)
}

func (a *AuthAPI) requestMeta(r *http.Request) audit.RequestMeta {
	return audit.RequestMeta{
		ClientIP:  ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
		Path:      r.URL.Path,
		Method:    r.Method,
	}
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (a *AuthAPI) handleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "web.AuthAPI.handleRefresh")
	defer span.End()

	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pair, err := a.service.Refresh(ctx, req.RefreshToken)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	writeJSON(w, http.StatusOK, pair)
}

type createAPIKeyRequest struct {
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

type createAPIKeyResponse struct {
	Key    string        `json:"key"`
	APIKey *types.APIKey `json:"api_key"`
}

func (a *AuthAPI) handleCreateAPIKey(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "web.AuthAPI.handleCreateAPIKey")
	defer span.End()

	tc, ok := authentication.GetTenantContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if err := a.authorizer.RequireRole(tc.Role(), authorization.ResourceUsers, authorization.ActionAdmin); err != nil {
		a.logger.Security().AuthzFailure(tc.UserID(), "api-keys:create")
		writeError(w, http.StatusForbidden, "permission denied")
		return
	}

	var req createAPIKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	name, err := a.validator.String(req.Name)
	if err != nil || name == "" {
		writeError(w, http.StatusBadRequest, "invalid key name")
		return
	}

	plaintext, key, err := a.service.CreateAPIKey(ctx, tc, name, req.Permissions)
	if err != nil {
		a.logger.Errorf("failed to create API key: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create API key")
		return
	}

	// The plaintext key appears in this response and nowhere else.
	writeJSON(w, http.StatusCreated, createAPIKeyResponse{Key: plaintext, APIKey: key})
}

func (a *AuthAPI) handleListAPIKeys(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "web.AuthAPI.handleListAPIKeys")
	defer span.End()

	tc, ok := authentication.GetTenantContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if err := a.authorizer.RequireRole(tc.Role(), authorization.ResourceUsers, authorization.ActionRead); err != nil {
		a.logger.Security().AuthzFailure(tc.UserID(), "api-keys:list")
		writeError(w, http.StatusForbidden, "permission denied")
		return
	}

	keys, err := a.service.ListAPIKeys(ctx, tc)
	if err != nil {
		a.logger.Errorf("failed to list API keys: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list API keys")
		return
	}
	if keys == nil {
		keys = []*types.APIKey{}
	}

	writeJSON(w, http.StatusOK, keys)
}

type addUserRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

func (a *AuthAPI) handleAddUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "web.AuthAPI.handleAddUser")
	defer span.End()

	tc, ok := authentication.GetTenantContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if err := a.authorizer.RequireRole(tc.Role(), authorization.ResourceUsers, authorization.ActionWrite); err != nil {
		a.logger.Security().AuthzFailure(tc.UserID(), "users:create")
		writeError(w, http.StatusForbidden, "permission denied")
		return
	}

	var req addUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	email, err := a.validator.Email(req.Email)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid email address")
		return
	}
	if len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	user, err := a.service.AddUser(ctx, tc, email, req.Password, req.FirstName, req.LastName, types.Role(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, authentication.ErrUserLimitReached):
			writeError(w, http.StatusForbidden, "tenant user limit reached")
		case errors.Is(err, authentication.ErrDuplicateUser):
			writeError(w, http.StatusConflict, "user already exists")
		default:
			a.logger.Errorf("failed to add user: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to add user")
		}
		return
	}

	writeJSON(w, http.StatusCreated, user)
}
