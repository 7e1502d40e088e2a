// Copyright 2026 ClimaBill Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	chi "github.com/go-chi/chi/v5"

	"github.com/climabill/climabill/internal/authorization"
	"github.com/climabill/climabill/internal/gateway"
	"github.com/climabill/climabill/internal/logging"
	"github.com/climabill/climabill/internal/monitoring"
	"github.com/climabill/climabill/internal/storage"
	"github.com/climabill/climabill/internal/tracing"
	"github.com/climabill/climabill/internal/types"
	"github.com/climabill/climabill/pkg/audit"
	"github.com/climabill/climabill/pkg/authentication"
	"github.com/climabill/climabill/pkg/ratelimit"
	"github.com/climabill/climabill/pkg/validation"
)

// knownCollections maps each exposed collection to the resource its
// permissions are checked against. Anything else is a 404.
var knownCollections = map[string]authorization.Resource{
	"companies":    authorization.ResourceCompanies,
	"emissions":    authorization.ResourceEmissions,
	"suppliers":    authorization.ResourceSuppliers,
	"marketplace":  authorization.ResourceMarketplace,
	"supply_chain": authorization.ResourceSupplyChain,
	"compliance":   authorization.ResourceCompliance,
	"certificates": authorization.ResourceCompliance,
}

const defaultPageSize = 50

// RecordsAPI is the HTTP surface of the data gateway: tenant-scoped CRUD
// and aggregation over the business collections.
type RecordsAPI struct {
	gateway    gateway.GatewayInterface
	authorizer authorization.AuthorizerInterface
	validator  *validation.Validator
	recorder   audit.RecorderInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewRecordsAPI(gw gateway.GatewayInterface, authorizer authorization.AuthorizerInterface, validator *validation.Validator, recorder audit.RecorderInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *RecordsAPI {
	a := new(RecordsAPI)

	a.gateway = gw
	a.authorizer = authorizer
	a.validator = validator
	a.recorder = recorder

	a.logger = logger
	a.tracer = tracer
	a.monitor = monitor

	return a
}

func (a *RecordsAPI) RegisterEndpoints(mux *chi.Mux) {
	mux.Route("/api/records/{collection}", func(r chi.Router) {
		r.Get("/", a.handleList)
		r.Post("/", a.handleCreate)
		r.Put("/", a.handleUpdate)
		r.Delete("/", a.handleDelete)
		r.Get("/count", a.handleCount)
		r.Post("/aggregate", a.handleAggregate)
	})
}

// scope authorizes the request and opens the tenant-confined gateway view.
// A nil return means the response has already been written.
func (a *RecordsAPI) scope(w http.ResponseWriter, r *http.Request, action authorization.Action) (gateway.ScopeInterface, string) {
	tc, ok := authentication.GetTenantContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return nil, ""
	}

	collection := chi.URLParam(r, "collection")
	resource, known := knownCollections[collection]
	if !known {
		writeError(w, http.StatusNotFound, "unknown collection")
		return nil, ""
	}

	if err := a.authorizer.RequireRole(tc.Role(), resource, action); err != nil {
		a.logger.Security().AuthzFailure(tc.UserID(), collection+":"+string(action))
		a.recorder.Record(r.Context(), types.EventPermissionDenied, audit.SeverityWarning,
			audit.RequestMeta{
				ClientIP: ratelimit.ClientIP(r),
				Path:     r.URL.Path,
				Method:   r.Method,
				TenantID: tc.TenantID(),
				UserID:   tc.UserID(),
			},
			map[string]interface{}{"collection": collection, "action": string(action)},
		)
		writeError(w, http.StatusForbidden, "permission denied")
		return nil, ""
	}

	scope, err := a.gateway.Scope(tc)
	if err != nil {
		a.logger.Errorf("failed to open gateway scope: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return nil, ""
	}

	return scope, collection
}

// reservedQueryParams never become filter fields.
var reservedQueryParams = map[string]bool{"limit": true, "skip": true, "sort": true}

func (a *RecordsAPI) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "web.RecordsAPI.handleList")
	defer span.End()

	scope, collection := a.scope(w, r, authorization.ActionRead)
	if scope == nil {
		return
	}

	filter := make(map[string]interface{})
	for key, values := range r.URL.Query() {
		if reservedQueryParams[key] || len(values) == 0 {
			continue
		}
		filter[key] = values[0]
	}

	opts := &gateway.FindOptions{Limit: defaultPageSize}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil && n > 0 {
			opts.Limit = n
		}
	}
	if v := r.URL.Query().Get("skip"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			opts.Skip = n
		}
	}
	for _, field := range strings.Split(r.URL.Query().Get("sort"), ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		descending := strings.HasPrefix(field, "-")
		opts.Sort = append(opts.Sort, gateway.SortField{
			Field:      strings.TrimPrefix(field, "-"),
			Descending: descending,
		})
	}

	docs, err := scope.FindMany(ctx, collection, filter, opts)
	if err != nil {
		a.gatewayError(w, err)
		return
	}
	if docs == nil {
		docs = []*types.Document{}
	}

	writeJSON(w, http.StatusOK, docs)
}

func (a *RecordsAPI) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "web.RecordsAPI.handleCreate")
	defer span.End()

	scope, collection := a.scope(w, r, authorization.ActionWrite)
	if scope == nil {
		return
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sanitized, err := a.sanitize(payload)
	if err != nil {
		a.rejectSuspicious(w, r, collection, err)
		return
	}

	doc, err := scope.InsertOne(ctx, collection, sanitized)
	if err != nil {
		a.gatewayError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, doc)
}

type updateRequest struct {
	Filter map[string]interface{} `json:"filter"`
	Update map[string]interface{} `json:"update"`
	Many   bool                   `json:"many"`
}

func (a *RecordsAPI) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "web.RecordsAPI.handleUpdate")
	defer span.End()

	scope, collection := a.scope(w, r, authorization.ActionWrite)
	if scope == nil {
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Update) == 0 {
		writeError(w, http.StatusBadRequest, "empty update")
		return
	}

	sanitized, err := a.sanitize(req.Update)
	if err != nil {
		a.rejectSuspicious(w, r, collection, err)
		return
	}

	var affected int64
	if req.Many {
		affected, err = scope.UpdateMany(ctx, collection, req.Filter, sanitized)
	} else {
		affected, err = scope.UpdateOne(ctx, collection, req.Filter, sanitized)
	}
	if err != nil {
		a.gatewayError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"updated": affected})
}

type deleteRequest struct {
	Filter map[string]interface{} `json:"filter"`
	Many   bool                   `json:"many"`
}

func (a *RecordsAPI) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "web.RecordsAPI.handleDelete")
	defer span.End()

	scope, collection := a.scope(w, r, authorization.ActionDelete)
	if scope == nil {
		return
	}

	var req deleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var (
		affected int64
		err      error
	)
	if req.Many {
		affected, err = scope.DeleteMany(ctx, collection, req.Filter)
	} else {
		affected, err = scope.DeleteOne(ctx, collection, req.Filter)
	}
	if err != nil {
		a.gatewayError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"deleted": affected})
}

func (a *RecordsAPI) handleCount(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "web.RecordsAPI.handleCount")
	defer span.End()

	scope, collection := a.scope(w, r, authorization.ActionRead)
	if scope == nil {
		return
	}

	filter := make(map[string]interface{})
	for key, values := range r.URL.Query() {
		if reservedQueryParams[key] || len(values) == 0 {
			continue
		}
		filter[key] = values[0]
	}

	count, err := scope.Count(ctx, collection, filter)
	if err != nil {
		a.gatewayError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"count": count})
}

type aggregateRequest struct {
	Pipeline []pipelineStage `json:"pipeline"`
}

type pipelineStage struct {
	Match   map[string]interface{} `json:"match,omitempty"`
	Group   *groupSpec             `json:"group,omitempty"`
	Project []string               `json:"project,omitempty"`
	Sort    *sortSpec              `json:"sort,omitempty"`
	Limit   *int                   `json:"limit,omitempty"`
}

type groupSpec struct {
	By           string                 `json:"by"`
	Accumulators map[string]accumulator `json:"accumulators"`
}

type accumulator struct {
	Op    string `json:"op"`
	Field string `json:"field"`
}

type sortSpec struct {
	Field      string `json:"field"`
	Descending bool   `json:"descending"`
}

func (a *RecordsAPI) handleAggregate(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "web.RecordsAPI.handleAggregate")
	defer span.End()

	scope, collection := a.scope(w, r, authorization.ActionRead)
	if scope == nil {
		return
	}

	var req aggregateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	stages := make([]gateway.Stage, 0, len(req.Pipeline))
	for _, spec := range req.Pipeline {
		switch {
		case spec.Match != nil:
			stages = append(stages, gateway.Match(spec.Match))
		case spec.Group != nil:
			accs := make(map[string]gateway.Accumulator, len(spec.Group.Accumulators))
			for name, acc := range spec.Group.Accumulators {
				accs[name] = gateway.Accumulator{Op: acc.Op, Field: acc.Field}
			}
			stages = append(stages, gateway.Group(spec.Group.By, accs))
		case spec.Project != nil:
			stages = append(stages, gateway.Project(spec.Project...))
		case spec.Sort != nil:
			stages = append(stages, gateway.Sort(spec.Sort.Field, spec.Sort.Descending))
		case spec.Limit != nil:
			stages = append(stages, gateway.Limit(*spec.Limit))
		default:
			writeError(w, http.StatusBadRequest, "unknown pipeline stage")
			return
		}
	}

	rows, err := scope.Aggregate(ctx, collection, stages)
	if err != nil {
		if errors.Is(err, gateway.ErrUnknownAccumulator) {
			writeError(w, http.StatusBadRequest, "unknown accumulator")
			return
		}
		a.gatewayError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rows)
}

// sanitize walks a payload and screens every string through the validator,
// storing the escaped form.
func (a *RecordsAPI) sanitize(value map[string]interface{}) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(value))
	for k, v := range value {
		clean, err := a.sanitizeValue(v)
		if err != nil {
			return nil, err
		}
		out[k] = clean
	}
	return out, nil
}

func (a *RecordsAPI) sanitizeValue(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case string:
		return a.validator.String(v)
	case map[string]interface{}:
		return a.sanitize(v)
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			clean, err := a.sanitizeValue(item)
			if err != nil {
				return nil, err
			}
			out[i] = clean
		}
		return out, nil
	default:
		return v, nil
	}
}

func (a *RecordsAPI) rejectSuspicious(w http.ResponseWriter, r *http.Request, collection string, err error) {
	if errors.Is(err, validation.ErrSuspiciousInput) || errors.Is(err, validation.ErrStringTooLong) {
		meta := audit.RequestMeta{
			ClientIP:  ratelimit.ClientIP(r),
			UserAgent: r.UserAgent(),
			Path:      r.URL.Path,
			Method:    r.Method,
		}
		if tc, ok := authentication.GetTenantContext(r.Context()); ok {
			meta.TenantID = tc.TenantID()
			meta.UserID = tc.UserID()
		}
		a.recorder.Record(r.Context(), types.EventSuspiciousInput, audit.SeverityError, meta,
			map[string]interface{}{"collection": collection})
	}

	// Deliberately vague: the offending value is never echoed back.
	writeError(w, http.StatusBadRequest, "invalid input")
}

func (a *RecordsAPI) gatewayError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, gateway.ErrInvalidCollection), errors.Is(err, gateway.ErrInvalidSortField):
		writeError(w, http.StatusBadRequest, "invalid query")
	default:
		a.logger.Errorf("gateway operation failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
