package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kanda123-lab/querygen"
	"github.com/kanda123-lab/querygen/engine/models"
	"github.com/kanda123-lab/querygen/engine/translator"
	"github.com/kanda123-lab/querygen/engine/validator"
	"github.com/kanda123-lab/querygen/pkg/connstr"
	"github.com/kanda123-lab/querygen/pkg/logger"
	"github.com/kanda123-lab/querygen/storage"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	library        *querygen.Library
	defaultDialect string
	opts           []querygen.Option
	log            logger.LoggerI
}

// NewHandler serves generation for defaultDialect unless a request names
// another one. opts apply to every generator the handler creates.
func NewHandler(library *querygen.Library, defaultDialect string, log logger.LoggerI, opts ...querygen.Option) *Handler {
	if log == nil {
		log = logger.NewNop()
	}
	return &Handler{
		library:        library,
		defaultDialect: defaultDialect,
		opts:           opts,
		log:            logger.GetNamed(log, "api"),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/generate", h.Generate)
		r.Post("/generate/parameterized", h.GenerateParameterized)
		r.Post("/generate/all", h.GenerateAll)
		r.Post("/explain", h.Explain)
		r.Post("/explanation", h.Explanation)
		r.Post("/validate", h.Validate)
		r.Post("/connection-string", h.ConnectionString)

		r.Route("/queries", func(r chi.Router) {
			r.Post("/", h.SaveQuery)
			r.Get("/", h.ListQueries)
			r.Get("/{id}", h.GetQuery)
			r.Delete("/{id}", h.DeleteQuery)
			r.Get("/{id}/sql", h.RenderQuery)
		})
	})
}

// ============================================================================
// REQUESTS AND RESPONSES
// ============================================================================

type GenerateResponse struct {
	Dialect  string   `json:"dialect"`
	SQL      string   `json:"sql"`
	Args     []any    `json:"args,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

type GenerateAllResponse struct {
	Results []translator.Result `json:"results"`
}

type ExplanationResponse struct {
	Explanation string   `json:"explanation"`
	Warnings    []string `json:"warnings,omitempty"`
}

type ValidateRequest struct {
	SQL     string `json:"sql"`
	Dialect string `json:"dialect"`
}

type ConnectionStringRequest struct {
	Dialect string         `json:"dialect"`
	Params  connstr.Params `json:"params"`
}

type ConnectionStringResponse struct {
	ConnectionString string `json:"connectionString"`
}

type SaveQueryRequest struct {
	Name    string          `json:"name"`
	Dialect string          `json:"dialect,omitempty"`
	Query   json.RawMessage `json:"query"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// ============================================================================
// GENERATION
// ============================================================================

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	gen, q, ok := h.generatorFor(w, r)
	if !ok {
		return
	}
	sql, err := gen.GenerateSQL(q)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, GenerateResponse{Dialect: gen.Dialect(), SQL: sql, Warnings: gen.Warnings(q)})
}

func (h *Handler) GenerateParameterized(w http.ResponseWriter, r *http.Request) {
	gen, q, ok := h.generatorFor(w, r)
	if !ok {
		return
	}
	sql, args, err := gen.GenerateParameterized(q)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, GenerateResponse{Dialect: gen.Dialect(), SQL: sql, Args: args, Warnings: gen.Warnings(q)})
}

func (h *Handler) GenerateAll(w http.ResponseWriter, r *http.Request) {
	gen, q, ok := h.generatorFor(w, r)
	if !ok {
		return
	}
	results, err := gen.GenerateAll(r.Context(), q)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	writeJSON(w, http.StatusOK, GenerateAllResponse{Results: results})
}

func (h *Handler) Explain(w http.ResponseWriter, r *http.Request) {
	gen, q, ok := h.generatorFor(w, r)
	if !ok {
		return
	}
	sql, err := gen.GenerateExplainSQL(q)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, GenerateResponse{Dialect: gen.Dialect(), SQL: sql})
}

func (h *Handler) Explanation(w http.ResponseWriter, r *http.Request) {
	gen, q, ok := h.generatorFor(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ExplanationResponse{
		Explanation: gen.GenerateReadableExplanation(q),
		Warnings:    gen.Warnings(q),
	})
}

func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Dialect == "" {
		req.Dialect = h.defaultDialect
	}
	result, err := validator.ValidateSQLWithDetails(req.SQL, req.Dialect)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) ConnectionString(w http.ResponseWriter, r *http.Request) {
	var req ConnectionStringRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	dsn, err := connstr.Build(req.Dialect, req.Params)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, ConnectionStringResponse{ConnectionString: dsn})
}

// ============================================================================
// SAVED QUERIES
// ============================================================================

func (h *Handler) SaveQuery(w http.ResponseWriter, r *http.Request) {
	var req SaveQueryRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if len(req.Query) == 0 {
		writeError(w, http.StatusBadRequest, errors.New("query is required"))
		return
	}
	q, dialectName, err := querygen.Parse(req.Query)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Dialect != "" {
		dialectName = req.Dialect
	}

	saved, err := h.library.Save(r.Context(), req.Name, q, dialectName)
	if err != nil {
		h.log.Error("save query", logger.Error(err))
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (h *Handler) ListQueries(w http.ResponseWriter, r *http.Request) {
	list, err := h.library.List(r.Context())
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) GetQuery(w http.ResponseWriter, r *http.Request) {
	saved, err := h.library.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (h *Handler) DeleteQuery(w http.ResponseWriter, r *http.Request) {
	if err := h.library.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RenderQuery(w http.ResponseWriter, r *http.Request) {
	dialectName := r.URL.Query().Get("dialect")
	sql, err := h.library.Render(r.Context(), chi.URLParam(r, "id"), dialectName)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, GenerateResponse{Dialect: dialectName, SQL: sql})
}

// ============================================================================
// HELPERS
// ============================================================================

// generatorFor decodes a query description from the body and picks the
// dialect from ?dialect=, then the description, then the default. It writes
// the error response itself when it fails.
func (h *Handler) generatorFor(w http.ResponseWriter, r *http.Request) (*querygen.Generator, models.Query, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("read body: %w", err))
		return nil, nil, false
	}
	q, dialectName, err := querygen.Parse(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return nil, nil, false
	}

	if d := r.URL.Query().Get("dialect"); d != "" {
		dialectName = d
	}
	if dialectName == "" {
		dialectName = h.defaultDialect
	}
	gen, err := querygen.New(dialectName, append([]querygen.Option{querygen.WithLogger(h.log)}, h.opts...)...)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return nil, nil, false
	}
	return gen, q, true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, querygen.ErrNotImplemented):
		return http.StatusNotImplemented
	case errors.Is(err, querygen.ErrUnsupportedForDialect), errors.Is(err, querygen.ErrNoValidator):
		return http.StatusUnprocessableEntity
	case errors.Is(err, querygen.ErrInvalidQuery),
		errors.Is(err, querygen.ErrUnknownTable),
		errors.Is(err, querygen.ErrUnsupportedQueryType),
		errors.Is(err, querygen.ErrUnsupportedOperator),
		errors.Is(err, querygen.ErrMaxDepthExceeded),
		errors.Is(err, querygen.ErrUnsupportedDialect):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, statusCode int, err error) {
	writeJSON(w, statusCode, ErrorResponse{Error: err.Error()})
}
