package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/barbackhq/barback/internal/config"
	"github.com/barbackhq/barback/internal/query"
	"github.com/barbackhq/barback/internal/schema"
	"github.com/barbackhq/barback/internal/validate"
	"github.com/barbackhq/barback/internal/write"
)

// databaseSummary is the list-view shape for a configured database.
type databaseSummary struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	PrimaryKey  string   `json:"primary_key"`
	Columns     int      `json:"columns"`
	Filters     []string `json:"filters,omitempty"`
}

// toolSummary is the list-view shape for a generated tool.
type toolSummary struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Database    string `json:"database"`
	Description string `json:"description,omitempty"`
}

// handleListDatabases returns summaries of every configured database.
func (s *Server) handleListDatabases(w http.ResponseWriter, r *http.Request) {
	databases := s.registry.All()
	items := make([]databaseSummary, len(databases))
	for i, db := range databases {
		filters := make([]string, len(db.Filters))
		for j, f := range db.Filters {
			filters[j] = f.Name
		}
		items[i] = databaseSummary{
			Name:        db.Name,
			Description: db.Description,
			PrimaryKey:  db.PrimaryKeyColumn,
			Columns:     len(db.Columns),
			Filters:     filters,
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"databases": items})
}

// handleGetDatabase returns the full schema for one database.
func (s *Server) handleGetDatabase(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "databaseName")
	db, err := s.registry.Get(name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, db)
}

// handleAddDatabase registers a database at runtime. The body carries the
// database name and its YAML declaration.
func (s *Server) handleAddDatabase(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        string `json:"name"`
		Declaration string `json:"declaration"`
	}
	if err := decodeBody(w, r, s.cfg.MaxBodySize, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	if body.Name == "" || body.Declaration == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("both name and declaration are required"))
		return
	}

	if err := s.toolset.AddDatabase(body.Name, []byte(body.Declaration)); err != nil {
		writeError(w, r, err)
		return
	}
	s.logger.Info("registered database at runtime", "database", body.Name)
	writeJSON(w, http.StatusCreated, map[string]any{
		"database": body.Name,
		"tools":    s.toolset.Names(),
	})
}

// handleListTools returns the generated tool catalogue plus the legacy
// aliases in effect.
func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request) {
	all := s.toolset.Tools()
	items := make([]toolSummary, len(all))
	for i, tool := range all {
		items[i] = toolSummary{
			Name:        tool.Binding.Name,
			Kind:        string(tool.Binding.Kind),
			Database:    tool.Binding.Database,
			Description: tool.Binding.Description,
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"tools":   items,
		"aliases": s.toolset.Aliases(),
	})
}

// handleInvokeTool invokes a tool by generated name or legacy alias. The
// body is the argument object; an empty body means no arguments.
func (s *Server) handleInvokeTool(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "toolName")
	tool, ok := s.toolset.Get(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody(
			"unknown tool "+name+"; list tools at GET /api/v1/tools"))
		return
	}

	args := make(map[string]any)
	body, err := io.ReadAll(io.LimitReader(r.Body, s.cfg.MaxBodySize))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("failed to read request body"))
		return
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &args); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("request body must be a JSON object of tool arguments"))
			return
		}
	}

	out, err := tool.Call(r.Context(), args)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"tool":   name,
		"result": out,
	})
}

// handleValidate runs the offline schema checks against a YAML configuration
// document posted as the request body.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, s.cfg.MaxBodySize))
	if err != nil || len(body) == 0 {
		writeJSON(w, http.StatusBadRequest, errorBody("request body must be a YAML configuration document"))
		return
	}

	registry, err := config.Parse(body)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"valid":    false,
			"findings": map[string][]string{"": {err.Error()}},
		})
		return
	}

	findings := validate.All(registry)
	writeJSON(w, http.StatusOK, map[string]any{
		"valid":    len(findings) == 0,
		"findings": findings,
	})
}

// decodeBody decodes a JSON request body into dst, enforcing the size cap.
func decodeBody(w http.ResponseWriter, r *http.Request, maxBytes int64, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func errorBody(msg string) map[string]any {
	return map[string]any{"error": msg}
}

// writeError maps domain errors onto HTTP statuses. Unknown names are 404,
// caller mistakes are 4xx, and upstream Notion failures are 502.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError

	var unknownDB *schema.UnknownDatabaseError
	var invalidFilter *query.InvalidFilterError
	var validation *write.ValidationError
	var permission *write.PermissionError
	var configuration *config.ConfigurationError
	var remoteQuery *query.RemoteQueryError
	var remoteWrite *write.RemoteWriteError

	switch {
	case errors.As(err, &unknownDB):
		status = http.StatusNotFound
	case errors.As(err, &invalidFilter), errors.As(err, &configuration):
		status = http.StatusBadRequest
	case errors.As(err, &validation):
		status = http.StatusUnprocessableEntity
	case errors.As(err, &permission):
		status = http.StatusForbidden
	case errors.As(err, &remoteWrite):
		if remoteWrite.NotFound {
			status = http.StatusNotFound
		} else {
			status = http.StatusBadGateway
		}
	case errors.As(err, &remoteQuery):
		status = http.StatusBadGateway
	}

	writeJSON(w, status, errorBody(err.Error()))
}
