package api

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/manwithacat/dazzle-sub005/pkg/buildinfo"
	"github.com/manwithacat/dazzle-sub005/pkg/errors"
	"github.com/manwithacat/dazzle-sub005/pkg/layout"
	"github.com/manwithacat/dazzle-sub005/pkg/manifest"
	"github.com/manwithacat/dazzle-sub005/pkg/pipeline"
	"github.com/manwithacat/dazzle-sub005/pkg/store"
)

// maxManifestBytes caps the posted manifest size.
const maxManifestBytes = 1 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "dazzle-layout",
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"version":        buildinfo.Version,
		"commit":         buildinfo.Commit,
		"engine_version": layout.EngineVersion,
	})
}

// computeRequest is the body of POST /api/v1/plans: a JSON manifest plus
// optional planning controls.
type computeRequest struct {
	manifest.Manifest
	Variant string `json:"variant,omitempty"`
	Refresh bool   `json:"refresh,omitempty"`
}

// computeResponse maps workspace ID to its computed plan.
type computeResponse struct {
	Plans map[string]*layout.LayoutPlan `json:"plans"`
}

func (s *Server) handleComputePlans(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxManifestBytes))
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to read request body"))
		return
	}

	var req computeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidManifest, err, "failed to parse request"))
		return
	}
	if err := req.Manifest.Validate(); err != nil {
		writeError(w, err)
		return
	}

	opts := pipeline.Options{
		Persona: req.Persona,
		Variant: layout.Variant(req.Variant),
		Refresh: req.Refresh,
		Logger:  s.logger,
	}
	plans, err := s.runner.PlanAll(r.Context(), req.WorkspaceRefs(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	for _, plan := range plans {
		entry := &store.Entry{
			WorkspaceID: plan.WorkspaceID,
			PersonaID:   plan.PersonaID,
			Fingerprint: plan.Metadata.Fingerprint,
			Plan:        plan,
		}
		if err := s.archive.Put(r.Context(), entry); err != nil {
			s.logger.Warn("failed to archive plan", "workspace", plan.WorkspaceID, "err", err)
		}
	}

	writeJSON(w, http.StatusOK, computeResponse{Plans: plans})
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	fingerprint := chi.URLParam(r, "fingerprint")
	entry, err := s.archive.GetByFingerprint(r.Context(), fingerprint)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	workspaceID := chi.URLParam(r, "workspaceID")
	entries, err := s.archive.ListByWorkspace(r.Context(), workspaceID, 50)
	if err != nil {
		writeError(w, err)
		return
	}
	if entries == nil {
		entries = []store.Entry{}
	}
	writeJSON(w, http.StatusOK, map[string][]store.Entry{"entries": entries})
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := errors.ErrCodeInternal

	var notFound *store.ErrNotFound
	switch {
	case stderrors.As(err, &notFound):
		status = http.StatusNotFound
		code = errors.ErrCodePlanNotFound
	default:
		if c := errors.GetCode(err); c != "" {
			code = c
			switch c {
			case errors.ErrCodeNotFound, errors.ErrCodePlanNotFound,
				errors.ErrCodeWorkspaceNotFound, errors.ErrCodeFileNotFound:
				status = http.StatusNotFound
			case errors.ErrCodeNetwork, errors.ErrCodeTimeout, errors.ErrCodeInternal:
				status = http.StatusInternalServerError
			default:
				status = http.StatusBadRequest
			}
		} else {
			// Plain errors out of the pipeline are validation failures.
			status = http.StatusBadRequest
			code = errors.ErrCodeInvalidInput
		}
	}

	writeJSON(w, status, errorResponse{Code: string(code), Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
