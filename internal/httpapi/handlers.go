package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/alcohol"
	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/model"
	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/projection"
	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/service"
)

var errNoStorage = errors.New("storage is not configured")

type savedResponse struct {
	ID     string                      `json:"id"`
	Result projection.ProjectionResult `json:"result"`
}

func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	form, err := decodeForm(w, r)
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}
	in, res, err := s.project(form)
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}

	if save, _ := strconv.ParseBool(r.URL.Query().Get("save")); save {
		if s.db == nil {
			s.writeError(w, r, http.StatusServiceUnavailable, errNoStorage)
			return
		}
		saved, err := service.SaveProjection(s.db, r.URL.Query().Get("label"), in, res)
		if err != nil {
			s.writeError(w, r, http.StatusInternalServerError, err)
			return
		}
		s.logger.Debug("saved projection", zap.String("id", saved.ID))
		writeJSON(w, http.StatusCreated, savedResponse{ID: saved.ID, Result: res})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// project applies stored and configured defaults, parses the form and runs
// the projection.
func (s *Server) project(form projection.FormInput) (projection.Input, projection.ProjectionResult, error) {
	if s.db != nil {
		var err error
		if form, err = service.ApplyFormDefaults(s.db, form); err != nil {
			return projection.Input{}, projection.ProjectionResult{}, err
		}
	}
	if strings.TrimSpace(form.Units) == "" && s.opts.DefaultUnits != "" {
		form.Units = string(s.opts.DefaultUnits)
	}
	in, err := form.Parse()
	if err != nil {
		return projection.Input{}, projection.ProjectionResult{}, err
	}
	res, err := in.Project()
	if err != nil {
		return projection.Input{}, projection.ProjectionResult{}, err
	}
	return in, res, nil
}

func (s *Server) handleAlcohol(w http.ResponseWriter, r *http.Request) {
	var req alcohol.Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, &projection.ValidationError{Field: "body", Reason: fmt.Sprintf("malformed JSON: %v", err)})
		return
	}
	res, err := calculateAlcohol(req)
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func calculateAlcohol(req alcohol.Request) (alcohol.Result, error) {
	in, err := req.Parse()
	if err != nil {
		return alcohol.Result{}, err
	}
	return alcohol.Calculate(in)
}

func (s *Server) handleListProjections(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.writeError(w, r, http.StatusServiceUnavailable, errNoStorage)
		return
	}
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			s.writeError(w, r, http.StatusBadRequest, &projection.ValidationError{Field: "limit", Reason: "must be a positive integer"})
			return
		}
		limit = v
	}
	items, err := service.ListProjections(s.db, limit)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]model.SavedProjection{"projections": items})
}

func (s *Server) handleGetProjection(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.writeError(w, r, http.StatusServiceUnavailable, errNoStorage)
		return
	}
	p, err := service.GetProjection(s.db, mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, r, storeStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeleteProjection(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.writeError(w, r, http.StatusServiceUnavailable, errNoStorage)
		return
	}
	if err := service.DeleteProjection(s.db, mux.Vars(r)["id"]); err != nil {
		s.writeError(w, r, storeStatus(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func storeStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidID):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
