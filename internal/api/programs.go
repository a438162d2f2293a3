package api

import (
	"errors"
	"net/http"
	"strings"

	"campus-core/internal/program"
)

// programRequest is the request body for creating or replacing a programme.
type programRequest struct {
	Code          string  `json:"code" validate:"required"`
	Name          string  `json:"name" validate:"required"`
	FacultyName   string  `json:"faculty_name" validate:"required"`
	Accreditation *string `json:"accreditation"`
	Description   *string `json:"description"`
}

func (req *programRequest) toProgram(id int64) *program.Program {
	return &program.Program{
		ID:            id,
		Code:          req.Code,
		Name:          req.Name,
		FacultyName:   req.FacultyName,
		Accreditation: req.Accreditation,
		Description:   req.Description,
	}
}

// handleListPrograms returns all programmes, or a keyword search when
// the q query parameter is present and non-empty.
func (s *Server) handleListPrograms(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		programs, err := s.programs.Search(ctx, q)
		if err != nil {
			writeInternalError(w, "failed to search programs")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"programs": programs, "count": len(programs)})
		return
	}

	programs, err := s.programs.List(ctx)
	if err != nil {
		writeInternalError(w, "failed to list programs")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"programs": programs, "count": len(programs)})
}

// handleGetProgram returns a single programme by ID.
func (s *Server) handleGetProgram(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}

	p, err := s.programs.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, program.ErrNotFound) {
			writeNotFound(w, "program not found")
			return
		}
		writeInternalError(w, "failed to get program")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// handleCreateProgram creates a new programme.
func (s *Server) handleCreateProgram(w http.ResponseWriter, r *http.Request) {
	var req programRequest
	if err := decodeValid(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	ctx := r.Context()
	p := req.toProgram(0)
	if err := s.programs.Create(ctx, p); err != nil {
		if errors.Is(err, program.ErrCodeExists) {
			writeConflict(w, "program code already exists")
			return
		}
		writeInternalError(w, "failed to create program")
		return
	}

	created, err := s.programs.GetByID(ctx, p.ID)
	if err != nil {
		writeInternalError(w, "failed to load created program")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// handleUpdateProgram replaces all mutable fields of a programme.
func (s *Server) handleUpdateProgram(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}

	var req programRequest
	if err := decodeValid(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	ctx := r.Context()
	if err := s.programs.Update(ctx, req.toProgram(id)); err != nil {
		switch {
		case errors.Is(err, program.ErrNotFound):
			writeNotFound(w, "program not found")
		case errors.Is(err, program.ErrCodeExists):
			writeConflict(w, "program code already exists")
		default:
			writeInternalError(w, "failed to update program")
		}
		return
	}

	updated, err := s.programs.GetByID(ctx, id)
	if err != nil {
		writeInternalError(w, "failed to load updated program")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// handleDeleteProgram removes a programme by ID.
func (s *Server) handleDeleteProgram(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}

	if err := s.programs.Delete(r.Context(), id); err != nil {
		if errors.Is(err, program.ErrNotFound) {
			writeNotFound(w, "program not found")
			return
		}
		writeInternalError(w, "failed to delete program")
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
