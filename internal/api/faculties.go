package api

import (
	"errors"
	"net/http"
	"strings"

	"campus-core/internal/faculty"
)

// facultyRequest is the request body for creating or replacing a faculty.
type facultyRequest struct {
	Code        string  `json:"code" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
}

func (req *facultyRequest) toFaculty(id int64) *faculty.Faculty {
	return &faculty.Faculty{
		ID:          id,
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
	}
}

// handleListFaculties returns all faculties, or a keyword search when
// the q query parameter is present and non-empty.
func (s *Server) handleListFaculties(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		faculties, err := s.faculties.Search(ctx, q)
		if err != nil {
			writeInternalError(w, "failed to search faculties")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"faculties": faculties, "count": len(faculties)})
		return
	}

	faculties, err := s.faculties.List(ctx)
	if err != nil {
		writeInternalError(w, "failed to list faculties")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"faculties": faculties, "count": len(faculties)})
}

// handleGetFaculty returns a single faculty by ID.
func (s *Server) handleGetFaculty(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}

	f, err := s.faculties.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, faculty.ErrNotFound) {
			writeNotFound(w, "faculty not found")
			return
		}
		writeInternalError(w, "failed to get faculty")
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// handleCreateFaculty creates a new faculty.
func (s *Server) handleCreateFaculty(w http.ResponseWriter, r *http.Request) {
	var req facultyRequest
	if err := decodeValid(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	ctx := r.Context()
	f := req.toFaculty(0)
	if err := s.faculties.Create(ctx, f); err != nil {
		if errors.Is(err, faculty.ErrCodeExists) {
			writeConflict(w, "faculty code already exists")
			return
		}
		writeInternalError(w, "failed to create faculty")
		return
	}

	created, err := s.faculties.GetByID(ctx, f.ID)
	if err != nil {
		writeInternalError(w, "failed to load created faculty")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// handleUpdateFaculty replaces all mutable fields of a faculty.
func (s *Server) handleUpdateFaculty(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}

	var req facultyRequest
	if err := decodeValid(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	ctx := r.Context()
	if err := s.faculties.Update(ctx, req.toFaculty(id)); err != nil {
		switch {
		case errors.Is(err, faculty.ErrNotFound):
			writeNotFound(w, "faculty not found")
		case errors.Is(err, faculty.ErrCodeExists):
			writeConflict(w, "faculty code already exists")
		default:
			writeInternalError(w, "failed to update faculty")
		}
		return
	}

	updated, err := s.faculties.GetByID(ctx, id)
	if err != nil {
		writeInternalError(w, "failed to load updated faculty")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// handleDeleteFaculty removes a faculty by ID.
func (s *Server) handleDeleteFaculty(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}

	if err := s.faculties.Delete(r.Context(), id); err != nil {
		if errors.Is(err, faculty.ErrNotFound) {
			writeNotFound(w, "faculty not found")
			return
		}
		writeInternalError(w, "failed to delete faculty")
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
