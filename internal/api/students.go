package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"campus-core/internal/student"
)

// studentRequest is the request body for creating or replacing a student.
type studentRequest struct {
	Number      string  `json:"number" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	ProgramName string  `json:"program_name" validate:"required"`
	FacultyName *string `json:"faculty_name"`
	Semester    int     `json:"semester" validate:"required,min=1,max=14"`
	Email       string  `json:"email" validate:"required,email"`
}

func (req *studentRequest) toStudent(id int64) *student.Student {
	return &student.Student{
		ID:          id,
		Number:      req.Number,
		Name:        req.Name,
		ProgramName: req.ProgramName,
		FacultyName: req.FacultyName,
		Semester:    req.Semester,
		Email:       req.Email,
	}
}

// handleListStudents returns all students, or a keyword search when the
// q query parameter is present and non-empty.
func (s *Server) handleListStudents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// An empty keyword means a plain list, not an empty result
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		students, err := s.students.Search(ctx, q)
		if err != nil {
			writeInternalError(w, "failed to search students")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"students": students, "count": len(students)})
		return
	}

	students, err := s.students.List(ctx)
	if err != nil {
		writeInternalError(w, "failed to list students")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"students": students, "count": len(students)})
}

// handleRecentStudents returns the most recently added students for the
// dashboard feed. An absent or non-positive limit falls back to the
// repository default.
func (s *Server) handleRecentStudents(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeBadRequest(w, "invalid limit")
			return
		}
		limit = parsed
	}

	students, err := s.students.ListRecent(r.Context(), limit)
	if err != nil {
		writeInternalError(w, "failed to list recent students")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"students": students, "count": len(students)})
}

// handleGetStudent returns a single student by ID.
func (s *Server) handleGetStudent(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}

	st, err := s.students.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, student.ErrNotFound) {
			writeNotFound(w, "student not found")
			return
		}
		writeInternalError(w, "failed to get student")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// handleCreateStudent creates a new student.
func (s *Server) handleCreateStudent(w http.ResponseWriter, r *http.Request) {
	var req studentRequest
	if err := decodeValid(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	ctx := r.Context()
	st := req.toStudent(0)
	if err := s.students.Create(ctx, st); err != nil {
		if errors.Is(err, student.ErrNumberExists) {
			writeConflict(w, "student number already exists")
			return
		}
		writeInternalError(w, "failed to create student")
		return
	}

	// Re-read for the engine-assigned creation timestamp
	created, err := s.students.GetByID(ctx, st.ID)
	if err != nil {
		writeInternalError(w, "failed to load created student")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// handleUpdateStudent replaces all mutable fields of a student.
func (s *Server) handleUpdateStudent(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}

	var req studentRequest
	if err := decodeValid(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	ctx := r.Context()
	if err := s.students.Update(ctx, req.toStudent(id)); err != nil {
		switch {
		case errors.Is(err, student.ErrNotFound):
			writeNotFound(w, "student not found")
		case errors.Is(err, student.ErrNumberExists):
			writeConflict(w, "student number already exists")
		default:
			writeInternalError(w, "failed to update student")
		}
		return
	}

	updated, err := s.students.GetByID(ctx, id)
	if err != nil {
		writeInternalError(w, "failed to load updated student")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// handleDeleteStudent removes a student by ID.
func (s *Server) handleDeleteStudent(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}

	if err := s.students.Delete(r.Context(), id); err != nil {
		if errors.Is(err, student.ErrNotFound) {
			writeNotFound(w, "student not found")
			return
		}
		writeInternalError(w, "failed to delete student")
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
