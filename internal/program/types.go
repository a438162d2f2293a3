package program

import "time"

// Program represents a study programme offered by a faculty.
//
// FacultyName carries the owning faculty by display name rather than
// foreign key, so renaming or removing a faculty leaves programmes
// pointing at the old name. Accreditation and Description are optional.
type Program struct {
	ID            int64     `json:"id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	FacultyName   string    `json:"faculty_name"`
	Accreditation *string   `json:"accreditation,omitempty"`
	Description   *string   `json:"description,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
