package student

import "time"

// Student represents an enrolled student record.
//
// ProgramName and FacultyName reference their entities by display name, not
// by key. Renaming a program or faculty does not rewrite students, and a
// student may name a program or faculty that no longer exists.
type Student struct {
	ID          int64     `json:"id"`
	Number      string    `json:"number"`
	Name        string    `json:"name"`
	ProgramName string    `json:"program_name"`
	FacultyName *string   `json:"faculty_name,omitempty"`
	Semester    int       `json:"semester"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
}
