package faculty

import "time"

// Faculty represents an organisational unit that owns programmes.
//
// Students and programmes reference a faculty by display name, not by
// ID, so records here can be renamed or removed without touching the
// rows that mention them.
type Faculty struct {
	ID          int64     `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
