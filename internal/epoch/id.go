package epoch

import "github.com/google/uuid"

// MakeID returns a fresh unique id for a definition or entry.
func MakeID() string {
	return uuid.NewString()
}
