package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns a random 128-bit id as 32 hex chars (uuid4 without dashes).
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
