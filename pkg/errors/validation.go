package errors

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// MaxFrameNameLength bounds frame names accepted over the API.
const MaxFrameNameLength = 256

// ValidateFrameName rejects names that are empty, too long, or contain
// control characters or the shorthand separators "~" and ",".
func ValidateFrameName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "frame name cannot be empty")
	}
	if len(name) > MaxFrameNameLength {
		return New(ErrCodeInvalidInput, "frame name too long (max %d characters)", MaxFrameNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "frame name contains invalid control characters")
		}
	}
	if strings.ContainsAny(name, "~,") {
		return New(ErrCodeInvalidInput, "frame name %q contains a shorthand separator", name)
	}
	return nil
}

// ValidateSnapshotID checks that id is a canonical UUID. Snapshot IDs become
// file names in the file store, so anything else is refused.
func ValidateSnapshotID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "snapshot ID cannot be empty")
	}
	parsed, err := uuid.Parse(id)
	if err != nil || parsed.String() != strings.ToLower(id) {
		return New(ErrCodeInvalidInput, "invalid snapshot ID: %q", id)
	}
	return nil
}
