package uuid

import "github.com/google/uuid"

//go:generate mockgen -package=mocks -destination=mocks/mock_uuid.go github.com/maxsrimongkol-lgtm/study-buddy/internal/common/uuid UUID

// UUID hands out identifiers for new sessions and requests
type UUID interface {
	NewUUID() string
}

// DefaultUUID implements the UUID interface using random (v4) uuids
type DefaultUUID struct{}

func New() *DefaultUUID {
	return &DefaultUUID{}
}

// NewUUID returns a new UUID
func (d *DefaultUUID) NewUUID() string {
	return uuid.New().String()
}

// IsValid reports whether id parses as a uuid. Surfaces use it to reject junk ids before hitting the store.
func IsValid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
