package uid

import (
	"fmt"

	"github.com/google/uuid"
)

// GenerateGameID returns a UUIDv7. The leading timestamp keeps ids ordered by
// creation time, which keeps primary key inserts append-only.
func GenerateGameID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate game ID: %w", err)
	}
	return id.String(), nil
}
