package domain

import (
	"github.com/google/uuid"

	"github.com/iamasit07/connectfour/pkg/uid"
)

// GameID is a UUIDv7 in its canonical string form, so ids sort by creation time.
type GameID string

func NewGameID() (GameID, error) {
	id, err := uid.GenerateGameID()
	if err != nil {
		return "", err
	}
	return GameID(id), nil
}

func ParseGameID(value string) (GameID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return "", ErrInvalidGameID
	}
	return GameID(id.String()), nil
}

func (id GameID) String() string {
	return string(id)
}
