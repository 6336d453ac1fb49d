package domain

import "errors"

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrGameNotFound        Error = "game not found"
	ErrGameNotRunning      Error = "game is not running"
	ErrGameRunning         Error = "game is already running"
	ErrGameFinished        Error = "game is already finished"
	ErrPlayerAlreadyJoined Error = "player already joined"
	ErrPlayerNotOwner      Error = "player is not the owner of the game"
	ErrUnexpectedPlayer    Error = "it is not this player's turn"
	ErrPlayerNotFound      Error = "player is not part of the game"
	ErrInvalidPlayers      Error = "players must be two distinct ids"
	ErrColumnFull          Error = "column is full"
	ErrColumnOutOfRange    Error = "column is out of range"
	ErrInvalidSize         Error = "board size must be at least 2x2 with an even number of cells"
	ErrInvalidWinningRule  Error = "invalid winning rule"
	ErrInvalidGameID       Error = "invalid game id"
	ErrConcurrency         Error = "game was modified concurrently"
	ErrCorruptSnapshot     Error = "corrupt game snapshot"
)

// Kind groups errors by how a caller is expected to react to them.
type Kind string

const (
	KindUnknown                Kind = "unknown"
	KindNotFound               Kind = "not_found"
	KindIllegalStateTransition Kind = "illegal_state_transition"
	KindUnexpectedActor        Kind = "unexpected_actor"
	KindUnknownParticipant     Kind = "unknown_participant"
	KindBoardCapacity          Kind = "board_capacity"
	KindConcurrencyConflict    Kind = "concurrency_conflict"
	KindInvalidArgument        Kind = "invalid_argument"
)

var kinds = map[Error]Kind{
	ErrGameNotFound:        KindNotFound,
	ErrGameNotRunning:      KindIllegalStateTransition,
	ErrGameRunning:         KindIllegalStateTransition,
	ErrGameFinished:        KindIllegalStateTransition,
	ErrPlayerAlreadyJoined: KindIllegalStateTransition,
	ErrPlayerNotOwner:      KindUnexpectedActor,
	ErrUnexpectedPlayer:    KindUnexpectedActor,
	ErrPlayerNotFound:      KindUnknownParticipant,
	ErrInvalidPlayers:      KindInvalidArgument,
	ErrColumnFull:          KindBoardCapacity,
	ErrColumnOutOfRange:    KindInvalidArgument,
	ErrInvalidSize:         KindInvalidArgument,
	ErrInvalidWinningRule:  KindInvalidArgument,
	ErrInvalidGameID:       KindInvalidArgument,
	ErrConcurrency:         KindConcurrencyConflict,
	ErrCorruptSnapshot:     KindUnknown,
}

// KindOf classifies err. Wrapped domain errors are unwrapped first; anything
// that is not a domain error is KindUnknown.
func KindOf(err error) Kind {
	var domainErr Error
	if !errors.As(err, &domainErr) {
		return KindUnknown
	}
	if kind, ok := kinds[domainErr]; ok {
		return kind
	}
	return KindUnknown
}
