package domain

// DomainEvent is an immutable fact recorded by the game aggregate.
type DomainEvent interface {
	Name() string
	AggregateID() GameID
}

type GameOpened struct {
	GameID   GameID `json:"gameId"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	PlayerID string `json:"playerId"`
}

func (e GameOpened) Name() string        { return "GameOpened" }
func (e GameOpened) AggregateID() GameID { return e.GameID }

type PlayerJoined struct {
	GameID           GameID `json:"gameId"`
	JoinedPlayerID   string `json:"joinedPlayerId"`
	OpponentPlayerID string `json:"opponentPlayerId"`
}

func (e PlayerJoined) Name() string        { return "PlayerJoined" }
func (e PlayerJoined) AggregateID() GameID { return e.GameID }

type PlayerMoved struct {
	GameID GameID `json:"gameId"`
	Point  Point  `json:"point"`
	Stone  Stone  `json:"stone"`
}

func (e PlayerMoved) Name() string        { return "PlayerMoved" }
func (e PlayerMoved) AggregateID() GameID { return e.GameID }

type GameWon struct {
	GameID GameID `json:"gameId"`
	Winner Player `json:"winner"`
}

func (e GameWon) Name() string        { return "GameWon" }
func (e GameWon) AggregateID() GameID { return e.GameID }

type GameDrawn struct {
	GameID GameID `json:"gameId"`
}

func (e GameDrawn) Name() string        { return "GameDrawn" }
func (e GameDrawn) AggregateID() GameID { return e.GameID }

type GameResigned struct {
	GameID   GameID `json:"gameId"`
	Resigner Player `json:"resigner"`
	Opponent Player `json:"opponent"`
}

func (e GameResigned) Name() string        { return "GameResigned" }
func (e GameResigned) AggregateID() GameID { return e.GameID }

// GameAborted has no opponent when the game is aborted before anybody joined.
type GameAborted struct {
	GameID   GameID  `json:"gameId"`
	Aborter  Player  `json:"aborter"`
	Opponent *Player `json:"opponent,omitempty"`
}

func (e GameAborted) Name() string        { return "GameAborted" }
func (e GameAborted) AggregateID() GameID { return e.GameID }
