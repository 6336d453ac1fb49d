package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/iamasit07/connectfour/internal/domain"
	"github.com/iamasit07/connectfour/internal/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "github.com/iamasit07/connectfour/internal/service/game"

const DefaultMaxAttempts = 3

type Options struct {
	// Board used when an open request leaves a dimension at zero.
	Width           int
	Height          int
	RequiredMatches int
	// Attempts per command when saves keep hitting ErrConcurrency.
	MaxAttempts int
	Logger      *zap.Logger
}

// Service runs player commands against stored games: load, apply, save.
type Service struct {
	repo            domain.Games
	width           int
	height          int
	requiredMatches int
	maxAttempts     int
	logger          *zap.Logger
	tracer          trace.Tracer
}

func NewService(repo domain.Games, opts Options) *Service {
	s := &Service{
		repo:            repo,
		width:           opts.Width,
		height:          opts.Height,
		requiredMatches: opts.RequiredMatches,
		maxAttempts:     opts.MaxAttempts,
		logger:          logging.OrNop(opts.Logger).Named("game"),
		tracer:          otel.Tracer(tracerName),
	}
	if s.width == 0 {
		s.width = domain.Columns
	}
	if s.height == 0 {
		s.height = domain.Rows
	}
	if s.requiredMatches == 0 {
		s.requiredMatches = domain.ToWin
	}
	if s.maxAttempts <= 0 {
		s.maxAttempts = DefaultMaxAttempts
	}
	return s
}

type OpenRequest struct {
	PlayerID        string
	Width           int
	Height          int
	RequiredMatches int
}

// Open creates a game waiting for a second player. Zero dimensions take the
// service defaults.
func (s *Service) Open(ctx context.Context, req OpenRequest) (domain.Snapshot, error) {
	ctx, span := s.tracer.Start(ctx, "game.Service.Open")
	defer span.End()

	width, height, matches := req.Width, req.Height, req.RequiredMatches
	if width == 0 {
		width = s.width
	}
	if height == 0 {
		height = s.height
	}
	if matches == 0 {
		matches = s.requiredMatches
	}

	configuration, err := domain.NewConfiguration(width, height, matches)
	if err != nil {
		return domain.Snapshot{}, err
	}
	id, err := domain.NewGameID()
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to generate game id: %w", err)
	}
	span.SetAttributes(attribute.String("game.id", id.String()))

	game, err := domain.OpenGame(id, configuration, req.PlayerID)
	if err != nil {
		return domain.Snapshot{}, err
	}
	if err := s.repo.Save(ctx, game); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return domain.Snapshot{}, err
	}

	s.logger.Info("game opened",
		zap.String("game_id", id.String()),
		zap.String("player_id", req.PlayerID),
		zap.Int("width", width),
		zap.Int("height", height),
	)
	return game.Snapshot()
}

func (s *Service) Join(ctx context.Context, id domain.GameID, playerID string) (domain.Snapshot, error) {
	return s.execute(ctx, "Join", id, func(g *domain.Game) error {
		return g.Join(playerID)
	})
}

func (s *Service) Move(ctx context.Context, id domain.GameID, playerID string, column int) (domain.Snapshot, error) {
	return s.execute(ctx, "Move", id, func(g *domain.Game) error {
		return g.Move(playerID, column)
	})
}

func (s *Service) Resign(ctx context.Context, id domain.GameID, playerID string) (domain.Snapshot, error) {
	return s.execute(ctx, "Resign", id, func(g *domain.Game) error {
		return g.Resign(playerID)
	})
}

func (s *Service) Abort(ctx context.Context, id domain.GameID, playerID string) (domain.Snapshot, error) {
	return s.execute(ctx, "Abort", id, func(g *domain.Game) error {
		return g.Abort(playerID)
	})
}

func (s *Service) Get(ctx context.Context, id domain.GameID) (domain.Snapshot, error) {
	ctx, span := s.tracer.Start(ctx, "game.Service.Get", trace.WithAttributes(attribute.String("game.id", id.String())))
	defer span.End()

	game, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Snapshot{}, err
	}
	return game.Snapshot()
}

// execute reloads and reapplies command while the save loses a version race.
// The command is checked against the fresh state each time, so a move that
// another writer already made is rejected instead of applied twice.
func (s *Service) execute(ctx context.Context, name string, id domain.GameID, command func(*domain.Game) error) (domain.Snapshot, error) {
	ctx, span := s.tracer.Start(ctx, "game.Service."+name, trace.WithAttributes(attribute.String("game.id", id.String())))
	defer span.End()

	var err error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		span.SetAttributes(attribute.Int("attempt", attempt))

		var game *domain.Game
		game, err = s.repo.Get(ctx, id)
		if err != nil {
			return domain.Snapshot{}, err
		}
		if err = command(game); err != nil {
			return domain.Snapshot{}, err
		}

		err = s.repo.Save(ctx, game)
		if err == nil {
			return game.Snapshot()
		}
		if !errors.Is(err, domain.ErrConcurrency) {
			span.SetStatus(codes.Error, err.Error())
			return domain.Snapshot{}, err
		}

		s.logger.Info("concurrent update, retrying",
			zap.String("command", name),
			zap.String("game_id", id.String()),
			zap.Int("attempt", attempt),
		)
	}

	span.SetStatus(codes.Error, err.Error())
	return domain.Snapshot{}, err
}
