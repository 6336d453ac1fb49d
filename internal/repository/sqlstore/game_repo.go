package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/iamasit07/connectfour/internal/domain"
	"github.com/iamasit07/connectfour/internal/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "github.com/iamasit07/connectfour/internal/repository/sqlstore"

const DefaultVersionCacheSize = 10000

// GameRepo stores each game as one JSON document guarded by a version
// number. The version cache remembers the version every loaded or saved
// aggregate instance is based on, so a save can issue a single conditional
// statement. Two instances of the same game loaded from the same version
// therefore race on the stored row, and only one of them wins.
type GameRepo struct {
	db        *sql.DB
	dialect   dialect
	publisher domain.DomainEventPublisher
	versions  *lru.Cache[*domain.Game, int64]
	logger    *zap.Logger
	tracer    trace.Tracer
}

type GameRepoOptions struct {
	Driver           string
	Publisher        domain.DomainEventPublisher
	VersionCacheSize int
	Logger           *zap.Logger
}

var _ domain.Games = (*GameRepo)(nil)

func NewGameRepo(db *sql.DB, opts GameRepoOptions) (*GameRepo, error) {
	if db == nil {
		return nil, errors.New("sqlstore: db is required")
	}
	if opts.Publisher == nil {
		return nil, errors.New("sqlstore: publisher is required")
	}
	d, err := dialectFor(opts.Driver)
	if err != nil {
		return nil, err
	}

	size := opts.VersionCacheSize
	if size <= 0 {
		size = DefaultVersionCacheSize
	}
	versions, err := lru.New[*domain.Game, int64](size)
	if err != nil {
		return nil, fmt.Errorf("version cache: %w", err)
	}

	return &GameRepo{
		db:        db,
		dialect:   d,
		publisher: opts.Publisher,
		versions:  versions,
		logger:    logging.OrNop(opts.Logger).Named("repository"),
		tracer:    otel.Tracer(tracerName),
	}, nil
}

func (r *GameRepo) Get(ctx context.Context, id domain.GameID) (*domain.Game, error) {
	ctx, span := r.tracer.Start(ctx, "GameRepo.Get", trace.WithAttributes(attribute.String("game.id", id.String())))
	defer span.End()

	query := r.dialect.rebind(`SELECT aggregate, version FROM game WHERE id = ?`)

	var (
		document []byte
		version  int64
	)
	err := r.db.QueryRowContext(ctx, query, id.String()).Scan(&document, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrGameNotFound, id)
	}
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to load game %s: %w", id, err)
	}

	var snapshot domain.Snapshot
	if err := json.Unmarshal(document, &snapshot); err != nil {
		return nil, fmt.Errorf("%w: game %s: %v", domain.ErrCorruptSnapshot, id, err)
	}
	game, err := domain.Restore(snapshot)
	if err != nil {
		return nil, fmt.Errorf("game %s: %w", id, err)
	}

	r.versions.Add(game, version)
	span.SetAttributes(attribute.Int64("game.version", version))

	return game, nil
}

// Save writes the game and then publishes the events it recorded. An
// instance the cache has not seen is inserted at version 1; a known one is
// updated only if the stored version is still the one it was loaded at.
// Either conflict is reported as ErrConcurrency and the flushed events are
// dropped: the caller reloads and reapplies its command, which records them
// again.
func (r *GameRepo) Save(ctx context.Context, game *domain.Game) error {
	id := game.ID()
	ctx, span := r.tracer.Start(ctx, "GameRepo.Save", trace.WithAttributes(attribute.String("game.id", id.String())))
	defer span.End()

	snapshot, err := game.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to snapshot game %s: %w", id, err)
	}
	document, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode game %s: %w", id, err)
	}

	events := game.FlushDomainEvents()

	var version int64
	if cached, ok := r.versions.Get(game); ok {
		version, err = r.update(ctx, id, document, cached)
	} else {
		version, err = r.insert(ctx, id, document)
	}
	if err != nil {
		if errors.Is(err, domain.ErrConcurrency) {
			r.logger.Debug("save conflict", zap.String("game_id", id.String()))
		} else {
			span.SetStatus(codes.Error, err.Error())
		}
		return err
	}

	r.versions.Add(game, version)
	span.SetAttributes(attribute.Int64("game.version", version))

	// The write is committed at this point. A failing publisher must not turn
	// it into an error, or the caller would retry a command that already took
	// effect.
	if len(events) > 0 {
		if err := r.publisher.Publish(ctx, events); err != nil {
			r.logger.Error("failed to publish domain events",
				zap.String("game_id", id.String()),
				zap.Int64("version", version),
				zap.Int("events", len(events)),
				zap.Error(err),
			)
		}
	}

	return nil
}

func (r *GameRepo) insert(ctx context.Context, id domain.GameID, document []byte) (int64, error) {
	query := r.dialect.rebind(`INSERT INTO game (id, aggregate, version) VALUES (?, ?, 1)`)

	if _, err := r.db.ExecContext(ctx, query, id.String(), string(document)); err != nil {
		if isDuplicateKey(err) {
			return 0, fmt.Errorf("%w: game %s already exists", domain.ErrConcurrency, id)
		}
		return 0, fmt.Errorf("failed to insert game %s: %w", id, err)
	}
	return 1, nil
}

func (r *GameRepo) update(ctx context.Context, id domain.GameID, document []byte, version int64) (int64, error) {
	query := r.dialect.rebind(`
	UPDATE game
	SET aggregate = ?, version = ?, updated_at = CURRENT_TIMESTAMP
	WHERE id = ? AND version = ?`)

	result, err := r.db.ExecContext(ctx, query, string(document), version+1, id.String(), version)
	if err != nil {
		return 0, fmt.Errorf("failed to update game %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to update game %s: %w", id, err)
	}
	if affected == 0 {
		return 0, fmt.Errorf("%w: game %s is no longer at version %d", domain.ErrConcurrency, id, version)
	}
	return version + 1, nil
}

// Version returns the version game was last loaded or saved at.
func (r *GameRepo) Version(game *domain.Game) (int64, bool) {
	return r.versions.Peek(game)
}
