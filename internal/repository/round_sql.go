package repository

import (
	"context"
	"database/sql"
	"fmt"

	"lorcana/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type roundGameRow struct {
	ID                string         `db:"id"`
	EventID           string         `db:"event_id"`
	OwnerID           string         `db:"owner_id"`
	OpponentInkColors string         `db:"opponent_ink_colors"`
	CreatedAt         int64          `db:"created_at"`
	Position          sql.NullInt64  `db:"position"`
	Result            sql.NullString `db:"result"`
	OnThePlay         sql.NullBool   `db:"on_the_play"`
}

type RoundSQL struct {
	store
}

func NewRoundSQL(s store) *RoundSQL {
	return &RoundSQL{store: s}
}

func (r *RoundSQL) selectRounds() squirrel.SelectBuilder {
	return r.sb.Select(
		"r.id AS id",
		"r.event_id AS event_id",
		"r.owner_id AS owner_id",
		"r.opponent_ink_colors AS opponent_ink_colors",
		"r.created_at AS created_at",
		"g.position AS position",
		"g.result AS result",
		"g.on_the_play AS on_the_play",
	).
		From("rounds r").
		LeftJoin("round_games g ON g.round_id = r.id").
		OrderBy("r.created_at", "r.id", "g.position")
}

// collectRounds folds the joined rows back into rounds, keeping row order.
func collectRounds(rows []roundGameRow) ([]models.Round, error) {
	var rounds []models.Round
	index := make(map[string]int)

	for _, row := range rows {
		i, ok := index[row.ID]
		if !ok {
			colors, err := decodeColors(row.OpponentInkColors)
			if err != nil {
				return nil, err
			}
			rounds = append(rounds, models.Round{
				ID:                row.ID,
				EventID:           row.EventID,
				OwnerID:           row.OwnerID,
				Games:             []models.GameResult{},
				OpponentInkColors: colors,
				CreatedAt:         fromMillis(row.CreatedAt),
			})
			i = len(rounds) - 1
			index[row.ID] = i
		}
		if !row.Result.Valid {
			continue
		}
		rounds[i].Games = append(rounds[i].Games, models.GameResult{
			Result:    models.Result(row.Result.String),
			OnThePlay: row.OnThePlay.Bool,
		})
	}
	return rounds, nil
}

func (r *RoundSQL) FetchRounds(ctx context.Context, scope RoundScope) ([]models.Round, error) {
	if len(scope.EventIDs) == 0 {
		return nil, nil
	}

	var rows []roundGameRow
	err := r.selectRows(ctx, r.db, &rows, r.selectRounds().
		Where(squirrel.Eq{"r.owner_id": scope.OwnerID, "r.event_id": scope.EventIDs}))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rounds: %w", err)
	}
	return collectRounds(rows)
}

func (r *RoundSQL) GetRound(ctx context.Context, ownerID, eventID, roundID string) (models.Round, error) {
	var rows []roundGameRow
	err := r.selectRows(ctx, r.db, &rows, r.selectRounds().
		Where(squirrel.Eq{"r.id": roundID, "r.event_id": eventID, "r.owner_id": ownerID}))
	if err != nil {
		return models.Round{}, fmt.Errorf("failed to get round: %w", err)
	}

	rounds, err := collectRounds(rows)
	if err != nil {
		return models.Round{}, err
	}
	if len(rounds) == 0 {
		return models.Round{}, fmt.Errorf("round %s: %w", roundID, ErrNotFound)
	}
	return rounds[0], nil
}

// CreateRound inserts the round with its games and applies delta to the
// event counters in the same transaction.
func (r *RoundSQL) CreateRound(ctx context.Context, round models.Round, delta models.Counters) (string, error) {
	colors, err := encodeColors(round.OpponentInkColors)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	err = r.transaction(ctx, func(tx *sqlx.Tx) error {
		if err := eventExists(ctx, r.store, tx, round.OwnerID, round.EventID); err != nil {
			return err
		}

		_, err := r.exec(ctx, tx, r.sb.Insert("rounds").
			Columns("id", "event_id", "owner_id", "opponent_ink_colors", "created_at").
			Values(id, round.EventID, round.OwnerID, colors, nowMillis()))
		if err != nil {
			return fmt.Errorf("failed to insert round: %w", err)
		}

		if err := r.insertGames(ctx, tx, id, round.Games); err != nil {
			return err
		}

		return applyCounterDelta(ctx, r.store, tx, round.OwnerID, round.EventID, delta)
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// ReplaceRound overwrites the games and opponent inks of an existing round
// and applies delta in the same transaction.
func (r *RoundSQL) ReplaceRound(ctx context.Context, round models.Round, delta models.Counters) error {
	colors, err := encodeColors(round.OpponentInkColors)
	if err != nil {
		return err
	}

	return r.transaction(ctx, func(tx *sqlx.Tx) error {
		n, err := r.exec(ctx, tx, r.sb.Update("rounds").
			Set("opponent_ink_colors", colors).
			Where(squirrel.Eq{"id": round.ID, "event_id": round.EventID, "owner_id": round.OwnerID}))
		if err != nil {
			return fmt.Errorf("failed to update round: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("round %s: %w", round.ID, ErrNotFound)
		}

		if _, err := r.exec(ctx, tx, r.sb.Delete("round_games").Where(squirrel.Eq{"round_id": round.ID})); err != nil {
			return fmt.Errorf("failed to clear round games: %w", err)
		}
		if err := r.insertGames(ctx, tx, round.ID, round.Games); err != nil {
			return err
		}

		return applyCounterDelta(ctx, r.store, tx, round.OwnerID, round.EventID, delta)
	})
}

func (r *RoundSQL) DeleteRound(ctx context.Context, ownerID, eventID, roundID string, delta models.Counters) error {
	return r.transaction(ctx, func(tx *sqlx.Tx) error {
		var ids []string
		err := r.selectRows(ctx, tx, &ids, r.sb.Select("id").From("rounds").
			Where(squirrel.Eq{"id": roundID, "event_id": eventID, "owner_id": ownerID}))
		if err != nil {
			return fmt.Errorf("failed to check round: %w", err)
		}
		if len(ids) == 0 {
			return fmt.Errorf("round %s: %w", roundID, ErrNotFound)
		}

		if _, err := r.exec(ctx, tx, r.sb.Delete("round_games").Where(squirrel.Eq{"round_id": roundID})); err != nil {
			return fmt.Errorf("failed to delete round games: %w", err)
		}
		if _, err := r.exec(ctx, tx, r.sb.Delete("rounds").Where(squirrel.Eq{"id": roundID})); err != nil {
			return fmt.Errorf("failed to delete round: %w", err)
		}

		return applyCounterDelta(ctx, r.store, tx, ownerID, eventID, delta)
	})
}

func (r *RoundSQL) insertGames(ctx context.Context, tx *sqlx.Tx, roundID string, games []models.GameResult) error {
	if len(games) == 0 {
		return nil
	}
	q := r.sb.Insert("round_games").Columns("round_id", "position", "result", "on_the_play")
	for i, g := range games {
		q = q.Values(roundID, i, string(g.Result), g.OnThePlay)
	}
	if _, err := r.exec(ctx, tx, q); err != nil {
		return fmt.Errorf("failed to insert round games: %w", err)
	}
	return nil
}
