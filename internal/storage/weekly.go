package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Fixed-width so that text order matches time order.
const weeklyTimeLayout = "2006-01-02T15:04:05.000000000Z"

// WeeklyEntry is the best accepted score of a wallet in one week.
type WeeklyEntry struct {
	Wallet    string
	WeekID    string
	Score     int64
	UpdatedAt time.Time
}

// WeeklyScore returns the stored score of wallet in weekID.
func (s *Store) WeeklyScore(ctx context.Context, wallet, weekID string) (int64, bool, error) {
	var score int64
	err := s.db.QueryRowContext(ctx,
		"SELECT score FROM weekly_scores WHERE wallet = ? AND week_id = ?",
		wallet, weekID,
	).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query weekly score: %w", err)
	}
	return score, true, nil
}

// InsertWeeklyScore creates the row of wallet in weekID. It fails if the
// row already exists.
func (s *Store) InsertWeeklyScore(ctx context.Context, wallet, weekID string, score int64, at time.Time) error {
	ts := at.UTC().Format(weeklyTimeLayout)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO weekly_scores (wallet, week_id, score, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		wallet, weekID, score, ts, ts,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot insert weekly score: %w", err)
	}
	return nil
}

// UpdateWeeklyScore overwrites the score of an existing row.
func (s *Store) UpdateWeeklyScore(ctx context.Context, wallet, weekID string, score int64, at time.Time) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE weekly_scores SET score = ?, updated_at = ? WHERE wallet = ? AND week_id = ?",
		score, at.UTC().Format(weeklyTimeLayout), wallet, weekID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot update weekly score: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("storage: no weekly row for %s in %s", wallet, weekID)
	}
	return nil
}

// TopWeekly returns the best rows of weekID, highest score first. Ties are
// broken by who reached the score first.
func (s *Store) TopWeekly(ctx context.Context, weekID string, limit int) ([]WeeklyEntry, error) {
	if limit <= 0 {
		limit = 25
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT wallet, week_id, score, updated_at
		 FROM weekly_scores
		 WHERE week_id = ?
		 ORDER BY score DESC, updated_at ASC
		 LIMIT ?`,
		weekID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query weekly scores: %w", err)
	}
	defer rows.Close()

	var entries []WeeklyEntry
	for rows.Next() {
		var e WeeklyEntry
		var updated any
		if err := rows.Scan(&e.Wallet, &e.WeekID, &e.Score, &updated); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.UpdatedAt = parseTime(updated)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// CountAbove returns how many rows of weekID have a score strictly
// greater than score.
func (s *Store) CountAbove(ctx context.Context, weekID string, score int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM weekly_scores WHERE week_id = ? AND score > ?",
		weekID, score,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count weekly scores: %w", err)
	}
	return n, nil
}

// Weeks lists the weeks that have rows, most recent first.
func (s *Store) Weeks(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT week_id FROM weekly_scores ORDER BY week_id DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list weeks: %w", err)
	}
	defer rows.Close()

	var weeks []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		weeks = append(weeks, w)
	}
	return weeks, rows.Err()
}
