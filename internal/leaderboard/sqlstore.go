package leaderboard

import (
	"context"
	"time"

	"github.com/LandoCrissian/LAMMB-Runner/internal/storage"
)

// SQLStore adapts the SQLite store to Store.
type SQLStore struct {
	db *storage.Store
}

var _ Store = (*SQLStore)(nil)

// NewSQLStore wraps db.
func NewSQLStore(db *storage.Store) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) WeeklyScore(ctx context.Context, wallet, weekID string) (int64, bool, error) {
	return s.db.WeeklyScore(ctx, wallet, weekID)
}

func (s *SQLStore) InsertWeeklyScore(ctx context.Context, wallet, weekID string, score int64, at time.Time) error {
	return s.db.InsertWeeklyScore(ctx, wallet, weekID, score, at)
}

func (s *SQLStore) UpdateWeeklyScore(ctx context.Context, wallet, weekID string, score int64, at time.Time) error {
	return s.db.UpdateWeeklyScore(ctx, wallet, weekID, score, at)
}

func (s *SQLStore) TopWeekly(ctx context.Context, weekID string, limit int) ([]Entry, error) {
	rows, err := s.db.TopWeekly(ctx, weekID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, len(rows))
	for i, r := range rows {
		out[i] = Entry{Wallet: r.Wallet, Score: r.Score}
	}
	return out, nil
}

func (s *SQLStore) CountAbove(ctx context.Context, weekID string, score int64) (int, error) {
	return s.db.CountAbove(ctx, weekID, score)
}
