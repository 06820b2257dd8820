package leaderboard

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/LandoCrissian/LAMMB-Runner/internal/config"
)

var testNow = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

type rowKey struct{ wallet, week string }

// memStore is an in-memory Store.
type memStore struct {
	mu   sync.Mutex
	rows map[rowKey]int64
	fail error
}

func newMemStore() *memStore {
	return &memStore{rows: make(map[rowKey]int64)}
}

func (m *memStore) WeeklyScore(_ context.Context, wallet, weekID string) (int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return 0, false, m.fail
	}
	s, ok := m.rows[rowKey{wallet, weekID}]
	return s, ok, nil
}

func (m *memStore) InsertWeeklyScore(_ context.Context, wallet, weekID string, score int64, _ time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[rowKey{wallet, weekID}]; ok {
		return errors.New("duplicate row")
	}
	m.rows[rowKey{wallet, weekID}] = score
	return nil
}

func (m *memStore) UpdateWeeklyScore(_ context.Context, wallet, weekID string, score int64, _ time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[rowKey{wallet, weekID}] = score
	return nil
}

func (m *memStore) TopWeekly(_ context.Context, weekID string, limit int) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Entry
	for k, s := range m.rows {
		if k.week == weekID {
			out = append(out, Entry{Wallet: k.wallet, Score: s})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Wallet < out[j].Wallet
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) CountAbove(_ context.Context, weekID string, score int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for k, s := range m.rows {
		if k.week == weekID && s > score {
			n++
		}
	}
	return n, nil
}

// seededSigner returns a deterministic signer; distinct seeds give
// distinct wallets.
func seededSigner(t *testing.T, seed byte) *KeySigner {
	t.Helper()
	s, err := GenerateKeySigner(bytes.NewReader(bytes.Repeat([]byte{seed}, ed25519.SeedSize)))
	require.NoError(t, err)
	return s
}

func defaultLimits() Limits {
	return LimitsFromConfig(config.DefaultServerConfig())
}

// signed builds a valid claim of score made at claimAt.
func signed(t *testing.T, s Signer, score int64, claimAt time.Time) Submission {
	t.Helper()
	sub, err := NewSubmission(context.Background(), s, score, claimAt)
	require.NoError(t, err)
	return sub
}

func newTestService(store Store, opts ...Option) *Service {
	opts = append([]Option{WithClock(func() time.Time { return testNow })}, opts...)
	return NewService(store, defaultLimits(), opts...)
}
