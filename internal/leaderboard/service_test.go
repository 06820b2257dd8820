package leaderboard

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitUpsertMax(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := newTestService(store)
	signer := seededSigner(t, 1)

	out, err := svc.Submit(ctx, signed(t, signer, 5000, testNow))
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, MsgSubmitted, out.Message)
	assert.True(t, out.NewBest())

	out, err = svc.Submit(ctx, signed(t, signer, 4000, testNow))
	require.NoError(t, err)
	assert.Equal(t, MsgNotBest, out.Message)
	require.NotNil(t, out.CurrentBest)
	assert.EqualValues(t, 5000, *out.CurrentBest)
	assert.False(t, out.NewBest())

	score, ok, err := store.WeeklyScore(ctx, signer.Address(), WeekID(testNow))
	require.NoError(t, err)
	require.True(t, ok)
	assert.EqualValues(t, 5000, score)

	out, err = svc.Submit(ctx, signed(t, signer, 7000, testNow))
	require.NoError(t, err)
	assert.Equal(t, MsgNewBest, out.Message)
	require.NotNil(t, out.PreviousBest)
	assert.EqualValues(t, 5000, *out.PreviousBest)
	assert.EqualValues(t, 7000, out.Score)
}

func TestSubmitRateLimit(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMemStore())
	signer := seededSigner(t, 1)

	for i := range 5 {
		out, err := svc.Submit(ctx, signed(t, signer, int64(100*(i+1)), testNow))
		require.NoError(t, err, "submission %d", i+1)
		assert.Equal(t, 4-i, out.Remaining, "submission %d", i+1)
	}
	_, err := svc.Submit(ctx, signed(t, signer, 1000, testNow))
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, 0, svc.RemainingSubmissions(signer.Address()))

	// Other wallets are unaffected.
	_, err = svc.Submit(ctx, signed(t, seededSigner(t, 2), 1000, testNow))
	assert.NoError(t, err)
}

func TestRejectedClaimsDoNotConsumeQuota(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMemStore())
	signer := seededSigner(t, 1)

	for range 8 {
		_, err := svc.Submit(ctx, signed(t, signer, 100000, testNow.Add(-time.Minute)))
		require.ErrorIs(t, err, ErrImplausibleScore)
	}
	assert.Equal(t, 5, svc.RemainingSubmissions(signer.Address()))
}

func TestSubmitStorageFailure(t *testing.T) {
	store := newMemStore()
	store.fail = errors.New("disk on fire")
	svc := newTestService(store)
	signer := seededSigner(t, 1)

	_, err := svc.Submit(context.Background(), signed(t, signer, 10, testNow))
	require.ErrorIs(t, err, ErrStorage)
	assert.Equal(t, ClassTransient, Classify(err))
	assert.Equal(t, 5, svc.RemainingSubmissions(signer.Address()))
}

func TestSubmitConcurrentSameWallet(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMemStore())
	signer := seededSigner(t, 1)

	subs := make([]Submission, 20)
	for i := range subs {
		subs[i] = signed(t, signer, int64(i), testNow)
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for _, sub := range subs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Submit(ctx, sub); err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 5, accepted)
}

func TestQueryRanks(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := newTestService(store, WithLeaderboardSize(2))
	week := WeekID(testNow)

	a, b, c := seededSigner(t, 1), seededSigner(t, 2), seededSigner(t, 3)
	for _, claim := range []struct {
		s     *KeySigner
		score int64
	}{{a, 300}, {b, 900}, {c, 600}} {
		_, err := svc.Submit(ctx, signed(t, claim.s, claim.score, testNow))
		require.NoError(t, err)
	}
	require.NoError(t, store.InsertWeeklyScore(ctx, a.Address(), "2026-W42", 99999, testNow))

	board, err := svc.Query(ctx, "", a.Address())
	require.NoError(t, err)
	assert.Equal(t, week, board.WeekID)
	assert.Equal(t, []Entry{{b.Address(), 900}, {c.Address(), 600}}, board.Leaderboard)
	require.NotNil(t, board.UserRank)
	assert.Equal(t, Rank{Rank: 3, Score: 300}, *board.UserRank)

	board, err = svc.Query(ctx, "2026-W42", b.Address())
	require.NoError(t, err)
	assert.Equal(t, []Entry{{a.Address(), 99999}}, board.Leaderboard)
	assert.Nil(t, board.UserRank)

	board, err = svc.Query(ctx, "2020-W01", "")
	require.NoError(t, err)
	assert.NotNil(t, board.Leaderboard)
	assert.Empty(t, board.Leaderboard)

	_, err = svc.Query(ctx, "last week", "")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestQueryTiesShareRank(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMemStore())
	a, b := seededSigner(t, 1), seededSigner(t, 2)
	for _, s := range []*KeySigner{a, b} {
		_, err := svc.Submit(ctx, signed(t, s, 500, testNow))
		require.NoError(t, err)
	}
	for _, s := range []*KeySigner{a, b} {
		board, err := svc.Query(ctx, "", s.Address())
		require.NoError(t, err)
		assert.Equal(t, 1, board.UserRank.Rank)
	}
}

func TestAcceptedHooks(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMemStore())
	signer := seededSigner(t, 1)

	var got []Accepted
	svc.OnAccepted(func(a Accepted) { got = append(got, a) })

	_, err := svc.Submit(ctx, signed(t, signer, 50, testNow))
	require.NoError(t, err)
	_, err = svc.Submit(ctx, signed(t, signer, 40, testNow))
	require.NoError(t, err)
	_, err = svc.Submit(ctx, signed(t, signer, 100000, testNow))
	require.Error(t, err)

	require.Len(t, got, 2)
	assert.True(t, got[0].NewBest)
	assert.False(t, got[1].NewBest)
	assert.Equal(t, testNow, got[0].At)
}

func TestAuditLog(t *testing.T) {
	dir := t.TempDir()
	audit := NewAuditLog(dir)
	audit.now = func() time.Time { return testNow }
	svc := newTestService(newMemStore(), WithAuditor(audit))
	signer := seededSigner(t, 1)

	_, err := svc.Submit(context.Background(), signed(t, signer, 50, testNow))
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), signed(t, signer, 100000, testNow))
	require.Error(t, err)
	require.NoError(t, audit.Close())

	path := filepath.Join(dir, "audit-2026-10-19-12.jsonl.zst")
	_, err = os.Stat(path)
	require.NoError(t, err)

	recs, err := ReadAuditFile(path)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.True(t, recs[0].Accepted)
	assert.Equal(t, MsgSubmitted, recs[0].Result)
	assert.Equal(t, signer.Address(), recs[0].Wallet)

	assert.False(t, recs[1].Accepted)
	assert.Equal(t, "integrity", recs[1].Class)
	assert.EqualValues(t, 100000, recs[1].Score)
}

func TestAuditLogRotatesHourly(t *testing.T) {
	dir := t.TempDir()
	audit := NewAuditLog(dir)
	at := testNow
	audit.now = func() time.Time { return at }

	require.NoError(t, audit.Record(AuditRecord{Wallet: "a"}))
	at = at.Add(time.Hour)
	require.NoError(t, audit.Record(AuditRecord{Wallet: "b"}))
	require.NoError(t, audit.Close())

	for hour, wallet := range map[string]string{"12": "a", "13": "b"} {
		recs, err := ReadAuditFile(filepath.Join(dir, "audit-2026-10-19-"+hour+".jsonl.zst"))
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, wallet, recs[0].Wallet)
	}
}

func TestRateLimiterWindow(t *testing.T) {
	r := NewRateLimiter(2, time.Hour)
	r.Record("w", testNow.Add(-59*time.Minute))
	r.Record("w", testNow.Add(-10*time.Minute))
	assert.False(t, r.Allow("w", testNow))

	// The oldest entry leaves the window after exactly one hour.
	assert.True(t, r.Allow("w", testNow.Add(time.Minute)))
	assert.Equal(t, 1, r.Remaining("w", testNow.Add(time.Minute)))

	assert.True(t, r.Allow("unknown", testNow))
	r.Prune(testNow.Add(2 * time.Hour))
	assert.Empty(t, r.seen)
}
