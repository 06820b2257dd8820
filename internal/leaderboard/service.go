package leaderboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Outcome messages of an accepted claim.
const (
	MsgSubmitted = "Score submitted!"
	MsgNewBest   = "New best score!"
	MsgNotBest   = "Score submitted (not a new best)"
)

// Entry is one leaderboard row.
type Entry struct {
	Wallet string `json:"wallet"`
	Score  int64  `json:"score"`
}

// Rank is a wallet's position in a week.
type Rank struct {
	Rank  int   `json:"rank"`
	Score int64 `json:"score"`
}

// Board is the answer to a leaderboard query.
type Board struct {
	WeekID      string  `json:"weekId"`
	Leaderboard []Entry `json:"leaderboard"`
	UserRank    *Rank   `json:"userRank"`
}

// Outcome is the result of an accepted claim.
type Outcome struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	Score        int64  `json:"score"`
	PreviousBest *int64 `json:"previousBest,omitempty"`
	CurrentBest  *int64 `json:"currentBest,omitempty"`
	Remaining    int    `json:"remaining"` // claims left in the rate window
}

// NewBest reports whether the claim changed the stored score.
func (o Outcome) NewBest() bool {
	return o.Message == MsgSubmitted || o.Message == MsgNewBest
}

// Store holds one row per (wallet, week) with the best accepted score.
type Store interface {
	WeeklyScore(ctx context.Context, wallet, weekID string) (score int64, ok bool, err error)
	InsertWeeklyScore(ctx context.Context, wallet, weekID string, score int64, at time.Time) error
	UpdateWeeklyScore(ctx context.Context, wallet, weekID string, score int64, at time.Time) error
	TopWeekly(ctx context.Context, weekID string, limit int) ([]Entry, error)
	CountAbove(ctx context.Context, weekID string, score int64) (int, error)
}

// Accepted describes a claim that passed validation.
type Accepted struct {
	WeekID  string
	Wallet  string
	Score   int64
	NewBest bool
	At      time.Time
}

// Service validates claims and keeps the weekly leaderboard.
type Service struct {
	store     Store
	validator *Validator
	limiter   *RateLimiter
	size      int
	logger    *log.Logger
	now       func() time.Time

	// Serializes the read-compare-write on the store and the rate table.
	mu sync.Mutex

	hooksMu sync.RWMutex
	hooks   []func(Accepted)
	audit   Auditor
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithAuditor records every judged claim.
func WithAuditor(a Auditor) Option {
	return func(s *Service) { s.audit = a }
}

// WithLeaderboardSize bounds query results.
func WithLeaderboardSize(n int) Option {
	return func(s *Service) { s.size = n }
}

// NewService creates a leaderboard service over store.
func NewService(store Store, limits Limits, opts ...Option) *Service {
	limiter := NewRateLimiter(limits.MaxSubmissions, limits.Window)
	s := &Service{
		store:     store,
		validator: NewValidator(limits, limiter),
		limiter:   limiter,
		size:      25,
		logger:    log.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnAccepted registers fn to run after each accepted claim.
func (s *Service) OnAccepted(fn func(Accepted)) {
	s.hooksMu.Lock()
	defer s.hooksMu.Unlock()
	s.hooks = append(s.hooks, fn)
}

// Submit judges sub and applies it to the store if valid.
func (s *Service) Submit(ctx context.Context, sub Submission) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if err := s.validator.Validate(sub, now); err != nil {
		s.logger.Warn("score rejected", "wallet", sub.Wallet, "score", sub.Score, "class", Classify(err), "err", err)
		s.record(sub, now, err, nil)
		return Outcome{}, err
	}

	out, err := s.apply(ctx, sub, now)
	if err != nil {
		s.logger.Error("score store failed", "wallet", sub.Wallet, "err", err)
		s.record(sub, now, err, nil)
		return Outcome{}, err
	}
	s.limiter.Record(sub.Wallet, now)
	out.Remaining = s.RemainingSubmissions(sub.Wallet)
	s.record(sub, now, nil, &out)
	s.logger.Info("score accepted", "wallet", sub.Wallet, "week", sub.WeekID, "score", sub.Score, "result", out.Message)

	s.notify(Accepted{WeekID: sub.WeekID, Wallet: sub.Wallet, Score: sub.Score, NewBest: out.NewBest(), At: now})
	return out, nil
}

func (s *Service) apply(ctx context.Context, sub Submission, now time.Time) (Outcome, error) {
	prev, ok, err := s.store.WeeklyScore(ctx, sub.Wallet, sub.WeekID)
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	out := Outcome{Success: true, Score: sub.Score}
	switch {
	case !ok:
		if err := s.store.InsertWeeklyScore(ctx, sub.Wallet, sub.WeekID, sub.Score, now); err != nil {
			return Outcome{}, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		out.Message = MsgSubmitted
	case sub.Score > prev:
		if err := s.store.UpdateWeeklyScore(ctx, sub.Wallet, sub.WeekID, sub.Score, now); err != nil {
			return Outcome{}, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		out.Message = MsgNewBest
		out.PreviousBest = &prev
	default:
		out.Message = MsgNotBest
		out.CurrentBest = &prev
	}
	return out, nil
}

func (s *Service) notify(a Accepted) {
	s.hooksMu.RLock()
	defer s.hooksMu.RUnlock()
	for _, fn := range s.hooks {
		fn(a)
	}
}

func (s *Service) record(sub Submission, now time.Time, err error, out *Outcome) {
	if s.audit == nil {
		return
	}
	rec := AuditRecord{
		At:        now.UTC(),
		Wallet:    sub.Wallet,
		Score:     sub.Score,
		WeekID:    sub.WeekID,
		Timestamp: sub.Timestamp,
		Nonce:     sub.Nonce,
		Accepted:  err == nil,
	}
	if err != nil {
		rec.Class = Classify(err).String()
		rec.Reason = err.Error()
	}
	if out != nil {
		rec.Result = out.Message
	}
	if aerr := s.audit.Record(rec); aerr != nil {
		s.logger.Warn("audit write failed", "err", aerr)
	}
}

// Query returns the top rows of weekID (the current week when empty) and,
// if wallet has a row, its rank.
func (s *Service) Query(ctx context.Context, weekID, wallet string) (Board, error) {
	if weekID == "" {
		weekID = WeekID(s.now())
	}
	if !ValidWeekID(weekID) {
		return Board{}, fmt.Errorf("%w: week id %q", ErrMalformed, weekID)
	}

	top, err := s.store.TopWeekly(ctx, weekID, s.size)
	if err != nil {
		return Board{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if top == nil {
		top = []Entry{}
	}
	board := Board{WeekID: weekID, Leaderboard: top}

	if wallet == "" {
		return board, nil
	}
	score, ok, err := s.store.WeeklyScore(ctx, wallet, weekID)
	if err != nil {
		return Board{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if !ok {
		return board, nil
	}
	above, err := s.store.CountAbove(ctx, weekID, score)
	if err != nil {
		return Board{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	board.UserRank = &Rank{Rank: above + 1, Score: score}
	return board, nil
}

// RemainingSubmissions returns how many claims wallet may still make in
// the current window.
func (s *Service) RemainingSubmissions(wallet string) int {
	return s.limiter.Remaining(wallet, s.now())
}

// PruneRateLimits drops idle wallets from the rate table.
func (s *Service) PruneRateLimits() {
	s.limiter.Prune(s.now())
}
