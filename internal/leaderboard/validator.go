// Package leaderboard implements the weekly score leaderboard: the server
// side integrity checks for signed score claims, the HTTP API in front of
// them, and a client that builds and signs claims.
package leaderboard

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/LandoCrissian/LAMMB-Runner/internal/config"
)

// ActionSubmitScore is the action field of a signed claim.
const ActionSubmitScore = "submit_score"

// Submission is a signed score claim as sent on the wire.
type Submission struct {
	Wallet    string `json:"wallet"`
	Score     int64  `json:"score"`
	WeekID    string `json:"weekId"`
	Timestamp int64  `json:"timestamp"` // epoch milliseconds
	Nonce     string `json:"nonce"`
	Signature string `json:"signature"` // base64 ed25519 signature of Message
	Message   string `json:"message"`
}

// Payload is the signed part of a claim. Its fields must repeat the
// top-level fields of the Submission.
type Payload struct {
	Action    string `json:"action"`
	Wallet    string `json:"wallet"`
	Score     int64  `json:"score"`
	WeekID    string `json:"weekId"`
	Timestamp int64  `json:"timestamp"`
	Nonce     string `json:"nonce"`
}

// CanonicalMessage serializes p in the field order clients sign.
func CanonicalMessage(p Payload) (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ClaimTime returns the claim timestamp as a time.
func (s Submission) ClaimTime() time.Time {
	return time.UnixMilli(s.Timestamp)
}

// Limits are the plausibility bounds a claim is judged against.
type Limits struct {
	MaxScorePerMinute float64
	Slack             float64
	Buffer            float64
	AssumedMaxRun     time.Duration
	MaxClockSkew      time.Duration
	MaxSubmissions    int
	Window            time.Duration
}

// LimitsFromConfig extracts the validator limits from server settings.
func LimitsFromConfig(cfg config.ServerConfig) Limits {
	return Limits{
		MaxScorePerMinute: cfg.MaxScorePerMinute,
		Slack:             cfg.ScoreSlack,
		Buffer:            cfg.ScoreBuffer,
		AssumedMaxRun:     cfg.AssumedMaxRun,
		MaxClockSkew:      cfg.MaxClockSkew,
		MaxSubmissions:    cfg.MaxSubmissionsPerHour,
		Window:            time.Hour,
	}
}

// Ceiling returns the highest score accepted for a claim made at
// claimTime and judged at now.
func (l Limits) Ceiling(claimTime, now time.Time) float64 {
	runMinutes := now.Sub(claimTime.Add(-l.AssumedMaxRun)).Minutes()
	return runMinutes*l.MaxScorePerMinute*l.Slack + l.Buffer
}

// Validator runs the ordered checks on a claim. It never writes the rate
// limit table; the caller records accepted claims.
type Validator struct {
	limits  Limits
	limiter *RateLimiter
}

// NewValidator creates a validator sharing limiter with its caller.
func NewValidator(limits Limits, limiter *RateLimiter) *Validator {
	return &Validator{limits: limits, limiter: limiter}
}

// Validate checks sub at now, short-circuiting on the first failure.
func (v *Validator) Validate(sub Submission, now time.Time) error {
	if sub.Wallet == "" || sub.WeekID == "" || sub.Timestamp <= 0 ||
		sub.Nonce == "" || sub.Signature == "" || sub.Message == "" {
		return ErrMissingFields
	}
	if sub.Score < 0 {
		return fmt.Errorf("%w: negative score", ErrMalformed)
	}
	if _, err := ParseWallet(sub.Wallet); err != nil {
		return err
	}
	if sub.WeekID != WeekID(now) {
		return ErrWeekMismatch
	}

	skew := now.Sub(sub.ClaimTime())
	if skew < 0 {
		skew = -skew
	}
	if skew > v.limits.MaxClockSkew {
		return ErrStaleTimestamp
	}

	if !v.limiter.Allow(sub.Wallet, now) {
		return ErrRateLimited
	}

	if float64(sub.Score) > v.limits.Ceiling(sub.ClaimTime(), now) {
		return ErrImplausibleScore
	}

	var p Payload
	if err := json.Unmarshal([]byte(sub.Message), &p); err != nil {
		return fmt.Errorf("%w: %v", ErrPayloadMismatch, err)
	}
	if p != (Payload{
		Action:    ActionSubmitScore,
		Wallet:    sub.Wallet,
		Score:     sub.Score,
		WeekID:    sub.WeekID,
		Timestamp: sub.Timestamp,
		Nonce:     sub.Nonce,
	}) {
		return ErrPayloadMismatch
	}

	return VerifySignature(sub.Wallet, sub.Message, sub.Signature)
}
