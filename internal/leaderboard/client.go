package leaderboard

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mr-tron/base58"
)

// APIError is a non-200 answer from the leaderboard API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("leaderboard: %d %s", e.Status, e.Message)
}

// Client talks to the leaderboard API.
type Client struct {
	baseURL string
	http    *http.Client
	now     func() time.Time
}

// NewClient creates a client for the API at baseURL. hc may be nil.
func NewClient(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
		now:     time.Now,
	}
}

// NewSubmission builds and signs a claim of score for the current week.
// A signer failure is returned unchanged.
func NewSubmission(ctx context.Context, signer Signer, score int64, now time.Time) (Submission, error) {
	nonce, err := newNonce()
	if err != nil {
		return Submission{}, err
	}
	p := Payload{
		Action:    ActionSubmitScore,
		Wallet:    signer.Address(),
		Score:     score,
		WeekID:    WeekID(now),
		Timestamp: now.UnixMilli(),
		Nonce:     nonce,
	}
	msg, err := CanonicalMessage(p)
	if err != nil {
		return Submission{}, err
	}
	sig, err := signer.SignMessage(ctx, []byte(msg))
	if err != nil {
		return Submission{}, err
	}
	return Submission{
		Wallet:    p.Wallet,
		Score:     p.Score,
		WeekID:    p.WeekID,
		Timestamp: p.Timestamp,
		Nonce:     p.Nonce,
		Signature: base64.StdEncoding.EncodeToString(sig),
		Message:   msg,
	}, nil
}

func newNonce() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("leaderboard: nonce: %w", err)
	}
	return base58.Encode(b[:]), nil
}

// Submit signs score with signer and posts it.
func (c *Client) Submit(ctx context.Context, signer Signer, score int64) (Outcome, error) {
	sub, err := NewSubmission(ctx, signer, score, c.now())
	if err != nil {
		return Outcome{}, err
	}
	return c.Post(ctx, sub)
}

// Post sends an already signed claim.
func (c *Client) Post(ctx context.Context, sub Submission) (Outcome, error) {
	body, err := json.Marshal(sub)
	if err != nil {
		return Outcome{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/submit-score", bytes.NewReader(body))
	if err != nil {
		return Outcome{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	var out Outcome
	if err := c.do(req, &out); err != nil {
		return Outcome{}, err
	}
	return out, nil
}

// Query fetches the leaderboard of weekID (current week when empty) with
// the rank of wallet, if given.
func (c *Client) Query(ctx context.Context, weekID, wallet string) (Board, error) {
	q := url.Values{}
	if weekID != "" {
		q.Set("weekId", weekID)
	}
	if wallet != "" {
		q.Set("wallet", wallet)
	}
	u := c.baseURL + "/api/leaderboard"
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Board{}, err
	}

	var board Board
	if err := c.do(req, &board); err != nil {
		return Board{}, err
	}
	return board, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("leaderboard: %w", err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("leaderboard: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(b, &e)
		if e.Error == "" {
			e.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("leaderboard: decode response: %w", err)
	}
	return nil
}
