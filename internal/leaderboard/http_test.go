package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiRig struct {
	srv    *httptest.Server
	svc    *Service
	feed   *Feed
	client *Client
}

func newAPIRig(t *testing.T) *apiRig {
	t.Helper()
	logger := log.New(io.Discard)
	svc := newTestService(newMemStore(), WithLogger(logger))
	schema, err := NewSchemaValidator()
	require.NoError(t, err)
	feed := NewFeed(logger)
	feed.Attach(svc)

	srv := httptest.NewServer(NewHandler(svc, schema, feed, logger).Routes())
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, srv.Client())
	c.now = func() time.Time { return testNow }
	return &apiRig{srv: srv, svc: svc, feed: feed, client: c}
}

func (r *apiRig) post(t *testing.T, body string) (int, map[string]any) {
	t.Helper()
	resp, err := http.Post(r.srv.URL+"/api/submit-score", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestClientSubmitAndQuery(t *testing.T) {
	rig := newAPIRig(t)
	ctx := context.Background()
	signer := seededSigner(t, 1)

	out, err := rig.client.Submit(ctx, signer, 4200)
	require.NoError(t, err)
	assert.Equal(t, MsgSubmitted, out.Message)
	assert.EqualValues(t, 4200, out.Score)

	board, err := rig.client.Query(ctx, "", signer.Address())
	require.NoError(t, err)
	assert.Equal(t, "2026-W43", board.WeekID)
	assert.Equal(t, []Entry{{signer.Address(), 4200}}, board.Leaderboard)
	require.NotNil(t, board.UserRank)
	assert.Equal(t, 1, board.UserRank.Rank)
}

type refusingSigner struct {
	err   error
	calls int
}

func (s *refusingSigner) Address() string { return "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin" }

func (s *refusingSigner) SignMessage(context.Context, []byte) ([]byte, error) {
	s.calls++
	return nil, s.err
}

func TestClientSubmitSignerFailure(t *testing.T) {
	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	errRejected := errors.New("wallet rejected the request")
	signer := &refusingSigner{err: errRejected}

	_, err := NewClient(srv.URL, nil).Submit(context.Background(), signer, 4200)
	require.Error(t, err)
	assert.ErrorIs(t, err, errRejected)
	assert.Same(t, errRejected, err, "signer errors are returned unwrapped")
	assert.Equal(t, 1, signer.calls, "no retry after a signer failure")
	assert.Zero(t, requests.Load(), "nothing is sent without a signature")
}

func TestSubmitImplausibleScoreHTTP(t *testing.T) {
	rig := newAPIRig(t)
	sub := signed(t, seededSigner(t, 1), 100000, testNow.Add(-time.Minute))

	_, err := rig.client.Post(context.Background(), sub)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Score validation failed", apiErr.Message)
}

func TestSubmitRateLimitHTTP(t *testing.T) {
	rig := newAPIRig(t)
	signer := seededSigner(t, 1)
	for range 5 {
		_, err := rig.client.Submit(context.Background(), signer, 10)
		require.NoError(t, err)
	}
	_, err := rig.client.Submit(context.Background(), signer, 10)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.Status)
}

func TestSubmitBadSignatureHTTP(t *testing.T) {
	rig := newAPIRig(t)
	sub := signed(t, seededSigner(t, 1), 10, testNow)
	sub.Signature = signed(t, seededSigner(t, 1), 10, testNow).Signature

	_, err := rig.client.Post(context.Background(), sub)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid signature", apiErr.Message)
}

func TestSubmitSchemaErrors(t *testing.T) {
	rig := newAPIRig(t)

	code, body := rig.post(t, `{"wallet":"abc","score":10}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Missing required fields", body["error"])

	code, body = rig.post(t, `{"wallet":"","score":1,"weekId":"2026-W43","timestamp":1,"nonce":"n","signature":"s","message":"m"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Missing required fields", body["error"])

	code, body = rig.post(t, `{"wallet":"w","score":1.5,"weekId":"2026-W43","timestamp":1,"nonce":"n","signature":"s","message":"m"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid request body", body["error"])

	code, body = rig.post(t, `not json`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid request body", body["error"])
}

func TestMethodAndCORS(t *testing.T) {
	rig := newAPIRig(t)

	resp, err := http.Get(rig.srv.URL + "/api/submit-score")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	req, err := http.NewRequest(http.MethodOptions, rig.srv.URL+"/api/submit-score", nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Content-Type", resp.Header.Get("Access-Control-Allow-Headers"))

	resp, err = http.Post(rig.srv.URL+"/api/leaderboard", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp, err = http.Get(rig.srv.URL + "/api/leaderboard?weekId=soon")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFeedPushesNewBest(t *testing.T) {
	rig := newAPIRig(t)
	url := "ws" + strings.TrimPrefix(rig.srv.URL, "http") + "/api/feed"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return rig.feed.Subscribers() == 1 }, 2*time.Second, 10*time.Millisecond)

	signer := seededSigner(t, 1)
	_, err = rig.client.Submit(context.Background(), signer, 300)
	require.NoError(t, err)
	// Not a new best: no event.
	_, err = rig.client.Submit(context.Background(), signer, 100)
	require.NoError(t, err)
	_, err = rig.client.Submit(context.Background(), signer, 500)
	require.NoError(t, err)

	var scores []int64
	for range 2 {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		var ev FeedEvent
		require.NoError(t, conn.ReadJSON(&ev))
		assert.Equal(t, "new_best", ev.Type)
		assert.Equal(t, signer.Address(), ev.Wallet)
		scores = append(scores, ev.Score)
	}
	assert.Equal(t, []int64{300, 500}, scores)
}
