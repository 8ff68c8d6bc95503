package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ping-monitor/internal/models"
)

var base = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func sampleSnapshot(successful uint64) models.Snapshot {
	return models.Snapshot{
		Timestamp: base.Add(time.Duration(successful) * time.Second),
		Targets: []models.TargetSnapshot{
			{Target: "10.0.0.1", Successful: successful, LastReachable: true, LastLatencyMs: 12.5},
			{
				Target:        "10.0.0.2",
				TimedOut:      3,
				OpenIrregular: &models.Irregularity{Target: "10.0.0.2", Start: base, End: base.Add(5 * time.Minute)},
			},
		},
	}
}

func TestSnapshotEndpoint(t *testing.T) {
	s := New("127.0.0.1:0", nil)
	require.NoError(t, s.Render(sampleSnapshot(4)))

	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/snapshot", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got models.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Targets, 2)
	assert.Equal(t, uint64(4), got.Targets[0].Successful)
	assert.Equal(t, uint64(3), got.Targets[1].TimedOut)
}

func TestSnapshotEndpointRejectsPost(t *testing.T) {
	s := New("127.0.0.1:0", nil)
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/snapshot", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestIrregularitiesEndpoint(t *testing.T) {
	s := New("127.0.0.1:0", nil)
	require.NoError(t, s.Render(sampleSnapshot(1)))
	s.IrregularityClosed(models.Irregularity{Target: "10.0.0.1", Start: base, End: base.Add(6 * time.Minute)})

	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/irregularities", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got irregularitiesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Closed, 1)
	assert.Equal(t, "10.0.0.1", got.Closed[0].Target)
	require.Len(t, got.Open, 1)
	assert.Equal(t, "10.0.0.2", got.Open[0].Target)
}

func TestIrregularitiesEndpointEmpty(t *testing.T) {
	s := New("127.0.0.1:0", nil)
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/irregularities", nil))
	assert.JSONEq(t, `{"closed":[],"open":[]}`, rec.Body.String())
}

func TestHealthz(t *testing.T) {
	s := New("127.0.0.1:0", nil)
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func dialWS(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev event
	require.NoError(t, conn.ReadJSON(&ev))
	return ev
}

func TestWebsocketStreamsUpdates(t *testing.T) {
	s := New("127.0.0.1:0", nil)
	require.NoError(t, s.Render(sampleSnapshot(1)))

	ts := httptest.NewServer(s.Handler)
	defer ts.Close()
	conn := dialWS(t, ts)

	first := readEvent(t, conn)
	assert.Equal(t, eventSnapshot, first.Type)
	require.NotNil(t, first.Snapshot)
	assert.Equal(t, uint64(1), first.Snapshot.Targets[0].Successful)

	require.NoError(t, s.Render(sampleSnapshot(2)))
	second := readEvent(t, conn)
	require.NotNil(t, second.Snapshot)
	assert.Equal(t, uint64(2), second.Snapshot.Targets[0].Successful)

	s.IrregularityClosed(models.Irregularity{Target: "10.0.0.2", Start: base, End: base.Add(5 * time.Minute)})
	third := readEvent(t, conn)
	assert.Equal(t, eventIrregularity, third.Type)
	require.NotNil(t, third.Irregularity)
	assert.Equal(t, "10.0.0.2", third.Irregularity.Target)
}

func TestClientDropsOldestWhenFull(t *testing.T) {
	c := &client{send: make(chan event, 2)}
	for i := 1; i <= 3; i++ {
		snap := sampleSnapshot(uint64(i))
		c.offer(event{Type: eventSnapshot, Snapshot: &snap})
	}
	require.Len(t, c.send, 2)
	assert.Equal(t, uint64(2), (<-c.send).Snapshot.Targets[0].Successful)
	assert.Equal(t, uint64(3), (<-c.send).Snapshot.Targets[0].Successful)
}

func TestStartStopsOnCancel(t *testing.T) {
	s := New("127.0.0.1:0", nil)
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() { errCh <- s.Start(ctx) }()
	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestStartFailsOnBadAddress(t *testing.T) {
	s := New("127.0.0.1:-1", nil)
	assert.Error(t, s.Start(context.Background()))
}
