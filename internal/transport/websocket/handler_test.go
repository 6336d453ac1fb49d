package websocket

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/iamasit07/connectfour/internal/domain"
	"github.com/iamasit07/connectfour/internal/event"
	"github.com/iamasit07/connectfour/internal/transport/http/middleware"
)

const gameID = domain.GameID("0190a6c4-7b5e-7c3a-9f1e-3b2d4c5e6f70")

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeGames map[domain.GameID]domain.Snapshot

func (g fakeGames) Get(_ context.Context, id domain.GameID) (domain.Snapshot, error) {
	snapshot, ok := g[id]
	if !ok {
		return domain.Snapshot{}, domain.ErrGameNotFound
	}
	return snapshot, nil
}

type fakeSubscription struct {
	messages chan []byte
	once     sync.Once
	closed   chan struct{}
}

func (s *fakeSubscription) Messages() <-chan []byte { return s.messages }

func (s *fakeSubscription) Close() error {
	s.once.Do(func() { close(s.closed) })
	return nil
}

type fakeFeed struct {
	sub *fakeSubscription
	err error
}

func (f *fakeFeed) Subscribe(context.Context, domain.GameID) (event.Subscription, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sub, nil
}

func runningSnapshot() domain.Snapshot {
	return domain.Snapshot{
		GameID: gameID,
		State: domain.StateSnapshot{
			Kind:    domain.StateRunning,
			Players: []domain.Player{{ID: "a", Stone: domain.Red}, {ID: "b", Stone: domain.Yellow}},
		},
	}
}

func newFeedServer(t *testing.T, games fakeGames, feed event.Feed) (*httptest.Server, *ConnectionManager) {
	t.Helper()
	connections := NewConnectionManager()
	handler := NewHandler(games, feed, connections, nil, nil)

	router := gin.New()
	router.GET("/ws/games/:id", middleware.PlayerIdentity(""), handler.HandleGameFeed)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, connections
}

func TestCanWatch(t *testing.T) {
	owner := domain.Player{ID: "a", Stone: domain.Red}
	open := domain.Snapshot{State: domain.StateSnapshot{Kind: domain.StateOpen, Owner: &owner}}
	won := domain.Snapshot{State: domain.StateSnapshot{Kind: domain.StateWon, Winner: &owner}}

	cases := []struct {
		name     string
		snapshot domain.Snapshot
		player   string
		want     error
	}{
		{"owner of open game", open, "a", nil},
		{"stranger to open game", open, "b", domain.ErrPlayerNotFound},
		{"running participant", runningSnapshot(), "b", nil},
		{"running stranger", runningSnapshot(), "c", domain.ErrPlayerNotFound},
		{"finished game", won, "a", domain.ErrGameFinished},
	}
	for _, tc := range cases {
		if err := canWatch(tc.snapshot, tc.player); !errors.Is(err, tc.want) {
			t.Fatalf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestFeedRejectsBeforeUpgrade(t *testing.T) {
	server, _ := newFeedServer(t, fakeGames{gameID: runningSnapshot()}, &fakeFeed{err: errors.New("redis down")})

	cases := []struct {
		path   string
		player string
		status int
	}{
		{"/ws/games/" + gameID.String(), "", http.StatusUnauthorized},
		{"/ws/games/" + gameID.String(), "c", http.StatusForbidden},
		{"/ws/games/0190a6c4-7b5e-7c3a-9f1e-3b2d4c5e6f71", "a", http.StatusNotFound},
		{"/ws/games/" + gameID.String(), "a", http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		req, _ := http.NewRequest(http.MethodGet, server.URL+tc.path, nil)
		if tc.player != "" {
			req.Header.Set("X-Player-Id", tc.player)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != tc.status {
			t.Fatalf("%s as %q: status = %d, want %d", tc.path, tc.player, resp.StatusCode, tc.status)
		}
	}
}

func TestFeedForwardsEnvelopes(t *testing.T) {
	sub := &fakeSubscription{messages: make(chan []byte, 1), closed: make(chan struct{})}
	server, connections := newFeedServer(t, fakeGames{gameID: runningSnapshot()}, &fakeFeed{sub: sub})

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/games/" + gameID.String() + "?playerId=a"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	sub.messages <- []byte(`{"name":"PlayerMoved"}`)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(msg) != `{"name":"PlayerMoved"}` {
		t.Fatalf("message = %s", msg)
	}
	if n := connections.Count(gameID); n != 1 {
		t.Fatalf("open connections = %d", n)
	}

	conn.Close()
	select {
	case <-sub.closed:
	case <-time.After(2 * time.Second):
		t.Fatalf("subscription was not closed after the client left")
	}
}

func TestFeedClosesAfterTheGameFinishes(t *testing.T) {
	sub := &fakeSubscription{messages: make(chan []byte, 2), closed: make(chan struct{})}
	server, connections := newFeedServer(t, fakeGames{gameID: runningSnapshot()}, &fakeFeed{sub: sub})

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/games/" + gameID.String() + "?playerId=a"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	sub.messages <- []byte(`{"name":"PlayerMoved","gameId":"` + gameID.String() + `"}`)
	sub.messages <- []byte(`{"name":"GameWon","gameId":"` + gameID.String() + `"}`)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for _, want := range []string{"PlayerMoved", "GameWon"} {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read %s: %v", want, err)
		}
		if !strings.Contains(string(msg), want) {
			t.Fatalf("message = %s, want %s", msg, want)
		}
	}

	if _, _, err := conn.ReadMessage(); !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Fatalf("expected a normal close after GameWon, got %v", err)
	}
	select {
	case <-sub.closed:
	case <-time.After(2 * time.Second):
		t.Fatalf("subscription was not closed after the game finished")
	}
	deadline := time.Now().Add(2 * time.Second)
	for connections.Count(gameID) != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("connection still tracked after the game finished")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestEndsGame(t *testing.T) {
	cases := map[string]bool{
		`{"name":"GameWon"}`:      true,
		`{"name":"GameDrawn"}`:    true,
		`{"name":"GameResigned"}`: true,
		`{"name":"GameAborted"}`:  true,
		`{"name":"PlayerMoved"}`:  false,
		`not json`:                false,
	}
	for msg, want := range cases {
		if got := endsGame([]byte(msg)); got != want {
			t.Errorf("endsGame(%s) = %t, want %t", msg, got, want)
		}
	}
}
