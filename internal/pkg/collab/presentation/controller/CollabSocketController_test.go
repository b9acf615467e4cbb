package controller

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"go-collab/internal/infrastructure/realtime"
	collab "go-collab/internal/pkg/collab/application/domain"
)

// wsFrame is the superset of frames the server emits, for decoding in tests.
type wsFrame struct {
	Type     string               `json:"type"`
	Clients  []collab.Client      `json:"clients"`
	Username string               `json:"username"`
	SocketID string               `json:"socketId"`
	Code     string               `json:"code"`
	Editors  []collab.EditorEntry `json:"editors"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rt := realtime.NewRouter()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := gin.New()
	socketCtl := NewCollabSocketController(nil, rt, nil, logger)
	r.GET("/ws", socketCtl.Handle())
	r.GET("/room/:roomId/members", NewGetRoomMembersController(rt).Handle())
	r.GET("/room/:roomId/editors", NewGetRoomEditorsController(rt).Handle())

	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		rt.Close()
		srv.Close()
	})
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) wsFrame {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var f wsFrame
	if err := json.Unmarshal(data, &f); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return f
}

func expectFrame(t *testing.T, conn *websocket.Conn, typ string) wsFrame {
	t.Helper()
	f := readFrame(t, conn)
	if f.Type != typ {
		t.Fatalf("got frame %q, want %q (frame: %+v)", f.Type, typ, f)
	}
	return f
}

func sendFrame(t *testing.T, conn *websocket.Conn, v any) {
	t.Helper()
	if err := conn.WriteJSON(v); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestSocketSessionLifecycle(t *testing.T) {
	srv := newTestServer(t)

	c1 := dial(t, srv)
	c1ID := expectFrame(t, c1, "connected").SocketID
	if c1ID == "" {
		t.Fatal("no socket id in handshake")
	}

	sendFrame(t, c1, map[string]string{"type": collab.ActionJoin, "roomId": "x", "username": "Alice"})
	joined := expectFrame(t, c1, collab.ActionJoined)
	if len(joined.Clients) != 1 || joined.Clients[0].SocketID != c1ID || joined.Clients[0].Username != "Alice" {
		t.Fatalf("first JOINED = %+v", joined)
	}

	c2 := dial(t, srv)
	c2ID := expectFrame(t, c2, "connected").SocketID

	sendFrame(t, c2, map[string]string{"type": collab.ActionJoin, "roomId": "x", "username": "Bob"})
	for _, conn := range []*websocket.Conn{c1, c2} {
		joined := expectFrame(t, conn, collab.ActionJoined)
		if joined.SocketID != c2ID || joined.Username != "Bob" {
			t.Fatalf("JOINED joiner = %+v", joined)
		}
		names := map[string]string{}
		for _, cl := range joined.Clients {
			names[cl.SocketID] = cl.Username
		}
		if len(names) != 2 || names[c1ID] != "Alice" || names[c2ID] != "Bob" {
			t.Fatalf("JOINED roster = %v", names)
		}
	}

	// Bob edits: Alice gets the editor update and the code, Bob only the update.
	sendFrame(t, c2, map[string]string{"type": collab.ActionCodeChange, "roomId": "x", "code": "print(1)"})

	update := expectFrame(t, c1, collab.ActionRecentEditors)
	if len(update.Editors) != 1 || update.Editors[0].SocketID != c2ID || update.Editors[0].Username != "Bob" {
		t.Fatalf("c1 editor update = %+v", update)
	}
	code := expectFrame(t, c1, collab.ActionCodeChange)
	if code.Code != "print(1)" {
		t.Fatalf("c1 code = %q", code.Code)
	}

	update = expectFrame(t, c2, collab.ActionRecentEditors)
	if len(update.Editors) != 1 || update.Editors[0].SocketID != c2ID {
		t.Fatalf("c2 editor update = %+v", update)
	}

	// Alice pushes the current code straight to Bob.
	sendFrame(t, c1, map[string]string{"type": collab.ActionSyncCode, "socketId": c2ID, "code": "synced"})
	code = expectFrame(t, c2, collab.ActionCodeChange)
	if code.Code != "synced" {
		t.Fatalf("synced code = %q", code.Code)
	}

	// Alice leaves: Bob is notified with her last known name.
	_ = c1.Close()
	gone := expectFrame(t, c2, collab.ActionDisconnected)
	if gone.SocketID != c1ID || gone.Username != "Alice" {
		t.Fatalf("DISCONNECTED = %+v", gone)
	}

	waitForMemberCount(t, srv, "x", 1)
}

func TestSocketRejectsMalformedAndUnknownFrames(t *testing.T) {
	srv := newTestServer(t)

	c := dial(t, srv)
	expectFrame(t, c, "connected")

	if err := c.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if f := expectFrame(t, c, "error"); f.Type != "error" {
		t.Fatalf("frame = %+v", f)
	}

	sendFrame(t, c, map[string]string{"type": "teleport"})
	expectFrame(t, c, "error")

	// Join without a room is refused but the session stays usable.
	sendFrame(t, c, map[string]string{"type": collab.ActionJoin, "username": "Alice"})
	expectFrame(t, c, "error")

	sendFrame(t, c, map[string]string{"type": collab.ActionJoin, "roomId": "x", "username": "Alice"})
	expectFrame(t, c, collab.ActionJoined)
}

func TestMembersAndEditorsEndpoints(t *testing.T) {
	srv := newTestServer(t)

	c := dial(t, srv)
	id := expectFrame(t, c, "connected").SocketID
	sendFrame(t, c, map[string]string{"type": collab.ActionJoin, "roomId": "x", "username": "Alice"})
	expectFrame(t, c, collab.ActionJoined)
	sendFrame(t, c, map[string]string{"type": collab.ActionCodeChange, "roomId": "x", "code": "1"})
	expectFrame(t, c, collab.ActionRecentEditors)

	var members struct {
		Clients []collab.Client `json:"clients"`
		Count   int             `json:"count"`
	}
	getJSON(t, srv.URL+"/room/x/members", &members)
	if members.Count != 1 || members.Clients[0].SocketID != id {
		t.Fatalf("members = %+v", members)
	}

	var editors struct {
		Editors []collab.EditorEntry `json:"editors"`
		Count   int                  `json:"count"`
	}
	getJSON(t, srv.URL+"/room/x/editors", &editors)
	if editors.Count != 1 || editors.Editors[0].Username != "Alice" {
		t.Fatalf("editors = %+v", editors)
	}

	// Unknown rooms read as empty.
	getJSON(t, srv.URL+"/room/ghost/members", &members)
	if members.Count != 0 {
		t.Fatalf("ghost members = %+v", members)
	}
}

func getJSON(t *testing.T, url string, v any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: status %d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
}

// waitForMemberCount polls the roster endpoint; disconnect cleanup runs in the
// connection handler after the transport drops, so it is eventually consistent
// from the HTTP side.
func waitForMemberCount(t *testing.T, srv *httptest.Server, roomID string, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		var members struct {
			Count int `json:"count"`
		}
		getJSON(t, srv.URL+"/room/"+roomID+"/members", &members)
		if members.Count == want {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("room %s member count = %d, want %d", roomID, members.Count, want)
		}
		time.Sleep(10 * time.Millisecond)
	}
}
