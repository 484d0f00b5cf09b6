package api

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"lanewars/internal/battle"
	"lanewars/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) (*gin.Engine, *session.Manager) {
	t.Helper()
	m := session.NewManager(4, 60, battle.WithSeed(1), battle.WithEnemyAI(false))
	t.Cleanup(m.Close)
	return NewRouter(m, 1200), m
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func createSession(t *testing.T, r http.Handler) string {
	t.Helper()
	rec := do(r, "POST", "/api/sessions", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body)
	}
	var resp struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.ID == "" {
		t.Fatalf("create: bad body %s", rec.Body)
	}
	return resp.ID
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := do(r, "GET", "/health", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("unexpected health response %d %s", rec.Code, rec.Body)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("Expected CORS header")
	}
}

func TestListUnits(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := do(r, "GET", "/api/units", "")
	var resp struct {
		Units []unitView `json:"units"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Units) != 4 {
		t.Fatalf("Expected 4 archetypes, got %d", len(resp.Units))
	}
	archer := resp.Units[2]
	if archer.Kind != "archer" || archer.AttackCooldownMS != 1200 || !archer.Ranged {
		t.Errorf("unexpected archer entry: %+v", archer)
	}
}

func TestSessionLifecycle(t *testing.T) {
	r, _ := newTestRouter(t)
	id := createSession(t, r)

	rec := do(r, "GET", "/api/sessions", "")
	if !strings.Contains(rec.Body.String(), id) {
		t.Errorf("Expected %s in list, got %s", id, rec.Body)
	}

	rec = do(r, "GET", "/api/sessions/"+id, "")
	var snap battle.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.Player.HP != 100 || snap.Enemy.MaxHP != 100 {
		t.Errorf("unexpected snapshot %+v", snap)
	}

	rec = do(r, "POST", "/api/sessions/"+id+"/spawn", `{"kind":"knight"}`)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok":true`) {
		t.Fatalf("spawn: %d %s", rec.Code, rec.Body)
	}
	do(r, "POST", "/api/sessions/"+id+"/spawn", `{"kind":"knight"}`)
	rec = do(r, "POST", "/api/sessions/"+id+"/spawn", `{"kind":"knight"}`)
	if !strings.Contains(rec.Body.String(), `"ok":false`) {
		t.Errorf("Expected the third knight to be unaffordable, got %s", rec.Body)
	}

	rec = do(r, "POST", "/api/sessions/"+id+"/restart", "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("restart: expected 204, got %d", rec.Code)
	}

	rec = do(r, "DELETE", "/api/sessions/"+id, "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete: expected 204, got %d", rec.Code)
	}
	rec = do(r, "GET", "/api/sessions/"+id, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after delete, got %d", rec.Code)
	}
}

func TestSpawnRejectsBadInput(t *testing.T) {
	r, _ := newTestRouter(t)
	id := createSession(t, r)

	tests := []struct {
		name, body string
	}{
		{"unknown kind", `{"kind":"dragon"}`},
		{"missing kind", `{}`},
		{"not json", `kind=knight`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(r, "POST", "/api/sessions/"+id+"/spawn", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d: %s", rec.Code, rec.Body)
			}
		})
	}
}

func TestUnknownSession(t *testing.T) {
	r, _ := newTestRouter(t)
	for _, tt := range []struct{ method, path, body string }{
		{"GET", "/api/sessions/nope", ""},
		{"DELETE", "/api/sessions/nope", ""},
		{"POST", "/api/sessions/nope/spawn", `{"kind":"knight"}`},
		{"POST", "/api/sessions/nope/restart", ""},
		{"GET", "/api/sessions/nope/frame.png", ""},
		{"GET", "/ws/nope", ""},
	} {
		rec := do(r, tt.method, tt.path, tt.body)
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s %s: expected 404, got %d", tt.method, tt.path, rec.Code)
		}
	}
}

func TestSessionLimit(t *testing.T) {
	r, _ := newTestRouter(t)
	for i := 0; i < 4; i++ {
		createSession(t, r)
	}
	if rec := do(r, "POST", "/api/sessions", ""); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 past the limit, got %d", rec.Code)
	}
}

func TestFramePNG(t *testing.T) {
	r, _ := newTestRouter(t)
	id := createSession(t, r)

	rec := do(r, "GET", "/api/sessions/"+id+"/frame.png?width=300", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %s", ct)
	}
	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 300 || b.Dy() != 150 {
		t.Errorf("Expected 300x150, got %v", b)
	}

	for _, w := range []string{"0", "abc", "5000"} {
		if rec := do(r, "GET", "/api/sessions/"+id+"/frame.png?width="+w, ""); rec.Code != http.StatusBadRequest {
			t.Errorf("width=%s: expected 400, got %d", w, rec.Code)
		}
	}
}

func TestWebsocketRoute(t *testing.T) {
	r, _ := newTestRouter(t)
	id := createSession(t, r)

	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/" + id
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	var msg session.StateMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	if msg.Type != session.TypeState {
		t.Errorf("Expected a state frame, got %q", msg.Type)
	}
}
