package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/miklz/enrust/internal/service"
)

func newTestApp() *fiber.App {
	gs := service.NewGameService(nil)
	gc := NewGameController(gs)

	app := fiber.New()
	game := app.Group("/api/game")
	game.Post("/create", gc.CreateGame)
	game.Get("/:gameId", gc.GetGameState)
	game.Post("/:gameId/move", gc.PlayMove)
	game.Post("/:gameId/undo", gc.UndoMove)
	game.Get("/:gameId/bestmove", gc.BestMove)
	game.Get("/:gameId/perft", gc.Perft)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("%s %s: decoding response: %v", method, path, err)
	}
	return resp.StatusCode, decoded
}

func createGame(t *testing.T, app *fiber.App) string {
	t.Helper()
	status, body := doJSON(t, app, http.MethodPost, "/api/game/create", nil)
	if status != http.StatusOK {
		t.Fatalf("create: status %d body %v", status, body)
	}
	id, _ := body["game_id"].(string)
	if id == "" {
		t.Fatalf("create: no game_id in %v", body)
	}
	return id
}

func TestCreateAndFetchGame(t *testing.T) {
	app := newTestApp()
	id := createGame(t, app)

	status, body := doJSON(t, app, http.MethodGet, "/api/game/"+id, nil)
	if status != http.StatusOK {
		t.Fatalf("get: status %d body %v", status, body)
	}
	if body["turn"] != "white" || body["status"] != "in_progress" {
		t.Fatalf("unexpected state: %v", body)
	}
}

func TestPlayAndUndoMove(t *testing.T) {
	app := newTestApp()
	id := createGame(t, app)

	status, body := doJSON(t, app, http.MethodPost, "/api/game/"+id+"/move",
		map[string]string{"move": "e2e4"})
	if status != http.StatusOK {
		t.Fatalf("move: status %d body %v", status, body)
	}
	if body["turn"] != "black" {
		t.Fatalf("after e2e4: %v", body)
	}

	status, body = doJSON(t, app, http.MethodPost, "/api/game/"+id+"/move",
		map[string]string{"move": "e1e8"})
	if status != http.StatusBadRequest {
		t.Fatalf("illegal move: status %d body %v", status, body)
	}

	status, _ = doJSON(t, app, http.MethodPost, "/api/game/"+id+"/undo", nil)
	if status != http.StatusOK {
		t.Fatalf("undo: status %d", status)
	}
}

func TestGameNotFoundStatus(t *testing.T) {
	app := newTestApp()
	status, _ := doJSON(t, app, http.MethodGet, "/api/game/unknown", nil)
	if status != http.StatusNotFound {
		t.Fatalf("unknown game: status %d want 404", status)
	}
}

func TestBestMoveEndpoint(t *testing.T) {
	app := newTestApp()
	id := createGame(t, app)
	status, body := doJSON(t, app, http.MethodGet, "/api/game/"+id+"/bestmove?depth=2", nil)
	if status != http.StatusOK {
		t.Fatalf("bestmove: status %d body %v", status, body)
	}
	if body["best_move"] == "" || body["best_move"] == nil {
		t.Fatalf("bestmove: empty result %v", body)
	}
}

func TestPerftEndpoint(t *testing.T) {
	app := newTestApp()
	id := createGame(t, app)

	status, body := doJSON(t, app, http.MethodGet, "/api/game/"+id+"/perft?depth=2", nil)
	if status != http.StatusOK {
		t.Fatalf("perft: status %d body %v", status, body)
	}
	if nodes, ok := body["nodes"].(float64); !ok || nodes != 400 {
		t.Fatalf("perft(2): got %v want 400", body["nodes"])
	}

	status, _ = doJSON(t, app, http.MethodGet, "/api/game/"+id+"/perft?depth=99", nil)
	if status != http.StatusBadRequest {
		t.Fatalf("perft depth 99: status %d want 400", status)
	}
}
