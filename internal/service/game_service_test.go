package service

import (
	"errors"
	"testing"

	"github.com/miklz/enrust/board"
	"github.com/miklz/enrust/internal/storage"
)

func TestCreateAndGetGame(t *testing.T) {
	gs := NewGameService(nil)
	id, err := gs.CreateGame("")
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	state, err := gs.GetState(id)
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}
	if state.FEN != board.FENStartPos {
		t.Errorf("FEN: got %q want start position", state.FEN)
	}
	if state.Turn != "white" || state.InCheck || state.Status != "in_progress" {
		t.Errorf("unexpected initial state: %+v", state)
	}
	if len(state.LegalMoves) != 20 {
		t.Errorf("legal moves: got %d want 20", len(state.LegalMoves))
	}
}

func TestCreateGameBadFEN(t *testing.T) {
	gs := NewGameService(nil)
	if _, err := gs.CreateGame("not a fen"); err == nil {
		t.Fatal("CreateGame accepted garbage FEN")
	}
}

func TestApplyAndUndoMove(t *testing.T) {
	gs := NewGameService(nil)
	id, _ := gs.CreateGame("")

	state, err := gs.ApplyMove(id, "e2e4")
	if err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if state.Turn != "black" || len(state.Moves) != 1 {
		t.Fatalf("state after e2e4: %+v", state)
	}

	if _, err := gs.ApplyMove(id, "e2e4"); err == nil {
		t.Fatal("ApplyMove accepted a move for the wrong side")
	}
	if _, err := gs.ApplyMove(id, "zzzz"); err == nil {
		t.Fatal("ApplyMove accepted a malformed move")
	}

	state, err = gs.UndoMove(id)
	if err != nil {
		t.Fatalf("UndoMove: %v", err)
	}
	if state.FEN != board.FENStartPos || len(state.Moves) != 0 {
		t.Fatalf("state after undo: %+v", state)
	}
	if _, err := gs.UndoMove(id); err == nil {
		t.Fatal("UndoMove succeeded with no moves played")
	}
}

func TestGameNotFound(t *testing.T) {
	gs := NewGameService(nil)
	if _, err := gs.GetState("missing"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("GetState: got %v want ErrGameNotFound", err)
	}
	if _, err := gs.ApplyMove("missing", "e2e4"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("ApplyMove: got %v want ErrGameNotFound", err)
	}
}

func TestCheckmateStatus(t *testing.T) {
	gs := NewGameService(nil)
	// Fool's mate, one move before the end.
	id, err := gs.CreateGame("rnbqkbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b KQkq - 0 2")
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	state, err := gs.ApplyMove(id, "d8h4")
	if err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if state.Status != "checkmate" || len(state.LegalMoves) != 0 {
		t.Fatalf("after Qh4#: %+v", state)
	}
}

func TestBestMoveAndPerft(t *testing.T) {
	gs := NewGameService(nil)
	// White mates with e1e8.
	id, _ := gs.CreateGame("6k1/5ppp/8/8/8/8/8/4R1K1 w - - 0 1")

	res, err := gs.BestMove(id, 3, 0)
	if err != nil {
		t.Fatalf("BestMove: %v", err)
	}
	if res.BestMove != "e1e8" {
		t.Errorf("best move: got %s want e1e8", res.BestMove)
	}
	if res.Score != "mate 1" {
		t.Errorf("score: got %q want %q", res.Score, "mate 1")
	}

	startID, _ := gs.CreateGame("")
	nodes, err := gs.Perft(startID, 3)
	if err != nil {
		t.Fatalf("Perft: %v", err)
	}
	if nodes != 8902 {
		t.Errorf("perft(3): got %d want 8902", nodes)
	}
	if _, err := gs.Perft(startID, 9); err == nil {
		t.Error("Perft accepted an out-of-range depth")
	}
}

func TestBestMoveStreamProgress(t *testing.T) {
	gs := NewGameService(nil)
	id, _ := gs.CreateGame("")

	var depths []int
	res, err := gs.BestMoveStream(id, 3, 0, func(progress *SearchResult) {
		depths = append(depths, progress.Depth)
	})
	if err != nil {
		t.Fatalf("BestMoveStream: %v", err)
	}
	if len(depths) != 3 || depths[0] != 1 || depths[2] != 3 {
		t.Fatalf("progress depths: got %v want [1 2 3]", depths)
	}
	if res.Depth != 3 {
		t.Fatalf("final depth: got %d want 3", res.Depth)
	}
}

func TestMovesSurviveStorageFailure(t *testing.T) {
	store, err := storage.Open(t.TempDir())
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	gs := NewGameService(store)
	id, err := gs.CreateGame("")
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	// Closing the store makes every subsequent write fail; the in-memory
	// game must stay authoritative.
	store.Close()

	state, err := gs.ApplyMove(id, "e2e4")
	if err != nil {
		t.Fatalf("ApplyMove with dead store: %v", err)
	}
	if state.Turn != "black" || len(state.Moves) != 1 {
		t.Fatalf("state after e2e4: %+v", state)
	}

	state, err = gs.UndoMove(id)
	if err != nil {
		t.Fatalf("UndoMove with dead store: %v", err)
	}
	if state.FEN != board.FENStartPos || len(state.Moves) != 0 {
		t.Fatalf("state after undo: %+v", state)
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	store, err := storage.Open(t.TempDir())
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	defer store.Close()

	gs := NewGameService(store)
	id, err := gs.CreateGame("")
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	for _, m := range []string{"e2e4", "e7e5", "g1f3"} {
		if _, err := gs.ApplyMove(id, m); err != nil {
			t.Fatalf("ApplyMove(%s): %v", m, err)
		}
	}
	want, _ := gs.GetState(id)

	// A fresh service backed by the same store replays the game.
	gs2 := NewGameService(store)
	if err := gs2.LoadGame(id); err != nil {
		t.Fatalf("LoadGame: %v", err)
	}
	got, err := gs2.GetState(id)
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}
	if got.FEN != want.FEN || len(got.Moves) != len(want.Moves) {
		t.Fatalf("restored state: got %+v want %+v", got, want)
	}

	if err := gs2.LoadGame("missing"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("LoadGame(missing): got %v want ErrGameNotFound", err)
	}
}
