package service

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/miklz/enrust/board"
	"github.com/miklz/enrust/engine"
	"github.com/miklz/enrust/internal/storage"
)

// ErrGameNotFound is returned for operations on unknown game ids.
var ErrGameNotFound = errors.New("game not found")

// GameState is the wire representation of a position sent to clients.
type GameState struct {
	ID         string   `json:"id"`
	FEN        string   `json:"fen"`
	Turn       string   `json:"turn"`
	LegalMoves []string `json:"legal_moves"`
	InCheck    bool     `json:"in_check"`
	Status     string   `json:"status"`
	Moves      []string `json:"moves"`
}

// SearchResult is the wire representation of an engine search.
type SearchResult struct {
	BestMove string `json:"best_move"`
	Score    string `json:"score"`
	Depth    int    `json:"depth"`
	Nodes    uint64 `json:"nodes"`
	TimeMs   int64  `json:"time_ms"`
}

type game struct {
	id       string
	startFEN string
	board    *board.Board
	stack    []board.MoveState
	history  []uint64
	moves    []string
}

// GameService owns the live games and coordinates the engine and storage.
// All exported methods are safe for concurrent use.
type GameService struct {
	mu    sync.Mutex
	games map[string]*game
	store *storage.Storage // nil disables persistence
}

// NewGameService creates a service. store may be nil to run in-memory only.
func NewGameService(store *storage.Storage) *GameService {
	return &GameService{games: make(map[string]*game), store: store}
}

// CreateGame starts a new game from fen (the standard start position when
// empty) and returns its id.
func (gs *GameService) CreateGame(fen string) (string, error) {
	if fen == "" {
		fen = board.FENStartPos
	}
	b, err := board.ParseFEN(fen)
	if err != nil {
		return "", err
	}
	g := &game{
		id:       uuid.NewString(),
		startFEN: fen,
		board:    b,
		history:  []uint64{b.Hash()},
	}
	gs.mu.Lock()
	gs.games[g.id] = g
	gs.mu.Unlock()

	gs.persist(g)
	return g.id, nil
}

// LoadGame restores a persisted game into memory by replaying its move list.
func (gs *GameService) LoadGame(id string) error {
	if gs.store == nil {
		return ErrGameNotFound
	}
	rec, ok, err := gs.store.LoadGame(id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrGameNotFound
	}
	b, err := board.ParseFEN(rec.StartFEN)
	if err != nil {
		return fmt.Errorf("stored game %s: %w", id, err)
	}
	g := &game{
		id:       rec.ID,
		startFEN: rec.StartFEN,
		board:    b,
		history:  []uint64{b.Hash()},
	}
	for _, ms := range rec.Moves {
		m, err := b.ParseMove(ms)
		if err != nil {
			return fmt.Errorf("stored game %s, move %s: %w", id, ms, err)
		}
		if !b.PushMove(m, &g.stack, &g.history) {
			return fmt.Errorf("stored game %s, move %s rejected", id, ms)
		}
		g.moves = append(g.moves, ms)
	}
	gs.mu.Lock()
	gs.games[id] = g
	gs.mu.Unlock()
	return nil
}

// GetState returns the current state of a game.
func (gs *GameService) GetState(id string) (*GameState, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	g, ok := gs.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return stateOf(g), nil
}

// ApplyMove plays a move given in coordinate notation ("e2e4"). Illegal moves
// are rejected and leave the game unchanged.
func (gs *GameService) ApplyMove(id, moveStr string) (*GameState, error) {
	gs.mu.Lock()
	g, ok := gs.games[id]
	if !ok {
		gs.mu.Unlock()
		return nil, ErrGameNotFound
	}
	m, err := g.board.ParseMove(moveStr)
	if err != nil {
		gs.mu.Unlock()
		return nil, err
	}
	if !g.board.PushMove(m, &g.stack, &g.history) {
		gs.mu.Unlock()
		return nil, fmt.Errorf("illegal move %s", moveStr)
	}
	g.moves = append(g.moves, m.String())
	state := stateOf(g)
	gs.mu.Unlock()

	gs.persist(g)
	return state, nil
}

// UndoMove takes back the last played move.
func (gs *GameService) UndoMove(id string) (*GameState, error) {
	gs.mu.Lock()
	g, ok := gs.games[id]
	if !ok {
		gs.mu.Unlock()
		return nil, ErrGameNotFound
	}
	if len(g.stack) == 0 {
		gs.mu.Unlock()
		return nil, errors.New("no moves to undo")
	}
	g.board.PopMove(&g.stack, &g.history)
	g.moves = g.moves[:len(g.moves)-1]
	state := stateOf(g)
	gs.mu.Unlock()

	gs.persist(g)
	return state, nil
}

// BestMove searches the current position. depth and moveTimeMs bound the
// search; zero values fall back to a depth 5 search.
func (gs *GameService) BestMove(id string, depth, moveTimeMs int) (*SearchResult, error) {
	return gs.BestMoveStream(id, depth, moveTimeMs, nil)
}

// BestMoveStream is BestMove with a progress callback: onProgress, when
// non-nil, receives the result of every completed deepening iteration before
// the final result is returned.
func (gs *GameService) BestMoveStream(id string, depth, moveTimeMs int, onProgress func(*SearchResult)) (*SearchResult, error) {
	gs.mu.Lock()
	g, ok := gs.games[id]
	if !ok {
		gs.mu.Unlock()
		return nil, ErrGameNotFound
	}
	limits := engine.Limits{Depth: depth}
	if moveTimeMs > 0 {
		limits.MoveTime = time.Duration(moveTimeMs) * time.Millisecond
	}
	if limits.Depth <= 0 && limits.MoveTime == 0 {
		limits.Depth = 5
	}
	if onProgress != nil {
		limits.OnIteration = func(r engine.Result) {
			onProgress(wireResult(r))
		}
	}
	res := engine.Search(g.board, limits)
	gs.mu.Unlock()

	if res.BestMove == board.NoMove {
		return nil, errors.New("no legal moves in this position")
	}
	return wireResult(res), nil
}

func wireResult(res engine.Result) *SearchResult {
	return &SearchResult{
		BestMove: res.BestMove.String(),
		Score:    engine.FormatScore(res.Score),
		Depth:    res.Depth,
		Nodes:    res.Nodes,
		TimeMs:   res.Elapsed.Milliseconds(),
	}
}

// Perft counts move-tree leaves of the current position, for debugging.
func (gs *GameService) Perft(id string, depth int) (uint64, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	g, ok := gs.games[id]
	if !ok {
		return 0, ErrGameNotFound
	}
	if depth < 1 || depth > 6 {
		return 0, errors.New("perft depth must be between 1 and 6")
	}
	return g.board.Perft(depth), nil
}

// persist writes the game through to storage, if configured. Persistence is
// best-effort: the in-memory game stays authoritative, and a storage error is
// logged rather than contradicting a move that was already applied.
func (gs *GameService) persist(g *game) {
	if gs.store == nil {
		return
	}
	gs.mu.Lock()
	rec := &storage.GameRecord{
		ID:       g.id,
		StartFEN: g.startFEN,
		Moves:    append([]string(nil), g.moves...),
		FEN:      g.board.ToFEN(),
		Status:   statusOf(g),
	}
	gs.mu.Unlock()
	if err := gs.store.SaveGame(rec); err != nil {
		log.Printf("game %s: persist failed: %v", g.id, err)
	}
}

func stateOf(g *game) *GameState {
	b := g.board
	moves := b.GenerateMoves()
	legal := make([]string, len(moves))
	for i, m := range moves {
		legal[i] = m.String()
	}
	return &GameState{
		ID:         g.id,
		FEN:        b.ToFEN(),
		Turn:       b.SideToMove().String(),
		LegalMoves: legal,
		InCheck:    b.InCheck(b.SideToMove()),
		Status:     statusOf(g),
		Moves:      append([]string(nil), g.moves...),
	}
}

func statusOf(g *game) string {
	b := g.board
	switch {
	case b.InCheckmate():
		return "checkmate"
	case b.InStalemate():
		return "stalemate"
	case b.IsDrawBy50():
		return "draw_50_moves"
	case b.IsDrawByRepetition(g.history):
		return "draw_repetition"
	default:
		return "in_progress"
	}
}
