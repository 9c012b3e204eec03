package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/miklz/enrust/board"
	"github.com/miklz/enrust/engine"
)

func atoi(s string) int { v, _ := strconv.Atoi(s); return v }

// session holds the position the GUI has set up plus the undo bookkeeping
// needed for repetition detection.
type session struct {
	board   *board.Board
	stack   []board.MoveState
	history []uint64

	searching sync.WaitGroup
	stop      atomic.Bool
}

func newSession() *session {
	s := &session{}
	s.reset()
	return s
}

func (s *session) reset() {
	b, err := board.ParseFEN(board.FENStartPos)
	if err != nil {
		panic(err) // the start position constant always parses
	}
	s.board = b
	s.stack = s.stack[:0]
	s.history = append(s.history[:0], b.Hash())
}

// setPosition replays the move list on a fresh board and installs it only if
// every move applies, so a bad token leaves the session untouched.
func (s *session) setPosition(fen string, moves []string) error {
	b, err := board.ParseFEN(fen)
	if err != nil {
		return err
	}
	var stack []board.MoveState
	history := []uint64{b.Hash()}
	for _, ms := range moves {
		m, err := b.ParseMove(ms)
		if err != nil {
			return fmt.Errorf("move %s: %w", ms, err)
		}
		if !b.PushMove(m, &stack, &history) {
			return fmt.Errorf("move %s rejected", ms)
		}
	}
	s.board = b
	s.stack = stack
	s.history = history
	return nil
}

func main() {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 1<<16), 1<<16)
	s := newSession()

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !s.handle(os.Stdout, strings.Fields(line)) {
			return
		}
	}
}

// handle dispatches one command line. It returns false on quit. Every command
// that reads or writes the board waits for a running search first; the board
// is not safe for concurrent use.
func (s *session) handle(w io.Writer, parts []string) bool {
	switch parts[0] {
	case "quit":
		s.stop.Store(true)
		s.searching.Wait()
		return false
	case "uci":
		fmt.Fprintln(w, "id name enrust")
		fmt.Fprintln(w, "id author miklz")
		fmt.Fprintln(w, "uciok")
	case "isready":
		fmt.Fprintln(w, "readyok")
	case "ucinewgame":
		s.searching.Wait()
		s.reset()
	case "position":
		s.searching.Wait()
		if err := handlePosition(s, parts[1:]); err != nil {
			fmt.Fprintf(w, "info string %v\n", err)
		}
	case "go":
		s.searching.Wait()
		handleGo(s, w, parts[1:])
	case "stop":
		s.stop.Store(true)
		s.searching.Wait()
	case "perft":
		// Debug extension: "perft <depth>" prints divide counts.
		s.searching.Wait()
		handlePerft(w, s.board, parts[1:])
	case "eval":
		// Debug extension: static evaluation of the current position.
		s.searching.Wait()
		fmt.Fprintf(w, "info string eval %s\n", engine.FormatScore(engine.Evaluate(s.board)))
	case "d":
		// Debug extension: print the position as FEN.
		s.searching.Wait()
		fmt.Fprintf(w, "info string fen %s\n", s.board.ToFEN())
	}
	return true
}

func handlePosition(s *session, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("position: missing startpos or fen")
	}
	fen := board.FENStartPos
	var moves []string
	switch args[0] {
	case "startpos":
		if len(args) > 1 && args[1] == "moves" {
			moves = args[2:]
		}
	case "fen":
		rest := args[1:]
		for i, tok := range rest {
			if tok == "moves" {
				moves = rest[i+1:]
				rest = rest[:i]
				break
			}
		}
		fen = strings.Join(rest, " ")
	default:
		return fmt.Errorf("position: unknown subcommand %q", args[0])
	}
	return s.setPosition(fen, moves)
}

func handleGo(s *session, w io.Writer, args []string) {
	var limits engine.Limits
	var clock engine.Clock
	var hasClock, infinite bool
	stm := s.board.SideToMove()

	for i := 0; i < len(args); i++ {
		next := func() int {
			if i+1 < len(args) {
				i++
				return atoi(args[i])
			}
			return 0
		}
		switch args[i] {
		case "depth":
			limits.Depth = next()
		case "nodes":
			limits.Nodes = uint64(next())
		case "movetime":
			limits.MoveTime = time.Duration(next()) * time.Millisecond
		case "wtime":
			if v := next(); stm == board.White {
				clock.RemainingMs = v
				hasClock = true
			}
		case "btime":
			if v := next(); stm == board.Black {
				clock.RemainingMs = v
				hasClock = true
			}
		case "winc":
			if v := next(); stm == board.White {
				clock.IncrementMs = v
			}
		case "binc":
			if v := next(); stm == board.Black {
				clock.IncrementMs = v
			}
		case "infinite":
			infinite = true
		}
	}
	if hasClock && limits.MoveTime == 0 && !infinite {
		limits.MoveTime = engine.AllocateTime(clock)
	}
	if infinite {
		limits.MoveTime = 0
	}

	s.stop.Store(false)
	limits.Stop = &s.stop
	limits.OnIteration = func(r engine.Result) {
		fmt.Fprintf(w, "info depth %d score %s nodes %d time %d pv %s\n",
			r.Depth, engine.FormatScore(r.Score), r.Nodes,
			r.Elapsed.Milliseconds(), r.BestMove)
	}

	s.searching.Add(1)
	go func() {
		defer s.searching.Done()
		res := engine.Search(s.board, limits)
		if res.BestMove == board.NoMove {
			fmt.Fprintln(w, "bestmove (none)")
			return
		}
		fmt.Fprintf(w, "bestmove %s\n", res.BestMove)
	}()
}

func handlePerft(w io.Writer, b *board.Board, args []string) {
	depth := 1
	if len(args) > 0 {
		depth = atoi(args[0])
	}
	if depth < 1 {
		depth = 1
	}
	start := time.Now()
	div := b.PerftDivide(depth)
	moves := make([]board.Move, 0, len(div))
	for m := range div {
		moves = append(moves, m)
	}
	// Sort moves for stable output
	sort.Slice(moves, func(i, j int) bool { return moves[i].String() < moves[j].String() })
	var total uint64
	for _, m := range moves {
		fmt.Fprintf(w, "info string %s: %d\n", m, div[m])
		total += div[m]
	}
	fmt.Fprintf(w, "info string perft %d total %d in %v\n", depth, total, time.Since(start))
}
