package main

import (
	"bytes"
	"sort"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/miklz/enrust/board"
)

// The debug commands read the board directly, so they must wait out a running
// search like every other command. The fake search below holds the board in a
// mutated state until it finishes.
func TestDebugCommandsWaitForRunningSearch(t *testing.T) {
	for _, cmd := range []string{"eval", "d"} {
		t.Run(cmd, func(t *testing.T) {
			s := newSession()
			var mutating atomic.Bool
			started := make(chan struct{})
			s.searching.Add(1)
			go func() {
				defer s.searching.Done()
				st := s.board.MakeMove(s.board.GenerateMoves()[0])
				mutating.Store(true)
				close(started)
				time.Sleep(20 * time.Millisecond)
				s.board.UnmakeMove(st)
				mutating.Store(false)
			}()
			<-started

			var out bytes.Buffer
			s.handle(&out, []string{cmd})
			if mutating.Load() {
				t.Fatalf("%s read the board while a search was mutating it", cmd)
			}
			if cmd == "d" && !strings.Contains(out.String(), board.FENStartPos) {
				t.Fatalf("d printed a half-made position: %q", out.String())
			}
		})
	}
}

func TestSetPositionBadMoveLeavesSessionUnchanged(t *testing.T) {
	s := newSession()
	if err := s.setPosition(board.FENStartPos, []string{"e2e4", "e7e5"}); err != nil {
		t.Fatalf("setPosition: %v", err)
	}
	want := s.board.ToFEN()

	// e4e5 is illegal after 1.d4 d5: the whole list must be rejected.
	err := s.setPosition(board.FENStartPos, []string{"d2d4", "d7d5", "e4e5"})
	if err == nil {
		t.Fatal("setPosition accepted an illegal move list")
	}
	if got := s.board.ToFEN(); got != want {
		t.Fatalf("session changed after failed setPosition: got %q want %q", got, want)
	}
	if len(s.stack) != 2 || len(s.history) != 3 {
		t.Fatalf("undo bookkeeping changed: %d moves, %d hashes", len(s.stack), len(s.history))
	}
}

func TestHandlePerftDivideOutputSorted(t *testing.T) {
	b, err := board.ParseFEN(board.FENStartPos)
	if err != nil {
		t.Fatalf("ParseFEN failed: %v", err)
	}
	var out bytes.Buffer
	handlePerft(&out, b, []string{"2"})

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 21 {
		t.Fatalf("output lines: got %d want 21", len(lines))
	}
	moves := make([]string, 0, 20)
	for _, line := range lines[:20] {
		// "info string a2a3: 20"
		fields := strings.Fields(line)
		moves = append(moves, strings.TrimSuffix(fields[2], ":"))
	}
	if !sort.StringsAreSorted(moves) {
		t.Fatalf("divide moves not sorted: %v", moves)
	}
	if !strings.Contains(lines[20], "total 400") {
		t.Fatalf("missing total line: %q", lines[20])
	}
}
