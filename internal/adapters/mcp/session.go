package mcp

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"stickies/internal/application"
	"stickies/internal/domain"
	"stickies/internal/logging"
	"stickies/internal/ports"
)

// Session serializes tool calls and watcher notifications onto one board.
// The board itself is single-threaded; every access goes through the mutex.
type Session struct {
	mu        sync.Mutex
	board     *application.Board
	repo      ports.NoteRepository
	writeBack bool

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSession wraps an open board
func NewSession(board *application.Board, repo ports.NoteRepository, writeBack bool) *Session {
	return &Session{board: board, repo: repo, writeBack: writeBack}
}

// Do runs fn with exclusive access to the board
func (s *Session) Do(fn func(board *application.Board) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.board)
}

// Watch applies changes until ctx is cancelled or the channel closes
func (s *Session) Watch(ctx context.Context, changes <-chan domain.Change) {
	for {
		select {
		case <-ctx.Done():
			return
		case ch, ok := <-changes:
			if !ok {
				return
			}
			s.mu.Lock()
			s.board.Apply(ch)
			s.mu.Unlock()
			logging.Debug("applied change", zap.Stringer("kind", ch.Kind), zap.String("path", ch.Path))
		}
	}
}

// Start runs Watch in the background until Close
func (s *Session) Start(ctx context.Context, changes <-chan domain.Change) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.Watch(ctx, changes)
	}()
}

// Close stops the background watch, waits for it to return, then ends the board session
func (s *Session) Close() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.board.Close()
}
