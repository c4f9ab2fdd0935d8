package cli

import (
	"context"
	"fmt"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// Spinner animates a status line while barcode images are rendered. The
// line shows how many of the sheet's images are ready. It stops on its own
// when its context is cancelled.
type Spinner struct {
	message string
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	stopped chan struct{}

	mu     sync.Mutex
	ready  int
	total  int
	width  int // widest line drawn so far
	closed sync.Once
}

func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	spinnerCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		message: message,
		ctx:     spinnerCtx,
		cancel:  cancel,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// SetProgress records that done of total images are ready. It matches
// the pipeline's progress callback and is safe to call from any goroutine.
func (s *Spinner) SetProgress(done, total int) {
	s.mu.Lock()
	s.ready, s.total = done, total
	s.mu.Unlock()
}

// line returns the status text without the animation frame.
func (s *Spinner) line() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.total == 0 {
		return s.message
	}
	return fmt.Sprintf("%s %d/%d", s.message, s.ready, s.total)
}

func (s *Spinner) Start() {
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-s.done:
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

func (s *Spinner) draw(frame string) {
	text := s.line()
	s.mu.Lock()
	s.width = max(s.width, len(text))
	s.mu.Unlock()

	uiMu.Lock()
	defer uiMu.Unlock()
	fmt.Fprintf(uiOut, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(text))
}

// Stop halts the animation and clears the line. Calling it more than once
// is harmless.
func (s *Spinner) Stop() {
	s.cancel()
	s.closed.Do(func() { close(s.done) })
	<-s.stopped
	s.clearLine()
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	width := max(s.width, len(s.message)) + 2
	s.mu.Unlock()

	uiMu.Lock()
	defer uiMu.Unlock()
	fmt.Fprintf(uiOut, "\r%*s\r", width, "")
}

// StopWithError stops the spinner and prints message as an error line.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the spinner's context was cancelled before
// Stop was called.
func (s *Spinner) Cancelled() bool {
	select {
	case <-s.done:
		return false
	default:
		return s.ctx.Err() != nil
	}
}
