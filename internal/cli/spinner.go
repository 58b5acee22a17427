package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

const spinnerInterval = 100 * time.Millisecond

var spinnerFrames = [...]string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner animates a status line on stderr while a long operation runs.
// The message can be swapped mid-run to reflect the current stage, and the
// animation stops when the parent context is cancelled.
type spinner struct {
	w      io.Writer
	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	message string
	width   int // widest line drawn so far, for clearing
	running bool

	stopOnce sync.Once
	finished chan struct{}
}

func newSpinner(ctx context.Context, message string) *spinner {
	inner, cancel := context.WithCancel(ctx)
	return &spinner{
		w:        os.Stderr,
		parent:   ctx,
		ctx:      inner,
		cancel:   cancel,
		message:  message,
		width:    len(message) + 2,
		finished: make(chan struct{}),
	}
}

// Start launches the animation goroutine. Stop reclaims it.
func (s *spinner) Start() {
	s.mu.Lock()
	s.running = true
	s.mu.Unlock()
	go s.run()
}

func (s *spinner) run() {
	defer close(s.finished)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-s.ctx.Done():
			s.clear()
			return
		case <-ticker.C:
			s.draw(spinnerFrames[frame%len(spinnerFrames)])
		}
	}
}

// SetMessage swaps the status line text on the next frame.
func (s *spinner) SetMessage(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

func (s *spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n := len(s.message) + 2; n > s.width {
		s.width = n
	}
	fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
}

func (s *spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width))
}

// Stop halts the animation and clears the status line. Safe to call more
// than once, and safe before Start.
func (s *spinner) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		s.mu.Lock()
		running := s.running
		s.mu.Unlock()
		if running {
			<-s.finished
		}
	})
}

// StopWithError stops the spinner and prints message as an error line.
func (s *spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the parent context was cancelled, as opposed
// to the spinner being stopped normally.
func (s *spinner) Cancelled() bool {
	return s.parent.Err() != nil
}
