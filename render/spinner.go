package render

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// spinnerFrames walks a lit sextant around a 2x3 mosaic cell.
var spinnerFrames = []string{"\U0001FB00", "\U0001FB01", "\U0001FB07", "\U0001FB1E", "\U0001FB0F", "\U0001FB03"}

// Spinner provides an animated loading indicator.
type Spinner struct {
	frame    int
	lastTick time.Time
	interval time.Duration
}

// NewSpinner creates a spinner at its first frame.
func NewSpinner() *Spinner {
	return &Spinner{
		lastTick: time.Now(),
		interval: 100 * time.Millisecond,
	}
}

// Tick advances the animation if enough time has passed.
// Returns true if the frame changed.
func (s *Spinner) Tick() bool {
	now := time.Now()
	if now.Sub(s.lastTick) >= s.interval {
		s.frame++
		s.lastTick = now
		return true
	}
	return false
}

// Frame returns the current animation frame.
func (s *Spinner) Frame() string {
	return spinnerFrames[s.frame%len(spinnerFrames)]
}

// Spin draws the spinner and message on w until the returned stop func is
// called. stop clears the line and waits for the drawing goroutine.
func Spin(w io.Writer, message string) (stop func()) {
	s := NewSpinner()
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(s.interval / 2)
		defer ticker.Stop()
		fmt.Fprintf(w, "\r%s %s", s.Frame(), message)
		for {
			select {
			case <-done:
				fmt.Fprint(w, "\r\033[2K")
				return
			case <-ticker.C:
				if s.Tick() {
					fmt.Fprintf(w, "\r%s %s", s.Frame(), message)
				}
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			wg.Wait()
		})
	}
}
