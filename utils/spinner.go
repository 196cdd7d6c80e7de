package utils

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// Spinner initializes the process indicator.
type Spinner struct {
	stopChan chan struct{}
	wg       sync.WaitGroup
	enabled  bool
}

// NewSpinner instantiates a new Spinner. The spinner only draws when
// stderr is a terminal, so redirected output stays clean.
func NewSpinner() *Spinner {
	return &Spinner{enabled: IsTerminal(os.Stderr)}
}

// Start starts the process indicator.
func (s *Spinner) Start(message string) {
	if !s.enabled {
		return
	}
	s.stopChan = make(chan struct{})
	s.wg.Add(1)

	go func() {
		defer s.wg.Done()
		for {
			for _, r := range `-\|/` {
				select {
				case <-s.stopChan:
					fmt.Fprint(os.Stderr, "\r\x1b[K")
					return
				default:
					fmt.Fprintf(os.Stderr, "\r%s%s %c%s", message, SuccessColor, r, DefaultColor)
					time.Sleep(time.Millisecond * 100)
				}
			}
		}
	}()
}

// Stop stops the process indicator and waits for it to clear its line.
func (s *Spinner) Stop() {
	if !s.enabled || s.stopChan == nil {
		return
	}
	close(s.stopChan)
	s.wg.Wait()
	s.stopChan = nil
}
