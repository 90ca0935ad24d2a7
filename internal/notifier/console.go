package notifier

import (
	"fmt"
	"io"
	"sync"
)

// Console writes notifications as "[title] message" lines. It is used for
// --dry-run-notify and when no tray is available.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Notify(title, message string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprintf(c.w, "[%s] %s\n", title, message)
	return err
}

// Fallback tries each notifier in order until one succeeds.
type Fallback []Notifier

func (f Fallback) Notify(title, message string) error {
	var lastErr error
	for _, n := range f {
		if lastErr = n.Notify(title, message); lastErr == nil {
			return nil
		}
	}
	if lastErr == nil {
		return fmt.Errorf("no notifier configured")
	}
	return lastErr
}
