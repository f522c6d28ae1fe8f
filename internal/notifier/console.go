package notifier

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

// ConsoleNotifier prints notifications, one per line. It backs dry runs and
// foreground daemons.
type ConsoleNotifier struct {
	mu  sync.Mutex
	w   io.Writer
	now func() time.Time
}

func NewConsole(w io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{w: w, now: time.Now}
}

func (c *ConsoleNotifier) Notify(_ context.Context, n Notification) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprintf(c.w, "[%s] %s: %s (%s)\n", c.now().Format("15:04:05"), n.Title, n.Body, n.Tag)
	return err
}

func (c *ConsoleNotifier) Available(context.Context) error {
	return nil
}
