// Package notifytest provides an in-memory notify.Bus for tests.
package notifytest

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/authbridge/internal/server/notify"
)

// Recorder keeps every published communication. Set Err to make Publish
// reject.
type Recorder struct {
	mu   sync.Mutex
	sent []notify.Communication
	Err  error
}

func (r *Recorder) Publish(_ context.Context, c *notify.Communication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.sent = append(r.sent, *c)
	return nil
}

// Sent returns a copy of the recorded communications.
func (r *Recorder) Sent() []notify.Communication {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.Communication(nil), r.sent...)
}
