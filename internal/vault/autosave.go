// Debounced autosave: rapid successive edits to the same idea are coalesced
// and persisted once after a quiet period.
package vault

import (
	"sync"
	"time"

	"github.com/brennanjay-74/idea-vault/pkg/types"
)

// DefaultAutosaveInterval is the quiet period before a pending edit persists.
const DefaultAutosaveInterval = 350 * time.Millisecond

// pendingSave is the at-most-one scheduled write for an idea ID.
type pendingSave struct {
	timer *time.Timer
	idea  *types.Idea
}

// Autosave holds at most one pending write slot per idea ID. Scheduling a
// newer edit cancels and replaces the slot, so only the latest edit within
// the debounce window is persisted. There is no cancellation beyond this
// supersede-on-new-edit behavior.
type Autosave struct {
	mu       sync.Mutex
	interval time.Duration
	persist  func(*types.Idea) error
	pending  map[string]*pendingSave
	lastErr  error
}

// NewAutosave creates an Autosave that persists through the given function
// after interval of quiet. A non-positive interval uses the default.
func NewAutosave(interval time.Duration, persist func(*types.Idea) error) *Autosave {
	if interval <= 0 {
		interval = DefaultAutosaveInterval
	}
	return &Autosave{
		interval: interval,
		persist:  persist,
		pending:  make(map[string]*pendingSave),
	}
}

// Schedule queues the idea for persistence after the debounce interval.
// A pending write for the same idea is canceled and replaced.
func (a *Autosave) Schedule(idea *types.Idea) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if p, ok := a.pending[idea.IdeaID]; ok {
		p.timer.Stop()
	}

	id := idea.IdeaID
	p := &pendingSave{idea: idea}
	p.timer = time.AfterFunc(a.interval, func() {
		a.fire(id)
	})
	a.pending[id] = p
}

// fire persists the pending slot for id, if still present.
func (a *Autosave) fire(id string) {
	a.mu.Lock()
	p, ok := a.pending[id]
	if ok {
		delete(a.pending, id)
	}
	a.mu.Unlock()

	if !ok {
		return
	}
	if err := a.persist(p.idea); err != nil {
		a.mu.Lock()
		a.lastErr = err
		a.mu.Unlock()
	}
}

// Flush cancels all timers and persists every pending edit immediately.
// Returns the first persist error encountered.
func (a *Autosave) Flush() error {
	a.mu.Lock()
	slots := make([]*pendingSave, 0, len(a.pending))
	for _, p := range a.pending {
		p.timer.Stop()
		slots = append(slots, p)
	}
	a.pending = make(map[string]*pendingSave)
	a.mu.Unlock()

	var firstErr error
	for _, p := range slots {
		if err := a.persist(p.idea); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Err returns the most recent error from a timer-fired persist, or nil.
func (a *Autosave) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastErr
}
