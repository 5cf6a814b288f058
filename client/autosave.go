package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmelim/local-character-sheets/internal/domain"
	"github.com/dmelim/local-character-sheets/internal/domain/models"
	"github.com/dmelim/local-character-sheets/internal/domain/services"
	"github.com/dmelim/local-character-sheets/internal/pathmap"
)

// DefaultDebounce is how long the edit buffer must stay quiet before a
// flush.
const DefaultDebounce = 500 * time.Millisecond

// Status describes the autosave state surfaced to the user.
type Status string

const (
	StatusSaving   Status = "saving"
	StatusSaved    Status = "saved"
	StatusConflict Status = "conflict"
	StatusError    Status = "error"
)

// StatusFunc receives autosave state transitions. The message is non-empty
// for conflict and error states.
type StatusFunc func(status Status, message string)

// Autosaver batches rapid local edits to one character and commits them
// with a debounced flush. Edits apply to the in-memory document immediately
// for responsive display; only the latest value per path is sent. On a
// version conflict all pending local state is discarded and the
// authoritative document is reloaded.
type Autosaver struct {
	client *Client
	delay  time.Duration
	notify StatusFunc

	// flushMu serializes flushes; concurrent flushes are never issued.
	flushMu sync.Mutex

	mu        sync.Mutex
	character *models.Character
	pending   map[string]any
	timer     *time.Timer
	closed    bool
}

// AutosaverOption configures an Autosaver.
type AutosaverOption func(*Autosaver)

// WithDebounce overrides the debounce window.
func WithDebounce(d time.Duration) AutosaverOption {
	return func(a *Autosaver) { a.delay = d }
}

// WithStatusFunc installs a callback for autosave state transitions.
func WithStatusFunc(fn StatusFunc) AutosaverOption {
	return func(a *Autosaver) { a.notify = fn }
}

// NewAutosaver wraps an already-loaded character. The Autosaver owns the
// document from here on; read it through Character.
func NewAutosaver(c *Client, character *models.Character, opts ...AutosaverOption) *Autosaver {
	a := &Autosaver{
		client:    c,
		delay:     DefaultDebounce,
		character: character,
		pending:   make(map[string]any),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Stage applies a field edit locally and schedules a flush once the buffer
// has been quiet for the debounce window. A later edit to the same path
// overwrites the earlier one.
func (a *Autosaver) Stage(path string, value any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}

	pathmap.Set(a.character.Data, path, value)
	a.pending[path] = value
	a.armLocked()
}

// Character returns the in-memory document, including unflushed edits.
// Callers must treat it as read-only; all edits go through Stage.
func (a *Autosaver) Character() *models.Character {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.character
}

// PendingCount reports how many paths are waiting to be flushed.
func (a *Autosaver) PendingCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.pending)
}

// Flush commits any pending edits immediately, bypassing the debounce.
func (a *Autosaver) Flush(ctx context.Context) {
	a.flush(ctx)
}

// Close stops the debounce timer and flushes whatever is still pending.
func (a *Autosaver) Close() {
	a.mu.Lock()
	a.closed = true
	if a.timer != nil {
		a.timer.Stop()
	}
	a.mu.Unlock()

	a.flush(context.Background())
}

// armLocked (re)starts the debounce timer. Callers hold mu.
func (a *Autosaver) armLocked() {
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.delay, func() {
		a.flush(context.Background())
	})
}

// flush sends the current pending buffer with the last-known version as
// expectedVersion. Edits staged while the request is in flight survive into
// the next flush; only the entries that were actually sent are cleared.
func (a *Autosaver) flush(ctx context.Context) {
	a.flushMu.Lock()
	defer a.flushMu.Unlock()

	a.mu.Lock()
	if len(a.pending) == 0 {
		a.mu.Unlock()
		return
	}
	batch := a.pending
	a.pending = make(map[string]any)
	id := a.character.ID
	expected := a.character.Version
	a.mu.Unlock()

	a.report(StatusSaving, "")

	updates := make([]models.FieldUpdate, 0, len(batch))
	for path, value := range batch {
		updates = append(updates, models.FieldUpdate{Path: path, Value: value})
	}

	result, err := a.client.Update(ctx, id, &services.BatchedUpdateRequest{
		ExpectedVersion: expected,
		Updates:         updates,
	})

	switch {
	case err == nil:
		a.mu.Lock()
		a.character.Version = result.Version
		a.character.UpdatedAt = result.UpdatedAt
		rearm := len(a.pending) > 0 && !a.closed
		if rearm {
			a.armLocked()
		}
		a.mu.Unlock()
		a.report(StatusSaved, "")

	case errors.Is(err, domain.ErrVersionConflict):
		// Our base version is stale: drop local pending state and adopt
		// the authoritative document.
		a.mu.Lock()
		a.pending = make(map[string]any)
		a.mu.Unlock()

		fresh, getErr := a.client.Get(ctx, id)
		if getErr != nil {
			a.report(StatusError, getErr.Error())
			return
		}
		a.mu.Lock()
		a.character = fresh
		a.mu.Unlock()
		a.report(StatusConflict, "your changes were merged against newer data")

	default:
		// Transient failure: keep the batch for the next flush, but never
		// clobber a newer staged value.
		a.mu.Lock()
		for path, value := range batch {
			if _, exists := a.pending[path]; !exists {
				a.pending[path] = value
			}
		}
		if !a.closed {
			a.armLocked()
		}
		a.mu.Unlock()
		a.report(StatusError, err.Error())
	}
}

func (a *Autosaver) report(status Status, message string) {
	if a.notify != nil {
		a.notify(status, message)
	}
}
