// Package edit implements the fill-in/validate/save-or-cancel workflow shared
// by every record editing surface.
package edit

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// ErrInvalidState is returned when an operation is not allowed in the
// workflow's current state.
var ErrInvalidState = errors.New("edit: invalid workflow state")

// State is the workflow's position in Idle -> Editing -> Saving -> Saved | Discarded.
type State int

const (
	Idle State = iota
	Editing
	Saving
	Saved
	Discarded
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Editing:
		return "editing"
	case Saving:
		return "saving"
	case Saved:
		return "saved"
	case Discarded:
		return "discarded"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Fillable loads a record's current values into a form.
type Fillable[R any] interface {
	FillIn(record R)
}

// Saveable copies a form's values back onto a record.
type Saveable[R any] interface {
	UpdateRecord(record R)
}

// Validatable checks a form before it is saved. The form is responsible for
// keeping field-level feedback for the user; the returned error summarizes it.
type Validatable interface {
	Validate() error
}

// Form is what a concrete editor must provide. Validatable is optional.
type Form[R any] interface {
	Fillable[R]
	Saveable[R]
}

// Session is the persistence surface a workflow saves through.
type Session[R any] interface {
	// Stage writes the record into the open session without committing.
	Stage(ctx context.Context, record R) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Workflow edits one record through a form. It is not safe for concurrent
// use; all calls happen on the UI's control thread.
type Workflow[R any] struct {
	form    Form[R]
	session Session[R]
	record  R
	state   State

	saveFinished []func(ctx context.Context, record R) error
	closed       []func(ctx context.Context, state State) error
}

// New returns an idle workflow.
func New[R any](form Form[R], session Session[R]) *Workflow[R] {
	return &Workflow[R]{form: form, session: session}
}

// State returns the current state.
func (w *Workflow[R]) State() State { return w.state }

// Record returns the record under edit.
func (w *Workflow[R]) Record() R { return w.record }

// Form returns the form bound to the record.
func (w *Workflow[R]) Form() Form[R] { return w.form }

// OnSaveFinished registers fn to run after a successful commit. Handlers run
// in registration order; the first error stops the chain and is returned by
// AttemptSave, with the workflow already Saved.
func (w *Workflow[R]) OnSaveFinished(fn func(ctx context.Context, record R) error) {
	w.saveFinished = append(w.saveFinished, fn)
}

// OnClose registers fn to run when the workflow finishes, saved or discarded.
func (w *Workflow[R]) OnClose(fn func(ctx context.Context, state State) error) {
	w.closed = append(w.closed, fn)
}

// Open binds record to the form and starts editing.
func (w *Workflow[R]) Open(record R) error {
	if w.state != Idle {
		return fmt.Errorf("%w: open while %s", ErrInvalidState, w.state)
	}
	w.record = record
	w.form.FillIn(record)
	w.state = Editing
	return nil
}

// AttemptSave validates the form and, when valid, copies its values onto the
// record, stages and commits it. A validation failure leaves the workflow in
// Editing and returns the form's error. A stage or commit failure also
// returns to Editing; the caller decides whether to Cancel and roll back.
func (w *Workflow[R]) AttemptSave(ctx context.Context) error {
	if w.state != Editing {
		return fmt.Errorf("%w: save while %s", ErrInvalidState, w.state)
	}
	if v, ok := w.form.(Validatable); ok {
		if err := v.Validate(); err != nil {
			log.WithError(err).Debug("edit: validation failed")
			return err
		}
	}

	w.state = Saving
	w.form.UpdateRecord(w.record)
	if err := w.session.Stage(ctx, w.record); err != nil {
		w.state = Editing
		return fmt.Errorf("edit: stage: %w", err)
	}
	if err := w.session.Commit(ctx); err != nil {
		w.state = Editing
		return fmt.Errorf("edit: commit: %w", err)
	}
	w.state = Saved

	for _, fn := range w.saveFinished {
		if err := fn(ctx, w.record); err != nil {
			return err
		}
	}
	return w.close(ctx)
}

// Cancel discards the edit: the session is rolled back and nothing is
// committed.
func (w *Workflow[R]) Cancel(ctx context.Context) error {
	if w.state != Editing {
		return fmt.Errorf("%w: cancel while %s", ErrInvalidState, w.state)
	}
	w.state = Discarded
	if err := w.session.Rollback(ctx); err != nil {
		return fmt.Errorf("edit: rollback: %w", err)
	}
	return w.close(ctx)
}

func (w *Workflow[R]) close(ctx context.Context) error {
	for _, fn := range w.closed {
		if err := fn(ctx, w.state); err != nil {
			return err
		}
	}
	return nil
}
