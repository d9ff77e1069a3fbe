package form

import (
	"context"
	"sync"
	"time"

	"github.com/sisacad/academico/core"
)

// FormErrorKey holds whole-form (usually server-side) failures, distinct
// from per-field validation errors.
const FormErrorKey = "form"

// DefaultResetDelay keeps the success banner visible before the form
// clears.
const DefaultResetDelay = 3 * time.Second

var afterFunc = time.AfterFunc // mockable

// RecordID is the explicit two-variant record target: the zero value is
// a new record (create path); ExistingRecord(id) is the update path.
type RecordID struct {
	id       int
	existing bool
}

func NewRecord() RecordID { return RecordID{} }

func ExistingRecord(id int) RecordID { return RecordID{id: id, existing: true} }

func (r RecordID) Existing() (int, bool) { return r.id, r.existing }

// SubmitFunc performs the remote create-or-update for a valid form.
type SubmitFunc func(ctx context.Context, target RecordID, values Values) error

type Config struct {
	Fields      []Field
	Rules       Rules
	Initial     Values
	Submit      SubmitFunc
	SubmitLabel SubmitLabel
	// FailureMessage is the fallback form error when a submit failure
	// carries no normalized message.
	FailureMessage string
	// ResetValues restores Initial after a successful submit (create
	// flows); edit flows keep the submitted values on screen.
	ResetValues bool
	ResetDelay  time.Duration // DefaultResetDelay when zero
}

// State is the per-entity form state machine:
//
//	Idle -> Submitting -> { Submitted -> (delayed) Idle+reset | Idle+form error }
//
// Submitting and Submitted are mutually exclusive within a submit cycle,
// and the submitting flag doubles as the re-entry guard.
type State struct {
	mu  sync.Mutex
	cfg Config

	target     RecordID
	values     Values
	errors     map[string]string
	submitting bool
	submitted  bool
	resetTimer *time.Timer
}

func NewState(cfg Config) *State {
	if cfg.ResetDelay == 0 {
		cfg.ResetDelay = DefaultResetDelay
	}
	if cfg.Initial == nil {
		cfg.Initial = Values{}
	}
	return &State{
		cfg:    cfg,
		values: cfg.Initial.Clone(),
		errors: make(map[string]string),
	}
}

// HandleChange records a user edit, applying field-type coercion first.
// If the edited field currently has an error, only that field's error is
// cleared; errors on other fields persist.
func (st *State) HandleChange(name, raw string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.submitting {
		return
	}
	st.values[name] = coerce(st.fieldType(name), raw)
	delete(st.errors, name)
}

func (st *State) fieldType(name string) FieldType {
	for _, f := range st.cfg.Fields {
		if f.Name == name {
			return f.Type
		}
	}
	return Text
}

// HandleSubmit validates locally and, on success, calls the remote
// service: create when the target is a new record, update when it is an
// existing one. Local validation failure populates per-field errors and
// never reaches the network. Remote failure lands in errors[FormErrorKey]
// with the user-entered values preserved for correction.
func (st *State) HandleSubmit(ctx context.Context) {
	st.mu.Lock()
	if st.submitting {
		st.mu.Unlock()
		return
	}
	if errs := st.cfg.Rules.Validate(st.values); len(errs) > 0 {
		st.errors = errs
		st.mu.Unlock()
		return
	}
	st.submitting = true
	st.submitted = false
	st.errors = make(map[string]string)
	st.cancelReset()
	target := st.target
	snapshot := st.values.Clone()
	st.mu.Unlock()

	err := st.cfg.Submit(ctx, target, snapshot)

	st.mu.Lock()
	defer st.mu.Unlock()
	st.submitting = false
	if err != nil {
		st.errors[FormErrorKey] = core.ErrorMessage(err, st.cfg.FailureMessage)
		return
	}
	st.submitted = true
	st.resetTimer = afterFunc(st.cfg.ResetDelay, st.reset)
}

func (st *State) reset() {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.submitting { // a newer submit cycle owns the state now
		return
	}
	st.submitted = false
	if st.cfg.ResetValues {
		st.values = st.cfg.Initial.Clone()
		st.target = RecordID{}
	}
}

// SetFormError records a whole-form failure produced outside the submit
// cycle (e.g. an option roster that failed to load).
func (st *State) SetFormError(msg string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.errors[FormErrorKey] = msg
}

// SetData pre-populates the form from an existing record for edit flows;
// callers blank any write-only fields (passwords) before handing the
// record over. Pending errors and a pending reset are discarded.
func (st *State) SetData(values Values, target RecordID) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.cancelReset()
	for name, v := range values {
		st.values[name] = v
	}
	st.target = target
	st.errors = make(map[string]string)
	st.submitted = false
}

// Reset restores the blank initial state immediately.
func (st *State) Reset() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.cancelReset()
	st.values = st.cfg.Initial.Clone()
	st.target = RecordID{}
	st.errors = make(map[string]string)
	st.submitted = false
}

// Close cancels any pending delayed reset; call when the owning view
// goes away so a stale timer cannot fire over newer state.
func (st *State) Close() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.cancelReset()
}

func (st *State) cancelReset() {
	if st.resetTimer != nil {
		st.resetTimer.Stop()
		st.resetTimer = nil
	}
}

func (st *State) IsSubmitting() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.submitting
}

func (st *State) IsSubmitted() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.submitted
}

func (st *State) Target() RecordID {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.target
}

// Values returns a snapshot of the current field values.
func (st *State) Values() Values {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.values.Clone()
}

// Errors returns a snapshot of the current field errors.
func (st *State) Errors() map[string]string {
	st.mu.Lock()
	defer st.mu.Unlock()
	out := make(map[string]string, len(st.errors))
	for k, v := range st.errors {
		out[k] = v
	}
	return out
}

// FormError returns the whole-form error message, if any.
func (st *State) FormError() string {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.errors[FormErrorKey]
}

func (st *State) SubmitLabel() SubmitLabel { return st.cfg.SubmitLabel }

func (st *State) Fields() []Field { return st.cfg.Fields }
