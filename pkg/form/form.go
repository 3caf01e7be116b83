package form

import (
	"context"
	"errors"
	"fmt"

	"github.com/harborview/pagekit/pkg/nav"
	"github.com/harborview/pagekit/pkg/schema"
)

// RootField is the pseudo-field collecting errors that do not map to a
// visible input.
const RootField = nav.RootField

// Transform rewrites validated values into the wire payload. A returned
// error aborts the submission before any dispatch.
type Transform func(values schema.Values) (schema.Values, error)

// Option customises a Form at construction.
type Option func(*Form)

// WithMethod overrides the default create (POST) verb.
func WithMethod(method nav.Method) Option {
	return func(f *Form) {
		f.method = method
	}
}

// WithTransform applies a payload transform after validation and before
// transmission.
func WithTransform(transform Transform) Option {
	return func(f *Form) {
		f.transform = transform
	}
}

// WithCallbacks registers submission lifecycle callbacks. OnError receives
// the reconciled field errors, root entry included.
func WithCallbacks(onSuccess func(), onError func(map[string]string), onFinish func()) Option {
	return func(f *Form) {
		f.onSuccess = onSuccess
		f.onError = onError
		f.onFinish = onFinish
	}
}

// WithPreserveScroll marks visits with the preserve-scroll hint. The flag is
// passed through to the navigation client unchanged.
func WithPreserveScroll() Option {
	return func(f *Form) {
		f.preserveScroll = true
	}
}

// WithPreserveState marks visits with the preserve-state hint.
func WithPreserveState() Option {
	return func(f *Form) {
		f.preserveState = true
	}
}

// Form holds one form interaction: current values, field errors, and the
// busy flag. Not safe for concurrent use.
type Form struct {
	client      nav.Client
	destination string
	method      nav.Method
	sch         schema.Schema
	defaults    schema.Values
	transform   Transform

	onSuccess func()
	onError   func(map[string]string)
	onFinish  func()

	preserveScroll bool
	preserveState  bool

	values      schema.Values
	fieldErrors map[string]string
	submitting  bool
}

// New constructs a Form seeded with defaults. The defaults define the known
// field shape used when reconciling server errors.
func New(client nav.Client, destination string, sch schema.Schema, defaults schema.Values, options ...Option) (*Form, error) {
	if client == nil {
		return nil, errors.New("form: navigation client is required")
	}
	if destination == "" {
		return nil, errors.New("form: destination is required")
	}
	if sch == nil {
		return nil, errors.New("form: schema is required")
	}

	f := &Form{
		client:      client,
		destination: destination,
		method:      nav.MethodCreate,
		sch:         sch,
		defaults:    defaults.Clone(),
		values:      defaults.Clone(),
		fieldErrors: make(map[string]string),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	if !f.method.Valid() {
		return nil, fmt.Errorf("form: unsupported method %q", string(f.method))
	}
	return f, nil
}

// Set updates one field value.
func (f *Form) Set(field string, value any) {
	if f.values == nil {
		f.values = schema.Values{}
	}
	f.values[field] = value
}

// Values returns a copy of the current values.
func (f *Form) Values() schema.Values {
	return f.values.Clone()
}

// FieldError returns the message for one field, or "".
func (f *Form) FieldError(field string) string {
	return f.fieldErrors[field]
}

// FieldErrors returns a copy of the current error map.
func (f *Form) FieldErrors() map[string]string {
	out := make(map[string]string, len(f.fieldErrors))
	for field, message := range f.fieldErrors {
		out[field] = message
	}
	return out
}

// RootError returns the catch-all message, or "".
func (f *Form) RootError() string {
	return f.fieldErrors[RootField]
}

// IsSubmitting reports whether a submission round trip is outstanding.
// Callers disable their submit control while it is true.
func (f *Form) IsSubmitting() bool {
	return f.submitting
}

// Reset restores values to the construction defaults and clears errors. It
// does not touch in-flight requests. Idempotent.
func (f *Form) Reset() {
	f.values = f.defaults.Clone()
	f.fieldErrors = make(map[string]string)
}

// Submit runs the submission lifecycle: clear errors, validate, transform,
// dispatch exactly one visit. Invalid values populate field errors without
// any network activity and without touching the busy flag. A transform
// failure propagates as the returned error with nothing dispatched.
func (f *Form) Submit(ctx context.Context) error {
	if ctx == nil {
		return errors.New("form: context is required")
	}

	f.fieldErrors = make(map[string]string)

	if violations := f.sch.Validate(f.values); len(violations) > 0 {
		for field, message := range violations {
			f.applyError(field, message)
		}
		return nil
	}

	payload := f.values.Clone()
	if f.transform != nil {
		transformed, err := f.transform(payload)
		if err != nil {
			return fmt.Errorf("form: transform: %w", err)
		}
		payload = transformed
	}

	f.submitting = true
	err := f.client.Visit(ctx, f.destination, nav.Payload(payload), nav.Options{
		Method:         f.method,
		PreserveScroll: f.preserveScroll,
		PreserveState:  f.preserveState,
		OnSuccess: func() {
			if f.onSuccess != nil {
				f.onSuccess()
			}
		},
		OnError: func(bag nav.ErrorBag) {
			f.reconcile(bag)
			if f.onError != nil {
				f.onError(f.FieldErrors())
			}
		},
		OnFinish: func() {
			f.submitting = false
			if f.onFinish != nil {
				f.onFinish()
			}
		},
	})
	if err != nil {
		// Programmer error surfaced before dispatch; no lifecycle
		// callbacks have fired.
		f.submitting = false
		return err
	}
	return nil
}

// reconcile maps a server error bag onto field state: keys present in the
// default-values shape become field errors, everything else accumulates
// under root. Message lists are newline-joined for display.
func (f *Form) reconcile(bag nav.ErrorBag) {
	for field, messages := range bag {
		message := messages.Join()
		if message == "" {
			continue
		}
		if _, known := f.defaults[field]; known {
			f.fieldErrors[field] = message
			continue
		}
		f.applyError(RootField, message)
	}
}

// applyError sets a field error, coercing unknown fields to root and
// accumulating multiple root messages.
func (f *Form) applyError(field, message string) {
	if _, known := f.defaults[field]; !known {
		field = RootField
	}
	if field == RootField && f.fieldErrors[RootField] != "" {
		f.fieldErrors[RootField] = f.fieldErrors[RootField] + "\n" + message
		return
	}
	f.fieldErrors[field] = message
}
