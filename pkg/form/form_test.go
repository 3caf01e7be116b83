package form_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/harborview/pagekit/pkg/form"
	"github.com/harborview/pagekit/pkg/nav"
	"github.com/harborview/pagekit/pkg/schema"
)

type recordedVisit struct {
	destination string
	payload     nav.Payload
	options     nav.Options
}

// fakeClient records visits and replays a scripted outcome through the
// lifecycle callbacks, the way the HTTP transport would.
type fakeClient struct {
	visits   []recordedVisit
	errorBag nav.ErrorBag
	visitErr error
}

func (f *fakeClient) Visit(_ context.Context, destination string, payload nav.Payload, opts nav.Options) error {
	if f.visitErr != nil {
		return f.visitErr
	}
	f.visits = append(f.visits, recordedVisit{destination: destination, payload: payload, options: opts})

	if f.errorBag != nil {
		if opts.OnError != nil {
			opts.OnError(f.errorBag)
		}
	} else if opts.OnSuccess != nil {
		opts.OnSuccess()
	}
	if opts.OnFinish != nil {
		opts.OnFinish()
	}
	return nil
}

func (f *fakeClient) Navigate(context.Context, string, nav.Params, nav.Options) error {
	return errors.New("unexpected navigate")
}

func userSchema() schema.Schema {
	return schema.Object{
		"name":   schema.Required(),
		"email":  schema.All(schema.Required(), schema.Email()),
		"avatar": schema.Any(),
	}
}

func userDefaults() schema.Values {
	return schema.Values{"name": "", "email": "", "avatar": ""}
}

func TestSubmitInvalidValuesSkipsDispatch(t *testing.T) {
	client := &fakeClient{}
	f, err := form.New(client, "/admin/users", userSchema(), userDefaults())
	if err != nil {
		t.Fatalf("new form: %v", err)
	}

	if err := f.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if len(client.visits) != 0 {
		t.Fatalf("expected no dispatch, got %d visits", len(client.visits))
	}
	if f.IsSubmitting() {
		t.Fatal("busy flag must stay false on the validation path")
	}
	if got := f.FieldError("name"); got != "is required" {
		t.Fatalf("name error = %q, want %q", got, "is required")
	}
	if got := f.FieldError("email"); got != "is required" {
		t.Fatalf("email error = %q, want %q", got, "is required")
	}
	if got := f.FieldError("avatar"); got != "" {
		t.Fatalf("avatar must pass its no-op rule, got error %q", got)
	}
}

func TestSubmitValidValuesDispatchesOnce(t *testing.T) {
	client := &fakeClient{}
	f, err := form.New(client, "/admin/users", userSchema(), userDefaults(),
		form.WithPreserveScroll(),
	)
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	f.Set("name", "Ada")
	f.Set("email", "ada@example.com")

	if err := f.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if len(client.visits) != 1 {
		t.Fatalf("expected exactly one dispatch, got %d", len(client.visits))
	}
	visit := client.visits[0]
	if visit.destination != "/admin/users" {
		t.Fatalf("destination = %q", visit.destination)
	}
	if visit.options.Method != nav.MethodCreate {
		t.Fatalf("method = %q, want %q", visit.options.Method, nav.MethodCreate)
	}
	if !visit.options.PreserveScroll {
		t.Fatal("preserve-scroll hint must pass through unchanged")
	}
	if got := visit.payload["email"]; got != "ada@example.com" {
		t.Fatalf("payload email = %v", got)
	}
	if len(f.FieldErrors()) != 0 {
		t.Fatalf("field errors must stay empty on success, got %v", f.FieldErrors())
	}
}

func TestServerErrorFieldMapping(t *testing.T) {
	client := &fakeClient{
		errorBag: nav.ErrorBag{
			"email": {"already taken"},
			"quota": {"exceeded"},
		},
	}
	f, err := form.New(client, "/admin/users", userSchema(), userDefaults())
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	f.Set("name", "Ada")
	f.Set("email", "ada@example.com")

	if err := f.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	want := map[string]string{
		"email": "already taken",
		"root":  "exceeded",
	}
	if diff := cmp.Diff(want, f.FieldErrors()); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}
	if got := f.FieldError("quota"); got != "" {
		t.Fatal("unknown fields must coerce to root, not keep their own key")
	}
}

func TestServerErrorListJoinsWithNewlines(t *testing.T) {
	client := &fakeClient{
		errorBag: nav.ErrorBag{
			"base": {"first failure", "second failure"},
		},
	}
	f, err := form.New(client, "/admin/users", userSchema(), userDefaults())
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	f.Set("name", "Ada")
	f.Set("email", "ada@example.com")

	if err := f.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got, want := f.RootError(), "first failure\nsecond failure"; got != want {
		t.Fatalf("root error = %q, want %q", got, want)
	}
}

func TestBusyFlagBracketsSubmission(t *testing.T) {
	var busyDuringVisit, busyAtFinish bool
	client := &fakeClient{}
	var f *form.Form
	f, err := form.New(client, "/admin/users", userSchema(), userDefaults(),
		form.WithCallbacks(
			func() { busyDuringVisit = f.IsSubmitting() },
			nil,
			func() { busyAtFinish = f.IsSubmitting() },
		),
	)
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	f.Set("name", "Ada")
	f.Set("email", "ada@example.com")

	if f.IsSubmitting() {
		t.Fatal("busy before submit")
	}
	if err := f.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !busyDuringVisit {
		t.Fatal("busy flag must be true while the round trip is outstanding")
	}
	if busyAtFinish {
		t.Fatal("busy flag must be false by the time OnFinish observes it")
	}
	if f.IsSubmitting() {
		t.Fatal("busy after completion")
	}
}

func TestTransformErrorPropagatesWithoutDispatch(t *testing.T) {
	client := &fakeClient{}
	boom := errors.New("boom")
	f, err := form.New(client, "/admin/users", userSchema(), userDefaults(),
		form.WithTransform(func(schema.Values) (schema.Values, error) {
			return nil, boom
		}),
	)
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	f.Set("name", "Ada")
	f.Set("email", "ada@example.com")

	err = f.Submit(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("submit error = %v, want wrapped boom", err)
	}
	if len(client.visits) != 0 {
		t.Fatal("transform failure must not dispatch")
	}
	if f.IsSubmitting() {
		t.Fatal("busy flag must never be set when the transform fails")
	}
}

func TestTransformShapesWirePayload(t *testing.T) {
	client := &fakeClient{}
	f, err := form.New(client, "/admin/users", userSchema(), userDefaults(),
		form.WithTransform(func(values schema.Values) (schema.Values, error) {
			out := values.Clone()
			out["role"] = "member"
			return out, nil
		}),
	)
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	f.Set("name", "Ada")
	f.Set("email", "ada@example.com")

	if err := f.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got := client.visits[0].payload["role"]; got != "member" {
		t.Fatalf("transformed payload missing role, got %v", got)
	}
	if _, ok := f.Values()["role"]; ok {
		t.Fatal("transform must shape the wire payload, not the form values")
	}
}

func TestResetIsIdempotent(t *testing.T) {
	client := &fakeClient{}
	f, err := form.New(client, "/admin/users", userSchema(), userDefaults())
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	f.Set("name", "Ada")
	f.Set("email", "ada@example.com")

	f.Reset()
	first := f.Values()
	f.Reset()
	second := f.Values()

	if diff := cmp.Diff(map[string]any(userDefaults()), map[string]any(first)); diff != "" {
		t.Fatalf("values after first reset mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]any(first), map[string]any(second)); diff != "" {
		t.Fatalf("second reset changed values (-want +got):\n%s", diff)
	}
}

func TestProgrammerErrorClearsBusyAndPropagates(t *testing.T) {
	client := &fakeClient{visitErr: errors.New("transport: unsupported method")}
	f, err := form.New(client, "/admin/users", userSchema(), userDefaults())
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	f.Set("name", "Ada")
	f.Set("email", "ada@example.com")

	if err := f.Submit(context.Background()); err == nil {
		t.Fatal("expected the client error to propagate")
	}
	if f.IsSubmitting() {
		t.Fatal("busy flag must be cleared when dispatch never happened")
	}
}
