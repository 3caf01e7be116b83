package nav_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/harborview/pagekit/pkg/nav"
)

func TestErrorBagDecodesScalarAndArrayMessages(t *testing.T) {
	payload := []byte(`{
		"email": "already taken",
		"root": ["first failure", "second failure"]
	}`)

	var bag nav.ErrorBag
	if err := json.Unmarshal(payload, &bag); err != nil {
		t.Fatalf("unmarshal error bag: %v", err)
	}

	want := nav.ErrorBag{
		"email": {"already taken"},
		"root":  {"first failure", "second failure"},
	}
	if diff := cmp.Diff(want, bag); diff != "" {
		t.Fatalf("error bag mismatch (-want +got):\n%s", diff)
	}
}

func TestMessagesJoinNewlineSeparates(t *testing.T) {
	messages := nav.Messages{"first failure", " ", "second failure"}
	if got, want := messages.Join(), "first failure\nsecond failure"; got != want {
		t.Fatalf("joined message = %q, want %q", got, want)
	}
}

func TestMessagesRejectsOtherShapes(t *testing.T) {
	var messages nav.Messages
	if err := json.Unmarshal([]byte(`{"nested": true}`), &messages); err == nil {
		t.Fatal("expected an error for an object-shaped message")
	}
}

func TestRootError(t *testing.T) {
	bag := nav.RootError("network failure")
	if got := bag.Root(); got != "network failure" {
		t.Fatalf("root = %q, want %q", got, "network failure")
	}
	if len(bag) != 1 {
		t.Fatalf("bag has %d entries, want 1", len(bag))
	}
}

func TestMethodVerbs(t *testing.T) {
	cases := []struct {
		method nav.Method
		verb   string
	}{
		{nav.MethodCreate, "POST"},
		{nav.MethodUpdate, "PATCH"},
		{nav.MethodReplace, "PUT"},
		{nav.MethodDelete, "DELETE"},
	}
	for _, tc := range cases {
		if !tc.method.Valid() {
			t.Errorf("method %q should be valid", tc.method)
		}
		if got := tc.method.HTTPVerb(); got != tc.verb {
			t.Errorf("verb for %q = %q, want %q", tc.method, got, tc.verb)
		}
	}
	if nav.Method("get").Valid() {
		t.Fatal("get must not be part of the write verb family")
	}
}
