package nav_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/harborview/pagekit/pkg/nav"
)

func TestRoutesResolveWithParams(t *testing.T) {
	routes := nav.NewRoutes()
	routes.MustRegister("users.index", "/admin/users")
	routes.MustRegister("users.edit", "/admin/users/:id/edit")

	url, err := routes.URL("users.edit", map[string]string{"id": "42"})
	if err != nil {
		t.Fatalf("resolve users.edit: %v", err)
	}
	if want := "/admin/users/42/edit"; url != want {
		t.Fatalf("url = %q, want %q", url, want)
	}
}

func TestRoutesUnknownNameFails(t *testing.T) {
	routes := nav.NewRoutes()
	if _, err := routes.URL("missing", nil); err == nil {
		t.Fatal("expected an error for an unknown route name")
	}
}

func TestRoutesMissingParamFails(t *testing.T) {
	routes := nav.NewRoutes()
	routes.MustRegister("users.edit", "/admin/users/:id/edit")

	if _, err := routes.URL("users.edit", nil); err == nil {
		t.Fatal("expected an error for a missing parameter")
	}
}

func TestRoutesDuplicateRegistrationFails(t *testing.T) {
	routes := nav.NewRoutes()
	if err := routes.Register("users.index", "/admin/users"); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if err := routes.Register("users.index", "/other"); err == nil {
		t.Fatal("expected an error for a duplicate route name")
	}
}

func TestLoadRoutesFromYAML(t *testing.T) {
	doc := `
users.index: /admin/users
teams.show: /admin/teams/:id
`
	routes, err := nav.LoadRoutes(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("load routes: %v", err)
	}

	want := []string{"teams.show", "users.index"}
	if diff := cmp.Diff(want, routes.List()); diff != "" {
		t.Fatalf("route names mismatch (-want +got):\n%s", diff)
	}

	url, err := routes.URL("teams.show", map[string]string{"id": "7"})
	if err != nil {
		t.Fatalf("resolve teams.show: %v", err)
	}
	if want := "/admin/teams/7"; url != want {
		t.Fatalf("url = %q, want %q", url, want)
	}
}
