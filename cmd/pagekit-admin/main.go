// Command pagekit-admin is an interactive client for the demo admin server.
// It drives the table controller for listing users and the form bridge for
// creating them, with survey prompts standing in for page controls.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/AlecAivazis/survey/v2"

	"github.com/harborview/pagekit"
	"github.com/harborview/pagekit/pkg/flash"
	"github.com/harborview/pagekit/pkg/form"
	"github.com/harborview/pagekit/pkg/nav"
	"github.com/harborview/pagekit/pkg/schema"
	"github.com/harborview/pagekit/pkg/table"
)

type user struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type listProps struct {
	Data     []user `json:"data"`
	Total    int    `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}

type app struct {
	client     nav.Client
	routes     nav.Resolver
	controller *table.Controller[user]
	toasts     *flash.Bridge
}

func main() {
	baseURL := flag.String("server", "http://localhost:8080", "admin server origin")
	flag.Parse()

	routes := nav.NewRoutes()
	routes.MustRegister("users.index", "/admin/users")

	a := &app{
		client: pagekit.NewHTTPClient(pagekit.WithBaseURL(*baseURL)),
		routes: routes,
		toasts: flash.New(func(m flash.Message) {
			fmt.Printf("[%s] %s\n", m.Category, m.Body)
		}),
	}

	ctx := context.Background()
	if err := a.rebuild(listProps{Page: 1, PageSize: table.DefaultPageSize}); err != nil {
		log.Fatalf("initialise: %v", err)
	}
	if err := a.controller.Reload(ctx); err != nil {
		log.Fatalf("load users: %v", err)
	}

	for {
		a.render()
		action := ""
		prompt := &survey.Select{
			Message: "Action",
			Options: []string{"next page", "prev page", "search", "sort", "page size", "new user", "refresh", "quit"},
		}
		if err := survey.AskOne(prompt, &action); err != nil {
			return
		}
		if action == "quit" {
			return
		}
		if err := a.handle(ctx, action); err != nil {
			a.toasts.Publish("error", err.Error())
		}
	}
}

// rebuild rehydrates the controller from fresh server props, the way a
// server-driven page remounts after every navigation. The uncommitted search
// buffer is the one piece of local state that survives.
func (a *app) rebuild(props listProps) error {
	searchInput := ""
	sortField, sortOrder := "createdAt", table.OrderDesc
	if a.controller != nil {
		searchInput = a.controller.SearchInput()
		sortField, sortOrder = a.controller.SortField(), a.controller.SortOrder()
	}

	destination, err := a.routes.URL("users.index", nil)
	if err != nil {
		return err
	}

	controller, err := table.New[user](a.client, destination,
		table.WithRows[user](props.Data),
		table.WithTotal[user](props.Total),
		table.WithPage[user](max(props.Page, 1)),
		table.WithPageSize[user](normalizePageSize(props.PageSize)),
		table.WithSort[user](sortField, sortOrder),
		table.WithEmptyMessage[user]("No users found"),
		table.WithColumns[user](
			table.Column[user]{Key: "Name", Title: "NAME"},
			table.Column[user]{Key: "Email", Title: "EMAIL"},
			table.Column[user]{Key: "Role", Title: "ROLE"},
			table.Column[user]{Key: "CreatedAt", Title: "CREATED", Format: func(row user) string {
				return row.CreatedAt.Format("2006-01-02")
			}},
		),
		table.WithOnPage[user](a.onPage),
		table.WithOnError[user](func(bag nav.ErrorBag) {
			a.toasts.Publish("error", bag.Root())
		}),
	)
	if err != nil {
		return err
	}
	controller.SetSearchInput(searchInput)
	a.controller = controller
	return nil
}

func (a *app) onPage(page nav.Page) {
	var props listProps
	if err := json.Unmarshal(page.Props, &props); err != nil {
		a.toasts.Publish("error", "could not decode page props")
		return
	}
	if err := a.rebuild(props); err != nil {
		a.toasts.Publish("error", err.Error())
	}
}

func (a *app) render() {
	c := a.controller
	fmt.Printf("\nUsers — page %d/%d (%d total)\n", c.Page(), c.PageCount(), c.Total())

	if c.Empty() {
		fmt.Println(c.EmptyMessage())
		return
	}

	writer := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	for _, header := range c.Headers() {
		fmt.Fprintf(writer, "%s\t", header)
	}
	fmt.Fprintln(writer)
	for _, row := range c.Cells() {
		for _, cell := range row {
			fmt.Fprintf(writer, "%s\t", cell)
		}
		fmt.Fprintln(writer)
	}
	_ = writer.Flush()
}

func (a *app) handle(ctx context.Context, action string) error {
	c := a.controller
	switch action {
	case "next page":
		if !c.HasNext() {
			return nil
		}
		return c.SetPage(ctx, c.Page()+1)
	case "prev page":
		if !c.HasPrev() {
			return nil
		}
		return c.SetPage(ctx, c.Page()-1)
	case "search":
		text := ""
		if err := survey.AskOne(&survey.Input{Message: "Search", Default: c.SearchInput()}, &text); err != nil {
			return err
		}
		c.SetSearchInput(text)
		return c.SubmitSearch(ctx)
	case "sort":
		column := ""
		prompt := &survey.Select{Message: "Sort by", Options: []string{"name", "email", "role", "createdAt"}}
		if err := survey.AskOne(prompt, &column); err != nil {
			return err
		}
		return c.Sort(ctx, column)
	case "page size":
		choice := ""
		options := make([]string, len(table.PageSizes))
		for i, size := range table.PageSizes {
			options[i] = strconv.Itoa(size)
		}
		if err := survey.AskOne(&survey.Select{Message: "Page size", Options: options}, &choice); err != nil {
			return err
		}
		size, _ := strconv.Atoi(choice)
		return c.SetPageSize(ctx, size)
	case "refresh":
		return c.Reload(ctx)
	case "new user":
		return a.createUser(ctx)
	}
	return nil
}

func (a *app) createUser(ctx context.Context) error {
	destination, err := a.routes.URL("users.index", nil)
	if err != nil {
		return err
	}

	userSchema := schema.Object{
		"name":  schema.All(schema.Required(), schema.MinLen(2)),
		"email": schema.All(schema.Required(), schema.Email()),
		"role":  schema.OneOf("admin", "member"),
	}
	defaults := schema.Values{"name": "", "email": "", "role": "member"}

	f, err := form.New(a.client, destination, userSchema, defaults,
		form.WithCallbacks(
			func() { a.toasts.Publish("success", "User created") },
			nil,
			nil,
		),
	)
	if err != nil {
		return err
	}

	questions := []*survey.Question{
		{Name: "name", Prompt: &survey.Input{Message: "Name"}},
		{Name: "email", Prompt: &survey.Input{Message: "Email"}},
		{Name: "role", Prompt: &survey.Select{Message: "Role", Options: []string{"admin", "member"}, Default: "member"}},
	}
	answers := struct {
		Name  string
		Email string
		Role  string
	}{}
	if err := survey.Ask(questions, &answers); err != nil {
		return err
	}

	f.Set("name", answers.Name)
	f.Set("email", answers.Email)
	f.Set("role", answers.Role)

	if err := f.Submit(ctx); err != nil {
		return err
	}
	for field, message := range f.FieldErrors() {
		a.toasts.Publish("error", field+": "+message)
	}
	if len(f.FieldErrors()) == 0 {
		return a.controller.Reload(ctx)
	}
	return nil
}

func normalizePageSize(size int) int {
	for _, allowed := range table.PageSizes {
		if size == allowed {
			return size
		}
	}
	return table.DefaultPageSize
}
