package table

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/harborview/pagekit/pkg/nav"
)

// Order is a sort direction.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// Canonical query parameter names sent with every navigation.
const (
	ParamPage     = "page"
	ParamPageSize = "pageSize"
	ParamOrderBy  = "orderBy"
	ParamSortOrd  = "sortOrder"
	ParamSearch   = "searchString"
)

// PageSizes is the enumerated set of allowed page sizes.
var PageSizes = []int{10, 25, 50, 100}

// DefaultPageSize applies when the server props carry none.
const DefaultPageSize = 25

const defaultEmptyMessage = "No results found"

// Column describes one table column. Format, when set, renders a cell from
// the row; otherwise the cell is plain-rendered by looking the Key up on the
// row (map key or struct field).
type Column[T any] struct {
	Key    string
	Title  string
	Format func(row T) string
}

// Option customises a Controller at construction.
type Option[T any] func(*Controller[T])

// WithRows seeds the server-fetched rows for the current view.
func WithRows[T any](rows []T) Option[T] {
	return func(c *Controller[T]) {
		c.rows = rows
	}
}

// WithTotal seeds the server-reported row count.
func WithTotal[T any](total int) Option[T] {
	return func(c *Controller[T]) {
		c.total = total
	}
}

// WithPage seeds the current 1-based page.
func WithPage[T any](page int) Option[T] {
	return func(c *Controller[T]) {
		c.page = page
	}
}

// WithPageSize seeds the page size.
func WithPageSize[T any](size int) Option[T] {
	return func(c *Controller[T]) {
		c.pageSize = size
	}
}

// WithSort seeds the committed sort state.
func WithSort[T any](field string, order Order) Option[T] {
	return func(c *Controller[T]) {
		c.sortField = field
		c.sortOrder = order
	}
}

// WithSearch seeds the server-committed search string. It also seeds the
// local input buffer so the box shows what the server filtered by.
func WithSearch[T any](query string) Option[T] {
	return func(c *Controller[T]) {
		c.search = query
		c.searchInput = query
	}
}

// WithExtraParams attaches caller-supplied filter parameters that pass
// through to the server verbatim on every navigation.
func WithExtraParams[T any](params map[string]string) Option[T] {
	return func(c *Controller[T]) {
		c.extraParams = params
	}
}

// WithColumns declares the rendered columns.
func WithColumns[T any](columns ...Column[T]) Option[T] {
	return func(c *Controller[T]) {
		c.columns = columns
	}
}

// WithEmptyMessage overrides the no-results indicator text.
func WithEmptyMessage[T any](message string) Option[T] {
	return func(c *Controller[T]) {
		c.emptyMessage = message
	}
}

// WithOnPage registers a callback receiving the re-rendered page document
// after each navigation, so the caller can rehydrate a fresh controller.
func WithOnPage[T any](fn func(nav.Page)) Option[T] {
	return func(c *Controller[T]) {
		c.onPage = fn
	}
}

// WithOnError registers a callback for navigation failures.
func WithOnError[T any](fn func(nav.ErrorBag)) Option[T] {
	return func(c *Controller[T]) {
		c.onError = fn
	}
}

// Controller holds the view parameters of one paginated, sortable,
// searchable list. Each instance owns its state exclusively; it is not safe
// for concurrent use.
type Controller[T any] struct {
	client      nav.Client
	destination string

	rows        []T
	total       int
	page        int
	pageSize    int
	sortField   string
	sortOrder   Order
	search      string
	searchInput string
	extraParams map[string]string

	columns      []Column[T]
	emptyMessage string

	onPage  func(nav.Page)
	onError func(nav.ErrorBag)
}

// New constructs a controller from server-supplied initial props. Defaults:
// page 1, page size 25, sort order desc.
func New[T any](client nav.Client, destination string, options ...Option[T]) (*Controller[T], error) {
	if client == nil {
		return nil, errors.New("table: navigation client is required")
	}
	if destination == "" {
		return nil, errors.New("table: destination is required")
	}

	c := &Controller[T]{
		client:       client,
		destination:  destination,
		page:         1,
		pageSize:     DefaultPageSize,
		sortOrder:    OrderDesc,
		emptyMessage: defaultEmptyMessage,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.page < 1 {
		return nil, fmt.Errorf("table: page must be >= 1, got %d", c.page)
	}
	if !allowedPageSize(c.pageSize) {
		return nil, fmt.Errorf("table: page size %d is not in the allowed set", c.pageSize)
	}
	if c.total < 0 {
		return nil, fmt.Errorf("table: total must be >= 0, got %d", c.total)
	}
	if c.sortOrder != OrderAsc && c.sortOrder != OrderDesc {
		return nil, fmt.Errorf("table: unsupported sort order %q", string(c.sortOrder))
	}
	return c, nil
}

// Rows returns the server-fetched rows for the current view.
func (c *Controller[T]) Rows() []T { return c.rows }

// Total returns the server-reported row count.
func (c *Controller[T]) Total() int { return c.total }

// Page returns the current 1-based page.
func (c *Controller[T]) Page() int { return c.page }

// PageSize returns the current page size.
func (c *Controller[T]) PageSize() int { return c.pageSize }

// SortField returns the active sort column key, or "".
func (c *Controller[T]) SortField() string { return c.sortField }

// SortOrder returns the active sort direction.
func (c *Controller[T]) SortOrder() Order { return c.sortOrder }

// SearchQuery returns the server-committed search string.
func (c *Controller[T]) SearchQuery() string { return c.search }

// SearchInput returns the uncommitted local buffer.
func (c *Controller[T]) SearchInput() string { return c.searchInput }

// SetSearchInput updates the local buffer only; nothing is dispatched until
// SubmitSearch.
func (c *Controller[T]) SetSearchInput(text string) {
	c.searchInput = text
}

// PageCount returns ceil(total/pageSize), minimum 1.
func (c *Controller[T]) PageCount() int {
	count := (c.total + c.pageSize - 1) / c.pageSize
	if count < 1 {
		return 1
	}
	return count
}

// HasPrev reports whether a previous page exists; UIs disable first/prev
// controls when it is false.
func (c *Controller[T]) HasPrev() bool { return c.page > 1 }

// HasNext reports whether a next page exists; UIs disable next/last controls
// when it is false. The server stays authoritative either way.
func (c *Controller[T]) HasNext() bool { return c.page < c.PageCount() }

// SubmitSearch dispatches a navigation with the local buffer as the search
// string (omitted when empty) and the page forced back to 1. The committed
// search state is not mutated here; only the server round trip updates it.
func (c *Controller[T]) SubmitSearch(ctx context.Context) error {
	return c.navigate(ctx, viewState{
		page:      1,
		pageSize:  c.pageSize,
		sortField: c.sortField,
		sortOrder: c.sortOrder,
		search:    c.searchInput,
	})
}

// Sort dispatches a navigation with the new sort parameters, everything else
// unchanged. Re-clicking the active column toggles the direction; a new
// column starts ascending.
func (c *Controller[T]) Sort(ctx context.Context, column string) error {
	order := OrderAsc
	if column == c.sortField && c.sortOrder == OrderAsc {
		order = OrderDesc
	}
	return c.navigate(ctx, viewState{
		page:      c.page,
		pageSize:  c.pageSize,
		sortField: column,
		sortOrder: order,
		search:    c.search,
	})
}

// SetPage dispatches a navigation to the given page, everything else held
// constant. Boundary clamping is the caller's UI concern; the server is
// authoritative for out-of-range pages.
func (c *Controller[T]) SetPage(ctx context.Context, page int) error {
	if page < 1 {
		return fmt.Errorf("table: page must be >= 1, got %d", page)
	}
	return c.navigate(ctx, viewState{
		page:      page,
		pageSize:  c.pageSize,
		sortField: c.sortField,
		sortOrder: c.sortOrder,
		search:    c.search,
	})
}

// SetPageSize dispatches a navigation with the new page size and the page
// reset to 1.
func (c *Controller[T]) SetPageSize(ctx context.Context, size int) error {
	if !allowedPageSize(size) {
		return fmt.Errorf("table: page size %d is not in the allowed set", size)
	}
	return c.navigate(ctx, viewState{
		page:      1,
		pageSize:  size,
		sortField: c.sortField,
		sortOrder: c.sortOrder,
		search:    c.search,
	})
}

// Reload dispatches a navigation re-describing the current committed state.
func (c *Controller[T]) Reload(ctx context.Context) error {
	return c.navigate(ctx, viewState{
		page:      c.page,
		pageSize:  c.pageSize,
		sortField: c.sortField,
		sortOrder: c.sortOrder,
		search:    c.search,
	})
}

type viewState struct {
	page      int
	pageSize  int
	sortField string
	sortOrder Order
	search    string
}

func (c *Controller[T]) navigate(ctx context.Context, state viewState) error {
	if ctx == nil {
		return errors.New("table: context is required")
	}

	params := nav.Params{}
	for key, value := range c.extraParams {
		params[key] = value
	}
	params[ParamPage] = strconv.Itoa(state.page)
	params[ParamPageSize] = strconv.Itoa(state.pageSize)
	if state.sortField != "" {
		params[ParamOrderBy] = state.sortField
		params[ParamSortOrd] = string(state.sortOrder)
	}
	if state.search != "" {
		params[ParamSearch] = state.search
	}

	return c.client.Navigate(ctx, c.destination, params, nav.Options{
		PreserveState: true,
		OnPage:        c.onPage,
		OnError:       c.onError,
	})
}

func allowedPageSize(size int) bool {
	for _, allowed := range PageSizes {
		if size == allowed {
			return true
		}
	}
	return false
}
