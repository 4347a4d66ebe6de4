package pages

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/five82/tally/internal/backoffice"
	"github.com/five82/tally/internal/confirm"
	"github.com/five82/tally/internal/fetch"
	"github.com/five82/tally/internal/listview"
	"github.com/five82/tally/internal/search"
	"github.com/five82/tally/internal/session"
	"github.com/five82/tally/internal/state"
)

var (
	// ErrLoading is returned for mutations attempted while a fetch is in flight.
	ErrLoading = errors.New("still loading, try again in a moment")
	// ErrNotPermitted is returned when the session role may not perform an action.
	ErrNotPermitted = errors.New("your role is not permitted to do that")
	// ErrNothingSelected is returned when a bulk action has no target rows.
	ErrNothingSelected = errors.New("no rows selected")
	// ErrUnknownRecord is returned when a key is not in the loaded collection.
	ErrUnknownRecord = errors.New("record is not loaded")
)

// Definition binds an entity type to its collection and schema.
type Definition[E listview.Entity] struct {
	Resource backoffice.Resource
	Title    string
	Schema   *listview.Schema[E]
}

// Deps are the collaborators shared by every page.
type Deps struct {
	Session session.Session
	Mutator backoffice.Mutator
	Logger  *log.Logger

	// PageSize is the initial page size; invalid sizes use the default.
	PageSize int
	// SearchWait is the keystroke debounce; zero uses search.DefaultWait.
	SearchWait time.Duration

	// Context bounds fetches started by the page itself, such as a server
	// search after a debounced keystroke.
	Context context.Context
	// Notify is called, never on the caller's goroutine, after the page
	// changed without a direct call (debounced search, background fetch).
	Notify func()
}

// Page is the list-view composition for one entity: fetched collection,
// search, sort, selection, pagination, confirmation and edit forms.
type Page[E listview.Entity] struct {
	def     Definition[E]
	deps    Deps
	fetcher *fetch.Fetcher[E]
	search  *search.Controller
	confirm *confirm.Confirmer
	log     *log.Logger

	mu       sync.Mutex
	applied  listview.SearchConfig
	sort     listview.SortConfig
	selected *listview.Selection
	page     int
	pageSize int
	toast    *Toast
}

// Ensure Page satisfies the non-generic UI contract.
var _ Lister = (*Page[backoffice.Customer])(nil)

// New builds a page reading through source.
func New[E listview.Entity](def Definition[E], source fetch.Source[E], deps Deps) *Page[E] {
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	if deps.Context == nil {
		deps.Context = context.Background()
	}
	if deps.Notify == nil {
		deps.Notify = func() {}
	}
	size := deps.PageSize
	if !listview.ValidPageSize(size) {
		size = listview.DefaultPageSize
	}

	p := &Page[E]{
		def:      def,
		deps:     deps,
		fetcher:  fetch.New(def.Resource.Name, source, deps.Logger),
		confirm:  confirm.New(),
		log:      deps.Logger.With("page", def.Resource.Name),
		selected: listview.NewSelection(),
		page:     1,
		pageSize: size,
	}
	p.applied = listview.SearchConfig{ActiveFilters: def.Schema.Searchable()}
	p.search = search.NewController(def.Schema.Searchable(), deps.SearchWait, p.onSearch)
	return p
}

// Name returns the resource name, e.g. "sales orders".
func (p *Page[E]) Name() string { return p.def.Resource.Name }

// Title returns the tab title.
func (p *Page[E]) Title() string { return p.def.Title }

// Columns describes the table header.
func (p *Page[E]) Columns() []Column {
	fields := p.def.Schema.Fields()
	cols := make([]Column, 0, len(fields))
	for _, f := range fields {
		cols = append(cols, Column{Key: f.Key, Label: f.Label, Width: f.Width, Sortable: f.Sortable})
	}
	return cols
}

// Refresh fetches the collection for the current owner, page and search.
// A response overtaken by a newer fetch is dropped silently.
func (p *Page[E]) Refresh(ctx context.Context) error {
	err := p.fetcher.Fetch(ctx, p.query())
	if errors.Is(err, fetch.ErrStale) {
		return nil
	}

	// A failed read leaves an empty collection, which clears the selection.
	snap := p.fetcher.Snapshot()
	p.mu.Lock()
	listview.Prune(p.selected, snap.Items)
	if err == nil && snap.Pagination != nil && snap.Pagination.CurrentPage > 0 {
		p.page = snap.Pagination.CurrentPage
	}
	p.mu.Unlock()

	if err != nil {
		p.setToast(ToastError, fmt.Sprintf("Could not load %s: %s", p.def.Resource.Name, backoffice.UserMessage(err)))
		return err
	}
	return nil
}

func (p *Page[E]) query() backoffice.ListQuery {
	p.mu.Lock()
	defer p.mu.Unlock()
	q := backoffice.ListQuery{Owner: p.deps.Session.Owner(p.def.Resource.Scope)}
	if p.def.Resource.Paginated {
		q.PageNumber = p.page
		q.PageSize = p.pageSize
	}
	if p.def.Resource.ServerSearch {
		cfg := p.applied.Clone()
		q.Search = &cfg
	}
	return q
}

// onSearch receives debounced and immediate emissions from the controller.
func (p *Page[E]) onSearch(cfg listview.SearchConfig) {
	cfg = listview.NormalizeSearch(p.def.Schema, cfg)
	p.mu.Lock()
	p.applied = cfg
	p.page = 1
	p.mu.Unlock()

	if p.def.Resource.ServerSearch {
		go func() {
			_ = p.Refresh(p.deps.Context)
			p.deps.Notify()
		}()
		return
	}
	go p.deps.Notify()
}

// Search records the full current search box text.
func (p *Page[E]) Search(text string) { p.search.Input(text) }

// ClearSearch empties the term immediately.
func (p *Page[E]) ClearSearch() { p.search.Clear() }

// ToggleFilter flips one searchable field.
func (p *Page[E]) ToggleFilter(key string) error { return p.search.Toggle(key) }

// SortBy cycles the sort on one column. Sorting is always applied to the
// loaded rows, so it never needs a fetch.
func (p *Page[E]) SortBy(key string) error {
	f, ok := p.def.Schema.Field(key)
	if !ok || !f.Sortable {
		return fmt.Errorf("column %q is not sortable", key)
	}
	p.mu.Lock()
	p.sort = p.sort.Cycle(key)
	p.mu.Unlock()
	return nil
}

// ToggleRow flips the selection of one loaded row.
func (p *Page[E]) ToggleRow(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.selected.Toggle(key)
}

// ToggleAll applies the select-all checkbox to the visible rows.
func (p *Page[E]) ToggleAll() {
	v := p.derive()
	p.mu.Lock()
	defer p.mu.Unlock()
	listview.ToggleAll(p.selected, v.Rows)
}

// NextPage moves forward one page. It reports whether a fetch is needed.
func (p *Page[E]) NextPage() bool {
	v := p.derive()
	if !v.Pagination.HasNextPage {
		return false
	}
	p.mu.Lock()
	p.page = v.Pagination.CurrentPage + 1
	p.mu.Unlock()
	return p.def.Resource.Paginated
}

// PrevPage moves back one page. It reports whether a fetch is needed.
func (p *Page[E]) PrevPage() bool {
	v := p.derive()
	if !v.Pagination.HasPreviousPage {
		return false
	}
	p.mu.Lock()
	p.page = v.Pagination.CurrentPage - 1
	p.mu.Unlock()
	return p.def.Resource.Paginated
}

// CyclePageSize switches to the next page size and returns to page one. It
// reports whether a fetch is needed.
func (p *Page[E]) CyclePageSize() bool {
	p.mu.Lock()
	p.pageSize = listview.NextPageSize(p.pageSize)
	p.page = 1
	p.mu.Unlock()
	return p.def.Resource.Paginated
}

// View returns everything the table needs to render.
func (p *Page[E]) View() ViewState {
	snap := p.fetcher.Snapshot()
	v := p.deriveFrom(snap)

	p.mu.Lock()
	defer p.mu.Unlock()

	fields := p.def.Schema.Fields()
	rows := make([]Row, 0, len(v.Rows))
	for _, e := range v.Rows {
		cells := make([]string, len(fields))
		for i, f := range fields {
			cells[i] = f.Get(e).String()
		}
		rows = append(rows, Row{Key: e.Key(), Cells: cells, Selected: p.selected.Has(e.Key())})
	}

	current := p.search.Config()
	var filters []Filter
	for _, key := range p.def.Schema.Searchable() {
		f, _ := p.def.Schema.Field(key)
		filters = append(filters, Filter{Key: key, Label: f.Label, Active: current.Has(key)})
	}

	return ViewState{
		Phase:         snap.Phase,
		Rows:          rows,
		Empty:         v.Empty,
		EmptyMessage:  listview.EmptyMessage(v.Empty, p.def.Resource.Name),
		Pagination:    v.Pagination,
		PageSize:      p.pageSize,
		Total:         v.Total,
		Matched:       v.Matched,
		AllSelected:   listview.AllSelected(p.selected, v.Rows),
		SelectedCount: p.selected.Len(),
		SelectedKeys:  p.selected.Keys(),
		Sort:          p.sort,
		Search:        p.applied.Clone(),
		Term:          p.search.Term(),
		Filters:       filters,
		LastError:     snap.LastError,
		Offline:       snap.IsOffline(),
		LastUpdated:   snap.LastUpdated,
		CanDelete:     p.deps.Session.CanDelete(p.def.Resource),
		Privileged:    p.def.Resource.Privileged,
		ServerPage:    p.def.Resource.Paginated,
	}
}

func (p *Page[E]) derive() listview.View[E] {
	return p.deriveFrom(p.fetcher.Snapshot())
}

// deriveFrom runs collection → filter → sort → paginate. Server-paginated
// collections are already one page; their pagination comes from the server.
func (p *Page[E]) deriveFrom(snap state.Snapshot[E]) listview.View[E] {
	p.mu.Lock()
	params := listview.Params{
		Search:         p.applied.Clone(),
		Sort:           p.sort,
		Page:           p.page,
		PageSize:       p.pageSize,
		ClientPaging:   !p.def.Resource.Paginated,
		ServerFiltered: p.def.Resource.ServerSearch,
	}
	p.mu.Unlock()

	v := listview.Derive(p.def.Schema, snap.Items, params)
	if params.ClientPaging && len(v.Rows) == 0 && v.Pagination.TotalPages > 0 && params.Page > v.Pagination.TotalPages {
		// The filter shrank the result below the current page.
		params.Page = v.Pagination.TotalPages
		p.mu.Lock()
		p.page = params.Page
		p.mu.Unlock()
		v = listview.Derive(p.def.Schema, snap.Items, params)
	}
	if !params.ClientPaging {
		if snap.Pagination != nil {
			v.Pagination = *snap.Pagination
		} else {
			v.Pagination = listview.Pagination{CurrentPage: 1, TotalPages: 1, TotalItems: len(snap.Items)}.Normalize()
		}
	}
	return v
}

// record returns a loaded row by key.
func (p *Page[E]) record(key string) (E, bool) {
	for _, e := range p.fetcher.Snapshot().Items {
		if e.Key() == key {
			return e, true
		}
	}
	var zero E
	return zero, false
}

func (p *Page[E]) loading() bool {
	return p.fetcher.Snapshot().Loading()
}

func (p *Page[E]) owner() string {
	return p.deps.Session.Owner(p.def.Resource.Scope)
}

// RequestDelete stages deletion of keys behind the confirmer.
func (p *Page[E]) RequestDelete(keys []string) error {
	if len(keys) == 0 {
		return ErrNothingSelected
	}
	if p.loading() {
		return ErrLoading
	}
	if !p.deps.Session.CanDelete(p.def.Resource) {
		return ErrNotPermitted
	}
	for _, key := range keys {
		if _, ok := p.record(key); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownRecord, key)
		}
	}

	subject := p.subject(keys)
	res := p.def.Resource
	owner := p.owner()
	targets := append([]string(nil), keys...)
	return p.confirm.Request(confirm.Request{
		Action:     "delete",
		Subject:    subject,
		Keys:       targets,
		Privileged: res.Privileged,
	}, func(ctx context.Context, credential string) error {
		for _, key := range targets {
			if err := p.deps.Mutator.Delete(ctx, res, owner, key, credential); err != nil {
				return err
			}
			p.log.Info("record deleted", "key", key)
		}
		return nil
	})
}

func (p *Page[E]) subject(keys []string) string {
	if len(keys) == 1 {
		if e, ok := p.record(keys[0]); ok {
			fields := p.def.Schema.Fields()
			if len(fields) > 0 {
				if label := fields[0].Get(e).String(); label != "" {
					return fmt.Sprintf("%q", label)
				}
			}
		}
		return "1 record"
	}
	return fmt.Sprintf("%d %s", len(keys), p.def.Resource.Name)
}

// Confirmation returns the confirmer state for the modal.
func (p *Page[E]) Confirmation() confirm.State { return p.confirm.State() }

// CancelConfirm dismisses a pending confirmation.
func (p *Page[E]) CancelConfirm() bool { return p.confirm.Cancel() }

// Confirm submits the pending action and re-fetches the collection. A
// rejected credential keeps the confirmation open for another attempt.
func (p *Page[E]) Confirm(ctx context.Context, credential string) error {
	if p.loading() {
		return ErrLoading
	}
	req := p.confirm.State().Request
	err := p.confirm.Confirm(ctx, credential)
	switch {
	case errors.Is(err, confirm.ErrNotRequested), errors.Is(err, confirm.ErrCredentialRequired):
		return err
	case errors.Is(err, backoffice.ErrInvalidCredential):
		p.log.Warn("credential rejected", "action", req.Action)
		return err
	case err != nil:
		p.log.Error("mutation failed", "action", req.Action, "error", err)
		p.setToast(ToastError, fmt.Sprintf("Could not %s %s: %s", req.Action, req.Subject, backoffice.UserMessage(err)))
	default:
		p.mu.Lock()
		for _, key := range req.Keys {
			if p.selected.Has(key) {
				p.selected.Toggle(key)
			}
		}
		p.mu.Unlock()
		p.setToast(ToastInfo, fmt.Sprintf("Deleted %s", req.Subject))
	}
	_ = p.Refresh(ctx)
	return err
}

// TakeToast returns and clears the latest notification.
func (p *Page[E]) TakeToast() (Toast, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.toast == nil {
		return Toast{}, false
	}
	t := *p.toast
	p.toast = nil
	return t, true
}

func (p *Page[E]) setToast(level ToastLevel, text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.toast = &Toast{Level: level, Text: text, At: time.Now()}
}

// Close stops pending search emissions.
func (p *Page[E]) Close() { p.search.Close() }
