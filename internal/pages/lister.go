package pages

import (
	"context"
	"time"

	"github.com/five82/tally/internal/confirm"
	"github.com/five82/tally/internal/listview"
	"github.com/five82/tally/internal/state"
)

// Lister is the entity-agnostic surface the TUI drives. Every *Page[E]
// implements it.
//
// Methods that block on the network (Refresh, Confirm, Submit) are meant to
// run inside tea.Cmd functions. Methods that only change local list state
// return a bool when the change requires a fetch.
type Lister interface {
	Name() string
	Title() string
	Columns() []Column
	View() ViewState
	Refresh(ctx context.Context) error

	Search(text string)
	ClearSearch()
	ToggleFilter(key string) error
	SortBy(key string) error

	ToggleRow(key string)
	ToggleAll()
	NextPage() bool
	PrevPage() bool
	CyclePageSize() bool

	RequestDelete(keys []string) error
	Confirmation() confirm.State
	Confirm(ctx context.Context, credential string) error
	CancelConfirm() bool

	EditForm(key string) (*Form, error)
	CreateForm() (*Form, error)
	Submit(ctx context.Context, form *Form) error

	TakeToast() (Toast, bool)
	Close()
}

// Column is one table header cell.
type Column struct {
	Key      string
	Label    string
	Width    int
	Sortable bool
}

// Row is one rendered table row. Cells follow Columns order.
type Row struct {
	Key      string
	Cells    []string
	Selected bool
}

// Filter is one search field toggle.
type Filter struct {
	Key    string
	Label  string
	Active bool
}

// ViewState is a render-ready copy of a page.
type ViewState struct {
	Phase        state.Phase
	Rows         []Row
	Empty        listview.EmptyReason
	EmptyMessage string

	Pagination listview.Pagination
	PageSize   int
	Total      int
	Matched    int

	AllSelected   bool
	SelectedCount int
	SelectedKeys  []string

	Sort    listview.SortConfig
	Search  listview.SearchConfig // applied to the rows
	Term    string                // as typed, possibly not yet applied
	Filters []Filter

	LastError   error
	Offline     bool
	LastUpdated time.Time

	CanDelete  bool
	Privileged bool
	ServerPage bool // rows are one server page, so sorting covers that page only
}

// ToastLevel grades a notification.
type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastError
)

// Toast is a transient notification for the status line.
type Toast struct {
	Level ToastLevel
	Text  string
	At    time.Time
}
