package ui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tally/internal/backoffice"
	"github.com/five82/tally/internal/confirm"
	"github.com/five82/tally/internal/listview"
	"github.com/five82/tally/internal/pages"
	"github.com/five82/tally/internal/prefs"
	"github.com/five82/tally/internal/state"
)

type fakeLister struct {
	name  string
	title string
	view  pages.ViewState
	cols  []pages.Column

	refreshed    int
	searches     []string
	cleared      int
	toggledRows  []string
	sorted       []string
	deletes      [][]string
	deleteErr    error
	confirmation confirm.State
	credentials  []string
	confirmErr   error
	privileged   bool
	toast        *pages.Toast
}

func newFake(name string) *fakeLister {
	return &fakeLister{
		name:  name,
		title: strings.ToUpper(name[:1]) + name[1:],
		cols: []pages.Column{
			{Key: "customer_name", Label: "Name", Width: 12, Sortable: true},
			{Key: "status", Label: "Status", Width: 10, Sortable: true},
			{Key: "notes", Label: "Notes", Width: 20},
		},
		view: pages.ViewState{
			Phase: state.Ready,
			Rows: []pages.Row{
				{Key: "1", Cells: []string{"Ada", "paid", ""}},
				{Key: "2", Cells: []string{"Bob", "unpaid", "call back"}},
			},
			PageSize:   20,
			Pagination: listview.Pagination{CurrentPage: 1, TotalPages: 1, TotalItems: 2},
			Total:      2,
			Matched:    2,
		},
	}
}

func (f *fakeLister) Name() string            { return f.name }
func (f *fakeLister) Title() string           { return f.title }
func (f *fakeLister) Columns() []pages.Column { return f.cols }
func (f *fakeLister) View() pages.ViewState   { return f.view }
func (f *fakeLister) Refresh(context.Context) error {
	f.refreshed++
	return nil
}
func (f *fakeLister) Search(text string) {
	f.searches = append(f.searches, text)
	f.view.Term = text
}
func (f *fakeLister) ClearSearch() {
	f.cleared++
	f.view.Term = ""
}
func (f *fakeLister) ToggleFilter(string) error { return nil }
func (f *fakeLister) SortBy(key string) error {
	f.sorted = append(f.sorted, key)
	return nil
}
func (f *fakeLister) ToggleRow(key string) { f.toggledRows = append(f.toggledRows, key) }
func (f *fakeLister) ToggleAll()           {}
func (f *fakeLister) NextPage() bool       { return false }
func (f *fakeLister) PrevPage() bool       { return false }
func (f *fakeLister) CyclePageSize() bool  { return false }
func (f *fakeLister) RequestDelete(keys []string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletes = append(f.deletes, keys)
	f.confirmation.Phase = confirm.Requested
	f.confirmation.Request.Action = "delete"
	f.confirmation.Request.Keys = keys
	f.confirmation.Request.Privileged = f.privileged
	return nil
}
func (f *fakeLister) Confirmation() confirm.State { return f.confirmation }
func (f *fakeLister) Confirm(_ context.Context, credential string) error {
	f.credentials = append(f.credentials, credential)
	if f.confirmErr != nil {
		f.confirmation.FieldError = f.confirmErr.Error()
		return f.confirmErr
	}
	f.confirmation = confirm.State{}
	return nil
}
func (f *fakeLister) CancelConfirm() bool {
	f.confirmation = confirm.State{}
	return true
}
func (f *fakeLister) EditForm(key string) (*pages.Form, error) {
	return &pages.Form{Mode: pages.EditMode, Key: key, Title: "Edit", Fields: []pages.FormField{{Key: "customer_name", Label: "Name"}}}, nil
}
func (f *fakeLister) CreateForm() (*pages.Form, error) {
	return &pages.Form{Mode: pages.CreateMode, Title: "New"}, nil
}
func (f *fakeLister) Submit(context.Context, *pages.Form) error { return nil }
func (f *fakeLister) TakeToast() (pages.Toast, bool) {
	if f.toast == nil {
		return pages.Toast{}, false
	}
	t := *f.toast
	f.toast = nil
	return t, true
}
func (f *fakeLister) Close() {}

func newTestModel(t *testing.T, listers ...*fakeLister) (Model, *Hub, string) {
	t.Helper()
	hub := NewHub()
	prefsPath := filepath.Join(t.TempDir(), "prefs.toml")
	ls := make([]pages.Lister, len(listers))
	for i, l := range listers {
		ls[i] = l
	}
	m := New(Options{Pages: ls, Hub: hub, PrefsPath: prefsPath})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	next, _ = next.Update(refreshMsg{})
	return next.(Model), hub, prefsPath
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(Model)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_OpensLastTab(t *testing.T) {
	a, b := newFake("customers"), newFake("staff")
	m := New(Options{Pages: []pages.Lister{a, b}, LastTab: "staff", PrefsPath: filepath.Join(t.TempDir(), "p.toml")})
	if m.active != 1 {
		t.Fatalf("active = %d, want 1", m.active)
	}
}

func TestModel_TabSwitchFetchesOnceAndSavesPrefs(t *testing.T) {
	a, b := newFake("customers"), newFake("staff")
	m, hub, prefsPath := newTestModel(t, a, b)
	if hub.Active() != a {
		t.Fatalf("hub active should be the first page")
	}

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if cmd == nil {
		t.Fatalf("first visit should fetch")
	}
	if _, ok := cmd().(fetchedMsg); !ok || b.refreshed != 1 {
		t.Fatalf("expected staff refresh, got %d", b.refreshed)
	}
	if hub.Active() != b {
		t.Fatalf("hub active should follow the tab")
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	_, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if cmd != nil {
		t.Fatalf("revisiting a loaded tab should not fetch")
	}

	p, err := prefs.Load(prefsPath)
	if err != nil {
		t.Fatalf("prefs.Load: %v", err)
	}
	if p.LastTab != "staff" {
		t.Fatalf("LastTab = %q, want staff", p.LastTab)
	}
}

func TestModel_DeleteRunsOnlyAfterConfirm(t *testing.T) {
	a := newFake("customers")
	m, _, _ := newTestModel(t, a)

	m, _ = press(t, m, runes("j"), runes("d"))
	if len(a.deletes) != 1 || a.deletes[0][0] != "2" {
		t.Fatalf("deletes = %v, want [[2]]", a.deletes)
	}
	if m.modal == nil {
		t.Fatalf("confirm modal should be open")
	}
	if len(a.credentials) != 0 {
		t.Fatalf("confirm ran before the user confirmed")
	}

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("enter should submit")
	}
	next, _ := m.Update(cmd())
	m = next.(Model)
	if m.modal != nil {
		t.Fatalf("modal should close after success")
	}
	if len(a.credentials) != 1 || a.credentials[0] != "" {
		t.Fatalf("credentials = %q, want one blank credential", a.credentials)
	}
}

func TestModel_DeleteUsesSelection(t *testing.T) {
	a := newFake("customers")
	a.view.SelectedKeys = []string{"1", "2"}
	a.view.SelectedCount = 2
	m, _, _ := newTestModel(t, a)

	m, _ = press(t, m, runes("d"))
	if len(a.deletes) != 1 || len(a.deletes[0]) != 2 {
		t.Fatalf("deletes = %v, want the two selected keys", a.deletes)
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.modal != nil || a.confirmation.Phase != confirm.Idle {
		t.Fatalf("esc should cancel the confirmation")
	}
}

func TestModel_RejectedPasswordKeepsModalOpen(t *testing.T) {
	a := newFake("staff")
	a.confirmErr = backoffice.ErrInvalidCredential
	a.privileged = true
	m, _, _ := newTestModel(t, a)
	m, _ = press(t, m, runes("d"))

	m, cmd := press(t, m, runes("x"), runes("y"), tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("enter should submit")
	}
	next, _ := m.Update(cmd())
	m = next.(Model)
	if m.modal == nil {
		t.Fatalf("modal should stay open after a rejected password")
	}
	if a.credentials[0] != "xy" {
		t.Fatalf("credential = %q, want xy", a.credentials[0])
	}
	if !strings.Contains(m.View(), backoffice.ErrInvalidCredential.Error()) {
		t.Fatalf("view should show the field error")
	}
}

func TestModel_ConfirmWhileLoadingKeepsModalOpen(t *testing.T) {
	a := newFake("customers")
	a.confirmErr = pages.ErrLoading
	m, _, _ := newTestModel(t, a)
	m, _ = press(t, m, runes("d"))

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("enter should submit")
	}
	next, _ := m.Update(cmd())
	m = next.(Model)
	if m.modal == nil {
		t.Fatalf("modal should stay open while the page is loading")
	}
	if !strings.Contains(m.View(), pages.ErrLoading.Error()) {
		t.Fatalf("view should explain why nothing happened")
	}
}

func TestModel_DeleteRefusedShowsToast(t *testing.T) {
	a := newFake("staff")
	a.deleteErr = pages.ErrNotPermitted
	m, _, _ := newTestModel(t, a)

	m, _ = press(t, m, runes("d"))
	if m.modal != nil {
		t.Fatalf("no modal expected")
	}
	if !m.hasToast || m.toast.Level != pages.ToastError {
		t.Fatalf("expected an error toast, got %+v", m.toast)
	}
}

func TestModel_SearchBarFeedsPage(t *testing.T) {
	a := newFake("customers")
	m, _, _ := newTestModel(t, a)

	m, _ = press(t, m, runes("/"), runes("a"), runes("d"))
	if m.mode != modeSearch {
		t.Fatalf("expected search mode")
	}
	if got := strings.Join(a.searches, ","); got != "a,ad" {
		t.Fatalf("searches = %q, want a,ad", got)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeBrowse || a.cleared != 1 {
		t.Fatalf("esc should clear and leave search mode")
	}
}

func TestModel_SortAndSelect(t *testing.T) {
	a := newFake("customers")
	m, _, _ := newTestModel(t, a)

	m, _ = press(t, m, runes("l"), runes("s"), runes(" "))
	if len(a.sorted) != 1 || a.sorted[0] != "status" {
		t.Fatalf("sorted = %v, want [status]", a.sorted)
	}
	if len(a.toggledRows) != 1 || a.toggledRows[0] != "1" {
		t.Fatalf("toggled = %v, want [1]", a.toggledRows)
	}
}

func TestModel_PicksUpPageToasts(t *testing.T) {
	a := newFake("customers")
	m, _, _ := newTestModel(t, a)
	a.toast = &pages.Toast{Level: pages.ToastInfo, Text: "Deleted \"Ada\"", At: time.Now()}

	next, _ := m.Update(refreshMsg{})
	m = next.(Model)
	if !m.hasToast || m.toast.Text != "Deleted \"Ada\"" {
		t.Fatalf("toast = %+v", m.toast)
	}
	if !strings.Contains(m.View(), "Deleted") {
		t.Fatalf("status line should show the toast")
	}

	next, _ = m.Update(clockMsg(time.Now().Add(ToastDuration * 2)))
	if next.(Model).hasToast {
		t.Fatalf("toast should expire")
	}
}

func TestModel_ViewShowsEmptyAndFailedStates(t *testing.T) {
	a := newFake("customers")
	a.view.Rows = nil
	a.view.Empty = listview.NoData
	a.view.EmptyMessage = "No customers yet"
	m, _, _ := newTestModel(t, a)
	m.pending = 0
	if !strings.Contains(m.View(), "No customers yet") {
		t.Fatalf("expected empty message")
	}

	a.view.Phase = state.Failed
	a.view.LastError = &backoffice.APIError{Status: 502}
	next, _ := m.Update(refreshMsg{})
	if !strings.Contains(next.(Model).View(), "press r to retry") {
		t.Fatalf("expected retry hint")
	}
}

func TestModel_ServerPagedSortIsLabelled(t *testing.T) {
	a := newFake("sales orders")
	a.view.ServerPage = true
	m, _, _ := newTestModel(t, a)
	if strings.Contains(m.View(), "sorted within this page") {
		t.Fatalf("no note expected without a sort")
	}

	a.view.Sort = listview.SortConfig{Key: "status", Direction: listview.Ascending}
	next, _ := m.Update(refreshMsg{})
	if !strings.Contains(next.(Model).View(), "sorted within this page") {
		t.Fatalf("status line should note the sort covers one page")
	}
}

func TestVisibleColumns(t *testing.T) {
	cols := []pages.Column{{Width: 10}, {Width: 10}, {Width: 10}, {Width: 10}}

	idx, widths := visibleColumns(cols, 0, 40)
	if len(idx) != 3 || idx[0] != 0 {
		t.Fatalf("idx = %v, want three columns from 0", idx)
	}
	if widths[2] != 10 {
		t.Fatalf("widths = %v", widths)
	}

	idx, _ = visibleColumns(cols, 3, 30)
	if idx[len(idx)-1] != 3 {
		t.Fatalf("cursor column not visible: %v", idx)
	}
}
