// Package pages composes the list-view building blocks into one page per
// backoffice entity.
//
// A Page owns the fetcher, search controller and confirmer for its entity and
// derives render-ready ViewState values from them. The TUI only sees the
// non-generic Lister interface, so it never has to know which entity a tab
// shows. Operations that hit the network block and are run from tea.Cmd
// functions; local operations return immediately.
package pages
