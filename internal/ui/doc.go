// Package ui provides the Bubble Tea terminal interface for Tally.
//
// # Layout
//
// One tab per entity page. Each screen has four bands:
//
//   - header: logo, tab strip, connection state, session and token expiry
//   - command bar: key hints from the key map, or the search input while searching
//   - table: checkbox column, sortable headers with the column cursor, and rows
//     around the row cursor
//   - status line: pagination, selection count, active search and the latest
//     notification
//
// Overlays (help, client log, confirmation, edit form, search fields) replace
// the screen while open and take every keystroke.
//
// # Data flow
//
// The model never holds entity data. It keeps a pages.ViewState copy of the
// active page and re-reads it after every key, fetch result and hub
// notification. Network calls (Refresh, Confirm, Submit) run in tea.Cmd
// functions and report back with messages.
//
// Pages and the background poller run outside the program, so they reach it
// through the Hub: Notify sends a refresh message, Active tells the poller
// which page is on screen.
package ui
