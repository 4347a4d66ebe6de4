// Package app is the composition root for Tally.
//
// # Startup
//
// Run wires the application together in a fixed order:
//
//  1. Load config.toml (api_url, token, page size, refresh cadence, logging)
//  2. Open the client log; the TUI owns the terminal so nothing logs to stdout
//  3. Read the session from the bearer token; an expired token is fatal
//  4. Build the backoffice HTTP client
//  5. Build one list page per entity, sharing the session and a ui.Hub
//  6. Start the auto-refresh poller
//  7. Start the TUI and block until the user quits or the context is cancelled
//
// # Auto-refresh
//
// The poller refreshes only the page on screen, as reported by the hub, then
// notifies the program so the table redraws. Failures are logged and the next
// attempt backs off (interval, 2x, 4x ... capped at 30s). A page that fails
// to fetch shows its empty state and a toast until a refresh succeeds.
// refresh_seconds = 0 turns polling off; r still refreshes by hand.
//
// # Errors
//
// Only config, log, session and client setup errors are returned from Run.
// Everything after the TUI starts is reported in the status line and the log.
package app
