// Package config handles loading and parsing the Tally configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/tally/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// The bearer token comes from the first of TALLY_TOKEN, token and
// token_file. A relative token_file is resolved against the config file's
// directory.
//
// # Default Values
//
//   - Config file: ~/.config/tally/config.toml
//   - API URL: http://127.0.0.1:3000/api
//   - Page size: 20
//   - Auto-refresh: disabled
//   - Request timeout: 10s
//   - Log file: ~/.local/state/tally/tally.log
//   - Log level: info
//
// # TOML Format
//
//	api_url = "https://office.example.com/api"
//	token_file = "~/.config/tally/token"
//	page_size = 20                 # 10, 20, 50 or 100
//	refresh_seconds = 30           # 0 disables auto-refresh
//	request_timeout_seconds = 10
//	log_file = "~/.local/state/tally/tally.log"
//	log_level = "info"             # debug, info, warn, error
//
// All fields are optional. Tilde expansion is performed for the config path,
// log_file and token_file.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//   - An unreadable token_file
//   - Values rejected by Validate (go-playground/validator struct tags)
//
// Missing config files are NOT an error. A missing token is not an error
// here either; the session layer reports it when the app starts.
package config
