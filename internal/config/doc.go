// Package config loads forkify's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/forkify/config.toml
//  3. If the file doesn't exist, fall back to defaults
//  4. Empty or non-positive fields keep their defaults
//  5. FORKIFY_API_KEY, when set, replaces api_key
//
// # Default Values
//
//   - api_url: https://forkify-api.herokuapp.com/api/v2/recipes
//   - timeout_sec: 10
//   - results_per_page: 10
//   - modal_close_sec: 2.5
//   - storage_path: ~/.local/share/forkify/storage.db
//   - log_file: ~/.local/state/forkify/forkify.log
//   - cache_size: 64
//
// # TOML Format
//
//	api_url = "https://forkify-api.herokuapp.com/api/v2/recipes"
//	api_key = "your-key"
//	timeout_sec = 10
//	results_per_page = 10
//	modal_close_sec = 2.5
//	storage_path = "~/.local/share/forkify/storage.db"
//
// Without an api_key searching and viewing work, but uploading is disabled
// and user recipes are not included in search results.
//
// Missing config files are NOT an error. Tilde expansion is applied to
// storage_path and log_file.
package config
