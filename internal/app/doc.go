// Package app is the composition root for forkify.
//
// # Overview
//
// New wires every component from the configuration and returns an App that
// both the TUI and the one-shot CLI commands use. Run wraps New and starts
// the Bubble Tea program.
//
// # Wiring
//
//  1. Load ~/.config/forkify/config.toml (defaults when missing)
//  2. Open the zap logger on the log file; the TUI owns the terminal
//  3. Open the SQLite store that holds the bookmarks
//  4. Build the Forkify client and put the LRU recipe cache in front of it
//  5. Create the state and the controller, register the controller on the
//     event dispatcher
//  6. Dispatch BookmarksRequested so bookmarks are loaded before any view
//
// # Data Flow
//
//	┌──────────────┐
//	│   New()      │
//	└──────┬───────┘
//	       ├─────> config.Load()        config.toml + FORKIFY_API_KEY
//	       ├─────> logging.New()        JSON log file
//	       ├─────> storage.Open()       bookmarks database
//	       ├─────> forkify.NewClient()  HTTP client
//	       ├─────> forkify.NewCache()   recipe LRU + singleflight
//	       ├─────> controller.Register() event handlers
//	       └─────> Dispatch(BookmarksRequested)
//
//	Run():  New() ──> prefs.Load() ──> ui.Run() (blocks)
//
// A failure to load bookmarks is logged and the app starts with none.
// Close unregisters the handlers, closes storage and flushes the log.
package app
