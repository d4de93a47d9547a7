// Package state holds the application state shared by the controller and
// the views.
//
// # Overview
//
// State is the one place the current recipe, the search record and the
// bookmark list live. There are no package-level variables: the app package
// creates a single State and hands it to the controller, which is the only
// writer. Views read Snapshot copies.
//
// # Invariants
//
//   - At most one recipe is current.
//   - SetRecipe derives the Bookmarked flag from the bookmark list, so a
//     bookmarked recipe is always flagged when it becomes current.
//   - Bookmarks are unique by id; AddBookmark is idempotent.
//   - The search page index is clamped to the pages the results span.
//
// # Thread Safety
//
// Bubble Tea runs commands on their own goroutines, so every method takes
// the RWMutex. Snapshot, Recipe, Search and Bookmarks return deep copies;
// callers may modify them freely.
//
// # Persistence
//
// Bookmark mutations are written through a BookmarkStore (storage.Bookmarks
// in production). A failed write is returned to the caller but the
// in-memory change stands.
package state
