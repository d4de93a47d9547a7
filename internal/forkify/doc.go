// Package forkify provides an HTTP client for the Forkify v2 recipe API.
//
// # Overview
//
// The client covers the three endpoints the application needs:
//
//   - GET  {base}?search=<query>&key=<key>: recipe summaries for a query
//   - GET  {base}/<id>?key=<key>: one full recipe
//   - POST {base}?key=<key>: upload a user recipe
//
// Every response is wrapped in an Envelope ({status, results, data}); the
// payload under data is decoded into the DTO types in types.go.
//
// # Timeouts
//
// Each request runs under its own context deadline derived from the
// configured timeout (10 seconds by default). When the deadline fires before
// a response arrives the call returns a *TimeoutError, which matches
// ErrTimeout via errors.Is. Cancelling the caller's context is reported as
// an ordinary request error.
//
// # Errors
//
//   - *TimeoutError: no response within the timeout
//   - *APIError: HTTP status >= 400, or a "fail" envelope; carries the API message
//   - wrapped errors for request construction and JSON decoding
//
// # Caching
//
// Cache sits in front of any RecipeSource. Recipes are kept in an LRU keyed
// by id and concurrent loads of one id are collapsed with singleflight, so a
// recipe opened from both the results list and the bookmarks panel costs one
// request. Callers receive copies and may mutate ingredient quantities freely.
//
// # Usage Example
//
//	client, err := forkify.NewClient(forkify.Options{APIKey: key})
//	if err != nil {
//		return err
//	}
//	source, err := forkify.NewCache(client, 64)
//	if err != nil {
//		return err
//	}
//	results, err := source.Search(ctx, "pizza")
package forkify
