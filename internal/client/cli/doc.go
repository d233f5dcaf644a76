// Package cli provides the interactive journaling command-line client.
//
// It wires configuration, local storage, the API client and the services into
// an interactive REPL that works in guest mode before sign-in and against the
// account afterwards. Reads fall back to the offline cache when the server is
// unreachable; cached results are marked as such.
//
// Key features:
//   - Register / Login / Apple sign-in / Logout
//   - Guest entries: save, list, edit, delete (capped per device)
//   - Dashboard, history, insights, search
//   - Automatic migration of guest entries after sign-in
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
