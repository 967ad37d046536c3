// Package cli implements the interactive command line client for the movie
// API.
//
// The App reads commands in a simple REPL. Before login only register, login,
// help and exit are available; after login the user can list movies, manage
// favorites and upload posters. A background watcher pings the server and
// switches between online and offline mode; in offline mode the movie list is
// served from the local SQLite cache.
package cli
