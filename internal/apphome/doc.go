// Package apphome resolves the vuoto application home directory and the
// data directories beneath it.
//
// The app home defaults to <user home>/vuoto_cli and can be relocated with
// the VUOTO_HOME environment variable. All resolution functions create the
// directories they return, so callers can use the paths immediately.
package apphome
