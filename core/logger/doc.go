// Package logger records the lines the shell executes as newline delimited
// JSON events.
package logger
