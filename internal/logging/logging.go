// Package logging builds the leveled loggers shared by the server, the
// rendering pipeline and the template store.
package logging

import (
	"io"
	"strings"

	"github.com/labstack/gommon/log"
)

// DefaultHeader is the line prefix format used by every logger.
const DefaultHeader = `${time_rfc3339} ${level} [${prefix}]`

// New returns a logger tagged with prefix at the named level.
func New(prefix, level string) *log.Logger {
	l := log.New(prefix)
	l.SetHeader(DefaultHeader)
	l.SetLevel(ParseLevel(level))
	return l
}

// Discard returns a logger that drops everything. Used by tests and as the
// fallback when a component is built without a logger.
func Discard() *log.Logger {
	l := log.New("-")
	l.SetOutput(io.Discard)
	l.SetLevel(log.OFF)
	return l
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return Discard()
	}
	return l
}

// ParseLevel maps debug|info|warn|error|off to a gommon level.
// Unknown names map to info.
func ParseLevel(s string) log.Lvl {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off", "none":
		return log.OFF
	default:
		return log.INFO
	}
}
