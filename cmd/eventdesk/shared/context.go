// Package shared holds the context passed to all CLI commands.
package shared

import (
	"github.com/go-ports/eventdesk/internal/config"
	"github.com/go-ports/eventdesk/internal/service"
)

// Context carries global CLI state (flags set on the root command).
type Context struct {
	// Home overrides the data home directory.
	// When empty, resolution falls through to EVENTDESK_HOME env var → persisted config → ~/.eventdesk.
	Home string
}

// ResolvedHome returns the data home and where it came from.
func (c *Context) ResolvedHome() (path, source string) {
	if c.Home != "" {
		return c.Home, "flag"
	}
	return config.ResolveHome()
}

// Open opens the service for the resolved data home. Callers must Close it.
func (c *Context) Open() (*service.Service, error) {
	home, _ := c.ResolvedHome()
	return service.New(home)
}
