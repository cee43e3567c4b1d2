// Package buildinfo holds version metadata injected at build time
package buildinfo

import "fmt"

// UnknownValue is reported for metadata the build did not set
const UnknownValue = "unknown"

// Context contains build-time metadata that is not user-configurable.
// It is filled from linker flags in main and never from configuration.
type Context struct {
	version   string
	buildDate string
}

// NewContext creates build metadata
func NewContext(version, buildDate string) *Context {
	return &Context{version: version, buildDate: buildDate}
}

// Version returns the build version string
func (c *Context) Version() string {
	if c == nil || c.version == "" {
		return UnknownValue
	}
	return c.version
}

// BuildDate returns the build date string
func (c *Context) BuildDate() string {
	if c == nil || c.buildDate == "" {
		return UnknownValue
	}
	return c.buildDate
}

// String formats the metadata for the version command
func (c *Context) String() string {
	return fmt.Sprintf("roostlogger %s (built %s)", c.Version(), c.BuildDate())
}
