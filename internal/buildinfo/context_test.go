package buildinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContext(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		ctx       *Context
		version   string
		buildDate string
	}{
		{"nil context", nil, UnknownValue, UnknownValue},
		{"empty values", NewContext("", ""), UnknownValue, UnknownValue},
		{"release", NewContext("1.2.0", "2026-10-01"), "1.2.0", "2026-10-01"},
		{"pre-release tag", NewContext("1.3.0-beta.1", ""), "1.3.0-beta.1", UnknownValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.version, tt.ctx.Version())
			assert.Equal(t, tt.buildDate, tt.ctx.BuildDate())
		})
	}
}

func TestContextString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "roostlogger 1.2.0 (built 2026-10-01)", NewContext("1.2.0", "2026-10-01").String())
	assert.Equal(t, "roostlogger unknown (built unknown)", (*Context)(nil).String())
}
