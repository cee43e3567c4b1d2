package main

import (
	"os"

	"github.com/tphakala/roostlogger/cmd"
	"github.com/tphakala/roostlogger/internal/buildinfo"
	"github.com/tphakala/roostlogger/internal/conf"
)

// version holds the Git version tag
// buildDate is the time when the binary was built
// Both are set at build time with -ldflags "-X main.version=... -X main.buildDate=..."
var (
	version   string
	buildDate string
)

func main() {
	rootCmd := cmd.RootCommand(conf.NewContext(), buildinfo.NewContext(version, buildDate))
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
