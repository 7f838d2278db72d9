// Command aesctr encrypts and decrypts files with AES in CTR mode.
package main

import (
	"fmt"
	"os"

	"github.com/idelchi/aesctr/internal/commands"
	"github.com/idelchi/aesctr/internal/config"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "unknown"

func main() {
	cfg := &config.Config{}

	if err := commands.NewRootCommand(cfg, version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
