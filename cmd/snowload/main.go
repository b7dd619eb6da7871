package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/thaole73/snowload/internal/cli"
	"github.com/thaole73/snowload/pkg/snowload"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(snowload.ExitPanic)
		}
	}()

	if err := cli.Execute(); err != nil {
		os.Exit(snowload.ExitCodeForError(err))
	}
}
