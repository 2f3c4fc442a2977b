package main

import (
	"fmt"
	"os"

	"github.com/danmuck/sigmactl/internal/logging"
)

func main() {
	logging.ConfigureRuntime()
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "sigmactl: %v\n", err)
		os.Exit(1)
	}
}
