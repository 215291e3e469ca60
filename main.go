// Copyright (c) 2026 AMPBoard Team
// AMPBoard - local development dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for AMPBoard.
//
// Usage:
//
//	go run . [flags]
//	./ampboard [command] [flags]
//
// This launches the AMPBoard CLI. See --help for options.
package main

import (
	"os"

	"github.com/ampboard/ampboard/internal/logging"
	"github.com/ampboard/ampboard/ui/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		logging.Errorf("%v", err)
		os.Exit(1)
	}
}
