// Copyright (c) 2026 AMPBoard Team
// AMPBoard - local development dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

package logging

import (
	"bytes"
	"strings"
	"testing"

	clog "github.com/charmbracelet/log"
)

// TestLoggingHelpers_WriteToBuffer verifies the package helper functions write
// formatted messages to the package-level logger `L`.
func TestLoggingHelpers_WriteToBuffer(t *testing.T) {
	var buf bytes.Buffer
	prev := L
	L = clog.New(&buf)
	L.SetLevel(clog.DebugLevel)
	defer func() { L = prev }()

	Debugf("parsed %d hosts", 3)
	Infof("info %d", 1)
	Warnf("warn")
	Errorf("err %v", "E")

	out := buf.String()
	for _, want := range []string{"parsed 3 hosts", "info 1", "warn", "err E"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output; got: %s", want, out)
		}
	}
}

func TestSetup_VerboseControlsDebug(t *testing.T) {
	prev := L
	defer func() { L = prev }()

	var quiet bytes.Buffer
	Setup(&quiet, false)
	Debugf("hidden")
	if strings.Contains(quiet.String(), "hidden") {
		t.Fatalf("debug output written without verbose: %s", quiet.String())
	}

	var loud bytes.Buffer
	Setup(&loud, true)
	Debugf("shown")
	if !strings.Contains(loud.String(), "shown") {
		t.Fatalf("debug output missing with verbose: %s", loud.String())
	}
}
