package progress

import (
	"bytes"
	"strings"
	"testing"
)

func TestCIReporter(t *testing.T) {
	var buf bytes.Buffer
	r := &CIReporter{Label: "Generating pages", Out: &buf}

	r.Start(2)
	r.Update(1, "index.html")
	r.Update(2, "about.html")
	r.Finish()

	out := buf.String()
	for _, want := range []string{
		"Generating pages: 2 files",
		"[1/2] index.html",
		"[2/2] about.html",
		"Generating pages: complete",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestNewReporterCI(t *testing.T) {
	t.Setenv("CI", "true")
	if _, ok := NewReporter("x").(*CIReporter); !ok {
		t.Error("expected CIReporter when CI is set")
	}
}

func TestTerminalReporterBeforeStart(t *testing.T) {
	// Update and Finish must tolerate a reporter that was never started.
	r := &TerminalReporter{Label: "x"}
	r.Update(1, "a")
	r.Finish()
}
