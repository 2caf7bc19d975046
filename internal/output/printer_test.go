package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrinterPlainPrefixes(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinterTo(&buf, false)

	p.Info("info %d", 1)
	p.Success("done %s", "x")
	p.Warning("careful")
	p.Error("broken")
	p.Debug("hidden")

	out := buf.String()
	for _, want := range []string{"info 1\n", "[OK] done x\n", "[WARN] careful\n", "[ERROR] broken\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "hidden") {
		t.Error("Debug should be silent when not verbose")
	}
}

func TestPrinterVerboseDebug(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinterTo(&buf, true)
	p.Debug("shown %s", "now")
	if !strings.Contains(buf.String(), "shown now") {
		t.Errorf("Debug output missing: %q", buf.String())
	}
}

func TestDiscardSatisfiesLogger(t *testing.T) {
	var l Logger = Discard
	l.Info("x")
	l.Success("x")
	l.Warning("x")

	var _ Logger = (*Printer)(nil)
}
