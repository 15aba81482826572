// Package cli provides the command-line interface for the sell monitor.
package cli

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestStripANSI(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{ColorRed + "red" + ColorReset, "red"},
		{"\033[31;1mbold red\033[0m", "bold red"},
		{ColorBold + "a" + ColorReset + " " + ColorGreen + "b" + ColorReset, "a b"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := stripANSI(tt.in); got != tt.want {
			t.Errorf("stripANSI(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStripANSIHandlesColorPackage(t *testing.T) {
	// fatih/color emits combined codes like \033[31;1m for red+bold cells.
	cell := color.New(color.FgRed, color.Bold).Sprint("Sell (Stop Loss)")
	if got := stripANSI(cell); got != "Sell (Stop Loss)" {
		t.Errorf("stripANSI(colored cell) = %q", got)
	}
}

// Property: stripping removes every escape sequence and leaves plain text
// untouched, so padded column widths depend on visible characters only.
func TestProperty_StripANSIWidths(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("plain text passes through unchanged", prop.ForAll(
		func(s string) bool {
			if strings.ContainsRune(s, '\033') {
				return true
			}
			return stripANSI(s) == s
		},
		gen.AlphaString(),
	))

	properties.Property("wrapping in color codes does not change width", prop.ForAll(
		func(s string) bool {
			if strings.ContainsRune(s, '\033') {
				return true
			}
			wrapped := ColorGreen + s + ColorReset
			return len(stripANSI(wrapped)) == len(s)
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

func TestTableRender(t *testing.T) {
	var buf strings.Builder
	out := &Output{writer: &buf, colorEnabled: false}

	table := NewTable(out, "Ticker", "Return")
	table.AddRow("AAPL", "+20.83%")
	table.AddRow("GOOGL", "-1.85%")
	table.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header, separator and two rows", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Ticker") {
		t.Errorf("header = %q", lines[0])
	}
	// The GOOGL row is the widest in column one; AAPL gets padded to match.
	if !strings.HasPrefix(lines[2], "AAPL   ") {
		t.Errorf("row = %q, want AAPL padded to column width", lines[2])
	}
}

func TestOutputColorDisabled(t *testing.T) {
	var buf strings.Builder
	out := &Output{writer: &buf, colorEnabled: false}

	out.Success("done")
	if strings.Contains(buf.String(), "\033") {
		t.Errorf("output contains escape codes with color disabled: %q", buf.String())
	}

	if got := out.ColoredString(ColorRed, "text"); got != "text" {
		t.Errorf("ColoredString = %q, want plain text", got)
	}
}

func TestPnLColor(t *testing.T) {
	out := &Output{colorEnabled: true}
	if out.PnLColor(5) != ColorGreen {
		t.Error("positive should be green")
	}
	if out.PnLColor(-5) != ColorRed {
		t.Error("negative should be red")
	}
	if out.PnLColor(0) != ColorReset {
		t.Error("zero should be neutral")
	}
}
