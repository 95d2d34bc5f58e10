package main

import (
	"testing"
)

func TestScoreCmdFlags(t *testing.T) {
	cmd := newScoreCmd()
	f := cmd.Flags()

	outputFmt, _ := f.GetString("output")
	if outputFmt != "text" {
		t.Errorf("default output = %q, want text", outputFmt)
	}
	save, _ := f.GetBool("save")
	if !save {
		t.Error("default save should be true")
	}

	for _, flag := range []string{"prediction", "actual", "config", "store", "catalog", "output", "save"} {
		if f.Lookup(flag) == nil {
			t.Errorf("missing flag: %s", flag)
		}
	}
}

func TestImportCmdFlags(t *testing.T) {
	cmd := newImportCmd()
	f := cmd.Flags()

	for _, flag := range []string{"config", "store", "format", "activate"} {
		if f.Lookup(flag) == nil {
			t.Errorf("missing flag: %s", flag)
		}
	}
}

func TestExportCmdFlags(t *testing.T) {
	cmd := newExportCmd()
	f := cmd.Flags()

	format, _ := f.GetString("format")
	if format != "json" {
		t.Errorf("default format = %q, want json", format)
	}
	for _, flag := range []string{"config", "store", "catalog", "format", "out", "author"} {
		if f.Lookup(flag) == nil {
			t.Errorf("missing flag: %s", flag)
		}
	}
}

func TestExportExtension(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"json", "json"},
		{"csv", "csv"},
		{"text", "txt"},
		{"markdown", "md"},
	}
	for _, tt := range tests {
		if got := exportExtension(tt.format); got != tt.want {
			t.Errorf("exportExtension(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestNewRenderer(t *testing.T) {
	if _, err := newRenderer("text"); err != nil {
		t.Errorf("text renderer: %v", err)
	}
	if _, err := newRenderer("json"); err != nil {
		t.Errorf("json renderer: %v", err)
	}
	if _, err := newRenderer("yaml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestFirstNonEmpty(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"a", "b", "c"}, "a"},
		{[]string{"", "b", "c"}, "b"},
		{[]string{"", "", "c"}, "c"},
		{[]string{"", "", ""}, ""},
	}

	for _, tt := range tests {
		got := firstNonEmpty(tt.args...)
		if got != tt.want {
			t.Errorf("firstNonEmpty(%v) = %q, want %q", tt.args, got, tt.want)
		}
	}
}
