package report

import (
	"errors"
	"strings"
	"testing"
)

const unexpectedErrFmt = "unexpected error: %v"

func sampleBuildReport() Report {
	return Report{
		SchemaVersion: SchemaVersion,
		Command:       CommandBuild,
		Package:       Package{ID: "app@0.1.0", Name: "app", Version: "0.1.0", Dest: "/src/app"},
		Entries: []Entry{
			{
				File:   "index.js",
				ID:     "app/0.1.0/index",
				Deps:   []string{"app/0.1.0/a", "jquery"},
				Header: `define("app/0.1.0/index", ["app/0.1.0/a", "jquery"], `,
			},
			{
				File:    "a.css",
				ID:      "app/0.1.0/a.css.js",
				Deps:    []string{},
				Header:  `define("app/0.1.0/a.css.js", [], `,
				StyleID: "app-0_1_0",
			},
		},
		Warnings: []string{"style box enabled"},
	}
}

func TestFormatTable(t *testing.T) {
	output, err := NewFormatter().Format(sampleBuildReport(), FormatTable)
	if err != nil {
		t.Fatalf(unexpectedErrFmt, err)
	}
	for _, want := range []string{"Package: app@0.1.0", "Style ID", "app/0.1.0/a, jquery", "app-0_1_0", "Warnings:"} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected table output to include %q, got:\n%s", want, output)
		}
	}
	if !strings.Contains(output, "a.css") || !strings.Contains(output, "-") {
		t.Fatalf("expected empty deps to render as a dash")
	}
}

func TestFormatTableEmptyAndLocation(t *testing.T) {
	output, err := NewFormatter().Format(Report{Command: CommandDeps}, FormatTable)
	if err != nil {
		t.Fatalf(unexpectedErrFmt, err)
	}
	if !strings.Contains(output, "No files to report.") {
		t.Fatalf("unexpected empty output: %q", output)
	}

	output, err = NewFormatter().Format(Report{
		Command:  CommandLocate,
		Location: &Location{Path: "/out/bar/index.js", OriginPath: "index.js", Package: "bar@1.0.0"},
	}, FormatTable)
	if err != nil {
		t.Fatalf(unexpectedErrFmt, err)
	}
	if !strings.Contains(output, "Origin: index.js") || !strings.Contains(output, "Owner: bar@1.0.0") {
		t.Fatalf("unexpected location output: %q", output)
	}
}

func TestFormatJSON(t *testing.T) {
	output, err := NewFormatter().Format(Report{SchemaVersion: SchemaVersion, Command: CommandID}, FormatJSON)
	if err != nil {
		t.Fatalf(unexpectedErrFmt, err)
	}
	if !strings.Contains(output, `"schemaVersion": "0.1.0"`) || !strings.Contains(output, `"command": "id"`) {
		t.Fatalf("unexpected json output: %s", output)
	}
}

func TestFormatCMD(t *testing.T) {
	output, err := NewFormatter().Format(sampleBuildReport(), FormatCMD)
	if err != nil {
		t.Fatalf(unexpectedErrFmt, err)
	}
	want := "// index.js\ndefine(\"app/0.1.0/index\", [\"app/0.1.0/a\", \"jquery\"], \n" +
		"// a.css\ndefine(\"app/0.1.0/a.css.js\", [], \n"
	if output != want {
		t.Fatalf("unexpected cmd output:\n%q\nwant\n%q", output, want)
	}

	output, err = NewFormatter().Format(Report{Command: CommandInclude, Files: []string{"/a.js", "/b.css"}}, FormatCMD)
	if err != nil {
		t.Fatalf(unexpectedErrFmt, err)
	}
	if output != "/a.js\n/b.css\n" {
		t.Fatalf("unexpected include output: %q", output)
	}
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{"": FormatTable, "TABLE": FormatTable, " json ": FormatJSON, "cmd": FormatCMD}
	for input, want := range cases {
		got, err := ParseFormat(input)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v", input, got, err)
		}
	}
	if _, err := ParseFormat("sarif"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
	if _, err := NewFormatter().Format(Report{}, Format("xml")); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat from Format, got %v", err)
	}
}
