package transport

import (
	"errors"
	"testing"

	"github.com/ben-ranford/cmdtransport/internal/pkggraph"
)

// app/index.js -> ./a.js -> ./a.css
// app/index.js -> bar -> bar/./b.js, bar/./bar.css
func newIncludeFixture() *pkggraph.Package {
	app := newTestPackage("app", "0.1.0")
	bar := newTestPackage("bar", "1.0.0")
	style := newTestPackage("import-style", "1.0.0")
	withMain(style)
	app.AddDependency(bar)
	app.AddDependency(style)

	barMain := withMain(bar)
	barMain.RequireFile(bar.AddFile("b.js"), true)
	barMain.RequireFile(bar.AddFile("bar.css"), true)

	index := withMain(app)
	a := app.AddFile("a.js")
	index.RequireFile(a, true)
	a.RequireFile(app.AddFile("a.css"), true)
	index.RequireFile(barMain, false)
	return app
}

func TestIncludeFilesRelativeMode(t *testing.T) {
	app := newIncludeFixture()
	got, err := IncludeFiles(EmittedFile{Path: "/out/app/index.js"}, Options{Root: app})
	if err != nil {
		t.Fatalf(unexpectedErrFmt, err)
	}
	assertStrings(t, got, []string{"/out/app/a.js", "/out/app/a.css"})
}

func TestIncludeFilesAllMode(t *testing.T) {
	app := newIncludeFixture()
	got, err := IncludeFiles(EmittedFile{Path: "/out/app/index.js"}, Options{Root: app, Include: IncludeAll})
	if err != nil {
		t.Fatalf(unexpectedErrFmt, err)
	}
	assertStrings(t, got, []string{
		"/out/app/a.js",
		"/out/app/a.css",
		"/out/bar/index.js",
		"/out/bar/b.js",
		"/out/bar/bar.css",
		"/out/import-style/index.js",
	})
}

func TestIncludeFilesSelfModeKeepsOnlyOwnStylesheets(t *testing.T) {
	app := newIncludeFixture()
	got, err := IncludeFiles(EmittedFile{Path: "/out/app/index.js"}, Options{Root: app, Include: IncludeSelf})
	if err != nil {
		t.Fatalf(unexpectedErrFmt, err)
	}
	assertStrings(t, got, []string{"/out/app/a.css"})
}

func TestIncludeFilesSkipsIgnoredPackages(t *testing.T) {
	app := newIncludeFixture()
	got, err := IncludeFiles(EmittedFile{Path: "/out/app/index.js"}, Options{
		Root:    app,
		Include: IncludeAll,
		Ignore:  []string{"bar"},
	})
	if err != nil {
		t.Fatalf(unexpectedErrFmt, err)
	}
	assertStrings(t, got, []string{"/out/app/a.js", "/out/app/a.css", "/out/import-style/index.js"})
}

func TestIncludeFilesErrors(t *testing.T) {
	app := newIncludeFixture()
	if _, err := IncludeFiles(EmittedFile{Path: "/out/app/index.js"}, Options{}); !errors.Is(err, ErrPackageMissing) {
		t.Fatalf("expected ErrPackageMissing, got %v", err)
	}
	if _, err := IncludeFiles(EmittedFile{Path: "/nowhere/x.js"}, Options{Root: app}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := IncludeFiles(EmittedFile{Path: "/out/app/unknown.js"}, Options{Root: app}); !errors.Is(err, ErrNotIncluded) {
		t.Fatalf("expected ErrNotIncluded, got %v", err)
	}
}
