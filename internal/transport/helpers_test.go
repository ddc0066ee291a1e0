package transport

import (
	"reflect"
	"testing"

	"github.com/ben-ranford/cmdtransport/internal/pkggraph"
)

const unexpectedErrFmt = "unexpected error: %v"

func newTestPackage(name, version string) *pkggraph.Package {
	pkg := pkggraph.NewPackage(name, version, "/out/"+name)
	pkg.Main = "index.js"
	return pkg
}

func withMain(pkg *pkggraph.Package) *pkggraph.File {
	return pkg.AddFile(pkg.Main)
}

func testOptions() Options {
	return Options{Idleading: Literal("{name}/{version}/")}
}

func assertStrings(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) == 0 && len(want) == 0 {
		return
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected result:\n got: %q\nwant: %q", got, want)
	}
}
