package pkggraph

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ben-ranford/cmdtransport/internal/testutil"
)

func writeFixturePackage(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(root, "package.json"), `{
  "name": "app",
  "version": "0.1.0",
  "spm": {
    "main": "index.js",
    "dependencies": {"bar": "1.0.0", "import-style": "1.0.0"},
    "ignore": ["jquery"],
    "output": ["pages/*.js"]
  }
}`)
	testutil.MustWriteFile(t, filepath.Join(root, "index.js"), `var a = require('./lib/a');
var $ = require("jquery");
require('bar');
require('./style.css');
`)
	testutil.MustWriteFile(t, filepath.Join(root, "lib", "a.js"), "module.exports = require('../data.json');\n")
	testutil.MustWriteFile(t, filepath.Join(root, "data.json"), "{}\n")
	testutil.MustWriteFile(t, filepath.Join(root, "style.css"), "@import \"./base.css\";\n@import url('https://cdn.example.com/x.css');\n")
	testutil.MustWriteFile(t, filepath.Join(root, "base.css"), "body { margin: 0; }\n")
	testutil.MustWriteFile(t, filepath.Join(root, "pages", "home.js"), "import bar from 'bar';\nexport default bar;\n")

	barDir := filepath.Join(root, ModulesDir, "bar", "1.0.0")
	testutil.MustWriteFile(t, filepath.Join(barDir, "package.json"), `{"name": "bar", "version": "1.0.0", "spm": {"main": "src/bar.js"}}`)
	testutil.MustWriteFile(t, filepath.Join(barDir, "src", "bar.js"), "module.exports = require('./util');\n")
	testutil.MustWriteFile(t, filepath.Join(barDir, "src", "util.js"), "module.exports = {};\n")

	styleDir := filepath.Join(root, ModulesDir, "import-style", "1.0.0")
	testutil.MustWriteFile(t, filepath.Join(styleDir, "package.json"), `{"name": "import-style", "version": "1.0.0"}`)
	testutil.MustWriteFile(t, filepath.Join(styleDir, "index.js"), "module.exports = function () {};\n")
	return root
}

func TestLoadBuildsPackageGraph(t *testing.T) {
	root := writeFixturePackage(t)
	pkg, err := Load(context.Background(), root)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if pkg.ID != "app@0.1.0" || pkg.Dest != filepath.ToSlash(root) || pkg.Main != "index.js" {
		t.Fatalf("unexpected package: %#v", pkg)
	}
	wantFiles := []string{"base.css", "data.json", "index.js", "lib/a.js", "pages/home.js", "style.css"}
	if !reflect.DeepEqual(pkg.FilePaths(), wantFiles) {
		t.Fatalf("unexpected files: %q", pkg.FilePaths())
	}
	if !reflect.DeepEqual(pkg.DependencyNames(), []string{"bar", "import-style"}) {
		t.Fatalf("unexpected dependencies: %q", pkg.DependencyNames())
	}

	bar := pkg.Dependencies["bar"]
	if bar.Main != "src/bar.js" || !reflect.DeepEqual(bar.FilePaths(), []string{"src/bar.js", "src/util.js"}) {
		t.Fatalf("unexpected bar package: main=%q files=%q", bar.Main, bar.FilePaths())
	}
	if style := pkg.Dependencies["import-style"]; style.Main != "index.js" {
		t.Fatalf("expected default main, got %q", style.Main)
	}

	requires := pkg.Files["index.js"].Requires
	if len(requires) != 4 {
		t.Fatalf("expected four requires, got %#v", requires)
	}
	assertRequire(t, requires[0], "lib/a.js", "app", true, false)
	assertRequire(t, requires[1], "jquery", "jquery", false, true)
	assertRequire(t, requires[2], "src/bar.js", "bar", false, false)
	assertRequire(t, requires[3], "style.css", "app", true, false)

	assertRequire(t, pkg.Files["lib/a.js"].Requires[0], "data.json", "app", true, false)
	assertRequire(t, pkg.Files["pages/home.js"].Requires[0], "src/bar.js", "bar", false, false)
	styleRequires := pkg.Files["style.css"].Requires
	if len(styleRequires) != 1 {
		t.Fatalf("expected remote imports to be skipped, got %#v", styleRequires)
	}
	assertRequire(t, styleRequires[0], "base.css", "app", true, false)
}

func assertRequire(t *testing.T, req Require, path, pkgName string, relative, ignore bool) {
	t.Helper()
	if req.Path != path || req.Pkg == nil || req.Pkg.Name != pkgName || req.Relative != relative || req.Ignore != ignore {
		t.Fatalf("unexpected require %#v, want path=%s pkg=%s relative=%v ignore=%v", req, path, pkgName, relative, ignore)
	}
}

func TestLoadMissingDependency(t *testing.T) {
	root := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(root, "package.json"), `{"name": "app", "version": "0.1.0", "spm": {"dependencies": {"bar": "1.0.0"}}}`)
	testutil.MustWriteFile(t, filepath.Join(root, "index.js"), "")

	_, err := Load(context.Background(), root)
	if !errors.Is(err, ErrMissingPackage) {
		t.Fatalf("expected ErrMissingPackage, got %v", err)
	}
}

func TestLoadUnresolvedRequires(t *testing.T) {
	cases := map[string]string{
		"missing relative": "require('./nope');",
		"undeclared":       "require('lodash');",
		"escapes package":  "require('../outside');",
	}
	for name, source := range cases {
		t.Run(name, func(t *testing.T) {
			root := t.TempDir()
			testutil.MustWriteFile(t, filepath.Join(root, "package.json"), `{"name": "app", "version": "0.1.0"}`)
			testutil.MustWriteFile(t, filepath.Join(root, "index.js"), source)

			_, err := Load(context.Background(), root)
			if !errors.Is(err, ErrUnresolvedRequire) {
				t.Fatalf("expected ErrUnresolvedRequire, got %v", err)
			}
		})
	}
}

func TestLoadRejectsInvalidManifest(t *testing.T) {
	for name, content := range map[string]string{
		"malformed":    "{",
		"missing name": `{"version": "1.0.0"}`,
	} {
		t.Run(name, func(t *testing.T) {
			root := t.TempDir()
			testutil.MustWriteFile(t, filepath.Join(root, "package.json"), content)
			if _, err := Load(context.Background(), root); !errors.Is(err, ErrManifest) {
				t.Fatalf("expected ErrManifest, got %v", err)
			}
		})
	}
}

func TestLoadHonoursCanceledContext(t *testing.T) {
	root := writeFixturePackage(t)
	if _, err := Load(testutil.CanceledContext(), root); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRequiresIgnoresDynamicSpecifiers(t *testing.T) {
	parser := newRequireParser()
	specs, err := parser.Requires(context.Background(), "a.js", []byte("require(name);\nrequire('./b');\nfoo.require('./c');\n"))
	if err != nil {
		t.Fatalf("requires: %v", err)
	}
	if !reflect.DeepEqual(specs, []string{"./b"}) {
		t.Fatalf("unexpected specifiers: %q", specs)
	}
	if specs, _ := parser.Requires(context.Background(), "a.handlebars", []byte("{{require './x'}}")); len(specs) != 0 {
		t.Fatalf("expected templates to carry no requires, got %q", specs)
	}
}

func TestSplitSpecifier(t *testing.T) {
	cases := map[string][2]string{
		"bar":               {"bar", ""},
		"bar/lib/x":         {"bar", "lib/x"},
		"@scope/pkg":        {"@scope/pkg", ""},
		"@scope/pkg/a/b.js": {"@scope/pkg", "a/b.js"},
	}
	for spec, want := range cases {
		name, sub := splitSpecifier(spec)
		if name != want[0] || sub != want[1] {
			t.Fatalf("splitSpecifier(%q) = %q, %q", spec, name, sub)
		}
	}
}

func TestLoadOutputGlobsSkipToolAndBuildDirectories(t *testing.T) {
	root := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(root, "package.json"), `{"name": "app", "version": "0.1.0", "spm": {"output": ["**/*.js"]}}`)
	testutil.MustWriteFile(t, filepath.Join(root, "index.js"), "")
	testutil.MustWriteFile(t, filepath.Join(root, "lib", "a.js"), "")
	testutil.MustWriteFile(t, filepath.Join(root, "dist", "index.js"), "")
	testutil.MustWriteFile(t, filepath.Join(root, "node_modules", "x", "index.js"), "")
	testutil.MustWriteFile(t, filepath.Join(root, ".git", "hooks", "a.js"), "")

	pkg, err := Load(context.Background(), root)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(pkg.FilePaths(), []string{"index.js", "lib/a.js"}) {
		t.Fatalf("unexpected files: %q", pkg.FilePaths())
	}
}
