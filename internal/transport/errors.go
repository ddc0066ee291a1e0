package transport

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidPath       = errors.New("relative path is not supported")
	ErrNotIncluded       = errors.New("file is not included in package")
	ErrMissingDependency = errors.New("runtime dependency is not declared")
	ErrNotFound          = errors.New("file does not belong to any package")
	ErrUnknownInclude    = errors.New("unknown include mode")
	ErrPackageMissing    = errors.New("root package is not set")
)

// PathError reports a relative path passed where a package-rooted path is
// required.
type PathError struct {
	Op   string
	Path string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s: do not support relative path %q", e.Op, e.Path)
}

func (e *PathError) Unwrap() error { return ErrInvalidPath }

// NotIncludedError reports a seed file missing from its package's file set.
type NotIncludedError struct {
	Path    string
	Package string
	Known   []string
}

func (e *NotIncludedError) Error() string {
	return fmt.Sprintf("%s is not included in %s [%s]", e.Path, e.Package, strings.Join(e.Known, ", "))
}

func (e *NotIncludedError) Unwrap() error { return ErrNotIncluded }

// MissingDependencyError reports a shim package that an extension requires
// but the root package does not declare.
type MissingDependencyError struct {
	Shim      string
	Extension string
	Package   string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("%s not exist in %s, but required .%s", e.Shim, e.Package, e.Extension)
}

func (e *MissingDependencyError) Unwrap() error { return ErrMissingDependency }

// NotFoundError reports an emitted file that no known package claims.
type NotFoundError struct {
	Path    string
	Package string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found %s of pkg %s", e.Path, e.Package)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }
