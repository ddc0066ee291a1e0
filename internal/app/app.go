package app

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ben-ranford/cmdtransport/internal/config"
	"github.com/ben-ranford/cmdtransport/internal/logging"
	"github.com/ben-ranford/cmdtransport/internal/pkggraph"
	"github.com/ben-ranford/cmdtransport/internal/report"
	"github.com/ben-ranford/cmdtransport/internal/transport"
	"github.com/ben-ranford/cmdtransport/internal/workspace"
)

var (
	ErrUnknownMode  = errors.New("unknown mode")
	ErrFileRequired = errors.New("file argument is required")
)

// Loader builds the package graph rooted at dir.
type Loader func(ctx context.Context, dir string) (*pkggraph.Package, error)

type App struct {
	Load      Loader
	Formatter report.Formatter
}

func New() *App {
	return &App{
		Load:      pkggraph.Load,
		Formatter: report.NewFormatter(),
	}
}

// session is the resolved state every mode works from.
type session struct {
	pkg    *pkggraph.Package
	values config.Values
	opts   transport.Options
}

func (a *App) Execute(ctx context.Context, req Request) (string, error) {
	switch req.Mode {
	case ModeID, ModeDeps, ModeInclude, ModeLocate:
		if strings.TrimSpace(req.File) == "" {
			return "", fmt.Errorf("%w for %s", ErrFileRequired, req.Mode)
		}
	case ModeBuild:
	default:
		return "", ErrUnknownMode
	}

	s, err := a.open(ctx, req)
	if err != nil {
		return "", err
	}

	reportData := report.Report{
		SchemaVersion: report.SchemaVersion,
		Command:       report.Command(req.Mode),
		Package: report.Package{
			ID:      s.pkg.ID,
			Name:    s.pkg.Name,
			Version: s.pkg.Version,
			Dest:    s.pkg.Dest,
		},
	}

	switch req.Mode {
	case ModeID, ModeDeps:
		entry, err := transportFile(packageRelative(s.pkg, req.File), s, req.Mode == ModeDeps)
		if err != nil {
			return "", err
		}
		reportData.Entries = []report.Entry{entry}
	case ModeInclude:
		files, err := transport.IncludeFiles(transport.EmittedFile{Path: emittedPath(s.pkg, req.File)}, s.opts)
		if err != nil {
			return "", err
		}
		reportData.Files = files
	case ModeLocate:
		loc, err := transport.Locate(transport.EmittedFile{
			Path:       emittedPath(s.pkg, req.File),
			OriginPath: optionalEmittedPath(s.pkg, req.OriginPath),
		}, s.pkg)
		if err != nil {
			return "", err
		}
		reportData.Location = &report.Location{Path: loc.Path, OriginPath: loc.OriginPath, Package: loc.Pkg.ID}
	case ModeBuild:
		entries, err := build(ctx, s)
		if err != nil {
			return "", err
		}
		reportData.Entries = entries
		if len(entries) == 0 {
			reportData.Warnings = append(reportData.Warnings, "package has no entry files")
		}
	}

	return a.Formatter.Format(reportData, req.Format)
}

func (a *App) open(ctx context.Context, req Request) (session, error) {
	log := logging.Named("app")
	repo, err := workspace.FindPackageRoot(req.RepoPath)
	if err != nil {
		return session{}, err
	}
	fileOverrides, configPath, err := config.Load(repo, req.ConfigPath)
	if err != nil {
		return session{}, err
	}
	if configPath != "" {
		log.Debug("loaded config", "path", configPath)
	}
	values := fileOverrides.Merge(req.Overrides).Apply(config.Defaults())
	if err := values.Validate(); err != nil {
		return session{}, err
	}

	load := a.Load
	if load == nil {
		load = pkggraph.Load
	}
	pkg, err := load(ctx, repo)
	if err != nil {
		return session{}, err
	}
	opts, err := values.Options(pkg)
	if err != nil {
		return session{}, err
	}
	log.Debug("package loaded", "pkg", pkg.ID, "files", len(pkg.Files), "include", string(opts.Include))
	return session{pkg: pkg, values: values, opts: opts}, nil
}

// build transports every file of the package with at most values.Workers
// files in flight. Entries come back in file path order.
func build(ctx context.Context, s session) ([]report.Entry, error) {
	paths := s.pkg.FilePaths()
	entries := make([]report.Entry, len(paths))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.values.Workers)
	for i, filePath := range paths {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			entry, err := transportFile(filePath, s, true)
			if err != nil {
				return err
			}
			entries[i] = entry
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

func transportFile(filePath string, s session, withDeps bool) (report.Entry, error) {
	id, err := transport.ID(filePath, s.pkg, s.opts)
	if err != nil {
		return report.Entry{}, err
	}
	entry := report.Entry{File: filePath, ID: id, Deps: []string{}}
	if withDeps {
		deps, err := transport.Deps(filePath, s.pkg, s.opts)
		if err != nil {
			return report.Entry{}, err
		}
		entry.Deps = deps
		entry.Header = transport.Header(id, deps)
	}
	if s.opts.StyleBox && pkggraph.Extension(filePath) == "css" {
		styleID, err := transport.StyleID(transport.EmittedFile{Path: path.Join(s.pkg.Dest, filePath)}, s.opts)
		if err != nil {
			return report.Entry{}, err
		}
		entry.StyleID = styleID
	}
	return entry, nil
}

// packageRelative turns an absolute path under the package into a
// package-relative one. Other paths are passed through untouched.
func packageRelative(pkg *pkggraph.Package, file string) string {
	file = strings.TrimSpace(file)
	if !filepath.IsAbs(file) {
		return filepath.ToSlash(file)
	}
	rel, err := filepath.Rel(filepath.FromSlash(pkg.Dest), file)
	if err != nil {
		return filepath.ToSlash(file)
	}
	return filepath.ToSlash(rel)
}

func emittedPath(pkg *pkggraph.Package, file string) string {
	file = strings.TrimSpace(file)
	if filepath.IsAbs(file) {
		return filepath.ToSlash(file)
	}
	return path.Join(pkg.Dest, filepath.ToSlash(file))
}

func optionalEmittedPath(pkg *pkggraph.Package, file string) string {
	if strings.TrimSpace(file) == "" {
		return ""
	}
	return emittedPath(pkg, file)
}
