package app

import (
	"github.com/ben-ranford/cmdtransport/internal/config"
	"github.com/ben-ranford/cmdtransport/internal/report"
)

type Mode string

const (
	ModeID      Mode = "id"
	ModeDeps    Mode = "deps"
	ModeInclude Mode = "include"
	ModeLocate  Mode = "locate"
	ModeBuild   Mode = "build"
)

type Request struct {
	Mode       Mode
	RepoPath   string
	ConfigPath string
	// File is package-relative for id and deps, and an emitted path for
	// include and locate. Relative emitted paths resolve against the
	// package directory.
	File       string
	OriginPath string
	Format     report.Format
	Overrides  config.Overrides
	// Verbose is read by the caller to route debug logs.
	Verbose bool
}

func DefaultRequest() Request {
	return Request{
		Mode:     ModeBuild,
		RepoPath: ".",
		Format:   report.FormatTable,
	}
}
