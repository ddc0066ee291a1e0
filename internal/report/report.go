package report

import (
	"errors"
	"fmt"
	"strings"
)

type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatCMD   Format = "cmd"
)

const SchemaVersion = "0.1.0"

var ErrUnknownFormat = errors.New("unknown format")

func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(FormatTable):
		return FormatTable, nil
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatCMD):
		return FormatCMD, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, value)
	}
}

type Command string

const (
	CommandID      Command = "id"
	CommandDeps    Command = "deps"
	CommandInclude Command = "include"
	CommandLocate  Command = "locate"
	CommandBuild   Command = "build"
)

type Report struct {
	SchemaVersion string    `json:"schemaVersion"`
	Command       Command   `json:"command"`
	Package       Package   `json:"package"`
	Entries       []Entry   `json:"entries,omitempty"`
	Files         []string  `json:"files,omitempty"`
	Location      *Location `json:"location,omitempty"`
	Warnings      []string  `json:"warnings,omitempty"`
}

type Package struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
	Dest    string `json:"dest"`
}

// Entry is the transported form of one file.
type Entry struct {
	File    string   `json:"file"`
	ID      string   `json:"id"`
	Deps    []string `json:"deps"`
	Header  string   `json:"header,omitempty"`
	StyleID string   `json:"styleId,omitempty"`
}

type Location struct {
	Path       string `json:"path"`
	OriginPath string `json:"originPath"`
	Package    string `json:"package"`
}
