package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
)

type Formatter struct{}

func NewFormatter() Formatter {
	return Formatter{}
}

func (f Formatter) Format(report Report, format Format) (string, error) {
	switch format {
	case FormatTable:
		return formatTable(report), nil
	case FormatJSON:
		payload, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return "", err
		}
		return string(payload) + "\n", nil
	case FormatCMD:
		return formatCMD(report), nil
	default:
		return "", ErrUnknownFormat
	}
}

func formatTable(report Report) string {
	var buffer bytes.Buffer
	appendPackage(&buffer, report.Package)

	switch {
	case report.Location != nil:
		appendLocation(&buffer, *report.Location)
	case report.Command == CommandInclude:
		appendFiles(&buffer, report.Files)
	case len(report.Entries) == 0:
		buffer.WriteString("No files to report.\n")
	default:
		writer := tabwriter.NewWriter(&buffer, 0, 0, 2, ' ', 0)
		showStyle := hasStyleColumn(report.Entries)
		writeTableHeader(writer, showStyle)
		for _, entry := range report.Entries {
			_, _ = fmt.Fprintln(writer, formatTableRow(entry, showStyle))
		}
		_ = writer.Flush()
	}

	appendWarnings(&buffer, report)
	return buffer.String()
}

func appendPackage(buffer *bytes.Buffer, pkg Package) {
	if pkg.ID == "" {
		return
	}
	_, _ = fmt.Fprintf(buffer, "Package: %s (%s)\n\n", pkg.ID, pkg.Dest)
}

func appendLocation(buffer *bytes.Buffer, loc Location) {
	_, _ = fmt.Fprintf(buffer, "Path: %s\nOrigin: %s\nOwner: %s\n", loc.Path, loc.OriginPath, loc.Package)
}

func appendFiles(buffer *bytes.Buffer, files []string) {
	if len(files) == 0 {
		buffer.WriteString("No files to include.\n")
		return
	}
	buffer.WriteString("Include:\n")
	for _, file := range files {
		buffer.WriteString("- ")
		buffer.WriteString(file)
		buffer.WriteString("\n")
	}
}

func writeTableHeader(writer *tabwriter.Writer, showStyle bool) {
	columns := []string{"File", "ID", "Deps"}
	if showStyle {
		columns = append(columns, "Style ID")
	}
	_, _ = fmt.Fprintln(writer, strings.Join(columns, "\t"))
}

func formatTableRow(entry Entry, showStyle bool) string {
	columns := []string{entry.File, entry.ID, formatDeps(entry.Deps)}
	if showStyle {
		columns = append(columns, orDash(entry.StyleID))
	}
	return strings.Join(columns, "\t")
}

func hasStyleColumn(entries []Entry) bool {
	for _, entry := range entries {
		if entry.StyleID != "" {
			return true
		}
	}
	return false
}

func formatDeps(deps []string) string {
	if len(deps) == 0 {
		return "-"
	}
	return strings.Join(deps, ", ")
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func appendWarnings(buffer *bytes.Buffer, report Report) {
	if len(report.Warnings) == 0 {
		return
	}
	buffer.WriteString("\nWarnings:\n")
	for _, warning := range report.Warnings {
		buffer.WriteString("- ")
		buffer.WriteString(warning)
		buffer.WriteString("\n")
	}
}

// formatCMD prints one define header per entry, the bare file list for
// include, or the emitted path for locate.
func formatCMD(report Report) string {
	var buffer bytes.Buffer
	switch {
	case report.Location != nil:
		buffer.WriteString(report.Location.Path)
		buffer.WriteString("\n")
	case report.Command == CommandInclude:
		for _, file := range report.Files {
			buffer.WriteString(file)
			buffer.WriteString("\n")
		}
	default:
		for _, entry := range report.Entries {
			if entry.Header == "" {
				continue
			}
			buffer.WriteString("// ")
			buffer.WriteString(entry.File)
			buffer.WriteString("\n")
			buffer.WriteString(entry.Header)
			buffer.WriteString("\n")
		}
	}
	return buffer.String()
}
