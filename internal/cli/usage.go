package cli

const usage = `Usage:
  cmdtransport [build] [flags]
  cmdtransport id <file> [flags]
  cmdtransport deps <file> [flags]
  cmdtransport include <file> [flags]
  cmdtransport locate <path> [--origin PATH] [flags]

Commands:
  build                      Transport every file of the package (default)
  id                         Print the module id of a package file
  deps                       Print the module header of a package file
  include                    List the files concatenated after an emitted file
  locate                     Map an emitted file back to its package

Options:
  --repo PATH                Package directory or any path inside it (default: .)
  --config PATH              Config file (default: .transport.yml, .transport.yaml, transport.toml, transport.json)
  --format table|json|cmd    Output format (default: table)
  --include MODE             self, relative or all (default: unset)
  --ignore NAMES             Comma separated packages kept out of the bundle
  --idleading TEMPLATE       Module id prefix, e.g. {{name}}/{{version}}
  --style-box                Scope stylesheets with a package class
  --workers N                Files transported concurrently by build (default: 4)
  --origin PATH              Pre-rename path of the located file
  -v, --verbose              Log debug output to stderr
  -h, --help                 Show this help text
`

func Usage() string {
	return usage
}
