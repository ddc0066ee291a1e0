package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ben-ranford/cmdtransport/internal/app"
	"github.com/ben-ranford/cmdtransport/internal/logging"
	"github.com/ben-ranford/cmdtransport/internal/transport"
)

const (
	ExitOK        = 0
	ExitFailure   = 1
	ExitUsage     = 2
	ExitTransport = 3
)

type Runner interface {
	Execute(ctx context.Context, req app.Request) (string, error)
}

type CLI struct {
	Runner Runner
	Out    io.Writer
	Err    io.Writer
}

func New(runner Runner, out io.Writer, errOut io.Writer) *CLI {
	return &CLI{
		Runner: runner,
		Out:    out,
		Err:    errOut,
	}
}

func (c *CLI) Run(ctx context.Context, args []string) int {
	req, err := ParseArgs(args)
	if err != nil {
		if errors.Is(err, ErrHelpRequested) {
			if _, writeErr := fmt.Fprint(c.Out, Usage()); writeErr != nil {
				return ExitFailure
			}
			return ExitOK
		}
		if _, writeErr := fmt.Fprintf(c.Err, "error: %v\n\n", err); writeErr != nil {
			return ExitFailure
		}
		if _, writeErr := fmt.Fprint(c.Err, Usage()); writeErr != nil {
			return ExitFailure
		}
		return ExitUsage
	}
	if req.Verbose {
		logging.Configure(c.Err, true)
	}

	output, runErr := c.Runner.Execute(ctx, req)
	if output != "" {
		if _, writeErr := fmt.Fprint(c.Out, output); writeErr != nil {
			_, _ = fmt.Fprintln(c.Err, writeErr.Error())
			return ExitFailure
		}
		if !strings.HasSuffix(output, "\n") {
			_, _ = fmt.Fprintln(c.Out)
		}
	}

	if runErr != nil {
		_, _ = fmt.Fprintln(c.Err, runErr.Error())
		return exitCode(runErr)
	}
	return ExitOK
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, transport.ErrMissingDependency),
		errors.Is(err, transport.ErrNotIncluded),
		errors.Is(err, transport.ErrInvalidPath),
		errors.Is(err, transport.ErrNotFound):
		return ExitTransport
	case errors.Is(err, app.ErrFileRequired), errors.Is(err, app.ErrUnknownMode):
		return ExitUsage
	default:
		return ExitFailure
	}
}
