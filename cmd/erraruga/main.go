package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"codeberg.org/mutker/erraruga/internal/errors"
	"codeberg.org/mutker/erraruga/internal/logger"
)

var version = "dev"

const usage = `Usage: erraruga <command> [flags]

Commands:
  resolve     Resolve one error to its display message
  aggregate   Print the combined message of several errors
  demo        Resolve the built-in demo errors
  catalog     Manage the SQLite rule catalog (import, set, list, delete)
  version     Print the version
`

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		cancel()

		var coded errors.Error
		if errors.As(err, &coded) {
			logger.FatalWithCode(coded).Msg("Command failed")
		}
		logger.Fatal().Err(err).Msg("Command failed")
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(out, usage)
		return nil
	}

	switch args[0] {
	case "resolve":
		return runResolve(ctx, args[1:], out)
	case "aggregate":
		return runAggregate(ctx, args[1:], out)
	case "demo":
		return runDemo(ctx, args[1:], out)
	case "catalog":
		return runCatalog(ctx, args[1:], out)
	case "version":
		fmt.Fprintln(out, version)
		return nil
	case "help", "-h", "--help":
		fmt.Fprint(out, usage)
		return nil
	default:
		return errors.New().WithMessage(errors.ErrInvalidArgument, "unknown command "+args[0])
	}
}
