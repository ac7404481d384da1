package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

const help = `usage:
  offset-model fit [flags] <table.tsv>
  offset-model predict [-az DEG] [-el DEG] [flags]

run 'offset-model <command> -h' for the flags of a command.
`

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// usageError marks a malformed invocation.
type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

func usage(format string, args ...interface{}) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, help)
		return exitUsage
	}

	var err error
	switch args[0] {
	case "fit":
		err = fitCommand(args[1:], stdout, stderr)
	case "predict":
		err = predictCommand(args[1:], stdout, stderr)
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, help)
		return exitOK
	default:
		err = usage("unknown command '%s'", args[0])
	}

	var ue *usageError
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, flag.ErrHelp):
		return exitOK
	case errors.As(err, &ue):
		fmt.Fprintf(stderr, "%s\n\n%s", ue.msg, help)
		return exitUsage
	default:
		log.Error().Err(err).Str("command", args[0]).Msg("failed")
		return exitFailure
	}
}

// parse parses the command flags, reporting any flag error as a usage error.
func parse(fs *flag.FlagSet, args []string, stderr io.Writer) error {
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return usage("%s: %v", fs.Name(), err)
	}
	return nil
}

func verbose(v bool) {
	if v {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}
