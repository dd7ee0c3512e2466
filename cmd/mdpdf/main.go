package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Command names understood by runMain. Anything else is handed to convert.
const (
	cmdConvert    = "convert"
	cmdVersion    = "version"
	cmdHelp       = "help"
	cmdCompletion = "completion"
)

func main() {
	// Configure GOMAXPROCS with conditional logging
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if hasVerboseFlag(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches the command in args[1] and returns the process exit code.
// Without a known command name, all arguments belong to convert.
func runMain(args []string, env *Environment) int {
	var rest []string
	if len(args) > 1 {
		rest = args[1:]
	}

	if len(rest) == 0 || !isCommand(rest[0]) {
		return runConvertCmd(rest, env)
	}

	switch rest[0] {
	case cmdVersion:
		fmt.Fprintf(env.Stdout, "mdpdf %s\n", Version)
		return ExitSuccess
	case cmdHelp:
		runHelp(rest[1:], env)
		return ExitSuccess
	case cmdCompletion:
		if err := runCompletion(rest[1:], env); err != nil {
			fmt.Fprintln(env.Stderr, err)
			return exitCodeFor(err)
		}
		return ExitSuccess
	default:
		return runConvertCmd(rest[1:], env)
	}
}

// runConvertCmd parses convert flags and runs the batch.
func runConvertCmd(args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		if isHelpRequest(err) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runConvert(ctx, positional, flags, env); err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// isCommand reports whether name is a subcommand rather than a directory or flag.
func isCommand(name string) bool {
	switch name {
	case cmdConvert, cmdVersion, cmdHelp, cmdCompletion:
		return true
	}
	return false
}

// hasVerboseFlag scans raw arguments for -v/--verbose before flag parsing.
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}
