package main

import (
	"fmt"
	"io"

	"github.com/itsatony/go-publication/internal"
)

var commandNames = []string{CmdNameCompile, CmdNameWatch, CmdNameSchema, CmdNameVersion, CmdNameHelp}

func runHelp(args []string, stdout io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stdout, HelpMainUsage)
		return ExitCodeSuccess
	}

	cmd := args[0]
	switch cmd {
	case CmdNameCompile:
		fmt.Fprintln(stdout, HelpCompileUsage)
	case CmdNameWatch:
		fmt.Fprintln(stdout, HelpWatchUsage)
	case CmdNameSchema:
		fmt.Fprintln(stdout, HelpSchemaUsage)
	case CmdNameVersion:
		fmt.Fprintln(stdout, HelpVersionUsage)
	case CmdNameHelp:
		fmt.Fprintln(stdout, HelpHelpUsage)
	default:
		fmt.Fprintf(stdout, FmtErrorWithDetail, ErrMsgUnknownCommand, cmd)
		if suggestions := internal.Suggest(cmd, commandNames, maxSuggestions); len(suggestions) > 0 {
			fmt.Fprintf(stdout, FmtDidYouMean, internal.FormatSuggestions(suggestions))
		}
		fmt.Fprintln(stdout, HelpMainUsage)
		return ExitCodeUsageError
	}

	return ExitCodeSuccess
}
