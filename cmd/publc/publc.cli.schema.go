package main

import (
	"fmt"
	"io"

	"github.com/itsatony/go-publication"
)

func runSchema(stdout, stderr io.Writer) int {
	schema, err := publication.ConfigSchema()
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgSchemaFailed, err)
		return ExitCodeError
	}

	fmt.Fprintln(stdout, string(schema))
	return ExitCodeSuccess
}
