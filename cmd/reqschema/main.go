// Package main provides the CLI entrypoint for reqschema.
//
// reqschema reads request-handling classes from a codebase and describes
// every HTTP endpoint they declare: its URL, verb, parameters and the field
// trees of its request and response payloads.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"reqschema/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cli.Execute(ctx)

	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)

		if errors.Is(err, cli.ErrUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
