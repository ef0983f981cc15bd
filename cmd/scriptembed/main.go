package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"

	"github.com/example/scriptembed/internal/cli"
	"github.com/example/scriptembed/internal/version"
)

func main() {
	rootCmd := cli.RootCmd()
	rootCmd.Version = version.String()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.New(color.FgRed).Sprint("✗"), err)
		stop()
		os.Exit(1)
	}
}
