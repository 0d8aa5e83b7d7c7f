package main

import (
	"context"
	"os"

	"brewmine/cmd/brewmine/commands"
	"brewmine/lib/cliutil"
)

func main() {
	ctx := cliutil.SignalContext(context.Background())
	err := commands.ExecuteContext(ctx)
	if err != nil {
		os.Exit(1)
	}
}
