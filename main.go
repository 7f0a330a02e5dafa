package main

import (
	"context"
	"fmt"
	"os"

	"sema/app"
	"sema/webapi"

	"github.com/gonuts/commander"
)

var cmd = &commander.Command{
	UsageLine: os.Args[0] + " tag|dep|pipeline|model|eval|api",
	Short:     "statistical annotation pipeline: POS tagging and dependency parsing",
}

func init() {
	cmd.Subcommands = append(app.AllCommands().Subcommands, webapi.AllCommands().Subcommands...)
}

func main() {
	if err := cmd.Dispatch(context.Background(), os.Args[1:]); err != nil {
		fmt.Printf("**error**: %v\n", err)
		os.Exit(1)
	}
}
