package builtin

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mwantia/sectorfs/cmd"
)

var directoryColor = color.New(color.FgBlue, color.Bold)

type LsCommand struct{}

// Name returns the command identifier
func (ls *LsCommand) Name() string {
	return "ls"
}

// Description returns human-readable help text
func (ls *LsCommand) Description() string {
	return "List the files below a directory"
}

// Usage returns a usage string for help
func (ls *LsCommand) Usage() string {
	return "ls [-r] [path]"
}

// Execute lists the names below the given path, one per line.
func (ls *LsCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	names, err := api.ListDirectory(ctx, args.Arg(0, "/"), args.Bool("recursive"))
	if err != nil {
		return 1, err
	}

	for _, name := range names {
		if strings.HasSuffix(name, "/") {
			directoryColor.Fprintln(writer, name)
			continue
		}
		fmt.Fprintln(writer, name)
	}

	return 0, nil
}

// GetFlags returns the flag set for this command
func (ls *LsCommand) GetFlags() *cmd.CommandFlagSet {
	return cmd.NewFlagSet(&cmd.CommandFlag{
		Name:        "recursive",
		Short:       "r",
		Type:        cmd.FlagBool,
		Description: "List every file below path instead of only its first level",
	})
}
