package builtin

import (
	"context"
	"io"
	"strings"

	"github.com/mwantia/sectorfs/cmd"
)

type WriteCommand struct{}

func (c *WriteCommand) Name() string {
	return "write"
}

func (c *WriteCommand) Description() string {
	return "Write text into a file, creating it if needed"
}

func (c *WriteCommand) Usage() string {
	return "write [-a] path text..."
}

// Execute joins the remaining arguments with spaces and terminates the text
// with a newline, like echo.
func (c *WriteCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	if err := requireArgs(c, args, 1); err != nil {
		return 2, err
	}

	path := args.Args[0]
	text := []byte(strings.Join(args.Args[1:], " ") + "\n")

	exists, err := api.FileExists(ctx, path)
	if err != nil {
		return 1, err
	}
	if !exists {
		if _, err := api.CreateFile(ctx, path, false); err != nil {
			return 1, err
		}
	}

	if args.Bool("append") {
		err = api.AppendFile(ctx, path, text)
	} else {
		err = api.WriteFile(ctx, path, text)
	}
	if err != nil {
		return 1, err
	}

	return 0, nil
}

func (c *WriteCommand) GetFlags() *cmd.CommandFlagSet {
	return cmd.NewFlagSet(&cmd.CommandFlag{
		Name:        "append",
		Short:       "a",
		Type:        cmd.FlagBool,
		Description: "Append to the file instead of replacing its content",
	})
}
