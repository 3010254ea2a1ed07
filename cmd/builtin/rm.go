package builtin

import (
	"context"
	"io"

	"github.com/mwantia/sectorfs/cmd"
)

type RmCommand struct{}

func (c *RmCommand) Name() string {
	return "rm"
}

func (c *RmCommand) Description() string {
	return "Delete files"
}

func (c *RmCommand) Usage() string {
	return "rm path..."
}

func (c *RmCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	if err := requireArgs(c, args, 1); err != nil {
		return 2, err
	}

	for _, path := range args.Args {
		if err := api.DeleteFile(ctx, path); err != nil {
			return 1, err
		}
	}

	return 0, nil
}

func (c *RmCommand) GetFlags() *cmd.CommandFlagSet {
	return nil
}
