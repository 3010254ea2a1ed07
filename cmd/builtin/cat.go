package builtin

import (
	"context"
	"io"

	"github.com/mwantia/sectorfs/cmd"
)

type CatCommand struct{}

func (c *CatCommand) Name() string {
	return "cat"
}

func (c *CatCommand) Description() string {
	return "Print the content of files"
}

func (c *CatCommand) Usage() string {
	return "cat path..."
}

func (c *CatCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	if err := requireArgs(c, args, 1); err != nil {
		return 2, err
	}

	for _, path := range args.Args {
		content, err := api.ReadFile(ctx, path)
		if err != nil {
			return 1, err
		}

		if _, err := writer.Write(content); err != nil {
			return 1, err
		}
	}

	return 0, nil
}

func (c *CatCommand) GetFlags() *cmd.CommandFlagSet {
	return nil
}
