package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/sectorfs/cmd"
)

type InitCommand struct{}

func (c *InitCommand) Name() string {
	return "init"
}

func (c *InitCommand) Description() string {
	return "Create an empty index if none exists"
}

func (c *InitCommand) Usage() string {
	return "init"
}

func (c *InitCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	if err := api.Init(ctx); err != nil {
		return 1, err
	}

	fmt.Fprintln(writer, "initialized")
	return 0, nil
}

func (c *InitCommand) GetFlags() *cmd.CommandFlagSet {
	return nil
}
