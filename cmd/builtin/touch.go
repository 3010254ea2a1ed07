package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/sectorfs/cmd"
)

type TouchCommand struct{}

func (c *TouchCommand) Name() string {
	return "touch"
}

func (c *TouchCommand) Description() string {
	return "Create an empty file, replacing an existing one"
}

func (c *TouchCommand) Usage() string {
	return "touch [--no-overwrite] path"
}

func (c *TouchCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	if err := requireArgs(c, args, 1); err != nil {
		return 2, err
	}

	sector, err := api.CreateFile(ctx, args.Args[0], !args.Bool("no-overwrite"))
	if err != nil {
		return 1, err
	}

	fmt.Fprintf(writer, "%s -> %s\n", args.Args[0], sector)
	return 0, nil
}

func (c *TouchCommand) GetFlags() *cmd.CommandFlagSet {
	return cmd.NewFlagSet(&cmd.CommandFlag{
		Name:        "no-overwrite",
		Short:       "n",
		Type:        cmd.FlagBool,
		Description: "Fail if the file already exists",
	})
}
