package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/sectorfs/cmd"
	"github.com/mwantia/sectorfs/data"
)

type SectorCommand struct{}

func (c *SectorCommand) Name() string {
	return "sector"
}

func (c *SectorCommand) Description() string {
	return "Print the sector holding a file"
}

func (c *SectorCommand) Usage() string {
	return "sector path"
}

func (c *SectorCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	if err := requireArgs(c, args, 1); err != nil {
		return 2, err
	}

	sector, ok, err := api.GetSector(ctx, args.Args[0])
	if err != nil {
		return 1, err
	}
	if !ok {
		return 1, fmt.Errorf("%w: %s", data.ErrFileNotFound, args.Args[0])
	}

	fmt.Fprintln(writer, sector)
	return 0, nil
}

func (c *SectorCommand) GetFlags() *cmd.CommandFlagSet {
	return nil
}
