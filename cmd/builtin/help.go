package builtin

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mwantia/sectorfs/cmd"
)

type HelpCommand struct {
	manager *cmd.Manager
}

func (c *HelpCommand) Name() string {
	return "help"
}

func (c *HelpCommand) Description() string {
	return "Show the available commands"
}

func (c *HelpCommand) Usage() string {
	return "help [command]"
}

func (c *HelpCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	if len(args.Args) > 0 {
		command, err := c.manager.Get(args.Args[0])
		if err != nil {
			return 1, err
		}

		fmt.Fprintf(writer, "usage: %s\n\n%s\n", command.Usage(), command.Description())
		if flags := command.GetFlags(); flags != nil {
			for _, flag := range flags.Flags {
				fmt.Fprintf(writer, "  -%s, --%s\t%s\n", flag.Short, flag.Name, flag.Description)
			}
		}
		return 0, nil
	}

	tw := tabwriter.NewWriter(writer, 0, 4, 2, ' ', 0)
	for _, command := range c.manager.List() {
		fmt.Fprintf(tw, "%s\t%s\n", command.Usage(), command.Description())
	}

	return 0, tw.Flush()
}

func (c *HelpCommand) GetFlags() *cmd.CommandFlagSet {
	return nil
}
