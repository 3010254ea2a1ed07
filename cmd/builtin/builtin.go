package builtin

import (
	"fmt"

	"github.com/mwantia/sectorfs/cmd"
)

// Register adds every builtin command to m.
func Register(m *cmd.Manager) error {
	commands := []cmd.Command{
		&InitCommand{},
		&LsCommand{},
		&TouchCommand{},
		&RmCommand{},
		&SectorCommand{},
		&CatCommand{},
		&WriteCommand{},
		&VerifyCommand{},
		&HelpCommand{manager: m},
	}

	for _, c := range commands {
		if err := m.Register(c); err != nil {
			return err
		}
	}

	return nil
}

// requireArgs fails with the usage string unless at least n positional
// arguments were given.
func requireArgs(c cmd.Command, args *cmd.CommandArgs, n int) error {
	if len(args.Args) < n {
		return fmt.Errorf("usage: %s", c.Usage())
	}
	return nil
}
