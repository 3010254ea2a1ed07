package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/sectorfs/cmd"
)

type VerifyCommand struct{}

func (c *VerifyCommand) Name() string {
	return "verify"
}

func (c *VerifyCommand) Description() string {
	return "Check the index against the stored sectors"
}

func (c *VerifyCommand) Usage() string {
	return "verify"
}

// Execute prints one line per issue and exits with 1 if any were found.
func (c *VerifyCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	issues, err := api.Verify(ctx)
	if err != nil {
		return 1, err
	}

	for _, issue := range issues {
		fmt.Fprintln(writer, issue)
	}

	if len(issues) > 0 {
		return 1, fmt.Errorf("found %d issues", len(issues))
	}

	fmt.Fprintln(writer, "ok")
	return 0, nil
}

func (c *VerifyCommand) GetFlags() *cmd.CommandFlagSet {
	return nil
}
