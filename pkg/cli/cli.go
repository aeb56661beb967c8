package cli

import (
	"context"

	"github.com/urfave/cli/v3"
)

type Error struct {
	Code    int
	Message string
}

func Run(ctx context.Context, argv []string) *Error {
	cmd := &cli.Command{
		Name:  "openss",
		Usage: "Screen capture to conversation assistant",
		Commands: []*cli.Command{
			captureCommand(),
			askCommand(),
			voiceCommand(),
			chatCommand(),
			historyCommand(),
			modelCommand(),
			configCommand(),
		},
	}

	if err := cmd.Run(ctx, argv); err != nil {
		return &Error{
			Code:    1,
			Message: err.Error(),
		}
	}

	return nil
}
