package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/Mide6x/OpenSS/pkg/usecase/session"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func askCommand() *cli.Command {
	var cfg config

	flags := globalFlags(&cfg)
	flags = append(flags, llmFlags(&cfg)...)

	return &cli.Command{
		Name:      "ask",
		Usage:     "Ask a question directly, no capture",
		ArgsUsage: "<question>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
			if question == "" {
				// No argument: read the question from stdin, e.g. piped input
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return goerr.Wrap(err, "failed to read question from stdin")
				}
				question = strings.TrimSpace(string(data))
			}
			if question == "" {
				return goerr.New("question is required")
			}

			ctx, userCfg, err := cfg.bootstrap(ctx)
			if err != nil {
				return err
			}

			uc, repo, err := cfg.newUseCase(ctx, userCfg)
			if err != nil {
				return err
			}
			defer repo.Close()

			stop := working("thinking")
			out, err := uc.Ask(ctx, session.AskInput{Text: question})
			stop()
			if err != nil {
				return err
			}

			printOutcome(c.Root().Writer, userCfg, out)
			return runChatLoop(ctx, c, uc, userCfg, out.Session)
		},
	}
}
