package cli

import (
	"context"

	"github.com/Mide6x/OpenSS/pkg/usecase/session"
	"github.com/urfave/cli/v3"
)

func captureCommand() *cli.Command {
	var (
		cfg    config
		title  string
		target string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "title",
			Aliases:     []string{"t"},
			Usage:       "Session title (auto-generated when omitted)",
			Destination: &title,
		},
		&cli.StringFlag{
			Name:        "target",
			Usage:       "Capture target: chrome, powerpoint, word, or terminal",
			Destination: &target,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, llmFlags(&cfg)...)

	return &cli.Command{
		Name:  "capture",
		Usage: "Capture the screen, extract its text, and start a session",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, userCfg, err := cfg.bootstrap(ctx)
			if err != nil {
				return err
			}

			uc, repo, err := cfg.newUseCase(ctx, userCfg)
			if err != nil {
				return err
			}
			defer repo.Close()

			stop := working("capturing")
			out, err := uc.Capture(ctx, session.CaptureInput{
				Title:      title,
				TargetHint: target,
			})
			stop()
			if err != nil {
				return err
			}

			printOutcome(c.Root().Writer, userCfg, out)
			return runChatLoop(ctx, c, uc, userCfg, out.Session)
		},
	}
}
