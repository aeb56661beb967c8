package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/Mide6x/OpenSS/pkg/usecase/session"
	"github.com/urfave/cli/v3"
)

func voiceCommand() *cli.Command {
	var (
		cfg      config
		duration time.Duration
	)

	flags := []cli.Flag{
		&cli.DurationFlag{
			Name:        "duration",
			Usage:       "Recording duration",
			Value:       5 * time.Second,
			Destination: &duration,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, llmFlags(&cfg)...)

	return &cli.Command{
		Name:  "voice",
		Usage: "Ask a question by voice",
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

			fmt.Fprintf(c.Root().Writer, "Recording for %s...\n", duration)
			out, err := uc.Voice(ctx, session.VoiceInput{Duration: duration})
			if err != nil {
				return err
			}

			fmt.Fprintf(c.Root().Writer, "You said: %s\n", out.Question)
			printOutcome(c.Root().Writer, userCfg, out)
			return runChatLoop(ctx, c, uc, userCfg, out.Session)
		},
	}
}
