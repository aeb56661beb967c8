package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func historyCommand() *cli.Command {
	var (
		cfg   config
		limit int64
	)

	flags := []cli.Flag{
		&cli.IntFlag{
			Name:        "limit",
			Aliases:     []string{"n"},
			Usage:       "Maximum number of sessions to show",
			Value:       20,
			Destination: &limit,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "history",
		Usage: "List recent sessions, newest first",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, _, err := cfg.bootstrap(ctx)
			if err != nil {
				return err
			}

			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			sessions, err := repo.ListSessions(ctx, int(limit))
			if err != nil {
				return err
			}

			w := c.Root().Writer
			if len(sessions) == 0 {
				fmt.Fprintln(w, "No sessions yet")
				return nil
			}

			for _, s := range sessions {
				fmt.Fprintf(w, "%s  %s  %-24s  %s\n",
					s.ID, s.LastActive.Format("2006-01-02 15:04"), s.Model, s.Title)
			}
			return nil
		},
	}
}
