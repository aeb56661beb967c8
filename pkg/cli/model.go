package cli

import (
	"context"
	"fmt"

	"github.com/Mide6x/OpenSS/pkg/model"
	"github.com/urfave/cli/v3"
)

func modelCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:      "model",
		Usage:     "Show or change the default model",
		ArgsUsage: "[provider/model]",
		Flags:     globalFlags(&cfg),
		Action: func(ctx context.Context, c *cli.Command) error {
			_, userCfg, err := cfg.bootstrap(ctx)
			if err != nil {
				return err
			}

			w := c.Root().Writer
			arg := c.Args().First()
			if arg == "" {
				fmt.Fprintf(w, "Default model: %s\n", userCfg.Model)
				for _, entry := range model.Catalog() {
					fmt.Fprintf(w, "  %-28s %s\n", entry.ID, entry.Description)
				}
				return nil
			}

			id := model.ModelID(arg)
			if err := id.Validate(); err != nil {
				return err
			}

			userCfg.Model = id
			if err := userCfg.Save(cfg.userConfigPath()); err != nil {
				return err
			}
			fmt.Fprintf(w, "Default model set to %s\n", id)
			return nil
		},
	}
}
