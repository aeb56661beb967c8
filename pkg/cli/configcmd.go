package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

func configCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:  "config",
		Usage: "Show or edit user configuration",
		Flags: globalFlags(&cfg),
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Print the effective configuration",
				Action: func(ctx context.Context, c *cli.Command) error {
					_, userCfg, err := cfg.bootstrap(ctx)
					if err != nil {
						return err
					}

					data, err := yaml.Marshal(userCfg)
					if err != nil {
						return goerr.Wrap(err, "failed to render config")
					}
					fmt.Fprintf(c.Root().Writer, "# %s\n%s", cfg.userConfigPath(), data)
					return nil
				},
			},
			{
				Name:      "set",
				Usage:     "Set one configuration key",
				ArgsUsage: "<key> <value>",
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() != 2 {
						return goerr.New("usage: config set <key> <value>")
					}

					_, userCfg, err := cfg.bootstrap(ctx)
					if err != nil {
						return err
					}

					key, value := c.Args().Get(0), c.Args().Get(1)
					if err := userCfg.Set(key, value); err != nil {
						return err
					}
					if err := userCfg.Save(cfg.userConfigPath()); err != nil {
						return err
					}

					fmt.Fprintf(c.Root().Writer, "%s = %s\n", key, value)
					return nil
				},
			},
		},
	}
}
