package main

import (
	"github.com/spf13/cobra"

	"github.com/toyz/routegen/internal/cli"
)

func newCleanCmd(opts *globalOptions) *cobra.Command {
	flags := &cli.Config{}

	cmd := &cobra.Command{
		Use:   "clean [root]",
		Short: "Remove generated routers from the routes directory",
		Long:  "Clean deletes every .go file under <root>/<routes> that starts with the routegen generated-code marker.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(rootArg(args), flags)
			if err != nil {
				return err
			}

			diag := opts.diagnostics()
			removed, err := cli.NewCleaner(diag).CleanGeneratedFiles(cfg)
			if err != nil {
				return err
			}
			diag.Success("Removed %d generated routers", len(removed))
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.RoutesDir, "routes", "", "Directory generated routers are written to (default \"routes\")")
	return cmd
}
