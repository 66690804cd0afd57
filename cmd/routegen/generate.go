package main

import (
	"github.com/spf13/cobra"

	"github.com/toyz/routegen/internal/cli"
)

func newGenerateCmd(opts *globalOptions) *cobra.Command {
	flags := &cli.Config{}

	cmd := &cobra.Command{
		Use:   "generate [root]",
		Short: "Generate routers for every declaration file under the controllers directory",
		Long: `Generate walks <root>/<controllers>, extracts the @route declarations of each
file, checks them against the exported handlers of the sibling package and
writes <root>/<routes>/<same relative path>.go.

By default the first failing module stops the run. Use --continue-on-error to
attempt every module and report all failures together.`,
		Example: `  routegen generate
  routegen generate ./service --target echo
  routegen generate --check                # fail if committed routers are stale
  routegen generate --module example.com/app --controllers handlers --routes router`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(rootArg(args), flags)
			if err != nil {
				return err
			}

			diag := opts.diagnostics()
			diag.Header("generating " + cfg.Target + " routers")
			if cfg.Check {
				diag.Info("Check mode: nothing will be written")
			}

			return cli.NewGenerator(diag).Run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&flags.Target, "target", "t", "", "Router framework: gin, echo or fiber")
	cmd.Flags().StringVar(&flags.ControllersDir, "controllers", "", "Directory holding declarations and implementations (default \"controllers\")")
	cmd.Flags().StringVar(&flags.RoutesDir, "routes", "", "Directory generated routers are written to (default \"routes\")")
	cmd.Flags().StringVarP(&flags.ModuleName, "module", "m", "", "Module path for imports (defaults to the go.mod module)")
	cmd.Flags().BoolVar(&flags.ContinueOnError, "continue-on-error", false, "Keep generating remaining modules after a failure")
	cmd.Flags().BoolVar(&flags.Check, "check", false, "Compare generated routers with files on disk without writing")
	return cmd
}
