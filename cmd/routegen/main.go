// Command routegen compiles annotated route declarations into router code.
//
// Usage:
//
//	routegen generate [root] [flags]
//	routegen clean [root]
//	routegen version
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/toyz/routegen/internal/cli"
	"github.com/toyz/routegen/internal/utils"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

// globalOptions are the flags shared by every command
type globalOptions struct {
	configPath string
	verbose    bool
	quiet      bool
	stdout     io.Writer
	stderr     io.Writer
}

func (o *globalOptions) diagnostics() *utils.DiagnosticSystem {
	var diag *utils.DiagnosticSystem
	switch {
	case o.quiet:
		diag = utils.NewQuietDiagnostics()
	case o.verbose:
		diag = utils.NewVerboseDiagnostics()
	default:
		diag = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
	if o.stdout != os.Stdout || o.stderr != os.Stderr {
		diag.SetOutput(o.stdout, o.stderr)
	}
	return diag
}

// loadConfig reads routegen.toml from the flag path or the project root and
// merges command-line values over it
func (o *globalOptions) loadConfig(root string, flags *cli.Config) (*cli.Config, error) {
	path, required := o.configPath, true
	if path == "" {
		path, required = filepath.Join(root, cli.ConfigFile), false
	}

	cfg, err := cli.LoadConfig(path, required)
	if err != nil {
		return nil, err
	}
	flags.Root = root
	flags.Verbose = o.verbose
	cfg.Merge(flags)

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &globalOptions{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "routegen",
		Short: "Generate routers from annotated route declarations",
		Long: `routegen reads struct types annotated with @route from a controllers
directory, matches each one to the handler of the same name in its sibling
implementation package, and writes one router file per declaration file
under the routes directory.

Targets: gin (default), echo, fiber.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to routegen.toml (defaults to <root>/routegen.toml)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "V", false, "Enable verbose output and detailed error reporting")
	root.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "Only show errors")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")

	root.AddCommand(newGenerateCmd(opts), newCleanCmd(opts), newVersionCmd())
	return root
}

func rootArg(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}

func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		verbose, _ := cmd.PersistentFlags().GetBool("verbose")
		cli.NewDiagnosticReporter(stderr, verbose).ReportError(err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the routegen version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "routegen %s\n", version)
		},
	}
}
