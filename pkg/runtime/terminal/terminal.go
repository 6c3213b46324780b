package terminal

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/de-tools/aml-scan/pkg/runtime/terminal/commands"
	"github.com/de-tools/aml-scan/pkg/runtime/terminal/export"
)

// CLI represents the command-line interface
type CLI struct {
	deps     commands.Deps
	reporter *export.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Deps   commands.Deps
	Output io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		deps:     opts.Deps,
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "amlscan",
		Short: "Azure ML deprecated feature scanner",
	}

	cmd.AddCommand(commands.NewScanCmd(cli.deps, cli.reporter))

	return cmd
}
