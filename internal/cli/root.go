package cli

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/geocine/gensummary/internal/logging"
	"github.com/geocine/gensummary/internal/preprocessor/runner"
	"github.com/geocine/gensummary/internal/preprocessor/sdk"
)

// Version is the release of the binary, overridden at link time
var Version = "0.1.0"

// app carries state shared by every command of one invocation
type app struct {
	verbose bool
	logger  *zap.Logger
}

// NewRootCommand builds the command tree. Without a subcommand the binary
// acts as a preprocessor: a context is read from stdin and the updated
// context is written to stdout.
func NewRootCommand() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "gensummary",
		Short: "Generate SUMMARY.md from a book's source tree",
		Long: `gensummary writes a book's SUMMARY.md from the layout of its source directory.

Run without arguments it speaks the book builder's preprocessor protocol:
a JSON context on stdin, the updated context on stdout.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.Setup(a.verbose, "gensummary", Version)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
		RunE: a.runPreprocessor,
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		a.newSupportsCommand(),
		a.newGenerateCommand(),
		a.newCheckCommand(),
		a.newInitCommand(),
	)
	return root
}

// Execute runs the command tree against os.Args and exits non-zero on error
func Execute() {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		root.PrintErrln("Error:", err)
		os.Exit(1)
	}
}

func (a *app) runPreprocessor(cmd *cobra.Command, args []string) error {
	ctx, err := sdk.ReadContext(cmd.InOrStdin())
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	a.logger.Debug("preprocessing", zap.String("renderer", ctx.Renderer), zap.String("root", ctx.BookRoot()))
	if err := runner.Process(ctx, cwd, a.logger); err != nil {
		return err
	}

	return sdk.WriteContext(cmd.OutOrStdout(), ctx)
}

func (a *app) newSupportsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "supports <renderer>",
		Short: "Report whether a renderer is supported (exit status)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !runner.SupportsRenderer(args[0]) {
				return &unsupportedRendererError{renderer: args[0]}
			}
			return nil
		},
	}
}

type unsupportedRendererError struct {
	renderer string
}

func (e *unsupportedRendererError) Error() string {
	return "renderer '" + e.renderer + "' is not supported"
}
