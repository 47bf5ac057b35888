package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-formfield/pkg/renderers/tui"
)

// errFormInvalid makes the process exit with status 1 after the state has
// already been printed.
var errFormInvalid = errors.New("form is invalid")

type app struct {
	formsPath   string
	openapiPath string
	operationID string
	formID      string
	verbose     bool
	timeout     time.Duration

	logger       *zap.Logger
	out          io.Writer
	errOut       io.Writer
	promptDriver tui.PromptDriver
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "formfield",
		Short: "Progressive form validation from the command line",
		Long: `formfield loads form definitions (YAML/JSON files or an OpenAPI request body)
and drives them through the progressive validation state machine: fields are
validated on blur until their first error is shown, then on every change.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.logger != nil {
				return nil
			}
			config := zap.NewProductionConfig()
			if a.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.formsPath, "forms", "", "Form definition file or directory (YAML/JSON)")
	flags.StringVar(&a.openapiPath, "openapi", "", "OpenAPI document path or URL")
	flags.StringVar(&a.operationID, "operation", "", "OpenAPI operationId whose request body becomes the form")
	flags.StringVar(&a.formID, "form", "", "Form id inside --forms (optional when only one form is defined)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	flags.DurationVar(&a.timeout, "timeout", 30*time.Second, "Timeout for remote OpenAPI documents")

	root.AddCommand(newCheckCmd(a))
	root.AddCommand(newReplayCmd(a))
	root.AddCommand(newRenderCmd(a))
	root.AddCommand(newPromptCmd(a))
	root.AddCommand(newListCmd(a))
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{out: os.Stdout, errOut: os.Stderr}
	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errFormInvalid) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
