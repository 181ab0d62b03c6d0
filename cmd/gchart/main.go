// Command gchart compiles chart specs into chart URLs, locates points on
// rendered charts, imports series and renders images from the terminal.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgnsrekt/gchart/internal/assemble"
	"github.com/dgnsrekt/gchart/internal/config"
)

type rootOptions struct {
	defaultsFile string
	logLevel     string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "gchart",
		Short:         "Compile chart specs into chart URLs",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			h := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: parseLevel(opts.logLevel)})
			slog.SetDefault(slog.New(h))
		},
	}
	root.PersistentFlags().StringVar(&opts.defaultsFile, "defaults", os.Getenv("GCHART_DEFAULTS_FILE"), "YAML file with compile defaults")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	root.AddCommand(
		newCompileCmd(opts),
		newLocateCmd(),
		newImportCmd(),
		newRenderCmd(opts),
		newNamesCmd(),
	)
	return root
}

func (o *rootOptions) compiler() (*assemble.Compiler, error) {
	d, err := config.LoadDefaults(o.defaultsFile)
	if err != nil {
		return nil, err
	}
	return assemble.NewCompiler(d), nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func writeLine(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format+"\n", args...)
}
