package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/cosmetic-filter/internal/config"
	"github.com/bnema/cosmetic-filter/internal/logging"
)

var (
	debugFlag bool
	cfgMgr    *config.Manager
)

// printedError marks an error whose message has already been written to
// stderr by the command that returned it, so Execute doesn't print it
// twice.
type printedError struct{ err error }

func (p printedError) Error() string { return p.err.Error() }

var rootCmd = &cobra.Command{
	Use:           "cosmetic-cli",
	Short:         "Parse, cache, and resolve cosmetic ad-filter rules",
	Long:          "cosmetic-cli parses cosmetic filter lists into the bucketed filter cache and resolves scriptlet invocations against a resources catalog.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(c *cobra.Command, _ []string) error {
		logDir, err := config.GetLogDir()
		if err != nil {
			return fmt.Errorf("failed to resolve log directory: %w", err)
		}
		level := "info"
		if debugFlag {
			level = "debug"
		}
		if err := logging.Init(logDir, level, "text", true, 10, 3, 14, true); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}

		mgr, err := config.NewManager()
		if err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		if err := mgr.Load(); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfgMgr = mgr
		return nil
	},
}

// Execute runs the root command and returns its error, printing it first
// unless it is a printedError a subcommand has already reported.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}
	if pe, ok := err.(printedError); ok {
		return pe
	}
	fmt.Println(err)
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")
}
