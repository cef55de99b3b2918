package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "shindan",
	Short: "Adaptive work-style personality quiz",
	Long: "Shindan asks 20 questions, adapting each one to your answers so far, " +
		"and tells you which of 16 work-style characters you are.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command's
// context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to config.yaml (default: $XDG_CONFIG_HOME/shindan/config.yaml, then ./config.yaml)")
	pf.String("db", "", "Path to SQLite database file (overrides store.path and SHINDAN_DB)")
	pf.String("log-level", "", "Log level: debug, info, warn, error (overrides log.level)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(charactersCmd)
	rootCmd.AddCommand(compatCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
