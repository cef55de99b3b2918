package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Take the quiz in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, playCmd} {
		c.Flags().Bool("skip-welcome", false, "Open straight on the home menu")
	}
}
