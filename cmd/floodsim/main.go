// Command floodsim simulates flood-induced migration between districts.
package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/talgya/floodsim/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "floodsim",
	Short: "Agent-based flood migration simulation",
	Long:  "Floods one of the Jamuna, Ganges or Meghna rivers, decides which residents of affected districts move, and reports where they settle.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return eris.Wrap(err, "init logger")
		}
		return nil
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
