package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lingogate/lingogate/internal/config"
	"github.com/lingogate/lingogate/internal/output"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the configured language pairs",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		fmt.Println(output.PairsTable(cfg.Translation.AvailablePackages))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}
