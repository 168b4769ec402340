package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lingogate/lingogate/internal/config"
	"github.com/lingogate/lingogate/internal/output"
)

var configFormat string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the effective configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved configuration after defaults, file and environment",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		switch configFormat {
		case "table":
			fmt.Println(output.ConfigTable(cfg))
		case "yaml":
			redacted := *cfg
			redacted.Translation.EngineAPIKey = ""
			data, err := yaml.Marshal(redacted)
			if err != nil {
				return err
			}
			fmt.Print(string(data))
		default:
			return fmt.Errorf("unknown format %q (want table or yaml)", configFormat)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)

	configShowCmd.Flags().StringVar(&configFormat, "format", "table", "output format (table, yaml)")
}
