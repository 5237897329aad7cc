package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dashforge/internal/llm"
)

func modelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "models",
		Short:        "List the configured generation providers",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			for _, m := range llm.Models(cfg) {
				marker := " "
				if m.Default {
					marker = "*"
				}
				fmt.Printf("%s %s\t%s\n", marker, m.ID, m.Name)
			}
			return nil
		},
	}
}
