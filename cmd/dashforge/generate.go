package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"dashforge/internal/task"
	"dashforge/internal/workflow"
)

func generateCmd() *cobra.Command {
	var useContext bool
	var provider string
	var maxRepairs int
	cmd := &cobra.Command{
		Use:          "generate <request text>",
		Short:        "Generate a dashboard from a request and print it as JSON",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			controller, err := buildController(cfg, provider)
			if err != nil {
				return err
			}

			text := strings.Join(args, " ")
			out := controller.Run(cmd.Context(), workflow.Request{
				Text:       text,
				MaxRepairs: maxRepairs,
				UseContext: useContext || cfg.Defaults.UseContext,
			}, nil)

			switch out.Status {
			case task.StatusCompleted:
				encoded, err := json.MarshalIndent(out.Candidate, "", "  ")
				if err != nil {
					return fmt.Errorf("serialize dashboard: %w", err)
				}
				fmt.Println(string(encoded))
				return nil
			case task.StatusAwaitingHuman:
				fmt.Fprintf(os.Stderr, "dashboard is still invalid after %d repair attempts:\n", out.Attempts)
				for _, d := range out.Diagnostics {
					fmt.Fprintf(os.Stderr, "  %s: %s\n", d.Path, d.Message)
				}
				return fmt.Errorf("generation needs human correction")
			default:
				return out.Err
			}
		},
	}
	cmd.Flags().BoolVar(&useContext, "context", false, "augment the prompt with retrieved context")
	cmd.Flags().StringVar(&provider, "provider", "", "provider id (default from config)")
	cmd.Flags().IntVar(&maxRepairs, "max-repairs", 0, "repair attempt budget (default from config)")
	return cmd
}
