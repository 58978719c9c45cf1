package main

import (
	"fmt"

	"github.com/effective-security/agentic/llmutils"
	"github.com/spf13/cobra"
)

func newToolsCmd() *cobra.Command {
	var showParams bool

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "list the available tools",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, tool := range newToolRegistry().Tools() {
				fmt.Fprintf(out, "%s\n    %s\n", tool.Name(), tool.Description())
				if showParams {
					if params := tool.Parameters(); params != nil {
						fmt.Fprintf(out, "    %s\n", llmutils.ToJSON(params))
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showParams, "params", false, "show tool parameter schemas")
	return cmd
}
