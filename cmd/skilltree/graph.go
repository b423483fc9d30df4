package main

import (
	"fmt"

	"github.com/aretw0/skilltree/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <skill>",
	Short: "Export the skill tree visualization",
	Long:  `Outputs a Mermaid diagram (graph TD) of a compiled skill tree.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		eng, err := newEngine(cmd, dir)
		if err != nil {
			return err
		}

		skill, err := eng.Skill(args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(skill, nil))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
