package main

import (
	"fmt"

	"github.com/aretw0/skilltree/internal/presentation/tui"
	"github.com/aretw0/skilltree/pkg/domain"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [skill...]",
	Short: "Print compiled skill trees",
	Long:  `Prints the compiled tree of the named skills, or of every skill, with resolved settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		eng, err := newEngine(cmd, dir)
		if err != nil {
			return err
		}

		var skills []*domain.Skill
		if len(args) == 0 {
			skills = eng.Skills()
		}
		for _, id := range args {
			skill, err := eng.Skill(id)
			if err != nil {
				return err
			}
			skills = append(skills, skill)
		}

		out := cmd.OutOrStdout()
		if quiet, _ := cmd.Flags().GetBool("no-banner"); !quiet {
			tui.PrintBanner(out)
		}
		printer := tui.NewTreePrinter()
		for i, skill := range skills {
			if i > 0 {
				fmt.Fprintln(out)
			}
			printer.Print(out, skill)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().Bool("no-banner", false, "Do not print the banner")
}
