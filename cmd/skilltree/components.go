package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/skilltree/internal/presentation/tui"
	"github.com/aretw0/skilltree/pkg/components"
	"github.com/aretw0/skilltree/pkg/domain"
	"github.com/aretw0/skilltree/pkg/schema"
	"github.com/spf13/cobra"
)

var componentsCmd = &cobra.Command{
	Use:   "components [category]",
	Short: "List the built-in components and their settings",
	Long: `Lists every trigger, target, filter, condition, cost and cooldown key the
compiler accepts, with the settings each one takes. Mechanic keys come from the
host game's effect registry and are not listed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var filter domain.Category
		if len(args) == 1 {
			cat, err := domain.ParseCategory(args[0])
			if err != nil {
				return err
			}
			filter = cat
		}

		var specs []components.Spec
		for _, s := range components.NewCatalog(nil).Specs() {
			if filter == 0 || s.Category == filter {
				specs = append(specs, s)
			}
		}

		out := cmd.OutOrStdout()
		if plain, _ := cmd.Flags().GetBool("plain"); plain {
			for _, s := range specs {
				fmt.Fprintf(out, "%s\t%s\t%s\n", s.Category.Tag(), s.Key, settingsLine(s.Schema))
			}
			return nil
		}
		renderComponents(out, specs)
		return nil
	},
}

func init() {
	componentsCmd.Flags().Bool("plain", false, "Print tab separated lines instead of a rendered table")
	rootCmd.AddCommand(componentsCmd)
}

func settingsLine(s schema.Schema) string {
	fields := s.Fields()
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.Key + ":" + f.Type
	}
	return strings.Join(parts, " ")
}

func renderComponents(out io.Writer, specs []components.Spec) {
	var b strings.Builder
	b.WriteString("| Type | Key | Summary | Settings |\n|---|---|---|---|\n")
	for _, s := range specs {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			s.Category.Tag(), s.Key, s.Summary, strings.ReplaceAll(settingsLine(s.Schema), "|", "/"))
	}
	render := tui.NewRenderer()
	text, err := render(b.String())
	if err != nil {
		text = b.String()
	}
	fmt.Fprint(out, text)
}
