package main

import (
	"fmt"
	"io"

	"github.com/aretw0/skilltree/internal/presentation/tui"
	"github.com/aretw0/skilltree/pkg/domain"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Check every skill document for structural errors",
	Long: `Loads every skill document in the directory, validates it against the
placement grammar and the component catalog, and reports every problem found.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		detailed, _ := cmd.Flags().GetBool("report")
		return runValidate(cmd, skillsDir(cmd, args), detailed)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("report", false, "Render the detailed markdown report of every skill")
}

func runValidate(cmd *cobra.Command, dir string, detailed bool) error {
	eng, err := newEngine(cmd, dir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	rejected := 0
	for _, report := range eng.Reports() {
		if !report.OK() {
			rejected++
		}
		if detailed {
			renderReport(out, report)
			continue
		}
		printSummary(out, report)
	}

	if rejected > 0 {
		return fmt.Errorf("%d skill(s) rejected", rejected)
	}
	fmt.Fprintf(out, "%d skill(s) valid! ✅\n", len(eng.Skills()))
	return nil
}

func printSummary(out io.Writer, report *domain.Report) {
	if report.OK() {
		fmt.Fprintf(out, "ok    %s", report.SkillID)
		if n := len(report.Warnings); n > 0 {
			fmt.Fprintf(out, " (%d warning(s))", n)
		}
		fmt.Fprintln(out)
		return
	}
	fmt.Fprintf(out, "FAIL  %s\n", report.SkillID)
	for _, e := range report.Errors {
		fmt.Fprintf(out, "      %s [%s] %s\n", e.Path, e.Code, e.Message)
	}
}

func renderReport(out io.Writer, report *domain.Report) {
	render := tui.NewRenderer()
	text, err := render(report.Markdown())
	if err != nil {
		text = report.Markdown()
	}
	fmt.Fprint(out, text)
}
