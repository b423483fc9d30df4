package main

import (
	"fmt"

	"github.com/aretw0/skilltree"
	"github.com/aretw0/skilltree/internal/presentation/graph"
	"github.com/aretw0/skilltree/pkg/adapters/memory"
	"github.com/aretw0/skilltree/pkg/entity"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <skill>",
	Short: "Cast a skill in a sandbox world",
	Long: `Casts a skill once from a caster standing among hostile dummies and reports
the outcome. Mechanics are not bound to effects, so only selection and gating run.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		level, _ := cmd.Flags().GetInt("level")
		hostiles, _ := cmd.Flags().GetInt("hostiles")
		mana, _ := cmd.Flags().GetFloat64("mana")
		mermaid, _ := cmd.Flags().GetBool("mermaid")

		world := memory.NewWorld()
		caster := entity.New("caster", entity.Human(), entity.WithMana(mana, mana), entity.WithHealth(20, 20))
		world.Add(caster)
		for i := 1; i <= hostiles; i++ {
			world.Add(entity.New(fmt.Sprintf("dummy-%d", i), entity.At(float64(i), 0, 0), entity.WithHealth(20, 20)))
		}

		trace := graph.NewTrace()
		eng, err := newEngine(cmd, dir,
			skilltree.WithWorld(world),
			skilltree.WithLifecycleHooks(trace.Hooks()),
		)
		if err != nil {
			return err
		}

		res, err := eng.Cast(cmd.Context(), caster, args[0], level)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if mermaid {
			skill, _ := eng.Skill(args[0])
			fmt.Fprint(out, graph.GenerateMermaid(skill, trace.Overlay()))
			return nil
		}
		status := "success"
		if !res.Success {
			status = "failed: " + res.Reason
		}
		fmt.Fprintf(out, "%s at level %d: %s, %d effect application(s)\n", args[0], level, status, res.Applied)
		overlay := trace.Overlay()
		for _, p := range overlay.Passed {
			fmt.Fprintf(out, "  pass  %s\n", p)
		}
		for _, p := range overlay.Failed {
			fmt.Fprintf(out, "  fail  %s\n", p)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().Int("level", 1, "Skill level")
	simulateCmd.Flags().Int("hostiles", 3, "Number of hostile dummies, one block apart")
	simulateCmd.Flags().Float64("mana", 100, "Caster mana")
	simulateCmd.Flags().Bool("mermaid", false, "Print the traversal as a Mermaid overlay")
}
