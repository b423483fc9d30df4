package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/skilltree/pkg/dsl"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a starter set of skill documents",
	Long:  `Generates sample active and passive skills in the directory. Existing files are kept unless --force is set.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := skillsDir(cmd, args)
		force, _ := cmd.Flags().GetBool("force")

		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, raw := range starterSkills().Skills() {
			path := filepath.Join(dir, raw.ID+".yaml")
			if _, err := os.Stat(path); err == nil && !force {
				fmt.Fprintf(out, "skip  %s (exists)\n", path)
				continue
			}
			data, err := yaml.Marshal(raw)
			if err != nil {
				return fmt.Errorf("failed to encode %s: %w", raw.ID, err)
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(out, "wrote %s\n", path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "Overwrite existing files")
}

func starterSkills() *dsl.Builder {
	b := dsl.New()

	b.Add("firebolt").
		Name("Firebolt").
		Description("Hurls a bolt of fire at the nearest hostile.").
		MaxLevel(5).
		Components(
			dsl.Trigger("cast",
				dsl.Cost("mana").Set("mana", 10).Set("mana-per-level", 2),
				dsl.Cooldown().Set("cooldown", 4).Set("cooldown-per-level", -0.5).Set("cooldown-min", 2),
				dsl.Target("nearest-hostile").Set("range", 12).Then(
					dsl.Mechanic("damage").Set("amount", 6).Set("amount-per-level", 2),
				),
			),
		)

	b.Add("frost-nova").
		Name("Frost Nova").
		Description("Freezes wounded hostiles around the caster.").
		MaxLevel(3).
		Components(
			dsl.Trigger("cast",
				dsl.Cost("mana").Set("mana", 25),
				dsl.Cooldown().Set("cooldown", 12),
				dsl.Target("sphere").Set("radius", 5).Set("radius-per-level", 1).Then(
					dsl.Filter("hostile").Then(
						dsl.Condition("health").Set("type", "percent").Set("max-value", 50).Then(
							dsl.Mechanic("freeze").Set("seconds", 3),
						),
					),
				),
			),
		)

	b.Add("thorns").
		Name("Thorns").
		Description("For a while, attackers are hurt back.").
		MaxLevel(3).
		Components(
			dsl.Trigger("cast",
				dsl.Cooldown().Set("cooldown", 30),
				dsl.Target("self").Then(
					dsl.Condition("event").Set("event", "damaged").Set("duration", 10).Set("duration-per-level", 5).Then(
						dsl.Mechanic("damage").Set("amount", 2),
					),
				),
			),
		)

	b.Add("regeneration").
		Name("Regeneration").
		Description("Slowly restores health while out of combat.").
		Passive().
		Components(
			dsl.Trigger("passive",
				dsl.Target("self").Then(
					dsl.Condition("combat").Negate().Then(
						dsl.Mechanic("heal").Set("amount", 1).Set("amount-per-level", 0.5),
					),
				),
			),
		)

	return b
}
