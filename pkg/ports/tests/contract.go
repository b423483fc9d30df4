package tests

import (
	"testing"

	"github.com/aretw0/skilltree/pkg/ports"
)

// SkillLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.SkillLoader.
func SkillLoaderContractTest(t *testing.T, loader ports.SkillLoader, setupData map[string][]byte) {
	t.Helper()

	t.Run("GetSkill_Success", func(t *testing.T) {
		for id, expectedContent := range setupData {
			content, err := loader.GetSkill(id)
			if err != nil {
				t.Fatalf("unexpected error getting skill %s: %v", id, err)
			}
			if string(content) != string(expectedContent) {
				t.Errorf("content mismatch for %s. got %q, want %q", id, content, expectedContent)
			}
		}
	})

	t.Run("GetSkill_NotFound", func(t *testing.T) {
		_, err := loader.GetSkill("non-existent-skill")
		if err == nil {
			t.Error("expected error for non-existent skill, got nil")
		}
	})

	t.Run("ListSkills", func(t *testing.T) {
		ids, err := loader.ListSkills()
		if err != nil {
			t.Fatalf("unexpected error listing skills: %v", err)
		}

		if len(ids) != len(setupData) {
			t.Errorf("expected %d skills, got %d", len(setupData), len(ids))
		}

		lookup := make(map[string]bool)
		for _, id := range ids {
			lookup[id] = true
		}

		for id := range setupData {
			if !lookup[id] {
				t.Errorf("skill %s missing from list", id)
			}
		}
	})
}
