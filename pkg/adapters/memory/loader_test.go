package memory_test

import (
	"testing"

	"github.com/aretw0/skilltree/pkg/adapters/memory"
	"github.com/aretw0/skilltree/pkg/domain"
	contract "github.com/aretw0/skilltree/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryLoader_Contract(t *testing.T) {
	data := map[string]string{
		"firebolt": "id: firebolt",
		"heal":     "id: heal",
	}

	bytesData := make(map[string][]byte)
	for k, v := range data {
		bytesData[k] = []byte(v)
	}

	loader := memory.NewLoader(data)

	contract.SkillLoaderContractTest(t, loader, bytesData)
}

func TestNewFromSkills(t *testing.T) {
	loader, err := memory.NewFromSkills(domain.RawSkill{
		ID: "firebolt",
		Components: []domain.RawNode{
			{Type: "trigger", Key: "cast"},
		},
	})
	require.NoError(t, err)

	raw, err := loader.GetSkill("firebolt")
	require.NoError(t, err)
	assert.Contains(t, string(raw), "id: firebolt")
	assert.Contains(t, string(raw), "type: trigger")

	_, err = memory.NewFromSkills(domain.RawSkill{})
	assert.Error(t, err)
}
