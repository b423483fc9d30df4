package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/skilltree/internal/compiler"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const heal = `
id: heal
name: Heal
max-level: 3
components:
  - type: trigger
    components:
      - type: target
        key: self
        components:
          - type: mechanic
            key: heal
            settings: {amount: 4}
      - type: cooldown
        settings: {cooldown: 2}
`

func TestTreePrinter_Print(t *testing.T) {
	skill, report := compiler.New(nil).CompileBytes("heal", "heal.yaml", []byte(heal))
	require.True(t, report.OK(), "%v", report.Errors)

	var buf bytes.Buffer
	p := &TreePrinter{Profile: termenv.Ascii}
	p.Print(&buf, skill)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, []string{
		"Heal (heal)  active, max level 3",
		"└── trigger cast",
		"    ├── target self",
		"    │   └── mechanic heal {amount=4}",
		"    └── cooldown cooldown {cooldown=2}",
	}, lines)
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)
	assert.Contains(t, buf.String(), "|___/_|")
}

func TestNewRenderer(t *testing.T) {
	render := NewRenderer()
	out, err := render("# Skill `heal`\n\nAccepted.\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Accepted")
}
