package compiler

import (
	"bytes"
	"fmt"

	"github.com/aretw0/skilltree/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Parser is responsible for converting raw bytes into a RawSkill.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes a YAML or JSON skill document. A document that is a bare list
// is read as the skill's top-level components.
func (p *Parser) Parse(data []byte) (*domain.RawSkill, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse skill: %w", err)
	}
	if len(doc.Content) == 0 || len(bytes.TrimSpace(data)) == 0 {
		return &domain.RawSkill{}, nil
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var comps []domain.RawNode
		if err := root.Decode(&comps); err != nil {
			return nil, fmt.Errorf("failed to decode components: %w", err)
		}
		return &domain.RawSkill{Components: comps}, nil
	case yaml.MappingNode:
		var raw domain.RawSkill
		if err := root.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to decode skill: %w", err)
		}
		return &raw, nil
	default:
		return nil, fmt.Errorf("skill document must be a mapping or a list (line %d)", root.Line)
	}
}
