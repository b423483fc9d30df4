package domain

// RawNode is an unvalidated node as it appears in an authoring document.
type RawNode struct {
	Type       string         `json:"type" yaml:"type" mapstructure:"type"`
	Key        string         `json:"key,omitempty" yaml:"key,omitempty" mapstructure:"key"`
	Settings   map[string]any `json:"settings,omitempty" yaml:"settings,omitempty" mapstructure:"settings"`
	Components []RawNode      `json:"components,omitempty" yaml:"components,omitempty" mapstructure:"components"`
}

// RawSkill is an unvalidated skill document.
type RawSkill struct {
	ID          string    `json:"id" yaml:"id" mapstructure:"id"`
	Name        string    `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Class       string    `json:"class,omitempty" yaml:"class,omitempty" mapstructure:"class"`
	MaxLevel    int       `json:"max-level,omitempty" yaml:"max-level,omitempty" mapstructure:"max-level"`
	Components  []RawNode `json:"components" yaml:"components" mapstructure:"components"`

	Source string `json:"-" yaml:"-" mapstructure:"-"`
}
