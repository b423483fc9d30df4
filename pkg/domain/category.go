package domain

import (
	"fmt"
	"strings"
)

// Category is the node taxonomy value. Each category carries a distinct bit so
// sets of categories can be tested with a single mask.
type Category uint8

const (
	CategoryTrigger Category = 1 << iota
	CategoryTarget
	CategoryFilter
	CategoryCondition
	CategoryMechanic
	CategoryCost
	CategoryCooldown
)

// Categories lists every category in declaration order.
var Categories = []Category{
	CategoryTrigger,
	CategoryTarget,
	CategoryFilter,
	CategoryCondition,
	CategoryMechanic,
	CategoryCost,
	CategoryCooldown,
}

var categoryTags = map[Category]string{
	CategoryTrigger:   "trigger",
	CategoryTarget:    "target",
	CategoryFilter:    "filter",
	CategoryCondition: "condition",
	CategoryMechanic:  "mechanic",
	CategoryCost:      "cost",
	CategoryCooldown:  "cooldown",
}

// categoryNames is the fixed name table used by loaders. Plural aliases are
// accepted because older documents used them.
var categoryNames = map[string]Category{
	"trigger":    CategoryTrigger,
	"target":     CategoryTarget,
	"targets":    CategoryTarget,
	"filter":     CategoryFilter,
	"filters":    CategoryFilter,
	"condition":  CategoryCondition,
	"conditions": CategoryCondition,
	"mechanic":   CategoryMechanic,
	"mechanics":  CategoryMechanic,
	"cost":       CategoryCost,
	"cooldown":   CategoryCooldown,
}

// Tag returns the stable serialization tag.
func (c Category) Tag() string {
	if tag, ok := categoryTags[c]; ok {
		return tag
	}
	return fmt.Sprintf("category(%d)", uint8(c))
}

func (c Category) String() string { return c.Tag() }

// Flag returns the bit flag of the category.
func (c Category) Flag() CategorySet { return CategorySet(c) }

// Valid reports whether c is exactly one known category.
func (c Category) Valid() bool {
	_, ok := categoryTags[c]
	return ok
}

// ParseCategory maps a document type tag to a category.
func ParseCategory(tag string) (Category, error) {
	c, ok := categoryNames[strings.ToLower(strings.TrimSpace(tag))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, tag)
	}
	return c, nil
}

// CategorySet is a bitmask of categories.
type CategorySet uint8

// SetOf builds a set from the given categories.
func SetOf(cats ...Category) CategorySet {
	var s CategorySet
	for _, c := range cats {
		s |= CategorySet(c)
	}
	return s
}

// Has reports whether c is a member of the set.
func (s CategorySet) Has(c Category) bool { return s&CategorySet(c) != 0 }

// Empty reports whether the set has no members.
func (s CategorySet) Empty() bool { return s == 0 }

// Members returns the categories of the set in declaration order.
func (s CategorySet) Members() []Category {
	var out []Category
	for _, c := range Categories {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

func (s CategorySet) String() string {
	members := s.Members()
	tags := make([]string, len(members))
	for i, c := range members {
		tags[i] = c.Tag()
	}
	return "{" + strings.Join(tags, ",") + "}"
}

// MarshalText encodes the category as its tag.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, uint8(c))
	}
	return []byte(c.Tag()), nil
}

// UnmarshalText decodes a category tag.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
