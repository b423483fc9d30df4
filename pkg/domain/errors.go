package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSkillNotFound is returned when a skill ID is not registered.
var ErrSkillNotFound = errors.New("skill not found")

// ErrSkillRejected wraps the report of a definition that failed validation.
var ErrSkillRejected = errors.New("skill rejected")

// ErrUnknownCategory is returned when a document type tag is not in the taxonomy.
var ErrUnknownCategory = errors.New("unknown component type")

// ErrEmptyTree is returned when a skill without nodes is installed.
var ErrEmptyTree = errors.New("skill has no tree")

// ErrInvalidLevel is returned when a cast is requested below level 1.
var ErrInvalidLevel = errors.New("invalid skill level")

// ErrNotPassive is returned when ApplyPassive is called on an active skill.
var ErrNotPassive = errors.New("skill is not passive")

// ErrNotActive is returned when Cast is called on a passive skill.
var ErrNotActive = errors.New("skill is not active")

// LoadErrorCode classifies load-time problems.
type LoadErrorCode string

const (
	CodeParse            LoadErrorCode = "parse"
	CodeEmpty            LoadErrorCode = "empty"
	CodeMissingTrigger   LoadErrorCode = "missing-trigger"
	CodeDuplicateTrigger LoadErrorCode = "duplicate-trigger"
	CodeUnknownType      LoadErrorCode = "unknown-type"
	CodeUnknownKey       LoadErrorCode = "unknown-key"
	CodeRoot             LoadErrorCode = "root"
	CodePlacement        LoadErrorCode = "placement"
	CodeCardinality      LoadErrorCode = "cardinality"
	CodeDepth            LoadErrorCode = "depth"
	CodeSettings         LoadErrorCode = "settings"
	CodeDefinition       LoadErrorCode = "definition"
)

// LoadError is a single problem found while loading a skill.
type LoadError struct {
	SkillID string        `json:"skill_id"`
	Path    string        `json:"path"`
	Code    LoadErrorCode `json:"code"`
	Message string        `json:"message"`
}

func (e LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("skill %q: %s", e.SkillID, e.Message)
	}
	return fmt.Sprintf("skill %q at %s: %s", e.SkillID, e.Path, e.Message)
}

// Warning is a non-fatal remark. Warnings never block acceptance.
type Warning struct {
	SkillID string `json:"skill_id"`
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("skill %q at %s: %s", w.SkillID, w.Path, w.Message)
}

// Report accumulates every problem found in one validation pass.
type Report struct {
	SkillID  string      `json:"skill_id"`
	Errors   []LoadError `json:"errors"`
	Warnings []Warning   `json:"warnings"`
}

// Errorf records an error.
func (r *Report) Errorf(path string, code LoadErrorCode, format string, args ...any) {
	r.Errors = append(r.Errors, LoadError{
		SkillID: r.SkillID,
		Path:    path,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	})
}

// Warnf records a warning.
func (r *Report) Warnf(path string, format string, args ...any) {
	r.Warnings = append(r.Warnings, Warning{
		SkillID: r.SkillID,
		Path:    path,
		Message: fmt.Sprintf(format, args...),
	})
}

// OK reports whether the skill is acceptable.
func (r *Report) OK() bool { return len(r.Errors) == 0 }

// Has reports whether an error with the given code was recorded.
func (r *Report) Has(code LoadErrorCode) bool {
	for _, e := range r.Errors {
		if e.Code == code {
			return true
		}
	}
	return false
}

// First returns at most n errors, for tooling that logs a short summary.
func (r *Report) First(n int) []LoadError {
	if n >= len(r.Errors) {
		return r.Errors
	}
	return r.Errors[:n]
}

// Err returns nil when the report has no errors, otherwise a *ValidationError
// wrapping ErrSkillRejected.
func (r *Report) Err() error {
	if r.OK() {
		return nil
	}
	return &ValidationError{SkillID: r.SkillID, Errors: r.Errors}
}

// Markdown renders the full detailed report.
func (r *Report) Markdown() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Skill `%s`\n\n", r.SkillID)
	if r.OK() {
		sb.WriteString("Accepted.\n")
	} else {
		fmt.Fprintf(&sb, "Rejected with %d error(s).\n\n## Errors\n\n", len(r.Errors))
		sb.WriteString("| Path | Code | Message |\n|---|---|---|\n")
		for _, e := range r.Errors {
			fmt.Fprintf(&sb, "| `%s` | %s | %s |\n", e.Path, e.Code, e.Message)
		}
	}
	if len(r.Warnings) > 0 {
		sb.WriteString("\n## Warnings\n\n")
		for _, w := range r.Warnings {
			fmt.Fprintf(&sb, "- `%s`: %s\n", w.Path, w.Message)
		}
	}
	return sb.String()
}

// ValidationError is the aggregate returned for a rejected skill.
type ValidationError struct {
	SkillID string
	Errors  []LoadError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("skill %q: %d validation errors:\n", e.SkillID, len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

func (e *ValidationError) Unwrap() error { return ErrSkillRejected }

// LoadErrors returns the individual errors if err is a *ValidationError.
func LoadErrors(err error) []LoadError {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Errors
	}
	return nil
}
