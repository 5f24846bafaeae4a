package registry

import (
	"fmt"
	"strings"

	"github.com/albertocavalcante/go-tfm/framework"
)

// FieldError represents a validation failure for a specific field.
type FieldError struct {
	Field   string // Field path (e.g., "portable[3].required")
	Message string // Human-readable error message
}

func (e *FieldError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidationErrors collects multiple validation errors.
type ValidationErrors struct {
	Errors []*FieldError
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d validation errors:", len(e.Errors))
	for _, err := range e.Errors {
		fmt.Fprintf(&b, "\n  - %s", err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying errors for errors.Is/As compatibility.
func (e *ValidationErrors) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, err := range e.Errors {
		errs[i] = err
	}
	return errs
}

// Add appends a validation error.
func (e *ValidationErrors) Add(field, message string) {
	e.Errors = append(e.Errors, &FieldError{Field: field, Message: message})
}

// HasErrors returns true if any errors were collected.
func (e *ValidationErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

// ToError returns nil if no errors, otherwise returns self.
func (e *ValidationErrors) ToError() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

// Validate checks the tables for structural errors. Folder names are not
// resolved here; that happens when a Registry is built.
func (m *Mappings) Validate() error {
	errs := &ValidationErrors{}

	for i, id := range m.Identifiers {
		if id.Name == "" {
			errs.Add(fmt.Sprintf("identifier[%d].name", i), "is required")
		}
		if id.Decimal && id.SingleDigit {
			errs.Add(fmt.Sprintf("identifier[%d]", i), "cannot be both decimal and single_digit")
		}
	}
	for i, p := range m.Profiles {
		if p.Identifier == "" {
			errs.Add(fmt.Sprintf("profile[%d].identifier", i), "is required")
		}
		if p.Short == "" {
			errs.Add(fmt.Sprintf("profile[%d].short", i), "is required")
		}
	}
	for i, s := range m.EquivalentProfiles {
		if s.Identifier == "" {
			errs.Add(fmt.Sprintf("equivalent_profiles[%d].identifier", i), "is required")
		}
		if len(s.Profiles) < 2 {
			errs.Add(fmt.Sprintf("equivalent_profiles[%d].profiles", i), "needs at least two profiles")
		}
	}
	for i, s := range m.Equivalents {
		if len(s.Frameworks) < 2 {
			errs.Add(fmt.Sprintf("equivalent[%d].frameworks", i), "needs at least two frameworks")
		}
	}
	for i, c := range m.Compatibility {
		c.Target.validate(fmt.Sprintf("compatibility[%d].target", i), errs)
		c.Supports.validate(fmt.Sprintf("compatibility[%d].supports", i), errs)
	}
	for i, s := range m.Standard {
		if s.Framework == "" || s.Standard == "" {
			errs.Add(fmt.Sprintf("standard[%d]", i), "framework and standard are required")
		}
	}
	for i, s := range m.Subsets {
		if s.Identifier == "" || len(s.Subsets) == 0 {
			errs.Add(fmt.Sprintf("subset[%d]", i), "identifier and subsets are required")
		}
	}
	for i, p := range m.PackageBased {
		p.validate(fmt.Sprintf("package_based[%d]", i), errs)
	}
	seen := make(map[int]bool, len(m.Portable))
	for i, p := range m.Portable {
		field := fmt.Sprintf("portable[%d]", i)
		if p.Number <= 0 {
			errs.Add(field+".number", "must be positive")
		} else if seen[p.Number] {
			errs.Add(field+".number", fmt.Sprintf("duplicate profile %d", p.Number))
		}
		seen[p.Number] = true
		if len(p.Required) == 0 {
			errs.Add(field+".required", "is required")
		}
	}

	return errs.ToError()
}

func (s RangeSpec) validate(field string, errs *ValidationErrors) {
	if s.Identifier == "" {
		errs.Add(field+".identifier", "is required")
	}
	if s.Min != "" {
		if _, err := framework.ParseVersion(s.Min); err != nil {
			errs.Add(field+".min", err.Error())
		}
	}
	if s.Max != "" {
		if _, err := framework.ParseVersion(s.Max); err != nil {
			errs.Add(field+".max", err.Error())
		}
	}
}
