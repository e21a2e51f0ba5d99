package intake

import (
	"fmt"
	"strings"
)

// FormSubmission is one applicant's completed intake form: a flat mapping
// of field names to values, posted by the frontend as a JSON object. Apart
// from the three required identity fields everything passes through
// untouched to the document renderer and the operator summary.
type FormSubmission map[string]string

// requiredFields must be present and non-blank for a submission to be
// processed at all.
var requiredFields = []string{"meno", "priezvisko", "email"}

// Validate checks required-field presence. It reports every missing field
// at once so the frontend can highlight all of them.
func (f FormSubmission) Validate() error {
	var missing []string
	for _, field := range requiredFields {
		if f.Get(field) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingRequiredFields, strings.Join(missing, ", "))
	}
	return nil
}

// Get returns the trimmed value for a field, or "" if absent.
func (f FormSubmission) Get(key string) string {
	return strings.TrimSpace(f[key])
}

// Email returns the applicant's address.
func (f FormSubmission) Email() string {
	return f.Get("email")
}

// FullName joins first and last name for display in subjects and summaries.
func (f FormSubmission) FullName() string {
	return strings.TrimSpace(f.Get("meno") + " " + f.Get("priezvisko"))
}

// FirstName returns the applicant's first name, falling back to the same
// placeholder the document generator uses for nameless data.
func (f FormSubmission) FirstName() string {
	if v := f.Get("meno"); v != "" {
		return v
	}
	return "Dlznik"
}

// LastName returns the applicant's last name with its generator placeholder.
func (f FormSubmission) LastName() string {
	if v := f.Get("priezvisko"); v != "" {
		return v
	}
	return "Neznamy"
}
