package jiratask

import "fmt"

// ConfigurationError reports a projectName that is not a string.
type ConfigurationError struct {
	ActualType string
}

func (e *ConfigurationError) Error() string {
	return "ProjectName must be a string. Actual type: " + e.ActualType
}

// FailureKind classifies a ValidationFailure.
type FailureKind string

const (
	KindMissing   FailureKind = "missing"
	KindDuplicate FailureKind = "duplicate"
	KindMalformed FailureKind = "malformed"
)

// ValidationFailure reports a header whose task reference is absent,
// repeated or not in "(NAME-123)" form.
type ValidationFailure struct {
	Kind        FailureKind
	ProjectName string
}

func (e *ValidationFailure) Error() string {
	if e.Kind == KindDuplicate {
		return "Commit must contains Jira only one task identifier."
	}
	return fmt.Sprintf("Commit must contains Jira task identifier. Example: (%s-777)", e.ProjectName)
}
