package model

// CheckStatus is the outcome of a single validation check.
type CheckStatus string

const (
	CheckStatusPassed  CheckStatus = "passed"
	CheckStatusWarning CheckStatus = "warning"
	CheckStatusFailed  CheckStatus = "failed"
	CheckStatusUnknown CheckStatus = "unknown"
)

// ValidationOptions selects which checks a validation run performs. Each flag
// is independent; re-running with different options replaces the prior report.
type ValidationOptions struct {
	RunDbtCompile     bool `json:"run_dbt_compile"`
	ValidateRowCounts bool `json:"validate_row_counts"`
	ValidateDataTypes bool `json:"validate_data_types"`
	GenerateDbtTests  bool `json:"generate_dbt_tests"`
}

func DefaultValidationOptions() ValidationOptions {
	return ValidationOptions{
		RunDbtCompile:     true,
		ValidateRowCounts: true,
		ValidateDataTypes: true,
	}
}

// ValidationCheck is one check result within a table's validation.
type ValidationCheck struct {
	CheckType string      `json:"check_type"`
	Name      string      `json:"name"`
	Status    CheckStatus `json:"status"`
	Details   string      `json:"details,omitempty"`

	SourceSample string `json:"source_sample,omitempty"`
	TargetSample string `json:"target_sample,omitempty"`
}

// TableValidation groups the checks run against one migrated table.
type TableValidation struct {
	TableName     string            `json:"table_name"`
	SourceTable   string            `json:"source_table"`
	TargetModel   string            `json:"target_model"`
	OverallStatus CheckStatus       `json:"overall_status"`
	Checks        []ValidationCheck `json:"checks"`
}

// CheckCounts tallies this table's checks by outcome.
func (t *TableValidation) CheckCounts() (passed, warned, failed int) {
	for _, c := range t.Checks {
		switch c.Status {
		case CheckStatusPassed:
			passed++
		case CheckStatusWarning:
			warned++
		case CheckStatusFailed:
			failed++
		}
	}
	return passed, warned, failed
}

// ValidationSummary is the backend's aggregate view of a report.
type ValidationSummary struct {
	TablesValidated int `json:"tables_validated"`
	TablesPassed    int `json:"tables_passed"`
	TablesWarned    int `json:"tables_warned"`
	TablesFailed    int `json:"tables_failed"`

	ChecksRun    int `json:"checks_run"`
	ChecksPassed int `json:"checks_passed"`

	PassRate float64 `json:"pass_rate"`

	TestsGenerated int `json:"tests_generated"`
}

// ValidationReport is the full table-by-table assessment of how faithfully
// the generated project represents the source schema. Tables keep the
// backend's ordering.
type ValidationReport struct {
	OverallStatus CheckStatus       `json:"overall_status"`
	Summary       ValidationSummary `json:"summary"`
	Tables        []TableValidation `json:"tables"`
}
