package validation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"
)

// Explanation is the plain-language companion of a validation check, shown
// when the user expands a check row.
type Explanation struct {
	Title       string
	Explanation string
	HowToFix    string
	AffectsData bool
}

var explanations = map[string]Explanation{
	"row_count": {
		Title:       "Row Count Comparison",
		Explanation: "Counts the rows in the source table and in the deployed warehouse model and compares the totals. A mismatch means rows were dropped, duplicated, or filtered during the migration.",
		HowToFix:    "Check the model for filters or joins that change cardinality, then re-run the deployment with a full refresh so the model rebuilds from scratch.",
		AffectsData: true,
	},
	"data_type": {
		Title:       "Data Type Mapping",
		Explanation: "Verifies that each source column type maps to a compatible warehouse type. Lossy mappings can truncate values or change precision silently.",
		HowToFix:    "Override the column type in the generated model with an explicit cast that preserves precision, then redeploy.",
		AffectsData: true,
	},
	"nullability": {
		Title:       "Nullability",
		Explanation: "Compares NOT NULL constraints between the source column and the warehouse column. A column that became nullable can accept rows the source would have rejected.",
		HowToFix:    "Add a not_null test to the model, or tighten the column definition in the warehouse, and investigate any rows that already carry nulls.",
		AffectsData: true,
	},
	"primary_key": {
		Title:       "Primary Key Uniqueness",
		Explanation: "Checks that the source table's primary key stays unique in the deployed model. Duplicate keys usually mean a join fanned rows out.",
		HowToFix:    "Deduplicate in the model, or fix the join that multiplies rows, then re-run the validation.",
		AffectsData: true,
	},
	"foreign_key": {
		Title:       "Foreign Key Coverage",
		Explanation: "Confirms that relationships between source tables are represented as relationships between the generated models. Warehouses do not enforce these, so they are carried as metadata and tests.",
		HowToFix:    "Add a relationships test between the two models so broken references surface on every run.",
		AffectsData: false,
	},
	"row_sample": {
		Title:       "Row Sample Comparison",
		Explanation: "Pulls a sample of rows from both sides and compares them value by value. Differences point at transformation bugs that aggregate checks cannot see.",
		HowToFix:    "Open the check to see the differing source and target rows, trace the columns through the model's SQL, and correct the transformation.",
		AffectsData: true,
	},
	"dbt_compile": {
		Title:       "dbt Compilation",
		Explanation: "Compiles the generated dbt project without running it. Compilation failures mean a model references a missing relation or carries invalid SQL, so the deployment would fail.",
		HowToFix:    "Read the compile error for the failing model, fix the reference or SQL it names, and validate again.",
		AffectsData: false,
	},
	"dbt_test": {
		Title:       "dbt Tests",
		Explanation: "Runs the generated dbt test suite against the deployed models. Failing tests flag rows that violate the declared expectations.",
		HowToFix:    "Run the failing test's compiled SQL in the warehouse to see the offending rows, then fix the data or relax the test.",
		AffectsData: true,
	},
	"schema_structure": {
		Title:       "Schema Structure",
		Explanation: "Compares the set of columns between the source table and the deployed model. Missing or extra columns mean the model drifted from the source schema.",
		HowToFix:    "Regenerate the model from the current source schema, or edit it to add the missing columns, then redeploy.",
		AffectsData: false,
	},
}

// Explain returns the explanation for a check. The identifier is looked up
// from the check's name first, then its type, since backends differ in which
// field carries it. Unknown checks get a generic explanation built from the
// raw name, never an error: reports may carry check types introduced after
// this client was built.
func Explain(checkName, checkType string) Explanation {
	if e, ok := explanations[checkName]; ok {
		return e
	}
	if e, ok := explanations[checkType]; ok {
		return e
	}
	return Explanation{
		Title:       titleCase(checkName),
		Explanation: fmt.Sprintf("A %s check reported by the validation run. This client predates the check and cannot describe it in detail.", checkType),
		HowToFix:    "Open the check to inspect its details, or consult the validation documentation for this check type.",
		AffectsData: false,
	}
}

// titleCase turns a snake_case or camelCase check name into spaced words
// with capitalized initials, e.g. "row_count" into "Row Count".
func titleCase(name string) string {
	words := strings.Fields(strcase.ToDelimited(name, ' '))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
