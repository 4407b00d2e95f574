package validation

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skyliftdata/skylift-go/model"
)

func TestTreeStateToggles(t *testing.T) {
	ts := NewTreeState()

	require.False(t, ts.TableExpanded("users"))
	require.True(t, ts.ToggleTable("users"))
	require.True(t, ts.TableExpanded("users"))
	require.False(t, ts.ToggleTable("users"))
	require.False(t, ts.TableExpanded("users"))

	require.True(t, ts.ToggleCheck("users", 0))
	require.True(t, ts.CheckExpanded("users", 0))
	require.False(t, ts.CheckExpanded("users", 1))
	require.False(t, ts.CheckExpanded("orders", 0))
	require.False(t, ts.ToggleCheck("users", 0))
	require.False(t, ts.CheckExpanded("users", 0))
}

func TestTreeStateChecksSurviveTableCollapse(t *testing.T) {
	ts := NewTreeState()

	ts.ToggleTable("users")
	ts.ToggleCheck("users", 2)
	ts.ToggleTable("users")

	require.False(t, ts.TableExpanded("users"))
	require.True(t, ts.CheckExpanded("users", 2))
}

func TestTreeStateStaleKeysAreInert(t *testing.T) {
	ts := NewTreeState()

	// Expanded against a report that no longer exists.
	ts.ToggleTable("dropped_table")
	ts.ToggleCheck("dropped_table", 0)

	require.False(t, ts.TableExpanded("users"))
	require.False(t, ts.CheckExpanded("users", 0))

	ts.Reset()
	require.False(t, ts.TableExpanded("dropped_table"))
	require.False(t, ts.CheckExpanded("dropped_table", 0))
}

func TestTreeStateExpandAll(t *testing.T) {
	report := &model.ValidationReport{
		Tables: []model.TableValidation{
			{
				TableName: "users",
				Checks: []model.ValidationCheck{
					{CheckType: "row_count"},
					{CheckType: "data_type"},
				},
			},
			{
				TableName: "orders",
				Checks: []model.ValidationCheck{
					{CheckType: "row_count"},
				},
			},
		},
	}

	ts := NewTreeState()
	ts.ExpandAll(report)

	require.True(t, ts.TableExpanded("users"))
	require.True(t, ts.TableExpanded("orders"))
	require.True(t, ts.CheckExpanded("users", 1))
	require.True(t, ts.CheckExpanded("orders", 0))
	require.False(t, ts.CheckExpanded("orders", 1))

	ts.ExpandAll(nil) // no-op
	require.True(t, ts.TableExpanded("users"))
}

func TestTreeStateConcurrentToggles(t *testing.T) {
	ts := NewTreeState()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				ts.ToggleTable("users")
				ts.ToggleCheck("users", j%3)
				ts.TableExpanded("users")
				ts.CheckExpanded("users", j%3)
			}
		}()
	}
	wg.Wait()
}

func TestExplainKnownChecks(t *testing.T) {
	for _, name := range []string{
		"row_count", "data_type", "nullability", "primary_key",
		"foreign_key", "row_sample", "dbt_compile", "dbt_test",
		"schema_structure",
	} {
		e := Explain(name, name)
		require.NotEmpty(t, e.Title, name)
		require.NotEmpty(t, e.Explanation, name)
		require.NotEmpty(t, e.HowToFix, name)
	}

	require.True(t, Explain("row_count", "row_count").AffectsData)
	require.False(t, Explain("dbt_compile", "dbt_compile").AffectsData)
}

func TestExplainResolvesThroughCheckType(t *testing.T) {
	// Some backends put the identifier in check_type and a display string in
	// name; the lookup must still land on the known entry.
	e := Explain("Row counts match", "row_count")
	require.Equal(t, "Row Count Comparison", e.Title)
	require.True(t, e.AffectsData)
}

func TestExplainUnknownCheckFallsBack(t *testing.T) {
	e := Explain("totally_unknown_check", "consistency")

	require.Equal(t, "Totally Unknown Check", e.Title)
	require.Contains(t, e.Explanation, "consistency")
	require.NotEmpty(t, e.HowToFix)
	require.False(t, e.AffectsData)
}

func TestExplainCamelCaseFallback(t *testing.T) {
	e := Explain("columnDriftCheck", "drift")
	require.Equal(t, "Column Drift Check", e.Title)
}
