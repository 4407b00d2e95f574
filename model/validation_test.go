package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultValidationOptions(t *testing.T) {
	opts := DefaultValidationOptions()
	require.True(t, opts.RunDbtCompile)
	require.True(t, opts.ValidateRowCounts)
	require.True(t, opts.ValidateDataTypes)
	require.False(t, opts.GenerateDbtTests)
}

func TestCheckCounts(t *testing.T) {
	tv := TableValidation{
		TableName: "orders",
		Checks: []ValidationCheck{
			{Name: "row_count", Status: CheckStatusPassed},
			{Name: "data_type", Status: CheckStatusWarning},
			{Name: "nullability", Status: CheckStatusFailed},
			{Name: "primary_key", Status: CheckStatusPassed},
			{Name: "row_sample", Status: CheckStatusUnknown},
		},
	}

	passed, warned, failed := tv.CheckCounts()
	require.Equal(t, 2, passed)
	require.Equal(t, 1, warned)
	require.Equal(t, 1, failed)
}

func TestScanCounts(t *testing.T) {
	scan := DataQualityScan{
		CriticalCount: 1,
		ErrorCount:    2,
		WarningCount:  3,
		InfoCount:     4,
	}

	require.Equal(t, 10, scan.TotalIssues())
	for i, sev := range Severities() {
		require.Equal(t, i+1, scan.Count(sev))
	}
	require.Zero(t, scan.Count(Severity("bogus")))
}
