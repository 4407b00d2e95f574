package quality

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rudderlabs/rudder-go-kit/logger"

	"github.com/skyliftdata/skylift-go/model"
)

type fakeSource struct {
	scan *model.DataQualityScan
	err  error

	calls       int
	migrationID string
}

func (f *fakeSource) ScanDataQuality(_ context.Context, migrationID string) (*model.DataQualityScan, error) {
	f.calls++
	f.migrationID = migrationID
	if f.err != nil {
		return nil, f.err
	}
	return f.scan, nil
}

func TestScanReplacesWholesale(t *testing.T) {
	source := &fakeSource{scan: &model.DataQualityScan{
		OverallScore:  91,
		TablesScanned: 3,
		WarningCount:  1,
		IssuesBySeverity: map[model.Severity][]model.QualityIssue{
			model.SeverityWarning: {{TableName: "users", Description: "nulls"}},
		},
	}}
	s := New(source, logger.NOP)

	require.Nil(t, s.Current())

	scan, err := s.Scan(context.Background(), "mig-1")
	require.NoError(t, err)
	require.Equal(t, "mig-1", source.migrationID)
	require.Equal(t, 91, scan.OverallScore)
	require.Equal(t, scan, s.Current())

	// The second scan carries none of the first one's issues.
	source.scan = &model.DataQualityScan{OverallScore: 100, TablesScanned: 3}
	rescan, err := s.Scan(context.Background(), "mig-1")
	require.NoError(t, err)
	require.Equal(t, 100, rescan.OverallScore)
	require.Empty(t, rescan.IssuesBySeverity)
	require.Equal(t, rescan, s.Current())
	require.Equal(t, 2, source.calls)
}

func TestScanFailureKeepsPreviousResult(t *testing.T) {
	source := &fakeSource{scan: &model.DataQualityScan{OverallScore: 77}}
	s := New(source, logger.NOP)

	_, err := s.Scan(context.Background(), "mig-1")
	require.NoError(t, err)

	source.err = errors.New("backend unavailable")
	_, err = s.Scan(context.Background(), "mig-1")
	require.ErrorContains(t, err, "scanning data quality")
	require.ErrorContains(t, err, "backend unavailable")

	require.NotNil(t, s.Current())
	require.Equal(t, 77, s.Current().OverallScore)
}

func TestSampleSourceIsDeterministic(t *testing.T) {
	first, err := SampleSource{}.ScanDataQuality(context.Background(), "any")
	require.NoError(t, err)
	second, err := SampleSource{}.ScanDataQuality(context.Background(), "other")
	require.NoError(t, err)
	require.Equal(t, first, second)

	// Counts agree with the bucketed issues.
	for _, sev := range model.Severities() {
		require.Len(t, first.IssuesBySeverity[sev], first.Count(sev), string(sev))
	}
	require.Equal(t, 8, first.TotalIssues())
}
