package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rudderlabs/rudder-go-kit/stats"
	"github.com/rudderlabs/rudder-go-kit/stats/memstats"

	"github.com/skyliftdata/skylift-go/model"
)

type stubAPI struct {
	API
	scans int
}

func (s *stubAPI) ScanDataQuality(context.Context, string) (*model.DataQualityScan, error) {
	s.scans++
	return &model.DataQualityScan{OverallScore: 90}, nil
}

func TestAdapterDelegatesAndCounts(t *testing.T) {
	statsStore, err := memstats.New()
	require.NoError(t, err)

	stub := &stubAPI{}
	api := WithStats(stub, statsStore)

	scan, err := api.ScanDataQuality(context.Background(), "mig-1")
	require.NoError(t, err)
	require.Equal(t, 90, scan.OverallScore)
	require.Equal(t, 1, stub.scans)
	require.EqualValues(t, 1, statsStore.Get("skylift_api_request_count", stats.Tags{
		"operation": "scan_data_quality",
	}).LastValue())
}
