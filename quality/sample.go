package quality

import (
	"context"

	"github.com/skyliftdata/skylift-go/model"
)

// SampleSource serves a fixed scan regardless of migration, for demos and
// for migrations that have not been scanned yet. Every call returns the same
// dataset.
type SampleSource struct{}

func (SampleSource) ScanDataQuality(_ context.Context, _ string) (*model.DataQualityScan, error) {
	return &model.DataQualityScan{
		OverallScore:  82,
		TablesScanned: 14,
		CriticalCount: 1,
		ErrorCount:    2,
		WarningCount:  3,
		InfoCount:     2,
		IssuesBySeverity: map[model.Severity][]model.QualityIssue{
			model.SeverityCritical: {
				{
					TableName:      "orders",
					ColumnName:     "customer_id",
					Description:    "4,213 rows reference customer ids that do not exist in customers",
					Recommendation: "Restore the missing customers or exclude the orphaned orders before migrating",
				},
			},
			model.SeverityError: {
				{
					TableName:      "customers",
					ColumnName:     "email",
					Description:    "312 duplicate email values in a column the generated model treats as unique",
					Recommendation: "Deduplicate the column or drop the uniqueness expectation from the model",
				},
				{
					TableName:      "payments",
					ColumnName:     "amount",
					Description:    "87 negative amounts in a column documented as strictly positive",
					Recommendation: "Confirm whether refunds belong here; if not, correct the rows at the source",
				},
			},
			model.SeverityWarning: {
				{
					TableName:      "customers",
					ColumnName:     "phone",
					Description:    "38% of values are null",
					Recommendation: "Consider making the column nullable in the model or backfilling it",
				},
				{
					TableName:      "order_items",
					ColumnName:     "discount",
					Description:    "Column stores percentages as 0-100 in some rows and 0-1 in others",
					Recommendation: "Normalize to one scale in the staging model",
				},
				{
					TableName:      "audit_log",
					Description:    "Table has no primary key; incremental loads will full-scan it",
					Recommendation: "Add a surrogate key or migrate it as a snapshot",
				},
			},
			model.SeverityInfo: {
				{
					TableName:      "sessions",
					ColumnName:     "user_agent",
					Description:    "Values exceed 1 KB in 2% of rows",
					Recommendation: "Consider truncating or hashing if the column is unused downstream",
				},
				{
					TableName:      "customers",
					ColumnName:     "created_at",
					Description:    "Timestamps are stored without a timezone",
					Recommendation: "Document the assumed timezone in the model description",
				},
			},
		},
	}, nil
}
