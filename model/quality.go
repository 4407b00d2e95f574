package model

// Severity buckets a data-quality issue.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityError    Severity = "error"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Severities lists all severities from most to least severe, the order scan
// results are rendered in.
func Severities() []Severity {
	return []Severity{SeverityCritical, SeverityError, SeverityWarning, SeverityInfo}
}

// QualityIssue is one finding from a data-quality scan.
type QualityIssue struct {
	TableName      string `json:"table_name"`
	ColumnName     string `json:"column_name,omitempty"`
	Description    string `json:"description"`
	Recommendation string `json:"recommendation"`
}

// DataQualityScan is the single-shot result of scanning a migration's source
// data. A re-scan replaces the prior result entirely.
type DataQualityScan struct {
	OverallScore  int `json:"overall_score"`
	TablesScanned int `json:"tables_scanned"`

	CriticalCount int `json:"critical_count"`
	ErrorCount    int `json:"error_count"`
	WarningCount  int `json:"warning_count"`
	InfoCount     int `json:"info_count"`

	IssuesBySeverity map[Severity][]QualityIssue `json:"issues_by_severity"`
}

// Count returns the scan's issue count for one severity.
func (s *DataQualityScan) Count(sev Severity) int {
	switch sev {
	case SeverityCritical:
		return s.CriticalCount
	case SeverityError:
		return s.ErrorCount
	case SeverityWarning:
		return s.WarningCount
	case SeverityInfo:
		return s.InfoCount
	}
	return 0
}

// TotalIssues sums the per-severity counts.
func (s *DataQualityScan) TotalIssues() int {
	return s.CriticalCount + s.ErrorCount + s.WarningCount + s.InfoCount
}
