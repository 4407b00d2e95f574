package commands

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	"github.com/skyliftdata/skylift-go/model"
	"github.com/skyliftdata/skylift-go/quality"
)

func (a *App) qualityCommand() *cli.Command {
	return &cli.Command{
		Name:      "quality",
		Usage:     "scan the migration's source data for quality issues",
		ArgsUsage: "<migration-id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "sample", Usage: "render the built-in sample scan instead of calling the backend"},
		},
		Action: a.qualityAction,
	}
}

func (a *App) qualityAction(c *cli.Context) error {
	jobID, err := requireMigrationID(c)
	if err != nil {
		return err
	}

	var source quality.Source = a.api()
	if c.Bool("sample") {
		source = quality.SampleSource{}
	}
	scan, err := quality.New(source, a.log).Scan(c.Context, jobID)
	if err != nil {
		return err
	}

	renderScan(a.stdout, scan)
	return nil
}

func renderScan(w io.Writer, scan *model.DataQualityScan) {
	fmt.Fprintf(w, "quality score %d/100 across %d tables, %d issues\n",
		scan.OverallScore, scan.TablesScanned, scan.TotalIssues())

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Severity", "Table", "Column", "Issue", "Recommendation"})
	table.SetAutoFormatHeaders(false)
	for _, sev := range model.Severities() {
		for _, issue := range scan.IssuesBySeverity[sev] {
			table.Append([]string{
				statusLabel(sev),
				issue.TableName,
				issue.ColumnName,
				issue.Description,
				issue.Recommendation,
			})
		}
	}
	table.Render()
}
