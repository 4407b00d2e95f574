package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	"github.com/skyliftdata/skylift-go/model"
	"github.com/skyliftdata/skylift-go/validation"
)

func (a *App) validateCommand() *cli.Command {
	defaults := model.DefaultValidationOptions()
	return &cli.Command{
		Name:      "validate",
		Usage:     "validate the generated models against the source schema",
		ArgsUsage: "<migration-id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "dbt-compile", Value: defaults.RunDbtCompile, Usage: "compile the generated dbt project"},
			&cli.BoolFlag{Name: "row-counts", Value: defaults.ValidateRowCounts, Usage: "compare source and target row counts"},
			&cli.BoolFlag{Name: "data-types", Value: defaults.ValidateDataTypes, Usage: "check column type mappings"},
			&cli.BoolFlag{Name: "generate-tests", Value: defaults.GenerateDbtTests, Usage: "generate dbt tests for the validated tables"},
			&cli.BoolFlag{Name: "expand-all", Usage: "show every check, not only failing tables"},
		},
		Action: a.validateAction,
	}
}

func (a *App) validateAction(c *cli.Context) error {
	jobID, err := requireMigrationID(c)
	if err != nil {
		return err
	}

	options := model.ValidationOptions{
		RunDbtCompile:     c.Bool("dbt-compile"),
		ValidateRowCounts: c.Bool("row-counts"),
		ValidateDataTypes: c.Bool("data-types"),
		GenerateDbtTests:  c.Bool("generate-tests"),
	}
	report, err := a.api().RunValidation(c.Context, jobID, options)
	if err != nil {
		return err
	}

	state := validation.NewTreeState()
	if c.Bool("expand-all") {
		state.ExpandAll(report)
	} else {
		// Tables that passed collapse to their summary row; anything else
		// opens, with its non-passing checks opened too.
		for _, table := range report.Tables {
			if table.OverallStatus == model.CheckStatusPassed {
				continue
			}
			state.ToggleTable(table.TableName)
			for idx, check := range table.Checks {
				if check.Status != model.CheckStatusPassed {
					state.ToggleCheck(table.TableName, idx)
				}
			}
		}
	}

	renderValidation(a.stdout, report, state)
	if report.OverallStatus == model.CheckStatusFailed {
		return fmt.Errorf("validation failed: %d of %d tables failed",
			report.Summary.TablesFailed, report.Summary.TablesValidated)
	}
	return nil
}

func renderValidation(w io.Writer, report *model.ValidationReport, state *validation.TreeState) {
	s := report.Summary
	fmt.Fprintf(w, "Validation %s: %d/%d tables passed, %d/%d checks passed (%.1f%%)\n",
		statusLabel(report.OverallStatus),
		s.TablesPassed, s.TablesValidated, s.ChecksPassed, s.ChecksRun, s.PassRate)
	if s.TestsGenerated > 0 {
		fmt.Fprintf(w, "%d dbt tests generated\n", s.TestsGenerated)
	}
	fmt.Fprintln(w)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Table", "Status", "Passed", "Warnings", "Failed"})
	table.SetAutoFormatHeaders(false)
	for _, t := range report.Tables {
		passed, warned, failed := t.CheckCounts()
		table.Append([]string{
			t.TableName,
			statusLabel(t.OverallStatus),
			strconv.Itoa(passed),
			strconv.Itoa(warned),
			strconv.Itoa(failed),
		})
	}
	table.Render()

	for _, t := range report.Tables {
		if !state.TableExpanded(t.TableName) {
			continue
		}
		fmt.Fprintf(w, "\n%s (%s -> %s)\n", t.TableName, t.SourceTable, t.TargetModel)
		for idx, check := range t.Checks {
			fmt.Fprintf(w, "  [%s] %s\n", statusLabel(check.Status), check.Name)
			if !state.CheckExpanded(t.TableName, idx) {
				continue
			}
			if check.Details != "" {
				fmt.Fprintf(w, "        %s\n", check.Details)
			}
			if check.SourceSample != "" || check.TargetSample != "" {
				fmt.Fprintf(w, "        source: %s\n", check.SourceSample)
				fmt.Fprintf(w, "        target: %s\n", check.TargetSample)
			}
			if check.Status != model.CheckStatusPassed {
				e := validation.Explain(check.Name, check.CheckType)
				fmt.Fprintf(w, "        %s: %s\n", e.Title, e.Explanation)
				fmt.Fprintf(w, "        Fix: %s\n", e.HowToFix)
				if e.AffectsData {
					fmt.Fprintf(w, "        This difference affects the migrated data, not only metadata.\n")
				}
			}
		}
	}
}
