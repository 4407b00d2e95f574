package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cast"
	"github.com/urfave/cli/v2"

	"github.com/skyliftdata/skylift-go/deployment"
	"github.com/skyliftdata/skylift-go/deployment/preflight"
	"github.com/skyliftdata/skylift-go/model"
)

func (a *App) deployCommand() *cli.Command {
	return &cli.Command{
		Name:      "deploy",
		Usage:     "deploy the generated models to a warehouse",
		ArgsUsage: "<migration-id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "profile", Usage: "path to a JSON connection profile", Required: true},
			&cli.StringFlag{Name: "target", Usage: "warehouse type, overriding the profile's warehouse_type"},
			&cli.BoolFlag{Name: "run-tests", Usage: "run the generated dbt tests after the models build"},
			&cli.BoolFlag{Name: "full-refresh", Usage: "rebuild incremental models from scratch"},
			&cli.BoolFlag{Name: "preflight", Usage: "check the warehouse connection before deploying"},
		},
		Action: a.deployAction,
	}
}

func (a *App) deployAction(c *cli.Context) error {
	jobID, err := requireMigrationID(c)
	if err != nil {
		return err
	}

	profile, err := deployment.LoadProfile(c.String("profile"))
	if err != nil {
		return err
	}
	if target := c.String("target"); target != "" {
		profile.Type = deployment.WarehouseType(target)
	}

	options := deployment.Options{
		RunTests:    c.Bool("run-tests"),
		FullRefresh: c.Bool("full-refresh"),
	}

	// Building here surfaces profile problems before anything is dialed,
	// and gives the user a redacted view of what will be submitted.
	payload, err := deployment.BuildPayload(profile, options)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "deploying %s to %s: %s\n", jobID, profile.Type, describePayload(payload))

	if c.Bool("preflight") {
		if err := preflight.New(a.conf, a.log).Check(c.Context, profile); err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "preflight passed for %s\n", profile.Type)
	}

	d := deployment.New(a.api(), a.conf, a.log, a.statsFactory, jobID)
	defer d.Close()

	if err := d.Deploy(c.Context, profile, options); err != nil {
		return err
	}
	job, err := d.AwaitTerminal(c.Context)
	if err != nil {
		return err
	}

	renderDeployment(a.stdout, job)
	if job.Status == model.DeploymentStatusFailed {
		return fmt.Errorf("deployment failed: %s", job.Error)
	}
	return nil
}

// describePayload renders the payload's connection fields with credentials
// left out.
func describePayload(payload deployment.Payload) string {
	keys := make([]string, 0, len(payload))
	for k := range payload {
		if sensitiveKey(k) || k == "warehouse_type" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+cast.ToString(payload[k]))
	}
	return strings.Join(parts, " ")
}

func sensitiveKey(k string) bool {
	for _, marker := range []string{"password", "secret", "token", "credentials"} {
		if strings.Contains(k, marker) {
			return true
		}
	}
	return false
}

func renderDeployment(w io.Writer, job *model.DeploymentJob) {
	fmt.Fprintf(w, "deployment %s: %s\n", job.DeploymentID, statusLabel(job.Status))
	if job.DbtRun != nil {
		r := job.DbtRun
		fmt.Fprintf(w, "  models: %d succeeded, %d failed, %d tables created\n",
			r.ModelsSucceeded, r.ModelsFailed, r.TablesCreated)
	}
	if job.DbtTest != nil {
		t := job.DbtTest
		fmt.Fprintf(w, "  tests: %d passed, %d failed, %d warnings\n",
			t.Passed, t.Failed, t.Warned)
	}
	if job.Error != "" {
		fmt.Fprintf(w, "  error: %s\n", job.Error)
	}
}
