package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/skyliftdata/skylift-go/model"
	"github.com/skyliftdata/skylift-go/migration"
)

func (a *App) migrationCommand() *cli.Command {
	return &cli.Command{
		Name:  "migration",
		Usage: "inspect and control migration jobs",
		Subcommands: []*cli.Command{
			{
				Name:      "status",
				Usage:     "print the current state of a migration",
				ArgsUsage: "<migration-id>",
				Action:    a.migrationStatus,
			},
			{
				Name:      "watch",
				Usage:     "follow a migration until it completes or fails",
				ArgsUsage: "<migration-id>",
				Action:    a.migrationWatch,
			},
			{
				Name:      "start",
				Usage:     "start a pending migration",
				ArgsUsage: "<migration-id>",
				Action: func(c *cli.Context) error {
					return a.runLifecycle(c, "start", (*migration.Monitor).Start)
				},
			},
			{
				Name:      "stop",
				Usage:     "stop a running migration",
				ArgsUsage: "<migration-id>",
				Action: func(c *cli.Context) error {
					return a.runLifecycle(c, "stop", (*migration.Monitor).Stop)
				},
			},
			{
				Name:      "retry",
				Usage:     "retry a failed migration",
				ArgsUsage: "<migration-id>",
				Action: func(c *cli.Context) error {
					return a.runLifecycle(c, "retry", (*migration.Monitor).Retry)
				},
			},
			{
				Name:      "delete",
				Usage:     "delete a migration that is not running",
				ArgsUsage: "<migration-id>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "yes", Usage: "confirm the deletion"},
				},
				Action: a.migrationDelete,
			},
		},
	}
}

func (a *App) migrationStatus(c *cli.Context) error {
	jobID, err := requireMigrationID(c)
	if err != nil {
		return err
	}
	job, err := a.api().Migration(c.Context, jobID)
	if err != nil {
		return err
	}
	renderMigration(a.stdout, job)
	return nil
}

func (a *App) migrationWatch(c *cli.Context) error {
	jobID, err := requireMigrationID(c)
	if err != nil {
		return err
	}

	m := migration.New(a.api(), a.conf, a.log, a.statsFactory, jobID)
	defer m.Close()
	if err := m.Watch(c.Context); err != nil {
		return err
	}

	job := m.Snapshot()
	fmt.Fprintf(a.stdout, "%s: %s (%d%%)\n", job.ID, job.Status, job.DisplayProgress())

	// The monitor polls on its own while the job runs. Outside running the
	// backend only moves on request, so a pending job is re-fetched here
	// until someone starts it.
	interval := a.conf.GetDuration("Monitor.pollInterval", 3, time.Second)
	for !job.Status.Terminal() {
		var refresh <-chan time.Time
		if !job.Status.Active() {
			refresh = time.After(interval)
		}
		select {
		case <-c.Context.Done():
			return c.Context.Err()
		case <-refresh:
			_ = m.Refresh(c.Context)
		case next, ok := <-m.Updates():
			if !ok {
				return migration.ErrClosed
			}
			if next.Status != job.Status || next.DisplayProgress() != job.DisplayProgress() {
				fmt.Fprintf(a.stdout, "%s: %s (%d%%)\n", next.ID, next.Status, next.DisplayProgress())
			}
			job = next
		}
	}

	renderMigration(a.stdout, job)
	if job.Status == model.MigrationStatusFailed {
		return fmt.Errorf("migration failed: %s", job.Error)
	}
	return nil
}

// runLifecycle fetches the job once so the monitor's guards see the current
// status, then issues the command.
func (a *App) runLifecycle(c *cli.Context, name string, run func(*migration.Monitor, context.Context) error) error {
	jobID, err := requireMigrationID(c)
	if err != nil {
		return err
	}

	m := migration.New(a.api(), a.conf, a.log, a.statsFactory, jobID)
	defer m.Close()
	if err := m.Refresh(c.Context); err != nil {
		return err
	}
	if err := run(m, c.Context); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "%s requested; %s is now %s\n", name, jobID, m.Snapshot().Status)
	return nil
}

func (a *App) migrationDelete(c *cli.Context) error {
	jobID, err := requireMigrationID(c)
	if err != nil {
		return err
	}
	if !c.Bool("yes") {
		return fmt.Errorf("refusing to delete %s without --yes", jobID)
	}

	m := migration.New(a.api(), a.conf, a.log, a.statsFactory, jobID)
	defer m.Close()
	if err := m.Refresh(c.Context); err != nil {
		return err
	}
	if err := m.Delete(c.Context); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "migration %s deleted\n", jobID)
	return nil
}
