// Package commands implements the skylift command tree.
package commands

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	"github.com/rudderlabs/rudder-go-kit/config"
	"github.com/rudderlabs/rudder-go-kit/logger"
	"github.com/rudderlabs/rudder-go-kit/stats"

	"github.com/skyliftdata/skylift-go/client"
	"github.com/skyliftdata/skylift-go/model"
)

// App carries the dependencies shared by every command.
type App struct {
	conf         *config.Config
	log          logger.Logger
	statsFactory stats.Stats
	stdout       io.Writer
}

func New(conf *config.Config, log logger.Logger, statsFactory stats.Stats) *App {
	return &App{
		conf:         conf,
		log:          log,
		statsFactory: statsFactory,
		stdout:       os.Stdout,
	}
}

func (a *App) Commands() []*cli.Command {
	return []*cli.Command{
		a.migrationCommand(),
		a.validateCommand(),
		a.deployCommand(),
		a.qualityCommand(),
	}
}

func (a *App) api() client.API {
	return client.WithStats(client.New(a.conf, a.log, a.statsFactory), a.statsFactory)
}

func requireMigrationID(c *cli.Context) (string, error) {
	if c.Args().Len() == 0 {
		return "", fmt.Errorf("need to specify a migration id")
	}
	return c.Args().Get(0), nil
}

func statusLabel[S ~string](s S) string {
	return strings.ToUpper(string(s))
}

func renderMigration(w io.Writer, job *model.MigrationJob) {
	rows := [][]string{
		{"ID", job.ID},
		{"Name", job.Name},
		{"Status", statusLabel(job.Status)},
		{"Progress", strconv.Itoa(job.DisplayProgress()) + "%"},
		{"Tables migrated", strconv.Itoa(job.TablesMigrated)},
		{"Views migrated", strconv.Itoa(job.ViewsMigrated)},
		{"Foreign keys", strconv.Itoa(job.ForeignKeys)},
		{"Models generated", strconv.Itoa(job.ModelsGenerated)},
		{"Created", job.CreatedAt.Format(time.RFC3339)},
	}
	if job.CompletedAt != nil {
		rows = append(rows, []string{"Completed", job.CompletedAt.Format(time.RFC3339)})
	}
	if job.Error != "" {
		rows = append(rows, []string{"Error", job.Error})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Field", "Value"})
	table.SetAutoFormatHeaders(false)
	table.AppendBulk(rows)
	table.Render()
}
