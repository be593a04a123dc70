// Package cli implements campusctl, the operator CLI for the cutoff data.
package cli

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mind-engage/campusmate/internal/config"
	"github.com/mind-engage/campusmate/internal/db"
	"github.com/mind-engage/campusmate/internal/records"
)

type options struct {
	cfg    config.Config
	format string // table|json
}

// NewRootCmd builds the command tree. Flag defaults come from the
// environment (and .env) like the services.
func NewRootCmd() *cobra.Command {
	o := &options{cfg: config.FromEnv()}
	root := &cobra.Command{
		Use:           "campusctl",
		Short:         "Inspect and manage CampusMate cutoff data",
		Long:          "campusctl classifies ranks, scores admission chances, answers chat messages and imports cutoff history.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&o.cfg.DataSource, "source", o.cfg.DataSource, "record source: csv or sql")
	pf.StringVar(&o.cfg.DataPath, "data", o.cfg.DataPath, "cutoff history CSV path")
	pf.StringVar(&o.cfg.DBDriver, "db-driver", o.cfg.DBDriver, "sqlite or postgres")
	pf.StringVar(&o.cfg.DBDSN, "db-dsn", o.cfg.DBDSN, "database DSN")
	pf.StringVarP(&o.format, "format", "f", "table", "output format: table or json")

	root.AddCommand(
		newClassifyCmd(o),
		newProbabilityCmd(o),
		newCutoffCmd(o),
		newChatCmd(o),
		newImportCmd(o),
		newStatsCmd(o),
		newUserCmd(o),
	)
	return root
}

func (o *options) openDB(ctx context.Context) (*sql.DB, error) {
	return db.Open(ctx, db.Driver(o.cfg.DBDriver), o.cfg.DBDSN)
}

// loadStore reads the configured source. Unlike the services there is no
// empty-store fallback.
func (o *options) loadStore(ctx context.Context) (*records.Store, func(), error) {
	switch o.cfg.DataSource {
	case "", "csv":
		s, err := records.Load(ctx, records.CSVSource{Path: o.cfg.DataPath})
		return s, func() {}, err
	case "sql":
		dbh, err := o.openDB(ctx)
		if err != nil {
			return nil, nil, err
		}
		s, err := records.Load(ctx, records.SQLSource{DB: dbh})
		if err != nil {
			dbh.Close()
			return nil, nil, err
		}
		return s, func() { dbh.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown source %q", o.cfg.DataSource)
}
