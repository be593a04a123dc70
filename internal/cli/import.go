package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mind-engage/campusmate/internal/records"
)

func newImportCmd(o *options) *cobra.Command {
	var (
		file    string
		replace bool
	)
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a cutoff history CSV into the cutoff_history table",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				file = o.cfg.DataPath
			}
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()
			rows, err := records.ParseCSV(f)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}

			dbh, err := o.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer dbh.Close()
			n, err := records.Import(cmd.Context(), dbh, rows, replace)
			if err != nil {
				return err
			}
			if o.format == "json" {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"ok": true, "imported": n, "replaced": replace})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d records from %s\n", n, file)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "CSV to import (default: --data)")
	cmd.Flags().BoolVar(&replace, "replace", false, "clear cutoff_history first")
	return cmd
}
