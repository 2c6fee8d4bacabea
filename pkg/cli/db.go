package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/TechXTT/cimgen/pkg/cimgen"
	"github.com/TechXTT/cimgen/pkg/runtime"
)

func newDBCmd(a *app) *cobra.Command {
	var dsn string
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Apply the generated SQL schema to PostgreSQL",
	}
	cmd.PersistentFlags().StringVar(&dsn, "dsn", "", "PostgreSQL DSN (default DATABASE_URL)")

	pusher := func(cmd *cobra.Command) (*runtime.Pusher, func() error, error) {
		if cmd.Flags().Changed("dsn") {
			a.cfg.DSN = dsn
		}
		db, err := runtime.Connect(a.cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		return runtime.NewPusher(db, a.logger), db.Close, nil
	}

	var dryRun bool
	push := &cobra.Command{
		Use:   "push",
		Short: "Create the schema unless it was already applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.resolve()
			if err != nil {
				return err
			}
			stmts := cimgen.DDL(a.cfg.Version, m)
			if dryRun {
				w := cmd.OutOrStdout()
				for _, s := range stmts {
					fmt.Fprintf(w, "%s\n\n", s)
				}
				return nil
			}
			p, closeDB, err := pusher(cmd)
			if err != nil {
				return err
			}
			defer closeDB()
			res, err := p.Push(cmd.Context(), a.cfg.Version, stmts)
			if err != nil {
				return err
			}
			if res.Applied {
				cmd.Printf("applied %d statements (%s)\n", res.Statements, res.Hash[:12])
			} else {
				cmd.Printf("schema %s already applied\n", res.Hash[:12])
			}
			return nil
		},
	}
	push.Flags().BoolVar(&dryRun, "dry-run", false, "print the DDL instead of executing it")

	status := &cobra.Command{
		Use:   "status",
		Short: "List applied schemas and columns that differ from the current schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, closeDB, err := pusher(cmd)
			if err != nil {
				return err
			}
			defer closeDB()
			applied, err := p.Status(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "HASH\tVERSION\tAPPLIED")
			for _, s := range applied {
				fmt.Fprintf(w, "%s\t%s\t%s\n", s.Hash[:min(12, len(s.Hash))], s.Version, s.AppliedAt.Format(time.RFC3339))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if len(applied) == 0 {
				return nil
			}

			m, err := a.resolve()
			if err != nil {
				return err
			}
			drift, err := p.Drift(cmd.Context(), cimgen.Columns(a.cfg.Version, m))
			if err != nil {
				return err
			}
			if len(drift) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "\ncolumns match the schema")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout())
			w = tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TABLE\tCOLUMN\tWANT\tGOT")
			for _, d := range drift {
				got := d.Actual
				if got == "" {
					got = "(missing)"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.Table, d.Name, d.Type, got)
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(push, status)
	return cmd
}
