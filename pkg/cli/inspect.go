package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/TechXTT/cimgen/internal/model"
)

// dump is the document printed by inspect when no class is selected.
type dump struct {
	Version      string                `json:"version" yaml:"version"`
	CIMNamespace string                `json:"cim_namespace" yaml:"cim_namespace"`
	Profiles     []model.ProfileDetail `json:"profiles" yaml:"profiles"`
	Namespaces   []model.Namespace     `json:"namespaces" yaml:"namespaces"`
	Classes      []*model.ClassRecord  `json:"classes" yaml:"classes"`
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q (json, yaml)", format)
}

func newInspectCmd(a *app) *cobra.Command {
	var (
		class  string
		format string
	)
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print resolved class records as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "yaml" {
				return fmt.Errorf("unknown format %q (json, yaml)", format)
			}
			m, err := a.resolve()
			if err != nil {
				return err
			}
			if class != "" {
				rec, ok := m.Record(class)
				if !ok {
					return fmt.Errorf("class %q not found", class)
				}
				return encode(cmd.OutOrStdout(), format, rec)
			}
			return encode(cmd.OutOrStdout(), format, dump{
				Version:      a.cfg.Version,
				CIMNamespace: m.CIMNamespace,
				Profiles:     m.Profiles,
				Namespaces:   m.Namespaces,
				Classes:      m.Records(),
			})
		},
	}
	cmd.Flags().StringVar(&class, "class", "", "only print this class")
	cmd.Flags().StringVar(&format, "format", "json", "output format (json, yaml)")
	return cmd
}

func newProfilesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the profiles found in the schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.resolve()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "INDEX\tSHORT\tLONG\tURIS")
			for _, p := range m.Profiles {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.Index, p.ShortName, p.LongName, strings.Join(p.URIs, " "))
			}
			return w.Flush()
		},
	}
}
