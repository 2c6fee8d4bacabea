package cli

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"

	"github.com/TechXTT/cimgen/internal/model"
	"github.com/TechXTT/cimgen/pkg/cimgen"
	"github.com/TechXTT/cimgen/pkg/config"
)

// logIssues reports issue counts in declaration order.
func logIssues(logger *slog.Logger, issues map[model.IssueKind]int) {
	for _, kind := range model.IssueKinds() {
		if n := issues[kind]; n > 0 {
			logger.Warn("schema issues", "kind", kind.String(), "count", n)
		}
	}
}

func newGenerateCmd(a *app) *cobra.Command {
	var (
		langs       string
		out         string
		goPackage   string
		metricsFile string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate code for one or more languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("lang") {
				a.cfg.Languages = config.SplitList(langs)
			}
			if flags.Changed("out") {
				a.cfg.OutputDir = out
			}
			if flags.Changed("go-package") {
				a.cfg.GoPackage = goPackage
			}
			if flags.Changed("metrics-file") {
				a.cfg.MetricsFile = metricsFile
			}
			if err := a.cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			res, err := cimgen.Generate(cmd.Context(), a.options())
			if err != nil {
				return err
			}
			names := make([]string, 0, len(res.Outputs))
			for name := range res.Outputs {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				o := res.Outputs[name]
				cmd.Printf("%-9s %4d files  %s\n", name, len(o.Files), o.Dir)
			}
			logIssues(a.logger, res.Issues)
			return nil
		},
	}
	cmd.Flags().StringVar(&langs, "lang", "", "comma separated output languages")
	cmd.Flags().StringVar(&out, "out", "", "output directory")
	cmd.Flags().StringVar(&goPackage, "go-package", "", "package name of generated Go code")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write run metrics in Prometheus text format")
	return cmd
}
