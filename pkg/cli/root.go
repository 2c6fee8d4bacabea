// Package cli wires the cimgen commands.
package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TechXTT/cimgen/internal/langpack"
	"github.com/TechXTT/cimgen/internal/model"
	"github.com/TechXTT/cimgen/pkg/cimgen"
	"github.com/TechXTT/cimgen/pkg/config"
)

// Version is stamped at build time with -ldflags.
var Version = "v0.1.0"

func help() string {
	return fmt.Sprintf(`cimgen resolves CGMES RDF schema files into a class model and generates
code and documentation from it.
Usage:
  cimgen <command> [flags]
Available Commands:
  generate    Generate code for one or more languages
  inspect     Print resolved class records as JSON or YAML
  profiles    List the profiles found in the schema
  db          Apply the generated SQL schema to PostgreSQL
    push        Create the schema unless it was already applied
    status      List applied schemas and column drift
  version     Print the version number
Global Flags:
  --config       config file (default %s when present)
  --schema-dir   directory holding the .rdf files
  --version      schema version, one of %s
  --include      glob of schema files to read, repeatable
  --log-level    debug, info, warn or error
Languages:
  %s
Examples:
  cimgen generate --schema-dir schemas/v3 --version cgmes_v3_0_0 --lang go,python --out gen
  cimgen inspect --class Terminal --format yaml
  cimgen db push --dsn postgres://localhost/cim`,
		config.DefaultFile, strings.Join(model.SupportedVersions(), ", "), strings.Join(langpack.Names(), ", "))
}

// app holds the settings shared by every command.
type app struct {
	configPath string
	logLevel   string
	schemaDir  string
	version    string
	include    []string

	cfg    *config.Config
	logger *slog.Logger
}

// load merges the config file, environment and global flags.
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("schema-dir") {
		cfg.SchemaDir = a.schemaDir
	}
	if flags.Changed("version") {
		cfg.Version = a.version
	}
	if flags.Changed("include") {
		cfg.Include = a.include
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}

func (a *app) options() cimgen.Options {
	return cimgen.Options{
		SchemaDir:   a.cfg.SchemaDir,
		Include:     a.cfg.Include,
		Version:     a.cfg.Version,
		OutputDir:   a.cfg.OutputDir,
		Languages:   a.cfg.Languages,
		GoPackage:   a.cfg.GoPackage,
		MetricsFile: a.cfg.MetricsFile,
		Logger:      a.logger,
	}
}

// resolve loads the model described by the current settings.
func (a *app) resolve() (*model.Model, error) {
	m, _, err := cimgen.Resolve(a.options(), nil)
	return m, err
}

// NewVersionCmd builds the `version` command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println("cimgen " + Version)
		},
	}
}

// NewHelpCmd builds the `help` command.
func NewHelpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "help",
		Short: "Print help information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(help())
		},
	}
}

// NewRootCmd builds the top-level `cimgen` command.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "cimgen",
		Short:         "cimgen: CGMES schema resolution and code generation",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" || cmd.Name() == "help" {
				return nil
			}
			return a.load(cmd)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file path")
	pf.StringVar(&a.schemaDir, "schema-dir", "", "directory holding the .rdf schema files")
	pf.StringVar(&a.version, "version", "", "schema version ("+strings.Join(model.SupportedVersions(), ", ")+")")
	pf.StringSliceVar(&a.include, "include", nil, "glob of schema files to read, relative to the schema dir")
	pf.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(newGenerateCmd(a))
	root.AddCommand(newInspectCmd(a))
	root.AddCommand(newProfilesCmd(a))
	root.AddCommand(newDBCmd(a))
	root.AddCommand(NewVersionCmd())
	root.SetHelpCommand(NewHelpCmd())
	return root
}
