// Package cimgen is the public entry point: it finds schema files, resolves
// them into a class model and runs the lang packs over it.
package cimgen

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/TechXTT/cimgen/internal/langpack"
	"github.com/TechXTT/cimgen/internal/metrics"
	"github.com/TechXTT/cimgen/internal/model"
	"github.com/TechXTT/cimgen/internal/resolve"
	"github.com/TechXTT/cimgen/pkg/runtime"
)

const schemaExt = ".rdf"

// Options configures one run.
type Options struct {
	SchemaDir string
	// Include restricts the schema files to those matching any of these
	// globs, relative to SchemaDir. ** is supported.
	Include     []string
	Version     string
	OutputDir   string
	Languages   []string
	GoPackage   string
	MetricsFile string
	Logger      *slog.Logger
}

// Result is what Generate produced.
type Result struct {
	Model   *model.Model
	Files   []string
	Outputs map[string]*langpack.Output
	Issues  map[model.IssueKind]int
	Metrics *metrics.Run
}

// Discover lists the schema files below dir in lexical order.
func Discover(dir string, include []string) ([]string, error) {
	patterns := include
	if len(patterns) == 0 {
		patterns = []string{"*" + schemaExt}
	}
	seen := map[string]bool{}
	var files []string
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid include pattern %q", p)
		}
		matches, err := doublestar.FilepathGlob(filepath.Join(dir, p), doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", p, err)
		}
		for _, m := range matches {
			if !strings.EqualFold(filepath.Ext(m), schemaExt) || seen[m] {
				continue
			}
			seen[m] = true
			files = append(files, m)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", model.ErrNoSchemaFiles, dir)
	}
	sort.Strings(files)
	return files, nil
}

// Resolve discovers and resolves the schema files of opts. rec may be nil.
func Resolve(opts Options, rec model.IssueRecorder) (*model.Model, *model.BuildContext, error) {
	d, err := model.ParseDialect(opts.Version)
	if err != nil {
		return nil, nil, err
	}
	files, err := Discover(opts.SchemaDir, opts.Include)
	if err != nil {
		return nil, nil, err
	}
	bc := model.NewBuildContext(opts.Logger)
	bc.Recorder = rec
	bc.Logger.Debug("resolving schema", "version", opts.Version, "dialect", d.String(), "files", len(files))
	m, err := resolve.ResolveFiles(bc, d, files)
	if err != nil {
		return nil, nil, err
	}
	if run, ok := rec.(*metrics.Run); ok {
		run.SchemaFiles(len(files))
	}
	return m, bc, nil
}

// Generate resolves the schema and writes every requested language below
// OutputDir/<lang>.
func Generate(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	if len(opts.Languages) == 0 {
		return nil, fmt.Errorf("no languages requested")
	}
	packs := make([]langpack.LangPack, 0, len(opts.Languages))
	for _, name := range opts.Languages {
		pack, err := langpack.Lookup(name)
		if err != nil {
			return nil, err
		}
		if g, ok := pack.(*langpack.Go); ok && opts.GoPackage != "" {
			g.Package = opts.GoPackage
		}
		packs = append(packs, pack)
	}

	run := metrics.NewRun()
	m, bc, err := Resolve(opts, run)
	if err != nil {
		return nil, err
	}
	run.ObserveModel(m)

	res := &Result{
		Model:   m,
		Outputs: make(map[string]*langpack.Output, len(packs)),
		Issues:  map[model.IssueKind]int{},
		Metrics: run,
	}
	for _, k := range model.IssueKinds() {
		if n := bc.Issues(k); n > 0 {
			res.Issues[k] = n
		}
	}

	info := langpack.NewRunInfo(opts.Version, m)
	for _, pack := range packs {
		dir := filepath.Join(opts.OutputDir, pack.Name())
		out, err := langpack.Emit(ctx, pack, dir, info)
		if err != nil {
			return nil, err
		}
		for _, f := range out.Files {
			run.FileWritten(pack.Name())
			res.Files = append(res.Files, filepath.Join(dir, filepath.FromSlash(f)))
		}
		res.Outputs[pack.Name()] = out
		bc.Logger.Info("generated", "lang", pack.Name(), "files", len(out.Files), "dir", dir)
	}

	run.Finish(start)
	if opts.MetricsFile != "" {
		if err := run.WriteTextfile(opts.MetricsFile); err != nil {
			return nil, fmt.Errorf("write metrics: %w", err)
		}
	}
	return res, nil
}

// DDL renders the PostgreSQL schema of m in execution order.
func DDL(version string, m *model.Model) []string {
	return langpack.Schema(langpack.NewRunInfo(version, m))
}

// Columns lists the class table columns DDL creates, for drift checks.
func Columns(version string, m *model.Model) []runtime.Column {
	cols := langpack.Columns(langpack.NewRunInfo(version, m))
	out := make([]runtime.Column, len(cols))
	for i, c := range cols {
		out[i] = runtime.Column{Table: c.Table, Name: c.Name, Type: c.Type}
	}
	return out
}
