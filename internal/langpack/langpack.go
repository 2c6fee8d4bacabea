// Package langpack renders a resolved class model into source files for one
// target language.
package langpack

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/TechXTT/cimgen/internal/model"
	"github.com/TechXTT/cimgen/internal/typeconv"
)

var ErrUnknownLang = errors.New("unknown language")

// LangPack is implemented by every target language.
//
// Setup runs once before any class is written, WriteClass once per class in
// model order, and Finish once at the end for aggregate files.
type LangPack interface {
	Name() string
	// Extension is the suffix of the per-class files.
	Extension() string
	Setup(out *Output, info *RunInfo) error
	WriteClass(out *Output, rec *model.ClassRecord, info *RunInfo) error
	Finish(out *Output, info *RunInfo) error
}

var registry = map[string]func() LangPack{
	"go":       func() LangPack { return NewGo("cim") },
	"python":   func() LangPack { return NewPython() },
	"jsonld":   func() LangPack { return NewJSONLD() },
	"sql":      func() LangPack { return NewSQL() },
	"markdown": func() LangPack { return NewMarkdown() },
}

// Lookup returns a fresh pack for name.
func Lookup(name string) (LangPack, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownLang, name, Names())
	}
	return f(), nil
}

// Names lists the registered languages alphabetically.
func Names() []string {
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// RunInfo is the per-run data shared by every class of one emission.
type RunInfo struct {
	Version      string
	Profiles     []model.ProfileDetail
	Namespaces   []model.Namespace
	CIMNamespace string
	Records      []*model.ClassRecord

	byName map[string]*model.ClassRecord
}

func NewRunInfo(version string, m *model.Model) *RunInfo {
	info := &RunInfo{
		Version:      version,
		Profiles:     m.Profiles,
		Namespaces:   m.Namespaces,
		CIMNamespace: m.CIMNamespace,
		Records:      m.Records(),
	}
	info.index()
	return info
}

func (ri *RunInfo) index() {
	ri.byName = make(map[string]*model.ClassRecord, len(ri.Records))
	for _, r := range ri.Records {
		ri.byName[r.ClassName] = r
	}
}

// Class looks up a record by class name.
func (ri *RunInfo) Class(name string) (*model.ClassRecord, bool) {
	if ri.byName == nil {
		ri.index()
	}
	r, ok := ri.byName[name]
	return r, ok
}

// Primitive returns the CIM primitive an attribute is stored as. Datatype
// wrappers resolve to the type of their value attribute and enums to String.
// Class references have none.
func (ri *RunInfo) Primitive(a *model.AttributeDefinition) string {
	switch a.Kind {
	case model.KindPrimitive:
		return a.Class
	case model.KindEnum:
		return typeconv.String
	case model.KindDatatype:
		if dt, ok := ri.Class(a.Class); ok {
			for _, v := range dt.Attributes {
				if v.Label == "value" {
					return v.Class
				}
			}
		}
		return typeconv.Float
	}
	return ""
}

// Output writes files below one directory and remembers what it wrote.
type Output struct {
	Dir   string
	Files []string
}

// Write stores data at the slash-separated path rel below Dir.
func (o *Output) Write(rel string, data []byte) error {
	path := filepath.Join(o.Dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	o.Files = append(o.Files, rel)
	return nil
}

// Emit runs pack over every record of info and writes below dir.
func Emit(ctx context.Context, pack LangPack, dir string, info *RunInfo) (*Output, error) {
	out := &Output{Dir: dir}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	if err := pack.Setup(out, info); err != nil {
		return nil, fmt.Errorf("%s setup: %w", pack.Name(), err)
	}
	for _, rec := range info.Records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := pack.WriteClass(out, rec, info); err != nil {
			return nil, fmt.Errorf("%s class %s: %w", pack.Name(), rec.ClassName, err)
		}
	}
	if err := pack.Finish(out, info); err != nil {
		return nil, fmt.Errorf("%s finish: %w", pack.Name(), err)
	}
	return out, nil
}
