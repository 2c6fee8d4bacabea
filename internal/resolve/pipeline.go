package resolve

import (
	"fmt"
	"io"
	"os"

	"github.com/TechXTT/cimgen/internal/model"
	"github.com/TechXTT/cimgen/internal/rdfxml"
)

// Source is one schema document to resolve.
type Source struct {
	Name   string
	Reader io.Reader
}

// Resolve runs the whole resolution pipeline over sources, in order. The
// returned model is complete; on error nothing is returned.
func Resolve(bc *model.BuildContext, d model.Dialect, sources []Source) (*model.Model, error) {
	if d != model.DialectV2 && d != model.DialectV3 {
		return nil, fmt.Errorf("%w: dialect %d", model.ErrUnsupportedDialect, d)
	}
	if len(sources) == 0 {
		return nil, model.ErrNoSchemaFiles
	}

	files := make([]*FileModel, 0, len(sources))
	for _, src := range sources {
		bc.Logger.Info("parsing schema file", "file", src.Name)
		doc, err := rdfxml.Decode(src.Reader)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", src.Name, err)
		}
		fm, err := BuildFile(bc, d, src.Name, doc)
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", src.Name, err)
		}
		bc.Logger.Debug("schema file built", "file", src.Name, "profile", fm.Profile, "classes", fm.Classes.Len())
		files = append(files, fm)
	}
	bc.Freeze()

	classes := MergeClasses(bc, MergeProfiles(files))
	for _, c := range classes.Classes() {
		c.DedupeAttributes()
	}

	linkHierarchy(bc, classes)
	for _, c := range classes.Classes() {
		c.Kind = classKind(c)
	}
	classifyAttributes(bc, classes)
	checkAssociations(bc, classes)
	backfillNamespaces(bc, classes)
	recommendProfiles(classes)

	return &model.Model{
		Classes:      classes,
		Profiles:     bc.ProfileDetails(),
		Namespaces:   bc.Namespaces(),
		CIMNamespace: bc.CIMNamespace(),
	}, nil
}

// ResolveFiles opens paths and resolves them in the given order.
func ResolveFiles(bc *model.BuildContext, d model.Dialect, paths []string) (*model.Model, error) {
	sources := make([]Source, 0, len(paths))
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			closeAll(sources)
			return nil, fmt.Errorf("open schema file: %w", err)
		}
		sources = append(sources, Source{Name: p, Reader: f})
	}
	defer closeAll(sources)
	return Resolve(bc, d, sources)
}

func closeAll(sources []Source) {
	for _, s := range sources {
		if c, ok := s.Reader.(io.Closer); ok {
			_ = c.Close()
		}
	}
}
