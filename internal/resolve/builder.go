// Package resolve turns decoded schema files into a merged, classified class
// model.
package resolve

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/TechXTT/cimgen/internal/model"
	"github.com/TechXTT/cimgen/internal/rdfs"
	"github.com/TechXTT/cimgen/internal/rdfxml"
)

// role is a bit set; one entry may play several roles at once.
type role uint8

const (
	roleClass role = 1 << iota
	roleProperty
	roleEnumInstance
	roleProfileName
	roleProfileShortName
	roleProfileURI
)

func (r role) has(x role) bool { return r&x != 0 }

// FileModel is the class model extracted from one schema file.
type FileModel struct {
	File     string
	Profile  string
	LongName string
	URIs     []string
	Classes  *model.ClassMap
}

func entryRoles(e rdfs.Entry, d model.Dialect) role {
	var r role
	switch t := e.Type(); t {
	case rdfs.TypeClass:
		r |= roleClass
	case rdfs.TypeProperty:
		r |= roleProperty
	case rdfs.TypeClassCategory, "":
	default:
		r |= roleEnumInstance
	}

	switch d {
	case model.DialectV2:
		stereotypes := e.Stereotypes()
		if containsString(stereotypes, rdfs.StereotypeEntsoe) && strings.HasSuffix(e.About(), "Version") {
			r |= roleProfileName
		}
		if containsString(stereotypes, rdfs.StereotypeAttribute) {
			if l := e.Label(); strings.HasPrefix(l, "entsoeURI") || strings.HasPrefix(l, "baseURI") {
				r |= roleProfileURI
			}
		}
		if e.Label() == "shortName" {
			r |= roleProfileShortName
		}
	case model.DialectV3:
		if e.Type() == rdfs.TypeClassCategory {
			r |= roleProfileName
		}
		if e.About() == "Ontology" {
			r |= roleProfileURI
		}
		if e.Keyword() != "" {
			r |= roleProfileShortName
		}
	}
	return r
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// classStereotype prefers a stereotype that decides the class kind over
// purely descriptive ones such as "concrete".
func classStereotype(e rdfs.Entry) string {
	list := e.Stereotypes()
	for _, s := range list {
		switch rdfs.StripHash(s) {
		case rdfs.StereotypePrimitive, rdfs.StereotypeCIMDatatype, "enumeration":
			return rdfs.StripHash(s)
		}
	}
	if len(list) > 0 {
		return rdfs.StripHash(list[0])
	}
	return ""
}

// entryName returns the entry label, or the member part of its identifier.
func entryName(e rdfs.Entry) string {
	if l := e.Label(); l != "" {
		return l
	}
	about := e.About()
	if i := strings.LastIndexByte(about, '.'); i >= 0 {
		return about[i+1:]
	}
	return about
}

func newClass(e rdfs.Entry) *model.ClassDefinition {
	c := model.NewClass(entryName(e))
	c.Comment = e.Comment()
	c.Stereotype = classStereotype(e)
	c.Superclass = e.SubClassOf()
	c.Namespace = e.Namespace()
	return c
}

func newAttribute(e rdfs.Entry) *model.AttributeDefinition {
	return &model.AttributeDefinition{
		Label:           entryName(e),
		Domain:          e.Domain(),
		Range:           e.Range(),
		DataType:        e.DataType(),
		Multiplicity:    e.Multiplicity(),
		Comment:         e.Comment(),
		InverseRole:     e.InverseRole(),
		Stereotype:      rdfs.StripHash(e.Stereotype()),
		Namespace:       e.Namespace(),
		IsFixed:         e.IsFixed(),
		IsUsed:          e.IsUsed(),
		AssociationUsed: e.AssociationUsed(),
	}
}

// BuildFile classifies every description of doc and assembles the class model
// of one file. The profile tables of bc are updated as a side effect.
func BuildFile(bc *model.BuildContext, d model.Dialect, file string, doc *rdfxml.Document) (*FileModel, error) {
	if d != model.DialectV2 && d != model.DialectV3 {
		return nil, fmt.Errorf("%w: dialect %d", model.ErrUnsupportedDialect, d)
	}

	fm := &FileModel{File: file, Classes: model.NewClassMap()}
	var (
		properties []rdfs.Entry
		instances  []rdfs.Entry
	)

	for _, desc := range doc.Descriptions {
		e := rdfs.NewEntry(desc)
		r := entryRoles(e, d)

		if r.has(roleClass) {
			c := newClass(e)
			if fm.Classes.Has(c.Name) {
				bc.Report(model.IssueDuplicateClass, "class already defined in file", "class", c.Name, "file", file)
			} else {
				fm.Classes.Set(c)
			}
		}
		if r.has(roleProperty) {
			properties = append(properties, e)
		}
		if r.has(roleEnumInstance) {
			instances = append(instances, e)
		}

		if fm.LongName == "" && r.has(roleProfileName) {
			if d == model.DialectV2 {
				fm.LongName = e.About()
			} else {
				fm.LongName = e.Label()
				if fm.LongName == "" {
					fm.LongName = e.Title()
				}
			}
		}
		if fm.Profile == "" && r.has(roleProfileShortName) {
			if d == model.DialectV2 {
				fm.Profile = e.IsFixed()
			} else {
				fm.Profile = e.Keyword()
			}
		}
		if r.has(roleProfileURI) {
			uri := e.IsFixed()
			if d == model.DialectV3 {
				uri = e.VersionIRI()
			}
			if uri != "" && !containsString(fm.URIs, uri) {
				fm.URIs = append(fm.URIs, uri)
			}
		}
	}

	if fm.Profile == "" {
		fm.Profile = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		bc.Report(model.IssueMissingShortName, "no profile short name, using file name", "file", file, "profile", fm.Profile)
	}
	fm.LongName = model.TrimLongName(fm.LongName)

	if err := registerFile(bc, fm, doc); err != nil {
		return nil, err
	}

	for _, e := range properties {
		a := newAttribute(e)
		owner, ok := fm.Classes.Get(a.Domain)
		if a.Domain == "" || !ok {
			bc.Report(model.IssueMissingDomain, "attribute domain not found", "domain", a.Domain, "attribute", e.About(), "file", file)
			continue
		}
		if _, dup := owner.Attribute(a.Label); dup {
			continue
		}
		owner.AddAttribute(a)
	}

	for _, e := range instances {
		name := rdfs.StripHash(e.Type())
		owner, ok := fm.Classes.Get(name)
		if !ok {
			bc.Report(model.IssueMissingEnumOwner, "enum owner not found", "class", name, "instance", e.About(), "file", file)
			continue
		}
		label := entryName(e)
		if _, dup := owner.EnumInstance(label); dup {
			continue
		}
		owner.AddEnumInstance(label, e.Comment(), name)
	}

	return fm, nil
}

func registerFile(bc *model.BuildContext, fm *FileModel, doc *rdfxml.Document) error {
	if err := bc.AddProfile(fm.Profile, fm.LongName, fm.URIs); err != nil {
		return err
	}
	for _, ns := range doc.Namespaces {
		if err := bc.AddNamespace(ns.Prefix, ns.URI); err != nil {
			return err
		}
	}
	if cim, ok := doc.Namespace("cim"); ok {
		return bc.SetCIMNamespace(cim)
	}
	return nil
}
