// Package rdfs extracts typed scalar fields from RDFS schema descriptions.
//
// Every accessor returns the empty string when the predicate is absent: a
// missing field means "not applicable to this entry", never a parse failure.
package rdfs

import (
	"strings"

	"github.com/TechXTT/cimgen/internal/rdfxml"
)

// Well-known RDF type and stereotype URIs.
const (
	TypeClass         = "http://www.w3.org/2000/01/rdf-schema#Class"
	TypeProperty      = "http://www.w3.org/1999/02/22-rdf-syntax-ns#Property"
	TypeClassCategory = "http://iec.ch/TC57/1999/rdf-schema-extensions-19990926#ClassCategory"

	StereotypeAttribute   = "http://iec.ch/TC57/NonStandard/UML#attribute"
	StereotypeEnumeration = "http://iec.ch/TC57/NonStandard/UML#enumeration"
	StereotypeEntsoe      = "Entsoe"
	StereotypePrimitive   = "Primitive"
	StereotypeCIMDatatype = "CIMDatatype"
)

// SymbolRemoved replaces degree signs in comments.
const SymbolRemoved = "[SYMBOL REMOVED]"

var (
	labelReplacer = strings.NewReplacer(
		"–", "-",
		"“", `"`,
		"”", `"`,
		"‘", "'",
		"’", "'",
		"°", "",
		"º", "",
		"\r\n", " ",
		"\n", " ",
	)
	commentReplacer = strings.NewReplacer(
		"–", "-",
		"“", `"`,
		"”", `"`,
		"‘", "'",
		"’", "'",
		"°", SymbolRemoved,
		"º", SymbolRemoved,
		"\r\n", " ",
		"\n", " ",
	)
)

// Entry wraps one rdf:Description.
type Entry struct {
	desc *rdfxml.Description
}

// NewEntry wraps d.
func NewEntry(d *rdfxml.Description) Entry {
	return Entry{desc: d}
}

// Description returns the wrapped record.
func (e Entry) Description() *rdfxml.Description {
	return e.desc
}

// StripHash returns the part of s after the last '#', or s when there is none.
func StripHash(s string) string {
	if i := strings.LastIndexByte(s, '#'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// NamespaceOf returns s up to and including the last '#', or "" when there is none.
func NamespaceOf(s string) string {
	if i := strings.LastIndexByte(s, '#'); i >= 0 {
		return s[:i+1]
	}
	return ""
}

// extractString collapses resource wrappers, literal wrappers and text content
// to one string, using the first value of a list.
func extractString(values []rdfxml.Value) string {
	if len(values) == 0 {
		return ""
	}
	v := values[0]
	for _, key := range []string{"rdf:resource", "rdf:about", "rdfs:Literal"} {
		if s, ok := v.Attr(key); ok {
			return s
		}
	}
	return v.Text
}

// extractText returns the text content of the first value.
func extractText(values []rdfxml.Value) string {
	if len(values) == 0 {
		return ""
	}
	if values[0].Text == "" {
		if s, ok := values[0].Attr("rdfs:Literal"); ok {
			return s
		}
	}
	return values[0].Text
}

func (e Entry) values(key string) []rdfxml.Value {
	if e.desc == nil {
		return nil
	}
	return e.desc.Values(key)
}

func (e Entry) has(key string) bool {
	return e.desc != nil && e.desc.Has(key)
}

// About is the local name of the entry identifier.
func (e Entry) About() string {
	if e.desc == nil {
		return ""
	}
	return StripHash(e.desc.About)
}

// Namespace is the namespace part of the entry identifier. Document-local
// identifiers such as "#Terminal" have none.
func (e Entry) Namespace() string {
	if e.desc == nil {
		return ""
	}
	if ns := NamespaceOf(e.desc.About); ns != "#" {
		return ns
	}
	return ""
}

// Type returns the full rdf:type URI.
func (e Entry) Type() string {
	return extractString(e.values("rdf:type"))
}

func (e Entry) Label() string {
	return labelReplacer.Replace(extractText(e.values("rdfs:label")))
}

func (e Entry) Comment() string {
	return commentReplacer.Replace(extractText(e.values("rdfs:comment")))
}

// Stereotype returns the raw stereotype, a bare word or a full URI.
func (e Entry) Stereotype() string {
	return extractString(e.values("cims:stereotype"))
}

// Stereotypes returns every stereotype value; classes often carry more than one.
func (e Entry) Stereotypes() []string {
	vals := e.values("cims:stereotype")
	out := make([]string, 0, len(vals))
	for i := range vals {
		out = append(out, extractString(vals[i:i+1]))
	}
	return out
}

// DataType returns the cims:dataType reference as written (e.g. "#Float").
func (e Entry) DataType() string {
	return extractString(e.values("cims:dataType"))
}

// Domain returns the owning class name.
func (e Entry) Domain() string {
	return StripHash(extractString(e.values("rdfs:domain")))
}

// Range returns the rdfs:range reference as written.
func (e Entry) Range() string {
	return extractString(e.values("rdfs:range"))
}

// Multiplicity returns values like "M:0..n".
func (e Entry) Multiplicity() string {
	return StripHash(extractString(e.values("cims:multiplicity")))
}

func (e Entry) IsFixed() string {
	return extractText(e.values("cims:isFixed"))
}

// InverseRole returns "ClassName.attributeName".
func (e Entry) InverseRole() string {
	return StripHash(extractString(e.values("cims:inverseRoleName")))
}

func (e Entry) SubClassOf() string {
	return StripHash(extractString(e.values("rdfs:subClassOf")))
}

func (e Entry) Keyword() string {
	return extractString(e.values("dcat:keyword"))
}

func (e Entry) Title() string {
	return extractText(e.values("dct:title"))
}

func (e Entry) VersionIRI() string {
	return extractString(e.values("owl:versionIRI"))
}

// AssociationUsed returns the raw cims:AssociationUsed marker.
func (e Entry) AssociationUsed() string {
	return extractString(e.values("cims:AssociationUsed"))
}

// IsUsed is true unless the entry is explicitly marked unused.
func (e Entry) IsUsed() bool {
	if !e.has("cims:AssociationUsed") {
		return true
	}
	return !strings.EqualFold(strings.TrimSpace(e.AssociationUsed()), "no")
}
