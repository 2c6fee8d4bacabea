package resolve

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TechXTT/cimgen/internal/model"
	"github.com/TechXTT/cimgen/internal/rdfs"
	"github.com/TechXTT/cimgen/internal/rdfxml"
)

const testCIM = "http://iec.ch/TC57/CIM100#"

const rdfOpen = `<?xml version="1.0" encoding="UTF-8"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:rdfs="http://www.w3.org/2000/01/rdf-schema#"
         xmlns:cims="http://iec.ch/TC57/1999/rdf-schema-extensions-19990926#"
         xmlns:cim="` + testCIM + `"
         xmlns:dcat="http://www.w3.org/ns/dcat#"
         xmlns:dct="http://purl.org/dc/terms/"
         xmlns:owl="http://www.w3.org/2002/07/owl#">
`

// v3Schema wraps body in a CGMES 3 style document for profile keyword.
func v3Schema(keyword, longName string, body ...string) string {
	var b strings.Builder
	b.WriteString(rdfOpen)
	fmt.Fprintf(&b, `  <rdf:Description rdf:about="http://iec.ch/TC57/ns/CIM/%[1]s#Ontology">
    <dcat:keyword>%[1]s</dcat:keyword>
    <owl:versionIRI rdf:resource="http://iec.ch/TC57/ns/CIM/%[1]s/3.0"/>
    <dct:title xml:lang="en">%[2]s Vocabulary</dct:title>
  </rdf:Description>
  <rdf:Description rdf:about="#Package_%[2]s">
    <rdfs:label xml:lang="en">%[2]s</rdfs:label>
    <rdf:type rdf:resource="%[3]s"/>
  </rdf:Description>
`, keyword, longName, rdfs.TypeClassCategory)
	for _, s := range body {
		b.WriteString(s)
	}
	b.WriteString("</rdf:RDF>\n")
	return b.String()
}

// v2Schema wraps body in a CGMES 2.4 style document.
func v2Schema(keyword, longName string, body ...string) string {
	var b strings.Builder
	b.WriteString(rdfOpen)
	fmt.Fprintf(&b, `  <rdf:Description rdf:about="#%[2]sVersion">
    <rdfs:label>%[2]sVersion</rdfs:label>
    <rdf:type rdf:resource="%[3]s"/>
    <cims:stereotype>Entsoe</cims:stereotype>
  </rdf:Description>
  <rdf:Description rdf:about="#%[2]sVersion.shortName">
    <rdfs:label>shortName</rdfs:label>
    <rdfs:domain rdf:resource="#%[2]sVersion"/>
    <rdf:type rdf:resource="%[4]s"/>
    <cims:isFixed rdfs:Literal="%[1]s"/>
  </rdf:Description>
  <rdf:Description rdf:about="#%[2]sVersion.entsoeURIcore">
    <rdfs:label>entsoeURIcore</rdfs:label>
    <rdfs:domain rdf:resource="#%[2]sVersion"/>
    <rdf:type rdf:resource="%[4]s"/>
    <cims:stereotype rdf:resource="%[5]s"/>
    <cims:isFixed rdfs:Literal="http://entsoe.eu/CIM/%[2]s/3/1"/>
  </rdf:Description>
  <rdf:Description rdf:about="#%[2]sVersion.baseURIcore">
    <rdfs:label>baseURIcore</rdfs:label>
    <rdfs:domain rdf:resource="#%[2]sVersion"/>
    <rdf:type rdf:resource="%[4]s"/>
    <cims:stereotype rdf:resource="%[5]s"/>
    <cims:isFixed rdfs:Literal="http://iec.ch/TC57/2013/CIM-schema-cim16"/>
  </rdf:Description>
`, keyword, longName, rdfs.TypeClass, rdfs.TypeProperty, rdfs.StereotypeAttribute)
	for _, s := range body {
		b.WriteString(s)
	}
	b.WriteString("</rdf:RDF>\n")
	return b.String()
}

func classXML(name, super string, stereotypes ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  <rdf:Description rdf:about=\"#%s\">\n    <rdfs:label xml:lang=\"en\">%s</rdfs:label>\n", name, name)
	fmt.Fprintf(&b, "    <rdfs:comment rdf:parseType=\"Literal\">The %s class.</rdfs:comment>\n", name)
	if super != "" {
		fmt.Fprintf(&b, "    <rdfs:subClassOf rdf:resource=\"#%s\"/>\n", super)
	}
	fmt.Fprintf(&b, "    <rdf:type rdf:resource=\"%s\"/>\n", rdfs.TypeClass)
	for _, s := range stereotypes {
		if strings.HasPrefix(s, "http") {
			fmt.Fprintf(&b, "    <cims:stereotype rdf:resource=\"%s\"/>\n", s)
		} else {
			fmt.Fprintf(&b, "    <cims:stereotype>%s</cims:stereotype>\n", s)
		}
	}
	b.WriteString("  </rdf:Description>\n")
	return b.String()
}

type attrOpt func(*strings.Builder)

func withRange(class string) attrOpt {
	return func(b *strings.Builder) { fmt.Fprintf(b, "    <rdfs:range rdf:resource=\"#%s\"/>\n", class) }
}

func withDataType(class string) attrOpt {
	return func(b *strings.Builder) { fmt.Fprintf(b, "    <cims:dataType rdf:resource=\"#%s\"/>\n", class) }
}

func withMultiplicity(m string) attrOpt {
	return func(b *strings.Builder) {
		fmt.Fprintf(b, "    <cims:multiplicity rdf:resource=\"http://iec.ch/TC57/1999/rdf-schema-extensions-19990926#%s\"/>\n", m)
	}
}

func withInverse(role string) attrOpt {
	return func(b *strings.Builder) { fmt.Fprintf(b, "    <cims:inverseRoleName rdf:resource=\"#%s\"/>\n", role) }
}

func withUsed(v string) attrOpt {
	return func(b *strings.Builder) { fmt.Fprintf(b, "    <cims:AssociationUsed>%s</cims:AssociationUsed>\n", v) }
}

func withComment(c string) attrOpt {
	return func(b *strings.Builder) { fmt.Fprintf(b, "    <rdfs:comment>%s</rdfs:comment>\n", c) }
}

func attrXML(domain, label string, opts ...attrOpt) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  <rdf:Description rdf:about=\"#%s.%s\">\n    <rdfs:label xml:lang=\"en\">%s</rdfs:label>\n", domain, label, label)
	fmt.Fprintf(&b, "    <rdfs:domain rdf:resource=\"#%s\"/>\n", domain)
	fmt.Fprintf(&b, "    <rdf:type rdf:resource=\"%s\"/>\n", rdfs.TypeProperty)
	for _, o := range opts {
		o(&b)
	}
	b.WriteString("  </rdf:Description>\n")
	return b.String()
}

func enumXML(owner, label string) string {
	return fmt.Sprintf("  <rdf:Description rdf:about=\"%s%s.%s\">\n    <rdfs:label xml:lang=\"en\">%s</rdfs:label>\n    <rdf:type rdf:resource=\"%s%s\"/>\n  </rdf:Description>\n",
		testCIM, owner, label, label, testCIM, owner)
}

func newTestContext() (*model.BuildContext, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return model.NewBuildContext(logger), &buf
}

func decode(t *testing.T, s string) *rdfxml.Document {
	t.Helper()
	doc, err := rdfxml.Decode(strings.NewReader(s))
	require.NoError(t, err)
	return doc
}

func buildFile(t *testing.T, bc *model.BuildContext, d model.Dialect, name, s string) *FileModel {
	t.Helper()
	fm, err := BuildFile(bc, d, name, decode(t, s))
	require.NoError(t, err)
	return fm
}

func resolveAll(t *testing.T, bc *model.BuildContext, d model.Dialect, docs ...string) *model.Model {
	t.Helper()
	sources := make([]Source, len(docs))
	for i, doc := range docs {
		sources[i] = Source{Name: fmt.Sprintf("file%d.rdf", i), Reader: strings.NewReader(doc)}
	}
	m, err := Resolve(bc, d, sources)
	require.NoError(t, err)
	return m
}

func mustClass(t *testing.T, m *model.ClassMap, name string) *model.ClassDefinition {
	t.Helper()
	c, ok := m.Get(name)
	require.True(t, ok, "class %s not found", name)
	return c
}

func labels(attrs []*model.AttributeDefinition) []string {
	out := make([]string, len(attrs))
	for i, a := range attrs {
		out[i] = a.Label
	}
	return out
}
