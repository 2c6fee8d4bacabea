package rdfxml

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRDF = `<?xml version="1.0" encoding="UTF-8"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:rdfs="http://www.w3.org/2000/01/rdf-schema#"
         xmlns:cims="http://iec.ch/TC57/1999/rdf-schema-extensions-19990926#"
         xmlns:cim="http://iec.ch/TC57/2013/CIM-schema-cim16#">
  <!-- a comment -->
  <rdf:Description rdf:about="#Terminal">
    <rdfs:label xml:lang="en">Terminal</rdfs:label>
    <rdfs:comment rdf:parseType="Literal">An AC electrical connection point.</rdfs:comment>
    <rdfs:subClassOf rdf:resource="#ACDCTerminal"/>
    <rdf:type rdf:resource="http://www.w3.org/2000/01/rdf-schema#Class"/>
    <cims:stereotype>concrete</cims:stereotype>
    <cims:stereotype rdf:resource="http://iec.ch/TC57/NonStandard/UML#concrete"/>
  </rdf:Description>
  <rdfs:Class rdf:ID="Float">
    <rdfs:label>Float</rdfs:label>
  </rdfs:Class>
  <rdf:Description rdf:about="#Terminal.phases">
    <rdfs:domain>
      <rdf:Description rdf:about="#Terminal"/>
    </rdfs:domain>
    <cims:isFixed rdfs:Literal="EQ"/>
  </rdf:Description>
</rdf:RDF>`

func TestDecode_Descriptions(t *testing.T) {
	doc, err := Decode(strings.NewReader(sampleRDF))
	require.NoError(t, err)
	require.Len(t, doc.Descriptions, 3)

	cim, ok := doc.Namespace("cim")
	assert.True(t, ok)
	assert.Equal(t, "http://iec.ch/TC57/2013/CIM-schema-cim16#", cim)

	terminal := doc.Descriptions[0]
	assert.Equal(t, "#Terminal", terminal.About)
	assert.Equal(t, descriptionElement, terminal.Element)
	assert.Equal(t, []string{"rdfs:label", "rdfs:comment", "rdfs:subClassOf", "rdf:type", "cims:stereotype"}, terminal.Keys())

	label := terminal.Values("rdfs:label")
	require.Len(t, label, 1)
	assert.Equal(t, "Terminal", label[0].Text)
	lang, _ := label[0].Attr("xml:lang")
	assert.Equal(t, "en", lang)

	sub := terminal.Values("rdfs:subClassOf")
	res, ok := sub[0].Attr("rdf:resource")
	assert.True(t, ok)
	assert.Equal(t, "#ACDCTerminal", res)

	assert.Len(t, terminal.Values("cims:stereotype"), 2)
}

func TestDecode_TypedNodeAndRDFID(t *testing.T) {
	doc, err := Decode(strings.NewReader(sampleRDF))
	require.NoError(t, err)

	float := doc.Descriptions[1]
	assert.Equal(t, "#Float", float.About)
	typ := float.Values("rdf:type")
	require.Len(t, typ, 1)
	res, _ := typ[0].Attr("rdf:resource")
	assert.Equal(t, "http://www.w3.org/2000/01/rdf-schema#Class", res)
}

func TestDecode_NestedNodeCollapsesToResource(t *testing.T) {
	doc, err := Decode(strings.NewReader(sampleRDF))
	require.NoError(t, err)

	phases := doc.Descriptions[2]
	domain := phases.Values("rdfs:domain")
	require.Len(t, domain, 1)
	res, _ := domain[0].Attr("rdf:resource")
	assert.Equal(t, "#Terminal", res)

	fixed := phases.Values("cims:isFixed")
	lit, ok := fixed[0].Attr("rdfs:Literal")
	assert.True(t, ok)
	assert.Equal(t, "EQ", lit)
}

func TestDecode_InvalidRoot(t *testing.T) {
	_, err := Decode(strings.NewReader(`<html><body/></html>`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidDocument))

	_, err = Decode(strings.NewReader(``))
	assert.True(t, errors.Is(err, ErrInvalidDocument))
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode(strings.NewReader(`<rdf:RDF xmlns:rdf="x"><rdf:Description`))
	assert.True(t, errors.Is(err, ErrInvalidDocument))
}
