package resolve

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TechXTT/cimgen/internal/model"
	"github.com/TechXTT/cimgen/internal/rdfxml"
)

func TestResolve_ScenarioA(t *testing.T) {
	bc, _ := newTestContext()
	m := resolveAll(t, bc, model.DialectV3,
		v3Schema("EQ", "CoreEquipmentProfile",
			classXML("Terminal", ""),
			attrXML("Terminal", "ConductingEquipment", withRange("ConductingEquipment")),
		),
		v3Schema("EQ", "ShortCircuitProfile",
			classXML("Terminal", ""),
			attrXML("Terminal", "phases", withRange("PhaseCode")),
		),
	)

	terminal := mustClass(t, m.Classes, "Terminal")
	assert.Equal(t, []string{"EQ"}, terminal.Origins)
	assert.Equal(t, []string{"ConductingEquipment", "phases"}, labels(terminal.Attributes))
	for _, a := range terminal.Attributes {
		assert.Equal(t, []string{"EQ"}, a.Origins)
	}
	assert.Equal(t, "EQ", terminal.Recommended)

	require.Len(t, m.Profiles, 1)
	assert.Equal(t, "CoreEquipment", m.Profiles[0].LongName)
	assert.Equal(t, []string{
		"http://iec.ch/TC57/ns/CIM/EQ/3.0",
	}, m.Profiles[0].URIs)
}

func TestResolve_ScenarioB(t *testing.T) {
	bc, _ := newTestContext()
	m := resolveAll(t, bc, model.DialectV3,
		v3Schema("TP", "TopologyProfile", classXML("TopologicalNode", ""), classXML("IdentifiedObject", "")),
		v3Schema("SV", "StateVariablesProfile", classXML("TopologicalNode", "IdentifiedObject")),
	)

	node := mustClass(t, m.Classes, "TopologicalNode")
	assert.Equal(t, "IdentifiedObject", node.Superclass)
	assert.Equal(t, []string{"TP", "SV"}, node.Origins)
	assert.Equal(t, []string{"IdentifiedObject"}, node.Superclasses)
	assert.Equal(t, []string{"TopologicalNode"}, mustClass(t, m.Classes, "IdentifiedObject").Subclasses)

	rec, ok := m.Record("TopologicalNode")
	require.True(t, ok)
	assert.Equal(t, []string{"SV", "TP"}, rec.ClassOrigin)
	assert.Equal(t, "SV", rec.RecommendedClassProfile)
}

func TestResolve_ScenarioC(t *testing.T) {
	bc, _ := newTestContext()
	m := resolveAll(t, bc, model.DialectV3, v3Schema("EQ", "Equipment",
		classXML("ActivePower", ""),
		attrXML("ActivePower", "value", withDataType("Float")),
		classXML("Measurement", ""),
		attrXML("Measurement", "value", withDataType("Float")),
		attrXML("Measurement", "name", withDataType("String")),
		classXML("Terminal", ""),
		attrXML("Terminal", "p", withDataType("ActivePower")),
	))

	rec, _ := m.Record("ActivePower")
	assert.True(t, rec.IsADatatypeClass)
	rec, _ = m.Record("Measurement")
	assert.False(t, rec.IsADatatypeClass)

	terminal, _ := m.Record("Terminal")
	require.Len(t, terminal.Attributes, 1)
	assert.Equal(t, "datatype", terminal.Attributes[0].TemplateKind())
}

func TestResolve_V2EndToEnd(t *testing.T) {
	bc, _ := newTestContext()
	m := resolveAll(t, bc, model.DialectV2,
		v2Schema("EQ", "Equipment",
			classXML("IdentifiedObject", ""),
			attrXML("IdentifiedObject", "name", withDataType("String")),
			classXML("Terminal", "IdentifiedObject"),
		),
		v2Schema("TP", "Topology",
			classXML("IdentifiedObject", ""),
			attrXML("IdentifiedObject", "name", withDataType("String")),
			classXML("Terminal", "IdentifiedObject"),
		),
	)

	require.Len(t, m.Profiles, 2)
	assert.Equal(t, "EQ", m.Profiles[0].ShortName)
	assert.Equal(t, 0, m.Profiles[0].Index)
	assert.Equal(t, "Topology", m.Profiles[1].LongName)

	terminal, _ := m.Record("Terminal")
	assert.Equal(t, []string{"EQ", "TP"}, terminal.ClassOrigin)
	assert.Equal(t, "EQ", terminal.RecommendedClassProfile)
	assert.Equal(t, []string{"IdentifiedObject"}, terminal.Superclasses)
}

func TestResolve_DedupesAttributesAfterMerge(t *testing.T) {
	bc, _ := newTestContext()
	m := resolveAll(t, bc, model.DialectV3,
		v3Schema("EQ", "Equipment", classXML("Terminal", ""), attrXML("Terminal", "phases", withComment("one"))),
		v3Schema("EQ", "Equipment", classXML("Terminal", ""), attrXML("Terminal", "phases", withComment("two"))),
	)
	terminal := mustClass(t, m.Classes, "Terminal")
	require.Len(t, terminal.Attributes, 1)
	assert.Equal(t, "one", terminal.Attributes[0].Comment)
}

func TestResolve_Errors(t *testing.T) {
	bc, _ := newTestContext()
	_, err := Resolve(bc, model.DialectV3, nil)
	assert.True(t, errors.Is(err, model.ErrNoSchemaFiles))

	_, err = Resolve(bc, model.Dialect(7), []Source{{Name: "a.rdf", Reader: strings.NewReader(v3Schema("EQ", "E"))}})
	assert.True(t, errors.Is(err, model.ErrUnsupportedDialect))

	_, err = Resolve(bc, model.DialectV3, []Source{{Name: "bad.rdf", Reader: strings.NewReader("<html/>")}})
	assert.True(t, errors.Is(err, rdfxml.ErrInvalidDocument))
	assert.Contains(t, err.Error(), "bad.rdf")
}

func TestResolve_FreezesContext(t *testing.T) {
	bc, _ := newTestContext()
	resolveAll(t, bc, model.DialectV3, v3Schema("EQ", "Equipment", classXML("Terminal", "")))
	assert.True(t, bc.Frozen())
	assert.True(t, errors.Is(bc.AddProfile("SV", "", nil), model.ErrContextFrozen))
}

func TestResolveFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "EQ.rdf")
	require.NoError(t, os.WriteFile(path, []byte(v3Schema("EQ", "Equipment", classXML("Terminal", ""))), 0o644))

	bc, _ := newTestContext()
	m, err := ResolveFiles(bc, model.DialectV3, []string{path})
	require.NoError(t, err)
	assert.True(t, m.Classes.Has("Terminal"))

	_, err = ResolveFiles(model.NewBuildContext(nil), model.DialectV3, []string{filepath.Join(dir, "missing.rdf")})
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
