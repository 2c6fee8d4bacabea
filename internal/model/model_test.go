package model

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortProfiles(t *testing.T) {
	assert.Equal(t, []string{"EQ", "DY", "SSH", "TP"}, SortProfiles([]string{"TP", "SSH", "EQ", "DY"}))
	assert.Equal(t, []string{"DL", "SV"}, SortProfiles([]string{"SV", "DL"}))
	assert.Empty(t, SortProfiles(nil))
}

func TestTrimLongName(t *testing.T) {
	assert.Equal(t, "Equipment", TrimLongName("EquipmentVersion"))
	assert.Equal(t, "Equipment", TrimLongName("EquipmentProfileVersion"))
	assert.Equal(t, "Equipment", TrimLongName("EquipmentProfile"))
	assert.Equal(t, "VersionX", TrimLongName("VersionX"))
}

func TestParseDialect(t *testing.T) {
	d, err := ParseDialect("cgmes_v2_4_15")
	require.NoError(t, err)
	assert.Equal(t, DialectV2, d)

	d, err = ParseDialect("cgmes_v3_0_0")
	require.NoError(t, err)
	assert.Equal(t, DialectV3, d)

	_, err = ParseDialect("cgmes_v4")
	assert.True(t, errors.Is(err, ErrUnsupportedDialect))
}

func TestTemplateKind(t *testing.T) {
	cases := []struct {
		kind   ClassKind
		isList bool
		want   string
	}{
		{KindClass, false, "class"},
		{KindClass, true, "list"},
		{KindPrimitive, true, "primitive"},
		{KindDatatype, false, "datatype"},
		{KindEnum, true, "enum"},
	}
	for _, c := range cases {
		a := &AttributeDefinition{Kind: c.kind, IsList: c.isList}
		assert.Equal(t, c.want, a.TemplateKind())
	}
	assert.True(t, IsListMultiplicity("M:0..2"))
	assert.False(t, IsListMultiplicity("M:0..1"))
}

func TestClassMapKeepsInsertionOrder(t *testing.T) {
	m := NewClassMap()
	m.Set(NewClass("B"))
	m.Set(NewClass("A"))
	m.Set(&ClassDefinition{Name: "B", Comment: "replaced"})

	assert.Equal(t, []string{"B", "A"}, m.Names())
	b, ok := m.Get("B")
	require.True(t, ok)
	assert.Equal(t, "replaced", b.Comment)
	assert.Equal(t, 2, m.Len())

	var nilMap *ClassMap
	assert.False(t, nilMap.Has("A"))
}

func TestEnumInstanceIndex(t *testing.T) {
	c := NewClass("PhaseCode")
	for i, l := range []string{"A", "B", "C"} {
		inst := c.AddEnumInstance(l, "", "#PhaseCode")
		assert.Equal(t, i, inst.Index)
	}
}

func TestDedupeAttributesKeepsFirst(t *testing.T) {
	c := NewClass("Terminal")
	c.AddAttribute(&AttributeDefinition{Label: "phases", Comment: "first"})
	c.AddAttribute(&AttributeDefinition{Label: "sequenceNumber"})
	c.AddAttribute(&AttributeDefinition{Label: "phases", Comment: "second"})
	c.DedupeAttributes()
	require.Len(t, c.Attributes, 2)
	assert.Equal(t, "first", c.Attributes[0].Comment)
}

func TestBuildContextFreeze(t *testing.T) {
	var buf bytes.Buffer
	bc := NewBuildContext(slog.New(slog.NewTextHandler(&buf, nil)))
	require.NoError(t, bc.AddProfile("TP", "TopologyVersion", []string{"u1"}))
	require.NoError(t, bc.AddProfile("EQ", "EquipmentVersion", []string{"u2"}))
	require.NoError(t, bc.AddProfile("EQ", "EquipmentShortCircuitVersion", []string{"u2", "u3"}))
	bc.Freeze()

	err := bc.AddProfile("SV", "StateVariables", nil)
	assert.True(t, errors.Is(err, ErrContextFrozen))
	assert.True(t, errors.Is(bc.AddNamespace("cim", "x"), ErrContextFrozen))
	assert.Contains(t, buf.String(), "build context mutation after scan")

	details := bc.ProfileDetails()
	require.Len(t, details, 2)
	assert.Equal(t, ProfileDetail{Index: 0, ShortName: "EQ", LongName: "Equipment", URIs: []string{"u2", "u3"}}, details[0])
	assert.Equal(t, "TP", details[1].ShortName)
	assert.Equal(t, 1, details[1].Index)
}

type countingRecorder map[IssueKind]int

func (c countingRecorder) IssueReported(k IssueKind) { c[k]++ }

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	rec := countingRecorder{}
	bc := NewBuildContext(slog.New(slog.NewTextHandler(&buf, nil)))
	bc.Recorder = rec

	bc.Report(IssueMergeConflict, "conflicting comment", "class", "Terminal")
	assert.Equal(t, 1, bc.Issues(IssueMergeConflict))
	assert.Equal(t, 1, rec[IssueMergeConflict])
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "issue=merge_conflict")
	assert.Contains(t, buf.String(), "class=Terminal")
}

func TestNewClassRecord(t *testing.T) {
	c := NewClass("Terminal")
	c.Origins = []string{"TP", "EQ"}
	c.AddAttribute(&AttributeDefinition{Label: "phases", Origins: []string{"EQ"}})
	c.AddAttribute(&AttributeDefinition{Label: "phases", Origins: []string{"TP"}})
	c.Recommended = "EQ"

	r := NewClassRecord(c)
	assert.Equal(t, []string{"EQ", "TP"}, r.ClassOrigin)
	require.Len(t, r.Attributes, 1)
	r.Attributes[0].Label = "mutated"
	assert.Equal(t, "phases", c.Attributes[0].Label)
}
