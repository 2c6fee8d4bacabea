package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TechXTT/cimgen/internal/model"
)

func hierarchy(pairs ...[2]string) *model.ClassMap {
	m := model.NewClassMap()
	for _, p := range pairs {
		c := model.NewClass(p[0])
		c.Superclass = p[1]
		m.Set(c)
	}
	return m
}

func TestLinkHierarchy_Symmetry(t *testing.T) {
	bc, _ := newTestContext()
	classes := hierarchy(
		[2]string{"IdentifiedObject", ""},
		[2]string{"PowerSystemResource", "IdentifiedObject"},
		[2]string{"Equipment", "PowerSystemResource"},
		[2]string{"ConductingEquipment", "Equipment"},
		[2]string{"ACDCTerminal", "IdentifiedObject"},
		[2]string{"Terminal", "ACDCTerminal"},
	)
	linkHierarchy(bc, classes)

	for _, b := range classes.Classes() {
		if b.Superclass == "" {
			continue
		}
		a := mustClass(t, classes, b.Superclass)
		assert.NotContains(t, a.Subclasses, a.Name)
		assert.Contains(t, a.Subclasses, b.Name)
	}

	root := mustClass(t, classes, "IdentifiedObject")
	assert.Equal(t, []string{"PowerSystemResource", "Equipment", "ConductingEquipment", "ACDCTerminal", "Terminal"}, root.Subclasses)

	ce := mustClass(t, classes, "ConductingEquipment")
	assert.Equal(t, []string{"Equipment", "PowerSystemResource", "IdentifiedObject"}, ce.Superclasses)
	assert.Empty(t, ce.Subclasses)
	assert.Empty(t, root.Superclasses)
}

func TestLinkHierarchy_DanglingSuperclass(t *testing.T) {
	bc, buf := newTestContext()
	classes := hierarchy(
		[2]string{"Terminal", "ACDCTerminal"},
		[2]string{"Child", "Terminal"},
	)
	linkHierarchy(bc, classes)

	assert.Equal(t, 1, bc.Issues(model.IssueDanglingSuperclass))
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Equal(t, []string{"Child"}, mustClass(t, classes, "Terminal").Subclasses)
	assert.Equal(t, []string{"Terminal"}, mustClass(t, classes, "Child").Superclasses)
	assert.Empty(t, mustClass(t, classes, "Terminal").Superclasses)
}

func TestLinkHierarchy_CycleTerminates(t *testing.T) {
	bc, _ := newTestContext()
	classes := hierarchy(
		[2]string{"A", "B"},
		[2]string{"B", "A"},
		[2]string{"Self", "Self"},
	)
	linkHierarchy(bc, classes)

	assert.Equal(t, []string{"B"}, mustClass(t, classes, "A").Subclasses)
	assert.Equal(t, []string{"B"}, mustClass(t, classes, "A").Superclasses)
	assert.Empty(t, mustClass(t, classes, "Self").Subclasses)
	assert.Empty(t, mustClass(t, classes, "Self").Superclasses)
}
