package resolve

import (
	"strings"

	"github.com/TechXTT/cimgen/internal/model"
	"github.com/TechXTT/cimgen/internal/rdfs"
)

// classKind decides what a class represents. An explicit stereotype wins;
// the attribute shape is only consulted when the class carries none.
func classKind(c *model.ClassDefinition) model.ClassKind {
	switch c.Stereotype {
	case rdfs.StereotypePrimitive:
		return model.KindPrimitive
	case rdfs.StereotypeCIMDatatype:
		return model.KindDatatype
	case "enumeration":
		return model.KindEnum
	}
	if len(c.EnumInstances) > 0 {
		return model.KindEnum
	}
	if c.Stereotype == "" && isValueWrapper(c) {
		return model.KindDatatype
	}
	return model.KindClass
}

// isValueWrapper matches classes that are either a lone Float "value" or the
// value/unit/multiplier triple.
func isValueWrapper(c *model.ClassDefinition) bool {
	if len(c.Attributes) == 0 {
		return false
	}
	labels := make(map[string]bool, len(c.Attributes))
	floatOnly := true
	for _, a := range c.Attributes {
		labels[a.Label] = true
		if a.Label != "value" || rdfs.StripHash(a.DataType) != "Float" {
			floatOnly = false
		}
	}
	if floatOnly {
		return true
	}
	return len(labels) == 3 && labels["value"] && labels["unit"] && labels["multiplier"]
}

// classifyAttributes derives the target class, element kind and list flag of
// every attribute. Class kinds must already be set.
func classifyAttributes(bc *model.BuildContext, classes *model.ClassMap) {
	for _, c := range classes.Classes() {
		for _, a := range c.Attributes {
			a.Class = attributeClass(a)
			a.IsList = model.IsListMultiplicity(a.Multiplicity)
			if target, ok := classes.Get(a.Class); ok {
				a.Kind = target.Kind
				continue
			}
			if a.DataType != "" {
				a.Kind = model.KindPrimitive
			} else {
				a.Kind = model.KindClass
			}
			bc.Report(model.IssueUnknownTarget, "attribute target class not found",
				"class", c.Name, "attribute", a.Label, "target", a.Class)
		}
	}
}

func attributeClass(a *model.AttributeDefinition) string {
	if a.Range != "" {
		return rdfs.StripHash(a.Range)
	}
	return rdfs.StripHash(a.DataType)
}

// checkAssociations sets InverseIsList and reports association ends whose
// used markers do not pick exactly one side.
func checkAssociations(bc *model.BuildContext, classes *model.ClassMap) {
	for _, c := range classes.Classes() {
		for _, a := range c.Attributes {
			if a.InverseRole == "" {
				continue
			}
			inv, ok := inverseOf(classes, a.InverseRole)
			if !ok {
				bc.Report(model.IssueIntegrity, "inverse role not found",
					"class", c.Name, "attribute", a.Label, "inverse", a.InverseRole)
				continue
			}
			a.InverseIsList = inv.TemplateKind() == "list"

			// each pair is checked from the lexically smaller end only
			self := c.Name + "." + a.Label
			if self > a.InverseRole || a.AssociationUsed == "" || inv.AssociationUsed == "" {
				continue
			}
			if a.IsUsed == inv.IsUsed {
				bc.Report(model.IssueIntegrity, "association ends must have exactly one used side",
					"end", self, "inverse", a.InverseRole, "used", a.IsUsed)
			}
		}
	}
}

func inverseOf(classes *model.ClassMap, role string) (*model.AttributeDefinition, bool) {
	class, label, ok := strings.Cut(role, ".")
	if !ok {
		return nil, false
	}
	c, ok := classes.Get(class)
	if !ok {
		return nil, false
	}
	return c.Attribute(label)
}

// backfillNamespaces gives the CIM namespace to classes and attributes that
// declared none.
func backfillNamespaces(bc *model.BuildContext, classes *model.ClassMap) {
	ns := bc.CIMNamespace()
	if ns == "" {
		return
	}
	for _, c := range classes.Classes() {
		if c.Namespace == "" {
			c.Namespace = ns
		}
		for _, a := range c.Attributes {
			if a.Namespace == "" {
				a.Namespace = ns
			}
		}
	}
}
