package model

// listMultiplicities mark an attribute as a collection.
var listMultiplicities = map[string]bool{
	"M:0..n": true,
	"M:0..2": true,
	"M:1..n": true,
	"M:2..n": true,
}

// IsListMultiplicity reports whether m denotes more than one value.
func IsListMultiplicity(m string) bool {
	return listMultiplicities[m]
}

// AttributeDefinition is one property of a class.
//
// The fields from Class down are derived during resolution; everything above
// them comes straight from the schema.
type AttributeDefinition struct {
	Label        string `json:"label" yaml:"label"`
	Domain       string `json:"domain" yaml:"domain"`
	Range        string `json:"range,omitempty" yaml:"range,omitempty"`
	DataType     string `json:"datatype,omitempty" yaml:"datatype,omitempty"`
	Multiplicity string `json:"multiplicity,omitempty" yaml:"multiplicity,omitempty"`
	Comment      string `json:"comment,omitempty" yaml:"comment,omitempty"`
	InverseRole  string `json:"inverse_role,omitempty" yaml:"inverse_role,omitempty"`
	Stereotype   string `json:"stereotype,omitempty" yaml:"stereotype,omitempty"`
	Namespace    string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	IsFixed      string `json:"is_fixed,omitempty" yaml:"is_fixed,omitempty"`
	IsUsed       bool   `json:"is_used" yaml:"is_used"`
	// AssociationUsed is the raw marker; empty when the schema has none.
	AssociationUsed string   `json:"association_used,omitempty" yaml:"association_used,omitempty"`
	Origins         []string `json:"attr_origin" yaml:"attr_origin"`

	Class         string    `json:"attribute_class" yaml:"attribute_class"`
	Kind          ClassKind `json:"kind" yaml:"kind"`
	IsList        bool      `json:"is_list_attribute" yaml:"is_list_attribute"`
	InverseIsList bool      `json:"is_class_attribute_with_inverse_list" yaml:"is_class_attribute_with_inverse_list"`
}

// TemplateKind folds Kind and IsList into the five template categories:
// primitive, datatype, enum, class or list. Only a collection of class
// references is reported as list; collections of value types keep their
// element kind.
func (a *AttributeDefinition) TemplateKind() string {
	if a.Kind == KindClass && a.IsList {
		return "list"
	}
	return a.Kind.String()
}

// AddOrigin records profile p once.
func (a *AttributeDefinition) AddOrigin(p string) {
	a.Origins = addUnique(a.Origins, p)
}

// HasOrigin reports whether p is among the attribute origins.
func (a *AttributeDefinition) HasOrigin(p string) bool {
	return contains(a.Origins, p)
}

// Clone returns a deep copy.
func (a *AttributeDefinition) Clone() *AttributeDefinition {
	c := *a
	c.Origins = append([]string(nil), a.Origins...)
	return &c
}

func addUnique(list []string, s string) []string {
	if contains(list, s) {
		return list
	}
	return append(list, s)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
