package model

// ClassRecord is the read-only view of one resolved class handed to emitters.
type ClassRecord struct {
	ClassName               string                 `json:"class_name" yaml:"class_name"`
	Comment                 string                 `json:"comment,omitempty" yaml:"comment,omitempty"`
	Namespace               string                 `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Kind                    ClassKind              `json:"kind" yaml:"kind"`
	Attributes              []*AttributeDefinition `json:"attributes" yaml:"attributes"`
	ClassOrigin             []string               `json:"class_origin" yaml:"class_origin"`
	EnumInstances           []*EnumInstance        `json:"enum_instances,omitempty" yaml:"enum_instances,omitempty"`
	IsAnEnumClass           bool                   `json:"is_an_enum_class" yaml:"is_an_enum_class"`
	IsAPrimitiveClass       bool                   `json:"is_a_primitive_class" yaml:"is_a_primitive_class"`
	IsADatatypeClass        bool                   `json:"is_a_datatype_class" yaml:"is_a_datatype_class"`
	SubclassOf              string                 `json:"subclass_of,omitempty" yaml:"subclass_of,omitempty"`
	Subclasses              []string               `json:"subclasses,omitempty" yaml:"subclasses,omitempty"`
	Superclasses            []string               `json:"superclasses,omitempty" yaml:"superclasses,omitempty"`
	RecommendedClassProfile string                 `json:"recommended_class_profile" yaml:"recommended_class_profile"`
}

// NewClassRecord snapshots c. Attributes are copied so emitters cannot reach
// back into the model.
func NewClassRecord(c *ClassDefinition) *ClassRecord {
	r := &ClassRecord{
		ClassName:               c.Name,
		Comment:                 c.Comment,
		Namespace:               c.Namespace,
		Kind:                    c.Kind,
		ClassOrigin:             SortProfiles(c.Origins),
		IsAnEnumClass:           c.IsEnum(),
		IsAPrimitiveClass:       c.IsPrimitive(),
		IsADatatypeClass:        c.IsDatatype(),
		SubclassOf:              c.Superclass,
		Subclasses:              append([]string(nil), c.Subclasses...),
		Superclasses:            append([]string(nil), c.Superclasses...),
		RecommendedClassProfile: c.Recommended,
	}
	seen := make(map[string]bool, len(c.Attributes))
	for _, a := range c.Attributes {
		if seen[a.Label] {
			continue
		}
		seen[a.Label] = true
		r.Attributes = append(r.Attributes, a.Clone())
	}
	for _, e := range c.EnumInstances {
		cp := *e
		r.EnumInstances = append(r.EnumInstances, &cp)
	}
	return r
}

// Model is the fully resolved output of one run.
type Model struct {
	Classes      *ClassMap
	Profiles     []ProfileDetail
	Namespaces   []Namespace
	CIMNamespace string
}

// Records returns one record per class in resolution order.
func (m *Model) Records() []*ClassRecord {
	classes := m.Classes.Classes()
	out := make([]*ClassRecord, 0, len(classes))
	for _, c := range classes {
		out = append(out, NewClassRecord(c))
	}
	return out
}

// Record returns the record for one class.
func (m *Model) Record(name string) (*ClassRecord, bool) {
	c, ok := m.Classes.Get(name)
	if !ok {
		return nil, false
	}
	return NewClassRecord(c), true
}
