package model

// EnumInstance is one literal of an enumeration class.
type EnumInstance struct {
	Label   string `json:"label" yaml:"label"`
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty"`
	Type    string `json:"type" yaml:"type"`
	Index   int    `json:"index" yaml:"index"`
}

// ClassDefinition is a CIM class resolved across every schema file that
// mentions it. Superclasses run from the nearest parent to the root.
type ClassDefinition struct {
	Name          string
	Comment       string
	Stereotype    string
	Superclass    string
	Namespace     string
	Attributes    []*AttributeDefinition
	EnumInstances []*EnumInstance
	Origins       []string
	Superclasses  []string
	Subclasses    []string
	Kind          ClassKind
	Recommended   string
}

func NewClass(name string) *ClassDefinition {
	return &ClassDefinition{Name: name}
}

// AddAttribute appends a without checking for an existing label.
func (c *ClassDefinition) AddAttribute(a *AttributeDefinition) {
	c.Attributes = append(c.Attributes, a)
}

// Attribute returns the first attribute carrying label.
func (c *ClassDefinition) Attribute(label string) (*AttributeDefinition, bool) {
	for _, a := range c.Attributes {
		if a.Label == label {
			return a, true
		}
	}
	return nil, false
}

// DedupeAttributes drops every attribute whose label was already seen.
func (c *ClassDefinition) DedupeAttributes() {
	seen := make(map[string]bool, len(c.Attributes))
	out := c.Attributes[:0]
	for _, a := range c.Attributes {
		if seen[a.Label] {
			continue
		}
		seen[a.Label] = true
		out = append(out, a)
	}
	for i := len(out); i < len(c.Attributes); i++ {
		c.Attributes[i] = nil
	}
	c.Attributes = out
}

// AddEnumInstance appends an instance with the next free index.
func (c *ClassDefinition) AddEnumInstance(label, comment, typ string) *EnumInstance {
	inst := &EnumInstance{Label: label, Comment: comment, Type: typ, Index: len(c.EnumInstances)}
	c.EnumInstances = append(c.EnumInstances, inst)
	return inst
}

func (c *ClassDefinition) EnumInstance(label string) (*EnumInstance, bool) {
	for _, e := range c.EnumInstances {
		if e.Label == label {
			return e, true
		}
	}
	return nil, false
}

func (c *ClassDefinition) AddOrigin(p string) {
	c.Origins = addUnique(c.Origins, p)
}

func (c *ClassDefinition) HasOrigin(p string) bool {
	return contains(c.Origins, p)
}

func (c *ClassDefinition) IsEnum() bool      { return c.Kind == KindEnum }
func (c *ClassDefinition) IsPrimitive() bool { return c.Kind == KindPrimitive }
func (c *ClassDefinition) IsDatatype() bool  { return c.Kind == KindDatatype }

// Clone returns a deep copy so per-file models can be merged without aliasing.
func (c *ClassDefinition) Clone() *ClassDefinition {
	n := *c
	n.Attributes = make([]*AttributeDefinition, len(c.Attributes))
	for i, a := range c.Attributes {
		n.Attributes[i] = a.Clone()
	}
	n.EnumInstances = make([]*EnumInstance, len(c.EnumInstances))
	for i, e := range c.EnumInstances {
		cp := *e
		n.EnumInstances[i] = &cp
	}
	n.Origins = append([]string(nil), c.Origins...)
	n.Superclasses = append([]string(nil), c.Superclasses...)
	n.Subclasses = append([]string(nil), c.Subclasses...)
	return &n
}
