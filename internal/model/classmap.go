package model

// ClassMap keeps classes by name in insertion order.
type ClassMap struct {
	names []string
	byKey map[string]*ClassDefinition
}

func NewClassMap() *ClassMap {
	return &ClassMap{byKey: make(map[string]*ClassDefinition)}
}

func (m *ClassMap) Get(name string) (*ClassDefinition, bool) {
	if m == nil {
		return nil, false
	}
	c, ok := m.byKey[name]
	return c, ok
}

func (m *ClassMap) Has(name string) bool {
	_, ok := m.Get(name)
	return ok
}

// Set stores c under c.Name. Replacing an existing entry keeps its position.
func (m *ClassMap) Set(c *ClassDefinition) {
	if m.byKey == nil {
		m.byKey = make(map[string]*ClassDefinition)
	}
	if _, ok := m.byKey[c.Name]; !ok {
		m.names = append(m.names, c.Name)
	}
	m.byKey[c.Name] = c
}

func (m *ClassMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.names)
}

// Names returns a copy of the keys in insertion order.
func (m *ClassMap) Names() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.names...)
}

// Classes returns the values in insertion order.
func (m *ClassMap) Classes() []*ClassDefinition {
	if m == nil {
		return nil
	}
	out := make([]*ClassDefinition, 0, len(m.names))
	for _, n := range m.names {
		out = append(out, m.byKey[n])
	}
	return out
}
