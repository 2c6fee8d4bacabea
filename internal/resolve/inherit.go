package resolve

import (
	"github.com/TechXTT/cimgen/internal/model"
)

// linkHierarchy fills Subclasses and Superclasses on every class.
// Subclasses lists each direct child followed by its own descendants.
func linkHierarchy(bc *model.BuildContext, classes *model.ClassMap) {
	direct := make(map[string][]string)
	for _, c := range classes.Classes() {
		if c.Superclass == "" || c.Superclass == c.Name {
			continue
		}
		if !classes.Has(c.Superclass) {
			bc.Report(model.IssueDanglingSuperclass, "superclass not found", "class", c.Name, "superclass", c.Superclass)
			continue
		}
		direct[c.Superclass] = append(direct[c.Superclass], c.Name)
	}

	for _, c := range classes.Classes() {
		visited := map[string]bool{c.Name: true}
		c.Subclasses = descendants(direct, c.Name, visited, nil)
		c.Superclasses = ancestors(classes, c)
	}
}

func descendants(direct map[string][]string, name string, visited map[string]bool, out []string) []string {
	for _, child := range direct[name] {
		if visited[child] {
			continue
		}
		visited[child] = true
		out = append(out, child)
		out = descendants(direct, child, visited, out)
	}
	return out
}

// ancestors walks up from c, nearest parent first. The walk stops at a
// missing class or at a class already on the chain.
func ancestors(classes *model.ClassMap, c *model.ClassDefinition) []string {
	var out []string
	seen := map[string]bool{c.Name: true}
	for name := c.Superclass; name != "" && !seen[name]; {
		parent, ok := classes.Get(name)
		if !ok {
			break
		}
		seen[name] = true
		out = append(out, name)
		name = parent.Superclass
	}
	return out
}
