package resolve

import (
	"github.com/TechXTT/cimgen/internal/model"
)

// ProfileModel is the union of every file sharing one profile short name.
type ProfileModel struct {
	Name    string
	Classes *model.ClassMap
}

// MergeProfiles folds file models into one model per profile, keeping the
// order in which profiles were first seen. Attribute lists are concatenated;
// duplicates are removed once the global model is complete.
func MergeProfiles(files []*FileModel) []*ProfileModel {
	var out []*ProfileModel
	index := make(map[string]*ProfileModel)

	for _, fm := range files {
		pm, ok := index[fm.Profile]
		if !ok {
			pm = &ProfileModel{Name: fm.Profile, Classes: model.NewClassMap()}
			index[fm.Profile] = pm
			out = append(out, pm)
		}
		for _, c := range fm.Classes.Classes() {
			existing, ok := pm.Classes.Get(c.Name)
			if !ok {
				pm.Classes.Set(c.Clone())
				continue
			}
			foldClass(existing, c)
		}
	}
	return out
}

// foldClass merges c into dst for two files of the same profile.
func foldClass(dst, c *model.ClassDefinition) {
	for _, a := range c.Attributes {
		dst.AddAttribute(a.Clone())
	}
	if dst.Superclass == "" {
		dst.Superclass = c.Superclass
	}
	if dst.Comment == "" {
		dst.Comment = c.Comment
	}
	if dst.Stereotype == "" {
		dst.Stereotype = c.Stereotype
	}
	if dst.Namespace == "" {
		dst.Namespace = c.Namespace
	}
	for _, e := range c.EnumInstances {
		if _, ok := dst.EnumInstance(e.Label); !ok {
			dst.AddEnumInstance(e.Label, e.Comment, e.Type)
		}
	}
}

// MergeClasses builds the global class map from the per-profile models,
// recording which profiles define each class and each attribute.
func MergeClasses(bc *model.BuildContext, profiles []*ProfileModel) *model.ClassMap {
	out := model.NewClassMap()
	for _, pm := range profiles {
		for _, c := range pm.Classes.Classes() {
			existing, ok := out.Get(c.Name)
			if !ok {
				n := c.Clone()
				n.AddOrigin(pm.Name)
				for _, a := range n.Attributes {
					a.AddOrigin(pm.Name)
				}
				out.Set(n)
				continue
			}
			mergeClass(bc, existing, c, pm.Name)
		}
	}
	return out
}

func mergeClass(bc *model.BuildContext, dst, c *model.ClassDefinition, profile string) {
	switch {
	case dst.Superclass == "":
		dst.Superclass = c.Superclass
	case c.Superclass != "" && c.Superclass != dst.Superclass:
		bc.Report(model.IssueMergeConflict, "conflicting superclass, keeping first",
			"class", dst.Name, "profile", profile, "kept", dst.Superclass, "ignored", c.Superclass)
	}
	mergeText(bc, &dst.Comment, c.Comment, "comment", "class", dst.Name, profile)
	mergeText(bc, &dst.Stereotype, c.Stereotype, "stereotype", "class", dst.Name, profile)
	mergeText(bc, &dst.Namespace, c.Namespace, "namespace", "class", dst.Name, profile)

	dst.AddOrigin(profile)

	for _, a := range c.Attributes {
		existing, ok := dst.Attribute(a.Label)
		if !ok {
			n := a.Clone()
			n.Origins = []string{profile}
			dst.AddAttribute(n)
			continue
		}
		existing.AddOrigin(profile)
		mergeAttribute(bc, dst.Name, existing, a, profile)
	}

	for _, e := range c.EnumInstances {
		existing, ok := dst.EnumInstance(e.Label)
		if !ok {
			dst.AddEnumInstance(e.Label, e.Comment, e.Type)
			continue
		}
		if e.Comment != "" && existing.Comment != "" && e.Comment != existing.Comment {
			bc.Report(model.IssueMergeConflict, "conflicting enum instance comment, keeping first",
				"class", dst.Name, "instance", e.Label, "profile", profile)
		}
	}
}

// mergeText backfills *dst from v when empty and reports a conflict when both
// are set and differ.
func mergeText(bc *model.BuildContext, dst *string, v, field, kind, name, profile string) {
	switch {
	case *dst == "":
		*dst = v
	case v != "" && v != *dst:
		bc.Report(model.IssueMergeConflict, "conflicting "+field+", keeping first",
			kind, name, "profile", profile)
	}
}

func mergeAttribute(bc *model.BuildContext, class string, dst, a *model.AttributeDefinition, profile string) {
	name := class + "." + dst.Label
	mergeText(bc, &dst.Comment, a.Comment, "comment", "attribute", name, profile)
	mergeText(bc, &dst.DataType, a.DataType, "datatype", "attribute", name, profile)
	mergeText(bc, &dst.Range, a.Range, "range", "attribute", name, profile)
	mergeText(bc, &dst.Multiplicity, a.Multiplicity, "multiplicity", "attribute", name, profile)
	mergeText(bc, &dst.InverseRole, a.InverseRole, "inverse role", "attribute", name, profile)
	mergeText(bc, &dst.Namespace, a.Namespace, "namespace", "attribute", name, profile)
	if dst.IsUsed != a.IsUsed {
		bc.Report(model.IssueMergeConflict, "conflicting used flag, keeping first",
			"attribute", name, "profile", profile, "kept", dst.IsUsed)
	}
}
