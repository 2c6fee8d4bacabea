package langpack

import (
	"encoding/json"

	"github.com/TechXTT/cimgen/internal/model"
	"github.com/TechXTT/cimgen/internal/typeconv"
)

const (
	rdfsNS = "http://www.w3.org/2000/01/rdf-schema#"
	xsdNS  = "http://www.w3.org/2001/XMLSchema#"
)

// JSONLD writes one JSON-LD class description per class.
type JSONLD struct{}

type jsonldTerm struct {
	ID        string `json:"@id"`
	Type      string `json:"@type,omitempty"`
	Container string `json:"@container,omitempty"`
}

type jsonldClass struct {
	Context            map[string]any `json:"@context"`
	ID                 string         `json:"@id"`
	Type               string         `json:"@type"`
	Label              string         `json:"rdfs:label"`
	Comment            string         `json:"rdfs:comment,omitempty"`
	SubClassOf         string         `json:"rdfs:subClassOf,omitempty"`
	Kind               string         `json:"cimgen:kind"`
	Profiles           []string       `json:"cimgen:profiles"`
	RecommendedProfile string         `json:"cimgen:recommendedProfile,omitempty"`
	Properties         []string       `json:"cimgen:properties,omitempty"`
	Members            []string       `json:"cimgen:members,omitempty"`
}

type jsonldProfiles struct {
	Context  map[string]any        `json:"@context"`
	Version  string                `json:"cimgen:version"`
	Profiles []model.ProfileDetail `json:"cimgen:profiles"`
	Classes  []string              `json:"cimgen:classes"`
}

func NewJSONLD() *JSONLD { return &JSONLD{} }

func (j *JSONLD) Name() string      { return "jsonld" }
func (j *JSONLD) Extension() string { return ".jsonld" }

func (j *JSONLD) Setup(*Output, *RunInfo) error { return nil }

func (j *JSONLD) baseContext(info *RunInfo) map[string]any {
	return map[string]any{
		"cim":    info.CIMNamespace,
		"rdfs":   rdfsNS,
		"xsd":    xsdNS,
		"cimgen": "urn:cimgen:",
	}
}

func (j *JSONLD) WriteClass(out *Output, rec *model.ClassRecord, info *RunInfo) error {
	ctx := j.baseContext(info)
	doc := jsonldClass{
		Context:            ctx,
		ID:                 "cim:" + rec.ClassName,
		Type:               "rdfs:Class",
		Label:              rec.ClassName,
		Comment:            CleanComment(rec.Comment),
		Kind:               rec.Kind.String(),
		Profiles:           rec.ClassOrigin,
		RecommendedProfile: rec.RecommendedClassProfile,
	}
	if rec.SubclassOf != "" {
		doc.SubClassOf = "cim:" + rec.SubclassOf
	}
	for _, a := range rec.Attributes {
		ctx[a.Label] = j.term(a, info)
		doc.Properties = append(doc.Properties, a.Label)
	}
	for _, e := range rec.EnumInstances {
		doc.Members = append(doc.Members, "cim:"+rec.ClassName+"."+e.Label)
	}
	return j.write(out, rec.ClassName+j.Extension(), doc)
}

// term maps an attribute to its context entry. References are typed @id so
// that compaction keeps them as IRIs.
func (j *JSONLD) term(a *model.AttributeDefinition, info *RunInfo) jsonldTerm {
	t := jsonldTerm{ID: "cim:" + a.Domain + "." + a.Label}
	switch a.Kind {
	case model.KindPrimitive, model.KindDatatype:
		t.Type = typeconv.XSDType(info.Primitive(a))
	default:
		t.Type = "@id"
	}
	if a.IsList {
		t.Container = "@set"
	}
	return t
}

func (j *JSONLD) Finish(out *Output, info *RunInfo) error {
	doc := jsonldProfiles{
		Context:  j.baseContext(info),
		Version:  info.Version,
		Profiles: info.Profiles,
	}
	for _, r := range info.Records {
		doc.Classes = append(doc.Classes, r.ClassName)
	}
	return j.write(out, "profiles"+j.Extension(), doc)
}

func (j *JSONLD) write(out *Output, file string, doc any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return out.Write(file, append(data, '\n'))
}
