package langpack

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"sort"
	"strings"
	"text/template"
	"unicode"

	"github.com/TechXTT/cimgen/internal/model"
	"github.com/TechXTT/cimgen/internal/typeconv"
)

const goCommentWidth = 76

// Go writes one source file per class into a single package.
type Go struct {
	Package  string
	Template *template.Template
}

type goField struct {
	Name    string
	Type    string
	Tag     string
	Comment []string
}

type goEnumValue struct {
	Const   string
	Value   string
	Comment []string
}

type goClassData struct {
	Package string
	Name    string
	Kind    string
	Comment []string
	Embed   string
	Alias   string
	Fields  []goField
	Values  []goEnumValue
	Origins []string
}

type goProfileData struct {
	Const     string
	ShortName string
	LongName  string
	URIs      []string
}

type goRunData struct {
	Package     string
	Version     string
	Namespace   string
	Profiles    []goProfileData
	Recommended [][2]string
}

func NewGo(pkg string) *Go {
	funcMap := template.FuncMap{
		"lower": strings.ToLower,
		"quote": func(s string) string { return fmt.Sprintf("%q", s) },
		"join":  strings.Join,
	}
	tmpl := template.Must(template.
		New("class").
		Funcs(funcMap).
		Parse(goClassTemplate))
	template.Must(tmpl.New("base").Parse(goBaseTemplate))
	template.Must(tmpl.New("recommended").Parse(goRecommendedTemplate))
	return &Go{Package: pkg, Template: tmpl}
}

func (g *Go) Name() string      { return "go" }
func (g *Go) Extension() string { return ".go" }

func (g *Go) Setup(out *Output, info *RunInfo) error {
	data := goRunData{
		Package:   g.Package,
		Version:   info.Version,
		Namespace: info.CIMNamespace,
	}
	for _, p := range info.Profiles {
		data.Profiles = append(data.Profiles, goProfileData{
			Const:     "Profile" + goIdent(p.ShortName),
			ShortName: p.ShortName,
			LongName:  p.LongName,
			URIs:      p.URIs,
		})
	}
	return g.render(out, "base.go", "base", data)
}

func (g *Go) WriteClass(out *Output, rec *model.ClassRecord, info *RunInfo) error {
	data := goClassData{
		Package: g.Package,
		Name:    goIdent(rec.ClassName),
		Kind:    rec.Kind.String(),
		Comment: commentLines(rec.Comment, "// ", goCommentWidth),
		Origins: rec.ClassOrigin,
	}
	switch rec.Kind {
	case model.KindPrimitive:
		data.Alias = typeconv.GoType(rec.ClassName)
	case model.KindEnum:
		names := enumConsts(data.Name, rec.EnumInstances, info)
		for i, e := range rec.EnumInstances {
			data.Values = append(data.Values, goEnumValue{
				Const:   names[i],
				Value:   e.Label,
				Comment: commentLines(e.Comment, "// ", goCommentWidth-4),
			})
		}
	default:
		if rec.SubclassOf != "" {
			if _, ok := info.Class(rec.SubclassOf); ok {
				data.Embed = goIdent(rec.SubclassOf)
			}
		}
		data.Fields = g.fields(rec, data.Embed, info)
	}
	return g.render(out, strings.ToLower(rec.ClassName)+g.Extension(), "class", data)
}

// goReserved are the package-level names of base.go and recommended.go.
var goReserved = []string{"Version", "Namespace", "Profile", "ProfileInfo", "Profiles", "RecommendedProfile"}

// enumConsts names the constants of an enum. Labels that only differ in
// case (UnitMultiplier m and M) keep their own spelling instead of the
// capitalized one; a name that still clashes with a class, a base.go
// declaration or an earlier constant gets a numeric suffix.
func enumConsts(typ string, values []*model.EnumInstance, info *RunInfo) []string {
	folded := map[string]int{}
	for _, e := range values {
		folded[upperFirst(e.Label)]++
	}
	taken := map[string]bool{}
	for _, n := range goReserved {
		taken[n] = true
	}
	for _, p := range info.Profiles {
		taken["Profile"+goIdent(p.ShortName)] = true
	}
	for _, r := range info.Records {
		taken[goIdent(r.ClassName)] = true
	}
	names := make([]string, len(values))
	for i, e := range values {
		label := upperFirst(e.Label)
		if folded[label] > 1 {
			label = e.Label
		}
		name := typ + goIdent(label)
		for n := 2; taken[name]; n++ {
			name = fmt.Sprintf("%s%s%d", typ, goIdent(label), n)
		}
		taken[name] = true
		names[i] = name
	}
	return names
}

// fields maps attributes to struct fields. A field that would shadow the
// embedded superclass or repeat an earlier name gets a Ref suffix.
func (g *Go) fields(rec *model.ClassRecord, embed string, info *RunInfo) []goField {
	taken := map[string]bool{}
	if embed != "" {
		taken[embed] = true
	}
	var fields []goField
	for _, a := range rec.Attributes {
		name := goIdent(upperFirst(a.Label))
		for taken[name] {
			name += "Ref"
		}
		taken[name] = true
		fields = append(fields, goField{
			Name:    name,
			Type:    g.fieldType(a, info),
			Tag:     fmt.Sprintf("`json:%q cim:%q`", a.Label+",omitempty", a.Domain+"."+a.Label),
			Comment: commentLines(a.Comment, "// ", goCommentWidth-4),
		})
	}
	return fields
}

func (g *Go) fieldType(a *model.AttributeDefinition, info *RunInfo) string {
	var typ string
	switch a.Kind {
	case model.KindPrimitive:
		typ = typeconv.GoType(a.Class)
	case model.KindDatatype:
		if _, ok := info.Class(a.Class); ok {
			typ = "*" + goIdent(a.Class)
		} else {
			typ = typeconv.GoType(info.Primitive(a))
		}
	case model.KindEnum:
		typ = "string"
		if _, ok := info.Class(a.Class); ok {
			typ = goIdent(a.Class)
		}
	default:
		typ = "string"
		if _, ok := info.Class(a.Class); ok {
			typ = "*" + goIdent(a.Class)
		}
	}
	if a.IsList {
		return "[]" + typ
	}
	return typ
}

func (g *Go) Finish(out *Output, info *RunInfo) error {
	data := goRunData{Package: g.Package}
	for _, r := range info.Records {
		if r.RecommendedClassProfile == "" {
			continue
		}
		data.Recommended = append(data.Recommended, [2]string{r.ClassName, "Profile" + goIdent(r.RecommendedClassProfile)})
	}
	sort.Slice(data.Recommended, func(i, j int) bool { return data.Recommended[i][0] < data.Recommended[j][0] })
	return g.render(out, "recommended.go", "recommended", data)
}

func (g *Go) render(out *Output, file, name string, data any) error {
	var buf bytes.Buffer
	if err := g.Template.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("format %s: %w", file, err)
	}
	return out.Write(file, src)
}

// goIdent turns a schema name into an exported-safe Go identifier.
func goIdent(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case unicode.IsLetter(r) || r == '_':
			b.WriteRune(r)
		case unicode.IsDigit(r):
			if i == 0 {
				b.WriteByte('X')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	id := b.String()
	if token.IsKeyword(id) {
		id += "_"
	}
	return id
}

const goBaseTemplate = `// Code generated by cimgen. DO NOT EDIT.

// Package {{ .Package }} holds the CIM classes of {{ .Version }}.
package {{ .Package }}

// Version is the schema version these classes were generated from.
const Version = {{ quote .Version }}

// Namespace is the CIM namespace URI.
const Namespace = {{ quote .Namespace }}

// Profile is the short name of a CGMES profile.
type Profile string

const (
{{- range .Profiles }}
	{{ .Const }} Profile = {{ quote .ShortName }}
{{- end }}
)

// ProfileInfo describes one profile.
type ProfileInfo struct {
	ShortName string
	LongName  string
	URIs      []string
}

// Profiles lists the profiles in their canonical order.
var Profiles = []ProfileInfo{
{{- range .Profiles }}
	{ShortName: {{ quote .ShortName }}, LongName: {{ quote .LongName }}, URIs: []string{ {{- range $i, $u := .URIs }}{{ if $i }}, {{ end }}{{ quote $u }}{{ end -}} }},
{{- end }}
}
`

const goClassTemplate = `// Code generated by cimgen. DO NOT EDIT.

package {{ .Package }}
{{ if .Alias }}
{{- range .Comment }}
{{ . }}
{{- end }}
type {{ .Name }} = {{ .Alias }}
{{- else if eq .Kind "enum" }}
{{- range .Comment }}
{{ . }}
{{- end }}
type {{ .Name }} string

const (
{{- range .Values }}
{{- range .Comment }}
	{{ . }}
{{- end }}
	{{ .Const }} {{ $.Name }} = {{ quote .Value }}
{{- end }}
)
{{- else }}
{{- range .Comment }}
{{ . }}
{{- end }}
{{- if .Comment }}
//
{{- end }}
// Profiles: {{ join .Origins ", " }}
type {{ .Name }} struct {
{{- if .Embed }}
	{{ .Embed }}
{{- end }}
{{- range .Fields }}
{{- range .Comment }}
	{{ . }}
{{- end }}
	{{ .Name }} {{ .Type }} {{ .Tag }}
{{- end }}
}
{{- end }}
`

const goRecommendedTemplate = `// Code generated by cimgen. DO NOT EDIT.

package {{ .Package }}

// RecommendedProfile maps a class name to the profile it should be
// serialized in.
var RecommendedProfile = map[string]Profile{
{{- range .Recommended }}
	{{ quote (index . 0) }}: {{ index . 1 }},
{{- end }}
}
`
