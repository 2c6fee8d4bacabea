package langpack

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/TechXTT/cimgen/internal/model"
	"github.com/TechXTT/cimgen/internal/typeconv"
)

const pyCommentWidth = 72

var pyKeywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true, "class": true,
	"continue": true, "def": true, "del": true, "elif": true, "else": true,
	"except": true, "finally": true, "for": true, "from": true, "global": true,
	"if": true, "import": true, "in": true, "is": true, "lambda": true,
	"nonlocal": true, "not": true, "or": true, "pass": true, "raise": true,
	"return": true, "try": true, "while": true, "with": true, "yield": true,
}

// Python writes a dataclass module per class.
type Python struct {
	Template *template.Template
}

type pyField struct {
	Name     string
	Type     string
	Default  string
	Profiles []string
	Comment  []string
}

type pyClassData struct {
	Name        string
	Kind        string
	Alias       string
	Base        string
	BaseModule  string
	Comment     []string
	Fields      []pyField
	Members     [][2]string
	Origins     []string
	Recommended string
}

func NewPython() *Python {
	funcMap := template.FuncMap{
		"quote": func(s string) string { return fmt.Sprintf("%q", s) },
		"profiles": func(ps []string) string {
			out := make([]string, len(ps))
			for i, p := range ps {
				out[i] = "Profile." + pyIdent(p)
			}
			return strings.Join(out, ", ")
		},
		"ident": pyIdent,
	}
	tmpl := template.Must(template.New("class").Funcs(funcMap).Parse(pyClassTemplate))
	template.Must(tmpl.New("profile").Parse(pyProfileTemplate))
	template.Must(tmpl.New("init").Parse(pyInitTemplate))
	return &Python{Template: tmpl}
}

func (p *Python) Name() string      { return "python" }
func (p *Python) Extension() string { return ".py" }

func (p *Python) Setup(out *Output, info *RunInfo) error {
	if err := p.render(out, "profile.py", "profile", info); err != nil {
		return err
	}
	return out.Write("base.py", []byte(pyBase))
}

func (p *Python) WriteClass(out *Output, rec *model.ClassRecord, info *RunInfo) error {
	data := pyClassData{
		Name:        pyIdent(rec.ClassName),
		Kind:        rec.Kind.String(),
		Base:        "Base",
		BaseModule:  "base",
		Comment:     pyDocLines(rec.Comment),
		Origins:     rec.ClassOrigin,
		Recommended: rec.RecommendedClassProfile,
	}
	switch rec.Kind {
	case model.KindPrimitive:
		data.Alias = typeconv.PythonType(rec.ClassName)
	case model.KindEnum:
		for _, e := range rec.EnumInstances {
			data.Members = append(data.Members, [2]string{pyIdent(e.Label), e.Label})
		}
	default:
		if _, ok := info.Class(rec.SubclassOf); ok && rec.SubclassOf != "" {
			data.Base = pyIdent(rec.SubclassOf)
			data.BaseModule = rec.SubclassOf
		}
		for _, a := range rec.Attributes {
			data.Fields = append(data.Fields, p.field(a, info))
		}
	}
	return p.render(out, rec.ClassName+p.Extension(), "class", data)
}

func (p *Python) field(a *model.AttributeDefinition, info *RunInfo) pyField {
	f := pyField{
		Name:     pyIdent(a.Label),
		Profiles: a.Origins,
		Comment:  commentLines(a.Comment, "# ", pyCommentWidth),
	}
	switch {
	case a.IsList:
		f.Type = "list"
		f.Default = "field(default_factory=list"
	case a.Kind == model.KindPrimitive || a.Kind == model.KindDatatype:
		prim := info.Primitive(a)
		f.Type = typeconv.PythonType(prim)
		f.Default = "field(default=" + typeconv.PythonDefault(prim)
	default:
		f.Type = "Optional[str]"
		f.Default = "field(default=None"
	}
	return f
}

func (p *Python) Finish(out *Output, info *RunInfo) error {
	return p.render(out, "__init__.py", "init", info)
}

func (p *Python) render(out *Output, file, name string, data any) error {
	var buf bytes.Buffer
	if err := p.Template.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	return out.Write(file, buf.Bytes())
}

// pyDocLines wraps a comment for use inside a triple-quoted docstring.
func pyDocLines(c string) []string {
	lines := commentLines(c, "", pyCommentWidth)
	for i, l := range lines {
		l = strings.ReplaceAll(l, `\`, `\\`)
		lines[i] = strings.ReplaceAll(l, `"""`, `\"\"\"`)
	}
	return lines
}

func pyIdent(s string) string {
	id := strings.Map(func(r rune) rune {
		if r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, s)
	if id != "" && id[0] >= '0' && id[0] <= '9' {
		id = "_" + id
	}
	if pyKeywords[id] {
		id += "_"
	}
	return id
}

const pyBase = `# Generated by cimgen. Do not edit.
from dataclasses import dataclass, field


@dataclass
class Base:
    """Root of every generated CIM class."""

    mRID: str = field(default="")
`

const pyProfileTemplate = `# Generated by cimgen. Do not edit.
from enum import Enum


class Profile(Enum):
    """CGMES profiles of {{ .Version }}."""
{{ range .Profiles }}
    {{ ident .ShortName }} = {{ .Index }}
{{- end }}

    @property
    def long_name(self) -> str:
        return _LONG_NAMES[self]

    @property
    def uris(self) -> tuple:
        return _URIS[self]


_LONG_NAMES = {
{{- range .Profiles }}
    Profile.{{ ident .ShortName }}: {{ quote .LongName }},
{{- end }}
}

_URIS = {
{{- range .Profiles }}
    Profile.{{ ident .ShortName }}: ({{ range .URIs }}{{ quote . }}, {{ end }}),
{{- end }}
}
`

const pyClassTemplate = `# Generated by cimgen. Do not edit.
{{- if .Alias }}
{{- range .Comment }}
# {{ . }}
{{- end }}
{{ .Name }} = {{ .Alias }}
{{- else if eq .Kind "enum" }}
from enum import Enum


class {{ .Name }}(Enum):
    """
{{- range .Comment }}
    {{ . }}
{{- end }}
    """
{{ range .Members }}
    {{ index . 0 }} = {{ quote (index . 1) }}
{{- end }}
{{- else }}
from dataclasses import dataclass, field
from typing import Optional

from .{{ .BaseModule }} import {{ .Base }}
from .profile import Profile


@dataclass
class {{ .Name }}({{ .Base }}):
    """
{{- range .Comment }}
    {{ . }}
{{- end }}
    """
{{ range .Fields }}
{{- range .Comment }}
    {{ . }}
{{- end }}
    {{ .Name }}: {{ .Type }} = {{ .Default }}, metadata={"in_profiles": [{{ profiles .Profiles }}]})
{{- end }}

    possible_profiles = ({{ range .Origins }}Profile.{{ ident . }}, {{ end }})
{{- if .Recommended }}
    recommended_profile = Profile.{{ ident .Recommended }}
{{- end }}
{{- end }}
`

const pyInitTemplate = `# Generated by cimgen. Do not edit.
__all__ = [
{{- range .Records }}
    {{ quote .ClassName }},
{{- end }}
]
`
