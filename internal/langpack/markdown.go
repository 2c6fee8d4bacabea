package langpack

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"

	"github.com/TechXTT/cimgen/internal/model"
)

// Markdown writes one documentation page per class and an index.
type Markdown struct {
	converter *md.Converter
}

func NewMarkdown() *Markdown {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())
	return &Markdown{converter: converter}
}

func (m *Markdown) Name() string      { return "markdown" }
func (m *Markdown) Extension() string { return ".md" }

func (m *Markdown) Setup(*Output, *RunInfo) error { return nil }

// convert turns a schema comment, which may carry HTML, into markdown.
func (m *Markdown) convert(comment string) (string, error) {
	if strings.TrimSpace(comment) == "" {
		return "", nil
	}
	out, err := m.converter.ConvertString(comment)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// cell flattens markdown so it fits in one table cell.
func (m *Markdown) cell(comment string) (string, error) {
	s, err := m.convert(comment)
	if err != nil {
		return "", err
	}
	s = strings.Join(strings.Fields(s), " ")
	return strings.ReplaceAll(s, "|", `\|`), nil
}

func classLink(name string) string {
	return fmt.Sprintf("[%s](%s.md)", name, name)
}

func (m *Markdown) WriteClass(out *Output, rec *model.ClassRecord, info *RunInfo) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", rec.ClassName)

	comment, err := m.convert(rec.Comment)
	if err != nil {
		return err
	}
	if comment != "" {
		b.WriteString(comment + "\n\n")
	}

	fmt.Fprintf(&b, "- Kind: %s\n", rec.Kind)
	fmt.Fprintf(&b, "- Profiles: %s\n", strings.Join(rec.ClassOrigin, ", "))
	if rec.RecommendedClassProfile != "" {
		fmt.Fprintf(&b, "- Recommended profile: %s\n", rec.RecommendedClassProfile)
	}
	if len(rec.Superclasses) > 0 {
		links := make([]string, len(rec.Superclasses))
		for i, s := range rec.Superclasses {
			links[i] = classLink(s)
		}
		fmt.Fprintf(&b, "- Inherits from: %s\n", strings.Join(links, " → "))
	}
	if len(rec.Subclasses) > 0 {
		links := make([]string, len(rec.Subclasses))
		for i, s := range rec.Subclasses {
			links[i] = classLink(s)
		}
		fmt.Fprintf(&b, "- Subclasses: %s\n", strings.Join(links, ", "))
	}

	if len(rec.Attributes) > 0 {
		b.WriteString("\n## Attributes\n\n")
		b.WriteString("| Name | Type | Multiplicity | Profiles | Description |\n")
		b.WriteString("| --- | --- | --- | --- | --- |\n")
		for _, a := range rec.Attributes {
			desc, err := m.cell(a.Comment)
			if err != nil {
				return fmt.Errorf("attribute %s: %w", a.Label, err)
			}
			typ := a.Class
			if _, ok := info.Class(a.Class); ok {
				typ = classLink(a.Class)
			}
			if a.IsList {
				typ += " (list)"
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				a.Label, typ, strings.TrimPrefix(a.Multiplicity, "M:"), strings.Join(a.Origins, ", "), desc)
		}
	}

	if len(rec.EnumInstances) > 0 {
		b.WriteString("\n## Values\n\n")
		for _, e := range rec.EnumInstances {
			desc, err := m.cell(e.Comment)
			if err != nil {
				return fmt.Errorf("value %s: %w", e.Label, err)
			}
			if desc == "" {
				fmt.Fprintf(&b, "- `%s`\n", e.Label)
				continue
			}
			fmt.Fprintf(&b, "- `%s`: %s\n", e.Label, desc)
		}
	}
	return out.Write(rec.ClassName+m.Extension(), []byte(b.String()))
}

// Finish writes README.md with the profile table and a class index.
func (m *Markdown) Finish(out *Output, info *RunInfo) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# CIM classes (%s)\n\n", info.Version)
	b.WriteString("## Profiles\n\n")
	b.WriteString("| Short name | Long name | URIs |\n")
	b.WriteString("| --- | --- | --- |\n")
	for _, p := range info.Profiles {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", p.ShortName, p.LongName, strings.Join(p.URIs, "<br>"))
	}
	b.WriteString("\n## Classes\n\n")
	for _, r := range info.Records {
		fmt.Fprintf(&b, "- %s (%s)\n", classLink(r.ClassName), r.Kind)
	}
	return out.Write("README.md", []byte(b.String()))
}
