// Package rdfxml decodes RDF/XML schema files into ordered description records.
//
// Only the flat shape used by RDFS schema exports is supported: an rdf:RDF root
// whose children are node elements carrying predicate child elements. Nested
// node elements are collapsed to a resource reference.
package rdfxml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

var (
	ErrInvalidDocument = errors.New("invalid rdf document")
)

const (
	descriptionElement = "rdf:Description"
	aboutAttr          = "rdf:about"
	idAttr             = "rdf:ID"
	resourceAttr       = "rdf:resource"
	typeKey            = "rdf:type"
)

// Value is one occurrence of a predicate inside a description.
// Attrs holds the predicate element's attributes keyed by prefixed name,
// e.g. "rdf:resource" or "rdfs:Literal".
type Value struct {
	Attrs map[string]string
	Text  string
}

// Attr returns the attribute value for a prefixed name.
func (v Value) Attr(name string) (string, bool) {
	s, ok := v.Attrs[name]
	return s, ok
}

// Namespace is a prefix declaration found on the document root.
type Namespace struct {
	Prefix string
	URI    string
}

// Description is one child of rdf:RDF with its predicates in document order.
type Description struct {
	About   string
	Element string

	keys   []string
	values map[string][]Value
}

func newDescription(element string) *Description {
	return &Description{Element: element, values: make(map[string][]Value)}
}

// Keys returns the predicate keys in first-seen order.
func (d *Description) Keys() []string {
	return d.keys
}

// Values returns every value recorded for key.
func (d *Description) Values(key string) []Value {
	return d.values[key]
}

// Has reports whether key was present.
func (d *Description) Has(key string) bool {
	_, ok := d.values[key]
	return ok
}

// Add appends a value for key. Exported for tests that build descriptions by hand.
func (d *Description) Add(key string, v Value) {
	if d.values == nil {
		d.values = make(map[string][]Value)
	}
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = append(d.values[key], v)
}

// Document is a decoded RDF/XML file.
type Document struct {
	Namespaces   []Namespace
	Descriptions []*Description
}

// Namespace returns the URI bound to prefix on the root element.
func (doc *Document) Namespace(prefix string) (string, bool) {
	for _, ns := range doc.Namespaces {
		if ns.Prefix == prefix {
			return ns.URI, true
		}
	}
	return "", false
}

// Decode reads an RDF/XML document.
func Decode(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	doc := &Document{}
	var (
		depth   int
		rooted  bool
		current *Description
		prop    *Value
		propKey string
		text    strings.Builder
	)

	for {
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			name := prefixed(t.Name)
			switch depth {
			case 1:
				if t.Name.Local != "RDF" {
					return nil, fmt.Errorf("%w: root element %q is not rdf:RDF", ErrInvalidDocument, name)
				}
				rooted = true
				doc.Namespaces = rootNamespaces(t.Attr)
			case 2:
				current = newDescription(name)
				for _, a := range t.Attr {
					switch an := prefixed(a.Name); {
					case an == aboutAttr:
						current.About = a.Value
					case an == idAttr:
						current.About = "#" + a.Value
					case a.Name.Space == "xmlns" || an == "xmlns" || a.Name.Space == "xml":
					default:
						current.Add(an, Value{Text: a.Value})
					}
				}
				if name != descriptionElement {
					current.Add(typeKey, Value{Attrs: map[string]string{resourceAttr: doc.expand(t.Name)}})
				}
			case 3:
				propKey = name
				prop = &Value{Attrs: attrMap(t.Attr)}
				text.Reset()
			default:
				// nested node element: keep only its identity
				if prop != nil {
					if _, ok := prop.Attrs[resourceAttr]; !ok {
						for _, a := range t.Attr {
							if n := prefixed(a.Name); n == aboutAttr || n == resourceAttr {
								prop.Attrs[resourceAttr] = a.Value
							}
						}
					}
				}
			}
		case xml.EndElement:
			switch depth {
			case 2:
				if current != nil {
					doc.Descriptions = append(doc.Descriptions, current)
				}
				current = nil
			case 3:
				if current != nil && prop != nil {
					prop.Text = strings.TrimSpace(text.String())
					current.Add(propKey, *prop)
				}
				prop = nil
			}
			depth--
		case xml.CharData:
			if depth == 3 && prop != nil {
				text.Write(t)
			}
		}
	}

	if !rooted {
		return nil, fmt.Errorf("%w: no rdf:RDF root", ErrInvalidDocument)
	}
	return doc, nil
}

func (doc *Document) expand(n xml.Name) string {
	if uri, ok := doc.Namespace(n.Space); ok {
		return uri + n.Local
	}
	return prefixed(n)
}

func prefixed(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

func rootNamespaces(attrs []xml.Attr) []Namespace {
	var out []Namespace
	for _, a := range attrs {
		switch {
		case a.Name.Space == "xmlns":
			out = append(out, Namespace{Prefix: a.Name.Local, URI: a.Value})
		case a.Name.Space == "" && a.Name.Local == "xmlns":
			out = append(out, Namespace{Prefix: "", URI: a.Value})
		}
	}
	return out
}

func attrMap(attrs []xml.Attr) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		if a.Name.Space == "xmlns" {
			continue
		}
		m[prefixed(a.Name)] = a.Value
	}
	return m
}
