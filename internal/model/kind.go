package model

import "fmt"

// ClassKind classifies what a class represents. It is computed once during
// resolution and stored on the class.
type ClassKind int

const (
	KindClass ClassKind = iota
	KindPrimitive
	KindDatatype
	KindEnum
)

func (k ClassKind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindPrimitive:
		return "primitive"
	case KindDatatype:
		return "datatype"
	case KindEnum:
		return "enum"
	}
	return fmt.Sprintf("ClassKind(%d)", int(k))
}

// MarshalText lets the kind appear by name in JSON and YAML dumps.
func (k ClassKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses the names produced by MarshalText.
func (k *ClassKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "class":
		*k = KindClass
	case "primitive":
		*k = KindPrimitive
	case "datatype":
		*k = KindDatatype
	case "enum":
		*k = KindEnum
	default:
		return fmt.Errorf("unknown class kind %q", b)
	}
	return nil
}
