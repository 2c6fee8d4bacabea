// Package typeconv maps CIM primitive type names to target language and SQL
// types.
package typeconv

import "strings"

// CIM primitive names as they appear in the schemas.
const (
	String   = "String"
	Integer  = "Integer"
	Float    = "Float"
	Decimal  = "Decimal"
	Boolean  = "Boolean"
	Date     = "Date"
	DateTime = "DateTime"
	Duration = "Duration"
	MonthDay = "MonthDay"
	Time     = "Time"
)

// GoType returns the Go type used for a CIM primitive. Calendar types stay
// strings so the lexical form of the source document survives a round trip.
func GoType(primitive string) string {
	switch primitive {
	case Integer:
		return "int"
	case Float, Decimal:
		return "float64"
	case Boolean:
		return "bool"
	default:
		return "string"
	}
}

func PythonType(primitive string) string {
	switch primitive {
	case Integer:
		return "int"
	case Float, Decimal:
		return "float"
	case Boolean:
		return "bool"
	default:
		return "str"
	}
}

// PythonDefault is the dataclass default literal for a primitive.
func PythonDefault(primitive string) string {
	switch primitive {
	case Integer:
		return "0"
	case Float, Decimal:
		return "0.0"
	case Boolean:
		return "False"
	default:
		return `""`
	}
}

// XSDType returns the XML Schema datatype used in JSON-LD contexts.
func XSDType(primitive string) string {
	switch primitive {
	case Integer:
		return "xsd:integer"
	case Float:
		return "xsd:float"
	case Decimal:
		return "xsd:decimal"
	case Boolean:
		return "xsd:boolean"
	case Date:
		return "xsd:date"
	case DateTime:
		return "xsd:dateTime"
	case Duration:
		return "xsd:duration"
	case MonthDay:
		return "xsd:gMonthDay"
	case Time:
		return "xsd:time"
	default:
		return "xsd:string"
	}
}

// SQLType returns the PostgreSQL column type for a CIM primitive.
func SQLType(primitive string) string {
	switch primitive {
	case Date:
		return "DATE"
	case DateTime:
		return "TIMESTAMP"
	case Decimal:
		return "NUMERIC"
	}
	return MapGoTypeToSQL(GoType(primitive))
}

// CanonicalType normalizes SQL types for comparison. It accepts both the
// spelling used in generated DDL and the one PostgreSQL reports through
// format_type. Quoted names (enum types) keep their case.
func CanonicalType(typ string) string {
	t := strings.TrimSpace(typ)
	if elem, ok := strings.CutSuffix(t, "[]"); ok {
		return CanonicalType(elem) + "[]"
	}
	if strings.HasPrefix(t, `"`) {
		return t
	}
	if i := strings.IndexByte(t, '('); i > 0 {
		t = strings.TrimSpace(t[:i])
	}
	t = strings.ToUpper(t)
	switch t {
	case "INT4", "INT8", "INTEGER", "BIGINT":
		return "INTEGER"
	case "BOOL", "BOOLEAN":
		return "BOOLEAN"
	case "TEXT", "VARCHAR", "CHARACTER VARYING":
		return "TEXT"
	case "REAL", "FLOAT4":
		return "REAL"
	case "FLOAT8", "DOUBLE PRECISION":
		return "DOUBLE PRECISION"
	case "TIMESTAMP", "TIMESTAMPTZ", "TIMESTAMP WITHOUT TIME ZONE", "TIMESTAMP WITH TIME ZONE":
		return "TIMESTAMP"
	case "NUMERIC", "DECIMAL":
		return "NUMERIC"
	default:
		return t
	}
}

func MapGoTypeToSQL(goType string) string {
	switch goType {
	case "int", "int32", "int64":
		return "INTEGER"
	case "string":
		return "TEXT"
	case "bool":
		return "BOOLEAN"
	case "float32":
		return "REAL"
	case "float64":
		return "DOUBLE PRECISION"
	case "time.Time":
		return "TIMESTAMP"
	default:
		return "TEXT"
	}
}
