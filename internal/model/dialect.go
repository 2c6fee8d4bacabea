package model

import "fmt"

// Dialect selects how profile metadata is encoded in a schema.
type Dialect int

const (
	// DialectV2 tags profile metadata with ENTSO-E stereotypes.
	DialectV2 Dialect = iota + 1
	// DialectV3 uses a ClassCategory entry, dcat:keyword and owl:versionIRI.
	DialectV3
)

var versions = []struct {
	name    string
	dialect Dialect
}{
	{"cgmes_v2_4_13", DialectV2},
	{"cgmes_v2_4_15", DialectV2},
	{"cgmes_v3_0_0", DialectV3},
}

// ParseDialect maps a schema version tag to its dialect.
func ParseDialect(version string) (Dialect, error) {
	for _, v := range versions {
		if v.name == version {
			return v.dialect, nil
		}
	}
	return 0, fmt.Errorf("%w: %q (supported: %v)", ErrUnsupportedDialect, version, SupportedVersions())
}

// SupportedVersions lists the accepted version tags.
func SupportedVersions() []string {
	out := make([]string, len(versions))
	for i, v := range versions {
		out[i] = v.name
	}
	return out
}

func (d Dialect) String() string {
	switch d {
	case DialectV2:
		return "v2"
	case DialectV3:
		return "v3"
	}
	return "unknown"
}
