package model

import (
	"context"
	"log/slog"
	"sort"
	"strings"
)

// IssueKind names a non-fatal problem found while resolving a schema.
type IssueKind int

const (
	IssueMissingDomain IssueKind = iota
	IssueMissingEnumOwner
	IssueDanglingSuperclass
	IssueDuplicateClass
	IssueMergeConflict
	IssueIntegrity
	IssueMissingShortName
	IssueUnknownTarget
)

var issueNames = [...]string{
	IssueMissingDomain:      "missing_domain",
	IssueMissingEnumOwner:   "missing_enum_owner",
	IssueDanglingSuperclass: "dangling_superclass",
	IssueDuplicateClass:     "duplicate_class",
	IssueMergeConflict:      "merge_conflict",
	IssueIntegrity:          "integrity",
	IssueMissingShortName:   "missing_short_name",
	IssueUnknownTarget:      "unknown_target",
}

// IssueKinds lists every issue kind in declaration order.
func IssueKinds() []IssueKind {
	out := make([]IssueKind, len(issueNames))
	for i := range issueNames {
		out[i] = IssueKind(i)
	}
	return out
}

func (k IssueKind) String() string {
	if int(k) < len(issueNames) {
		return issueNames[k]
	}
	return "unknown"
}

// Level is the log level an issue of this kind is reported at.
func (k IssueKind) Level() slog.Level {
	switch k {
	case IssueDanglingSuperclass, IssueDuplicateClass:
		return slog.LevelError
	case IssueMissingEnumOwner:
		return slog.LevelInfo
	case IssueUnknownTarget:
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

// IssueRecorder receives every reported issue, typically a metrics sink.
type IssueRecorder interface {
	IssueReported(kind IssueKind)
}

// Profile is a schema profile identified by its short name, e.g. "EQ".
type Profile struct {
	ShortName string
	LongName  string
	URIs      []string
}

// ProfileDetail is a profile with its position in the fixed profile order.
type ProfileDetail struct {
	Index     int      `json:"index" yaml:"index"`
	ShortName string   `json:"short_name" yaml:"short_name"`
	LongName  string   `json:"long_name" yaml:"long_name"`
	URIs      []string `json:"uris" yaml:"uris"`
}

// Namespace is a prefix binding taken from a schema root element.
type Namespace struct {
	Prefix string `json:"prefix" yaml:"prefix"`
	URI    string `json:"uri" yaml:"uri"`
}

// BuildContext carries the tables shared by one resolution run. The tables
// are filled while files are scanned and become read-only after Freeze.
type BuildContext struct {
	Logger   *slog.Logger
	Recorder IssueRecorder

	profiles     []*Profile
	namespaces   []Namespace
	cimNamespace string
	issues       map[IssueKind]int
	frozen       bool
}

// NewBuildContext returns an empty context. A nil logger discards output.
func NewBuildContext(logger *slog.Logger) *BuildContext {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &BuildContext{Logger: logger, issues: make(map[IssueKind]int)}
}

// Report logs msg at the level of kind and counts it.
func (bc *BuildContext) Report(kind IssueKind, msg string, attrs ...any) {
	bc.issues[kind]++
	if bc.Recorder != nil {
		bc.Recorder.IssueReported(kind)
	}
	bc.Logger.Log(context.Background(), kind.Level(), msg, append([]any{"issue", kind.String()}, attrs...)...)
}

// Issues returns how many issues of kind were reported.
func (bc *BuildContext) Issues(kind IssueKind) int {
	return bc.issues[kind]
}

// Freeze ends the scan phase.
func (bc *BuildContext) Freeze() { bc.frozen = true }

func (bc *BuildContext) Frozen() bool { return bc.frozen }

func (bc *BuildContext) mutable(op string) error {
	if bc.frozen {
		bc.Logger.Error("build context mutation after scan", "op", op)
		return ErrContextFrozen
	}
	return nil
}

// AddProfile registers a profile seen in one file. The first non-empty long
// name wins and URIs accumulate without duplicates.
func (bc *BuildContext) AddProfile(short, long string, uris []string) error {
	if err := bc.mutable("add profile"); err != nil {
		return err
	}
	p := bc.profile(short)
	if p == nil {
		p = &Profile{ShortName: short}
		bc.profiles = append(bc.profiles, p)
	}
	if p.LongName == "" {
		p.LongName = TrimLongName(long)
	}
	for _, u := range uris {
		p.URIs = addUnique(p.URIs, u)
	}
	return nil
}

func (bc *BuildContext) profile(short string) *Profile {
	for _, p := range bc.profiles {
		if p.ShortName == short {
			return p
		}
	}
	return nil
}

// Profile returns a copy of the registered profile.
func (bc *BuildContext) Profile(short string) (Profile, bool) {
	p := bc.profile(short)
	if p == nil {
		return Profile{}, false
	}
	cp := *p
	cp.URIs = append([]string(nil), p.URIs...)
	return cp, true
}

// ProfileDetails lists every profile in the fixed order, EQ first.
func (bc *BuildContext) ProfileDetails() []ProfileDetail {
	names := make([]string, 0, len(bc.profiles))
	for _, p := range bc.profiles {
		names = append(names, p.ShortName)
	}
	out := make([]ProfileDetail, 0, len(names))
	for i, n := range SortProfiles(names) {
		p := bc.profile(n)
		out = append(out, ProfileDetail{
			Index:     i,
			ShortName: p.ShortName,
			LongName:  p.LongName,
			URIs:      append([]string(nil), p.URIs...),
		})
	}
	return out
}

// AddNamespace binds prefix when it is not bound yet.
func (bc *BuildContext) AddNamespace(prefix, uri string) error {
	if err := bc.mutable("add namespace"); err != nil {
		return err
	}
	for _, ns := range bc.namespaces {
		if ns.Prefix == prefix {
			return nil
		}
	}
	bc.namespaces = append(bc.namespaces, Namespace{Prefix: prefix, URI: uri})
	return nil
}

func (bc *BuildContext) Namespaces() []Namespace {
	return append([]Namespace(nil), bc.namespaces...)
}

// SetCIMNamespace records the CIM namespace of the first file declaring one.
func (bc *BuildContext) SetCIMNamespace(uri string) error {
	if err := bc.mutable("set cim namespace"); err != nil {
		return err
	}
	if bc.cimNamespace == "" {
		bc.cimNamespace = uri
	}
	return nil
}

func (bc *BuildContext) CIMNamespace() string { return bc.cimNamespace }

// TrimLongName drops a trailing "Version" and then a trailing "Profile".
func TrimLongName(s string) string {
	s = strings.TrimSuffix(s, "Version")
	return strings.TrimSuffix(s, "Profile")
}

// SortProfiles returns names sorted alphabetically with "EQ" always first.
func SortProfiles(names []string) []string {
	out := append([]string(nil), names...)
	sort.SliceStable(out, func(i, j int) bool {
		return profileKey(out[i]) < profileKey(out[j])
	})
	return out
}

func profileKey(s string) string {
	if s == "EQ" {
		return "0"
	}
	return s
}
