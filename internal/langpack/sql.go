package langpack

import (
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/TechXTT/cimgen/internal/model"
	"github.com/TechXTT/cimgen/internal/typeconv"
)

const mridColumn = "mrid"

// SQL writes PostgreSQL DDL. Every class gets a table keyed by mRID;
// a subclass row references its superclass row. Datatype and primitive
// classes become column types, enums become enum types.
type SQL struct {
	all classDDL
}

// classDDL is the DDL of one class split by the phase it has to run in.
type classDDL struct {
	Types       []string
	Tables      []string
	Joins       []string
	Constraints []string
	Columns     []Column
}

// Column is one column of a generated class table.
type Column struct {
	Table string
	Name  string
	Type  string
}

func (d classDDL) statements() []string {
	out := append([]string(nil), d.Types...)
	out = append(out, d.Tables...)
	out = append(out, d.Joins...)
	return append(out, d.Constraints...)
}

func (d *classDDL) add(o classDDL) {
	d.Types = append(d.Types, o.Types...)
	d.Tables = append(d.Tables, o.Tables...)
	d.Joins = append(d.Joins, o.Joins...)
	d.Constraints = append(d.Constraints, o.Constraints...)
	d.Columns = append(d.Columns, o.Columns...)
}

func NewSQL() *SQL { return &SQL{} }

func (s *SQL) Name() string      { return "sql" }
func (s *SQL) Extension() string { return ".sql" }

func (s *SQL) Setup(*Output, *RunInfo) error {
	s.all = classDDL{}
	return nil
}

func (s *SQL) WriteClass(out *Output, rec *model.ClassRecord, info *RunInfo) error {
	ddl := classStatements(rec, info)
	s.all.add(ddl)
	stmts := ddl.statements()
	if len(stmts) == 0 {
		return nil
	}
	return out.Write(rec.ClassName+s.Extension(), []byte(joinStatements(stmts)))
}

// Finish writes schema.sql with every type first, then every table, then
// join tables and constraints, so references never point at a missing table.
func (s *SQL) Finish(out *Output, info *RunInfo) error {
	header := fmt.Sprintf("-- Generated by cimgen from %s. Do not edit.\n\n", info.Version)
	return out.Write("schema.sql", []byte(header+joinStatements(s.all.statements())))
}

// Schema returns the full DDL for info in execution order.
func Schema(info *RunInfo) []string {
	var all classDDL
	for _, rec := range info.Records {
		all.add(classStatements(rec, info))
	}
	return all.statements()
}

// Columns returns every class table column with the type the DDL gives it.
// Join tables are left out.
func Columns(info *RunInfo) []Column {
	var all classDDL
	for _, rec := range info.Records {
		all.add(classStatements(rec, info))
	}
	return all.Columns
}

func joinStatements(stmts []string) string {
	return strings.Join(stmts, "\n\n") + "\n"
}

func classStatements(rec *model.ClassRecord, info *RunInfo) classDDL {
	var ddl classDDL
	switch rec.Kind {
	case model.KindPrimitive, model.KindDatatype:
		return ddl
	case model.KindEnum:
		values := make([]string, 0, len(rec.EnumInstances))
		for _, e := range rec.EnumInstances {
			values = append(values, pq.QuoteLiteral(e.Label))
		}
		ddl.Types = append(ddl.Types, fmt.Sprintf("CREATE TYPE %s AS ENUM (%s);",
			pq.QuoteIdentifier(rec.ClassName), strings.Join(values, ", ")))
		return ddl
	}

	table := pq.QuoteIdentifier(rec.ClassName)
	lines := []string{fmt.Sprintf("    %s TEXT PRIMARY KEY", mridColumn)}
	column := func(name, typ string) {
		lines = append(lines, fmt.Sprintf("    %s %s", pq.QuoteIdentifier(name), typ))
		ddl.Columns = append(ddl.Columns, Column{Table: rec.ClassName, Name: name, Type: typ})
	}
	ddl.Columns = append(ddl.Columns, Column{Table: rec.ClassName, Name: mridColumn, Type: "TEXT"})
	if _, ok := info.Class(rec.SubclassOf); ok && rec.SubclassOf != "" {
		ddl.Constraints = append(ddl.Constraints, foreignKey(rec.ClassName, mridColumn, rec.SubclassOf))
	}
	for _, a := range rec.Attributes {
		if a.Label == "mRID" {
			continue
		}
		if a.Kind == model.KindClass {
			target, ok := info.Class(a.Class)
			switch {
			case !a.IsList:
				column(a.Label, "TEXT")
				if ok && target.Kind == model.KindClass {
					ddl.Constraints = append(ddl.Constraints, foreignKey(rec.ClassName, a.Label, a.Class))
				}
			case ok && ownsJoinTable(rec.ClassName, a):
				ddl.Joins = append(ddl.Joins, joinTable(rec.ClassName, a))
			}
			continue
		}
		column(a.Label, columnType(a, info))
	}
	create := fmt.Sprintf("CREATE TABLE %s (\n%s\n);", table, strings.Join(lines, ",\n"))
	ddl.Tables = append(ddl.Tables, create)
	return ddl
}

// ownsJoinTable reports whether this end of a many-valued association
// creates the join table. One-to-many ends are stored on the single side;
// many-to-many pairs are created once by the lexically smaller end.
func ownsJoinTable(class string, a *model.AttributeDefinition) bool {
	if a.InverseRole == "" {
		return true
	}
	if !a.InverseIsList {
		return false
	}
	return class+"."+a.Label < a.InverseRole
}

func joinTable(class string, a *model.AttributeDefinition) string {
	name := pq.QuoteIdentifier(class + "_" + a.Label)
	left := pq.QuoteIdentifier(snake(class) + "_" + mridColumn)
	right := pq.QuoteIdentifier(snake(a.Class) + "_" + mridColumn)
	if left == right {
		right = pq.QuoteIdentifier(snake(a.Label) + "_" + mridColumn)
	}
	return fmt.Sprintf("CREATE TABLE %s (\n    %s TEXT NOT NULL REFERENCES %s(%s),\n    %s TEXT NOT NULL REFERENCES %s(%s),\n    PRIMARY KEY (%s, %s)\n);",
		name,
		left, pq.QuoteIdentifier(class), mridColumn,
		right, pq.QuoteIdentifier(a.Class), mridColumn,
		left, right)
}

func foreignKey(table, column, target string) string {
	constraint := pq.QuoteIdentifier("fk_" + table + "_" + column)
	return fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s(%s);",
		pq.QuoteIdentifier(table), constraint, pq.QuoteIdentifier(column), pq.QuoteIdentifier(target), mridColumn)
}

func columnType(a *model.AttributeDefinition, info *RunInfo) string {
	typ := typeconv.SQLType(info.Primitive(a))
	if a.Kind == model.KindEnum {
		if _, ok := info.Class(a.Class); ok {
			typ = pq.QuoteIdentifier(a.Class)
		}
	}
	if a.IsList {
		return typ + "[]"
	}
	return typ
}
