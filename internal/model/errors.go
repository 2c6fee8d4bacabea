package model

import "errors"

var (
	ErrUnsupportedDialect = errors.New("unsupported schema version")
	ErrNoSchemaFiles      = errors.New("no schema files found")
	ErrContextFrozen      = errors.New("build context is frozen")
)
