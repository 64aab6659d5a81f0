// internal/config/validator.go
//
// Thin wrapper around go-playground/validator.
//
// `Load` calls `validateStruct` right after it unmarshals the merged Koanf
// tree.  Any validation error aborts startup, so the binary never runs
// with a malformed listen address, an unknown log level, or a worker cache
// that cannot hold a single template.

package config

import "github.com/go-playground/validator/v10"

var v = validator.New()

// validateStruct returns the validation errors, or nil on success.
func validateStruct(c *Config) error {
	return v.Struct(c)
}
