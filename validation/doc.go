// Package validation provides validation utilities for filter options and
// application configuration.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Filter option structs use
// struct tags; configuration sections use the programmatic validator.
//
// # Struct Tag Validation
//
//	type TokenizerConfig struct {
//	    Delim   string `option:"delim" validate:"required"`
//	    FlushNr int    `option:"flush_nr" validate:"min=0,max=16"`
//	}
//	errs := validation.Struct(cfg)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Range("server.max_conns", cfg.MaxConns, 1, 65535)
//	err := v.Validate()
package validation
