// Package config loads pktchain configuration with Viper.
//
// Values come from a YAML file, a .env file and the environment, in that
// order of increasing precedence. Environment variables use the upper-cased
// service name as prefix and underscores for nesting:
//
//	PKTCHAIN_CHAIN_DESCRIPTOR="tok,concat"
//	PKTCHAIN_SERVER_JWT_SECRET=...
//
// # Usage
//
//	cfg := config.Defaults()
//	if err := config.LoadConfig("pktchain", &cfg, config.WithConfigFile(path)); err != nil {
//	    return err
//	}
//	cfg.ApplyDefaults()
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
package config
