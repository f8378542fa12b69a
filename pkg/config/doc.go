// Package config holds the options of a gridcert run.
//
// Config is built with functional options and is immutable afterwards:
//
//	cfg := config.NewConfig(
//	    config.WithStandardsPath("/opt/gridcert/share"),
//	    config.WithStandardVersion("2.3"),
//	    config.WithCoordinates(true),
//	)
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//
// A YAML file provides the same settings; CLI flags are applied after the
// file options and win:
//
//	standardsPath: /opt/gridcert/share
//	standardVersion: "2.3"
//	ignore: [history, "@units"]
//	coordinates: true
//	lazy: false
//	missing: filename
//	releaseYear: 2025
//	summaryFormat: json
package config
