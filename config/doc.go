// Package config loads smith settings from a YAML file and the environment.
//
// Precedence, lowest first: built-in defaults, the YAML file, SMITH_*
// environment variables, then command line flags applied by the caller.
// NO_COLOR and FORCE_COLOR are not read here; termprobe handles them when
// the color mode is auto.
//
// Example file:
//
//	output:
//	  format: auto
//	  color: auto
//	progress:
//	  style: bar
//	  interval: 100ms
//	  barWidth: 30
//	logging:
//	  level: info
//	notify:
//	  enabled: true
//	  minDuration: 30s
//	browser: default
package config
