// Package config handles configuration loading and merging for goosint.
//
// # Configuration Precedence
//
// Configuration values are resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (--no-color, --debug, --results-dir, --timeout)
//  2. Environment variables (GOOSINT_NO_COLOR, NO_COLOR, GOOSINT_DEBUG,
//     GOOSINT_GHUNT_PATH, GOOSINT_RESULTS_DIR)
//  3. YAML config file (--config, .goosint.yaml in the working directory,
//     or <UserConfigDir>/goosint/.goosint.yaml)
//  4. Hardcoded defaults
//
// A broken config file never stops a run. Problems are collected in
// Config.Warnings and reported once logging is up, and the defaults stand.
//
// # Environment Variables
//
//   - GOOSINT_NO_COLOR or NO_COLOR: "true" or "1" disables colors
//   - GOOSINT_DEBUG: any non-empty value enables debug logging
//   - GOOSINT_GHUNT_PATH: GHunt executable to run
//   - GOOSINT_RESULTS_DIR: folder for investigation_*.json files
package config
