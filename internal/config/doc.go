// Package config holds the options recognised by the lowering pass and loads
// them from YAML files and the environment.
package config
