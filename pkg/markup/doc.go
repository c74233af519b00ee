// Package markup describes the builder's markup contract and loads it from
// JSON/YAML files or theme manifest tokens.
package markup
