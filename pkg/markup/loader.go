package markup

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load parses a JSON or YAML contract document and layers it over Default.
// source is only used in error messages.
func Load(data []byte, source string) (Contract, error) {
	override, err := Parse(data, source)
	if err != nil {
		return Contract{}, err
	}
	return Default().Merge(override), nil
}

// LoadFile reads a contract from disk.
func LoadFile(path string) (Contract, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Contract{}, fmt.Errorf("markup: read %s: %w", path, err)
	}
	return Load(data, path)
}

// LoadFS walks fsys and layers every contract file over Default in lexical
// path order, so later files refine earlier ones. A nil fsys yields Default.
func LoadFS(fsys fs.FS) (Contract, error) {
	contract := Default()
	if fsys == nil {
		return contract, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isContractFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("markup: read %s: %w", path, err)
		}
		override, err := Parse(data, path)
		if err != nil {
			return err
		}
		contract = contract.Merge(override)
		return nil
	})
	if err != nil {
		return Contract{}, err
	}
	return contract, nil
}

// Parse decodes a contract document without applying defaults, so the
// result can be merged over another contract.
func Parse(data []byte, source string) (Contract, error) {
	var doc Contract
	if len(strings.TrimSpace(string(data))) == 0 {
		return Contract{}, fmt.Errorf("markup: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return Contract{}, fmt.Errorf("markup: parse %s: invalid JSON or YAML", source)
}

func isContractFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
