package markup

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// TokenPrefix namespaces contract tokens inside a theme manifest, for example
// "formgate.error-class" or "formgate.attr.phone".
const TokenPrefix = "formgate."

// FromTheme overlays contract tokens from a theme manifest onto base. Variant
// tokens win over the manifest's base tokens. Unknown keys are ignored.
func FromTheme(base Contract, manifest *theme.Manifest, variant string) Contract {
	if manifest == nil {
		return base
	}
	out := applyTokens(base, manifest.Tokens)
	if name := strings.TrimSpace(variant); name != "" {
		if v, ok := manifest.Variants[name]; ok {
			out = applyTokens(out, v.Tokens)
		}
	}
	return out
}

// ResolveTheme is FromTheme for user supplied themes: the variant must exist
// in the manifest and the resulting contract must validate.
func ResolveTheme(base Contract, manifest *theme.Manifest, variant string) (Contract, error) {
	if name := strings.TrimSpace(variant); name != "" {
		if manifest == nil {
			return base, fmt.Errorf("markup: theme variant %q requires a theme", name)
		}
		if _, ok := manifest.Variants[name]; !ok {
			return base, fmt.Errorf("markup: theme %q has no variant %q (available: %s)",
				manifest.Name, name, variantNames(manifest))
		}
	}
	out := FromTheme(base, manifest, variant)
	if err := out.Validate(); err != nil {
		return base, fmt.Errorf("markup: invalid theme contract: %w", err)
	}
	return out, nil
}

func variantNames(manifest *theme.Manifest) string {
	if len(manifest.Variants) == 0 {
		return "none"
	}
	names := make([]string, 0, len(manifest.Variants))
	for name := range manifest.Variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func applyTokens(c Contract, tokens map[string]string) Contract {
	if len(tokens) == 0 {
		return c
	}
	fields := c.fields()
	for key, value := range tokens {
		name, ok := strings.CutPrefix(key, TokenPrefix)
		if !ok {
			continue
		}
		dst, ok := fields[name]
		if !ok {
			continue
		}
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			*dst = trimmed
		}
	}
	return c
}
