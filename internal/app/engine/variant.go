package engine

import (
	"fmt"
	"sort"
)

// DefaultVariant is used when no model variant is configured.
const DefaultVariant = "base"

// variantFiles maps a model variant to its ggml model file name as shipped
// by whisper.cpp.
var variantFiles = map[string]string{
	"tiny":   "ggml-tiny.bin",
	"base":   "ggml-base.bin",
	"small":  "ggml-small.bin",
	"medium": "ggml-medium.bin",
	"large":  "ggml-large-v3.bin",
}

// Variants returns the supported model variant names, sorted.
func Variants() []string {
	names := make([]string, 0, len(variantFiles))
	for name := range variantFiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// VariantFile resolves a variant name to its model file name.
func VariantFile(variant string) (string, error) {
	file, ok := variantFiles[variant]
	if !ok {
		return "", fmt.Errorf("unknown model variant %q, supported: %v", variant, Variants())
	}
	return file, nil
}
