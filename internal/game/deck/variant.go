package deck

import (
	"embed"
	"fmt"
	"math/rand/v2"
	"strings"
)

//go:embed specs/*.csv
var specFiles embed.FS

// Variant selects one of the bundled deck specifications.
type Variant string

const (
	VariantStandard      Variant = "STANDARD"
	VariantDoubleTrouble Variant = "DOUBLE_TROUBLE"
	VariantReverseZero   Variant = "REVERSE_ZERO"
	VariantBlockSeven    Variant = "BLOCK_SEVEN"
	VariantTotalChaos    Variant = "TOTAL_CHAOS"
	// VariantRandom picks one of the concrete variants on every match.
	VariantRandom Variant = "RANDOM"
)

type variantInfo struct {
	description string
	file        string
}

var variants = map[Variant]variantInfo{
	VariantStandard:      {"Standard Game", "specs/standard.csv"},
	VariantDoubleTrouble: {"Double Draws", "specs/double_trouble.csv"},
	VariantReverseZero:   {"Reverse Zeros", "specs/reverse_zero.csv"},
	VariantBlockSeven:    {"Block Sevens", "specs/block_seven.csv"},
	VariantTotalChaos:    {"Total Chaos", "specs/total_chaos.csv"},
}

// Variants returns the concrete variants in a stable order.
func Variants() []Variant {
	return []Variant{
		VariantStandard,
		VariantDoubleTrouble,
		VariantReverseZero,
		VariantBlockSeven,
		VariantTotalChaos,
	}
}

// Description is the human readable name of the variant.
func (v Variant) Description() string {
	if info, ok := variants[v]; ok {
		return info.description
	}
	if v == VariantRandom {
		return "Random Event"
	}
	return string(v)
}

// ParseVariant resolves a variant name such as "double_trouble" or "random".
// An empty name selects the standard game.
func ParseVariant(s string) (Variant, error) {
	name := Variant(strings.ToUpper(strings.TrimSpace(s)))
	if name == "" {
		return VariantStandard, nil
	}
	if _, ok := variants[name]; ok || name == VariantRandom {
		return name, nil
	}
	return "", fmt.Errorf("unknown deck variant %q", s)
}

// RandomVariant picks a concrete variant uniformly.
func RandomVariant(rng *rand.Rand) Variant {
	all := Variants()
	if rng == nil {
		return all[rand.IntN(len(all))]
	}
	return all[rng.IntN(len(all))]
}

// VariantSpec loads the bundled specification of a concrete variant.
func VariantSpec(v Variant) (Spec, error) {
	info, ok := variants[v]
	if !ok {
		return nil, fmt.Errorf("no bundled deck for variant %q", v)
	}
	f, err := specFiles.Open(info.file)
	if err != nil {
		return nil, fmt.Errorf("open bundled deck %s: %w", info.file, err)
	}
	defer f.Close()

	return ParseSpec(f, info.file)
}
