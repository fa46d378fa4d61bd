package pool

import (
	"fmt"
	"strconv"
	"strings"
)

// Variant refines how an algorithm is computed.
type Variant int

const (
	VariantAuto Variant = -1
	Variant0    Variant = 0
	Variant1    Variant = 1
)

// forcedVariants lists algorithms that ignore the configured variant.
var forcedVariants = map[Algorithm]Variant{
	CryptonightHeavy: Variant0,
	CryptonightIPBC:  Variant1,
}

// ForcedVariant returns the variant an algorithm always uses, if any.
func ForcedVariant(a Algorithm) (Variant, bool) {
	v, ok := forcedVariants[a]
	return v, ok
}

func (v Variant) valid() bool {
	return v == VariantAuto || v == Variant0 || v == Variant1
}

func (v Variant) String() string {
	if v == VariantAuto {
		return "auto"
	}
	return strconv.Itoa(int(v))
}

// ParseVariant reads a variant from configuration text: "auto", "-1", "0" or "1".
func ParseVariant(text string) (Variant, error) {
	text = strings.TrimSpace(text)
	if strings.EqualFold(text, "auto") {
		return VariantAuto, nil
	}
	n, err := strconv.Atoi(text)
	if err != nil || !Variant(n).valid() {
		return VariantAuto, fmt.Errorf("%w: %q", ErrInvalidVariant, text)
	}
	return Variant(n), nil
}
