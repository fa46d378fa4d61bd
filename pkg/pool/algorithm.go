package pool

import (
	"fmt"
	"strings"

	glog "github.com/goliatone/go-logger/glog"
)

// Algorithm identifies a hashing scheme a pool expects.
type Algorithm int

const (
	// InvalidAlgorithm marks a descriptor whose algorithm is not assigned yet.
	InvalidAlgorithm Algorithm = iota - 1
	Cryptonight
	CryptonightLite
	CryptonightHeavy
	CryptonightIPBC
)

const deprecatedLiteAlias = "cryptonight-light"

// algorithmNames holds the canonical names in table order.
var algorithmNames = [...]struct {
	long  string
	short string
}{
	Cryptonight:      {"cryptonight", "cn"},
	CryptonightLite:  {"cryptonight-lite", "cn-lite"},
	CryptonightHeavy: {"cryptonight-heavy", "cn-heavy"},
	CryptonightIPBC:  {"cryptonight-ipbc", "cn-ipbc"},
}

// OptionalAlgorithms lists every algorithm a table may enable on top of
// Cryptonight.
var OptionalAlgorithms = []Algorithm{CryptonightLite, CryptonightHeavy, CryptonightIPBC}

// Table is the registry of algorithms enabled for this process.
// Cryptonight is always present; the other members are optional features.
// A Table is immutable after NewTable and safe for concurrent reads.
type Table struct {
	enabled [len(algorithmNames)]bool
	logger  glog.Logger
}

// NewTable builds a table with Cryptonight plus the given optional algorithms.
// Resolution diagnostics go to logger; nil means discard.
func NewTable(logger glog.Logger, features ...Algorithm) *Table {
	if logger == nil {
		logger = glog.Nop()
	}
	t := &Table{logger: logger}
	t.enabled[Cryptonight] = true
	for _, a := range features {
		if a.known() {
			t.enabled[a] = true
		}
	}
	return t
}

// FeaturesFromNames maps feature names ("cn-lite", "cryptonight-heavy", ...)
// to algorithms suitable for NewTable. Empty entries are skipped.
func FeaturesFromNames(names []string) ([]Algorithm, error) {
	var features []Algorithm
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		a := lookupName(name)
		if a == InvalidAlgorithm {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFeature, name)
		}
		features = append(features, a)
	}
	return features, nil
}

func lookupName(name string) Algorithm {
	for i, n := range algorithmNames {
		if strings.EqualFold(name, n.long) || strings.EqualFold(name, n.short) {
			return Algorithm(i)
		}
	}
	return InvalidAlgorithm
}

func (a Algorithm) known() bool {
	return a >= 0 && int(a) < len(algorithmNames)
}

// Enabled reports whether the algorithm is present in this table.
func (t *Table) Enabled(a Algorithm) bool {
	return a.known() && t.enabled[a]
}

// Algorithms returns the enabled algorithms in table order.
func (t *Table) Algorithms() []Algorithm {
	out := make([]Algorithm, 0, len(algorithmNames))
	for i, on := range t.enabled {
		if on {
			out = append(out, Algorithm(i))
		}
	}
	return out
}

// Name returns the long or short canonical name of a.
// InvalidAlgorithm renders as "invalid"; a member that is not enabled in
// this table returns ErrAlgorithmDisabled.
func (t *Table) Name(a Algorithm, short bool) (string, error) {
	if a == InvalidAlgorithm {
		return "invalid", nil
	}
	if !t.Enabled(a) {
		return "", fmt.Errorf("%w: algorithm %d", ErrAlgorithmDisabled, int(a))
	}
	if short {
		return algorithmNames[a].short, nil
	}
	return algorithmNames[a].long, nil
}

// Resolve matches name case-insensitively against the enabled long names,
// then the enabled short names. Unknown names yield InvalidAlgorithm and a
// diagnostic; callers decide whether that is fatal.
func (t *Table) Resolve(name string) Algorithm {
	if t.enabled[CryptonightLite] && strings.EqualFold(name, deprecatedLiteAlias) {
		t.logger.Warn(fmt.Sprintf("Algorithm %q is deprecated, use %q instead",
			deprecatedLiteAlias, algorithmNames[CryptonightLite].long))
		return CryptonightLite
	}

	for i, n := range algorithmNames {
		if t.enabled[i] && strings.EqualFold(name, n.long) {
			return Algorithm(i)
		}
	}
	for i, n := range algorithmNames {
		if t.enabled[i] && strings.EqualFold(name, n.short) {
			return Algorithm(i)
		}
	}

	t.logger.Error(fmt.Sprintf("Unknown algorithm %q specified.", name))
	return InvalidAlgorithm
}
