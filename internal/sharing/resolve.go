package sharing

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/sogladev/wow-realm-switch-utility/internal/errors"
)

// Rules maps free-form path keys to strategies. Keys are matched
// case-insensitively against slash-separated relative paths.
type Rules map[string]Strategy

// DefaultRules returns the rules used when none are configured.
func DefaultRules() Rules {
	return Rules{
		"screenshots":      Global,
		"interface/addons": Base,
		"wtf":              Workspace,
	}
}

// Clone returns a copy of r.
func (r Rules) Clone() Rules {
	out := make(Rules, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Merge returns a copy of r with overrides applied on top. Keys that fold
// to the same form as an existing key replace it.
func (r Rules) Merge(overrides Rules) Rules {
	out := r.Clone()
	for key, strategy := range overrides {
		nk := normalize(key)
		for existing := range out {
			if normalize(existing) == nk {
				delete(out, existing)
			}
		}
		out[key] = strategy
	}
	return out
}

// Keys returns the rule keys in lexical order.
func (r Rules) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate checks that every key is non-empty and every strategy is known.
func (r Rules) Validate() error {
	for key, strategy := range r {
		if normalize(key) == "" {
			return errors.ValidationError("sharing rule key must not be empty")
		}
		if !strategy.Valid() {
			return errors.ValidationError(fmt.Sprintf("sharing rule %q: unknown strategy %q", key, string(strategy)))
		}
	}
	return nil
}

// ParseOverrides parses key=value pairs such as "screenshots=global".
func ParseOverrides(pairs []string) (Rules, error) {
	out := make(Rules, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || normalize(key) == "" {
			return nil, errors.ValidationError(fmt.Sprintf("invalid sharing override %q (want key=strategy)", pair))
		}
		strategy, err := ParseStrategy(value)
		if err != nil {
			return nil, errors.Wrap(errors.ExitValidation, fmt.Sprintf("invalid sharing override %q", pair), err)
		}
		out[key] = strategy
	}
	return out, nil
}

// Match returns the rule key that applies to rel. A key applies when the
// folded path equals it, starts with key + "/", or has a single component
// equal to it. When several keys apply the longest folded key wins, ties
// going to the lexically smallest folded key and then the smallest raw key.
func (r Rules) Match(rel string) (string, Strategy, bool) {
	p := normalize(rel)
	components := strings.Split(p, "/")

	var (
		bestKey  string
		bestNorm string
		found    bool
	)
	for key := range r {
		nk := normalize(key)
		if nk == "" || !matches(p, components, nk) {
			continue
		}
		if !found || better(nk, key, bestNorm, bestKey) {
			bestKey, bestNorm, found = key, nk, true
		}
	}
	if !found {
		return "", "", false
	}
	return bestKey, r[bestKey], true
}

// Resolve returns the strategy for rel, or def when no key applies.
func Resolve(rel string, rules Rules, def Strategy) Strategy {
	if _, strategy, ok := rules.Match(rel); ok {
		return strategy
	}
	return def
}

// Covers reports whether rel equals a key or lies beneath one. Unlike
// Match it ignores single-component matches.
func (r Rules) Covers(rel string) bool {
	p := normalize(rel)
	for key := range r {
		nk := normalize(key)
		if nk == "" {
			continue
		}
		if p == nk || strings.HasPrefix(p, nk+"/") {
			return true
		}
	}
	return false
}

func matches(p string, components []string, nk string) bool {
	if p == nk || strings.HasPrefix(p, nk+"/") {
		return true
	}
	for _, c := range components {
		if c == nk {
			return true
		}
	}
	return false
}

func better(nk, key, bestNorm, bestKey string) bool {
	if len(nk) != len(bestNorm) {
		return len(nk) > len(bestNorm)
	}
	if nk != bestNorm {
		return nk < bestNorm
	}
	return key < bestKey
}

// normalize folds case, converts separators to slashes and trims leading
// and trailing separators.
func normalize(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), "\\", "/")
	s = strings.Trim(s, "/")
	return cases.Fold().String(s)
}
