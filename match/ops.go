package match

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/simon-lentz/dpograph/graph"
	"github.com/simon-lentz/dpograph/rule"
	"github.com/simon-lentz/dpograph/value"
)

// regexCacheSize bounds the compiled-pattern cache. Rules reuse a small
// set of patterns in practice; 128 is far above any observed working set.
const regexCacheSize = 128

// regexCache memoizes compiled patterns across Find calls.
type regexCache struct {
	cache *lru.Cache[string, *regexp.Regexp]
}

func newRegexCache() *regexCache {
	cache, err := lru.New[string, *regexp.Regexp](regexCacheSize)
	if err != nil {
		panic("match: lru.New: " + err.Error()) // size is a positive constant
	}
	return &regexCache{cache: cache}
}

func (c *regexCache) get(pattern string) (*regexp.Regexp, error) {
	if re, ok := c.cache.Get(pattern); ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("match: invalid regex %q: %w", pattern, err)
	}
	c.cache.Add(pattern, re)
	return re, nil
}

// evalAttrs reports whether every operation on every constrained
// attribute holds. Keys evaluate in sorted order; an absent attribute
// fails its ops. The only error path is an uncompilable regex.
func (c *regexCache) evalAttrs(attrs graph.Attrs, constraints map[string][]rule.AttrOp) (bool, error) {
	keys := make([]string, 0, len(constraints))
	for k := range constraints {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, key := range keys {
		attr, present := attrs[key]
		for _, op := range constraints[key] {
			if !present {
				return false, nil
			}
			ok, err := c.evalOp(op, attr)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
	}
	return true, nil
}

func (c *regexCache) evalOp(op rule.AttrOp, attr value.Value) (bool, error) {
	// NaN has no canonical form; a NaN-valued attribute matches nothing.
	if attr.IsNaN() {
		return false, nil
	}

	switch op.Kind() {
	case rule.OpEq:
		return attr.Equal(op.Operand()), nil
	case rule.OpNeq:
		return !attr.Equal(op.Operand()), nil
	case rule.OpLt, rule.OpLte, rule.OpGt, rule.OpGte:
		return evalOrdered(op.Kind(), attr, op.Operand()), nil
	case rule.OpRegex:
		s, ok := attr.Str()
		if !ok {
			return false, nil
		}
		re, err := c.get(op.Pattern())
		if err != nil {
			return false, err
		}
		return re.MatchString(s), nil
	case rule.OpIn:
		for _, candidate := range op.Values() {
			if attr.Equal(candidate) {
				return true, nil
			}
		}
		return false, nil
	default:
		return false, fmt.Errorf("match: unknown attribute op %v", op.Kind())
	}
}

// evalOrdered applies an ordering operation. Ordering is defined when
// both sides are numeric (Int and Float mix, compared as float64) or
// both are strings; any other pairing fails the op.
func evalOrdered(kind rule.OpKind, attr, operand value.Value) bool {
	if operand.IsNaN() {
		return false
	}

	var cmp int
	if a, ok := attr.Numeric(); ok {
		b, ok := operand.Numeric()
		if !ok {
			return false
		}
		switch {
		case a < b:
			cmp = -1
		case a > b:
			cmp = 1
		}
	} else if a, ok := attr.Str(); ok {
		b, ok := operand.Str()
		if !ok {
			return false
		}
		cmp = strings.Compare(a, b)
	} else {
		return false
	}

	switch kind {
	case rule.OpLt:
		return cmp < 0
	case rule.OpLte:
		return cmp <= 0
	case rule.OpGt:
		return cmp > 0
	case rule.OpGte:
		return cmp >= 0
	default:
		return false
	}
}
