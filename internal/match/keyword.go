package match

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xuanhe95/kubeScripts/internal/quantity"
	"github.com/xuanhe95/kubeScripts/internal/types"
)

// Keyword decides whether a resource name belongs to the requested resource class.
// Implementations must be safe for concurrent use.
type Keyword interface {
	MatchString(resourceName string) bool
	String() string
}

type substring struct {
	raw   string
	lower string
}

// Substring matches resource names containing s, ignoring case.
func Substring(s string) Keyword {
	return substring{raw: s, lower: strings.ToLower(s)}
}

func (k substring) MatchString(name string) bool {
	return strings.Contains(strings.ToLower(name), k.lower)
}

func (k substring) String() string { return k.raw }

type pattern struct {
	raw string
	re  *regexp.Regexp
}

// Pattern matches resource names containing a match of the regular expression
// expr, ignoring case.
func Pattern(expr string) (Keyword, error) {
	re, err := regexp.Compile("(?i)" + expr)
	if err != nil {
		return nil, fmt.Errorf("invalid resource keyword %q: %w", expr, err)
	}
	return pattern{raw: expr, re: re}, nil
}

func (k pattern) MatchString(name string) bool {
	return k.re.MatchString(name)
}

func (k pattern) String() string { return k.raw }

type exact string

// Exact matches the resource name s only.
func Exact(s string) Keyword {
	return exact(s)
}

func (k exact) MatchString(name string) bool { return name == string(k) }

func (k exact) String() string { return string(k) }

// NewKeyword builds a Pattern keyword, or a Substring keyword when literal is set.
func NewKeyword(expr string, literal bool) (Keyword, error) {
	if literal {
		return Substring(expr), nil
	}
	return Pattern(expr)
}

// Resources returns the allocatable resources whose names match keyword.
// Matching names are never dropped: amounts that parse are numeric, the rest
// are kept verbatim as opaque amounts. An empty result means the node has
// nothing to report.
func Resources(allocatable map[string]string, keyword Keyword, parse quantity.Parser) map[string]types.Amount {
	matched := make(map[string]types.Amount)
	for name, raw := range allocatable {
		if !keyword.MatchString(name) {
			continue
		}
		if v, err := parse(raw); err == nil {
			matched[name] = types.NumericAmount(raw, v)
		} else {
			matched[name] = types.OpaqueAmount(raw)
		}
	}
	return matched
}
