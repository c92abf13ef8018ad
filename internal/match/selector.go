package match

import (
	"fmt"
	"regexp"
	"strings"

	"k8s.io/apimachinery/pkg/labels"

	"github.com/xuanhe95/kubeScripts/internal/util"
)

// SelectorMode names a label selector strategy.
type SelectorMode string

const (
	SelectorExact   SelectorMode = "exact"
	SelectorPattern SelectorMode = "pattern"
)

// Selector is a predicate over node labels.
type Selector interface {
	Matches(nodeLabels map[string]string) bool

	// ServerSide returns a label selector the API server can evaluate,
	// or "" when filtering must happen client-side.
	ServerSide() string

	String() string
}

// ExactSelector matches labels with Kubernetes label selector semantics.
type ExactSelector struct {
	expr string
	sel  labels.Selector
}

// NewExactSelector parses expr in kubectl selector syntax, e.g. "env=prod".
func NewExactSelector(expr string) (*ExactSelector, error) {
	sel, err := labels.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid label selector %q: %w", expr, err)
	}
	return &ExactSelector{expr: expr, sel: sel}, nil
}

func (s *ExactSelector) Matches(nodeLabels map[string]string) bool {
	return s.sel.Matches(labels.Set(nodeLabels))
}

func (s *ExactSelector) ServerSide() string { return s.sel.String() }

func (s *ExactSelector) String() string { return s.expr }

// PatternSelector matches nodes where at least one "key=value" label pair
// fully matches a regular expression.
type PatternSelector struct {
	expr string
	re   *regexp.Regexp
}

// NewPatternSelector compiles expr. The expression is anchored at both ends.
func NewPatternSelector(expr string) (*PatternSelector, error) {
	re, err := regexp.Compile("^(?:" + expr + ")$")
	if err != nil {
		return nil, fmt.Errorf("invalid label pattern %q: %w", expr, err)
	}
	return &PatternSelector{expr: expr, re: re}, nil
}

func (s *PatternSelector) Matches(nodeLabels map[string]string) bool {
	for _, pair := range util.LabelPairs(nodeLabels) {
		if s.re.MatchString(pair) {
			return true
		}
	}
	return false
}

func (s *PatternSelector) ServerSide() string { return "" }

func (s *PatternSelector) String() string { return s.expr }

// ParseSelectorMode validates a selector mode name. The empty string selects
// SelectorPattern.
func ParseSelectorMode(s string) (SelectorMode, error) {
	switch SelectorMode(strings.ToLower(s)) {
	case "", SelectorPattern:
		return SelectorPattern, nil
	case SelectorExact:
		return SelectorExact, nil
	default:
		return "", fmt.Errorf("unknown selector mode %q (want exact or pattern)", s)
	}
}

// NewSelector builds the selector for mode.
func NewSelector(expr string, mode SelectorMode) (Selector, error) {
	switch mode {
	case SelectorExact:
		return NewExactSelector(expr)
	case SelectorPattern, "":
		return NewPatternSelector(expr)
	default:
		return nil, fmt.Errorf("unknown selector mode %q", mode)
	}
}
