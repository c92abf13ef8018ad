package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExactSelector(t *testing.T) {
	tests := []struct {
		name     string
		expr     string
		labels   map[string]string
		expected bool
	}{
		{
			name:     "empty selector matches all",
			expr:     "",
			labels:   map[string]string{"app": "foo"},
			expected: true,
		},
		{
			name:     "matching labels",
			expr:     "app=foo",
			labels:   map[string]string{"app": "foo", "version": "v1"},
			expected: true,
		},
		{
			name:     "non-matching labels",
			expr:     "app=foo",
			labels:   map[string]string{"app": "bar"},
			expected: false,
		},
		{
			name:     "missing label",
			expr:     "app=foo",
			labels:   map[string]string{"version": "v1"},
			expected: false,
		},
		{
			name:     "nil labels with non-empty selector",
			expr:     "app=foo",
			labels:   nil,
			expected: false,
		},
		{
			name:     "in operator - match",
			expr:     "env in (prod,staging)",
			labels:   map[string]string{"env": "prod"},
			expected: true,
		},
		{
			name:     "in operator - no match",
			expr:     "env in (prod,staging)",
			labels:   map[string]string{"env": "dev"},
			expected: false,
		},
		{
			name:     "not equal",
			expr:     "env!=prod",
			labels:   map[string]string{"env": "dev"},
			expected: true,
		},
		{
			name:     "exists",
			expr:     "nvidia.com/gpu.present",
			labels:   map[string]string{"nvidia.com/gpu.present": "true"},
			expected: true,
		},
		{
			name:     "does not exist",
			expr:     "!node-role.kubernetes.io/control-plane",
			labels:   map[string]string{"node-role.kubernetes.io/control-plane": ""},
			expected: false,
		},
		{
			name:     "combined requirements",
			expr:     "app=web,env in (prod)",
			labels:   map[string]string{"app": "web", "env": "dev"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := NewExactSelector(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, sel.Matches(tt.labels))
		})
	}
}


func TestExactSelectorInvalid(t *testing.T) {
	_, err := NewExactSelector("=foo")
	assert.Error(t, err)
}

func TestExactSelectorServerSide(t *testing.T) {
	sel, err := NewExactSelector("environment=production")
	require.NoError(t, err)
	assert.Equal(t, "environment=production", sel.ServerSide())
	assert.Equal(t, "environment=production", sel.String())
}

func TestPatternSelector(t *testing.T) {
	tests := []struct {
		name     string
		expr     string
		labels   map[string]string
		expected bool
	}{
		{
			name:     "literal pair",
			expr:     "environment=production",
			labels:   map[string]string{"environment": "production", "zone": "a"},
			expected: true,
		},
		{
			name:     "pattern over value",
			expr:     "gpu-type=a100.*",
			labels:   map[string]string{"gpu-type": "a100-80g"},
			expected: true,
		},
		{
			name:     "pattern over key",
			expr:     "nvidia.com/gpu.product=.*",
			labels:   map[string]string{"nvidia.com/gpu.product": "NVIDIA-H100"},
			expected: true,
		},
		{
			name:     "must fully match the pair",
			expr:     "env=prod",
			labels:   map[string]string{"env": "production"},
			expected: false,
		},
		{
			name:     "alternation is anchored as a whole",
			expr:     "env=prod|env=staging",
			labels:   map[string]string{"env": "staging-2"},
			expected: false,
		},
		{
			name:     "case sensitive",
			expr:     "env=PROD",
			labels:   map[string]string{"env": "prod"},
			expected: false,
		},
		{
			name:     "no labels",
			expr:     ".*",
			labels:   nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := NewPatternSelector(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, sel.Matches(tt.labels))
			assert.Empty(t, sel.ServerSide())
		})
	}
}

func TestNewSelector(t *testing.T) {
	sel, err := NewSelector("env=prod", SelectorExact)
	require.NoError(t, err)
	assert.IsType(t, &ExactSelector{}, sel)

	sel, err = NewSelector("env=prod", SelectorPattern)
	require.NoError(t, err)
	assert.IsType(t, &PatternSelector{}, sel)

	_, err = NewSelector("env=(", SelectorPattern)
	assert.Error(t, err)

	_, err = NewSelector("env=prod", SelectorMode("fuzzy"))
	assert.Error(t, err)
}

func TestParseSelectorMode(t *testing.T) {
	m, err := ParseSelectorMode("")
	require.NoError(t, err)
	assert.Equal(t, SelectorPattern, m)

	m, err = ParseSelectorMode("Exact")
	require.NoError(t, err)
	assert.Equal(t, SelectorExact, m)

	_, err = ParseSelectorMode("regex")
	assert.Error(t, err)
}
