// Package config holds the options of a capacity check and their layering:
// defaults, an optional YAML file, environment variables, then flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/mitchellh/go-homedir"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/yaml"

	"github.com/xuanhe95/kubeScripts/internal/capacity"
	"github.com/xuanhe95/kubeScripts/internal/match"
	"github.com/xuanhe95/kubeScripts/internal/quantity"
)

// ErrUsage reports invalid or missing user input.
var ErrUsage = errors.New("usage error")

// DefaultFile is loaded when --config is not given and the file exists.
const DefaultFile = "~/.kube-resource-checker.yaml"

// Environment variables that override file values.
const (
	EnvLabel      = "KRC_LABEL"
	EnvResource   = "KRC_RESOURCE"
	EnvKubeconfig = "KRC_KUBECONFIG"
)

// OutputFormats lists the accepted --output values.
var OutputFormats = []string{"table", "json", "yaml"}

// Options configures one run.
type Options struct {
	Label          string             `json:"label,omitempty"`
	Keyword        string             `json:"resourceKeyword,omitempty"`
	SelectorMode   match.SelectorMode `json:"selectorMode,omitempty"`
	KeywordLiteral bool               `json:"literal,omitempty"`
	QuantityMode   quantity.Mode      `json:"quantityMode,omitempty"`
	Workers        int                `json:"workers,omitempty"`
	Timeout        metav1.Duration    `json:"timeout,omitempty"`

	Kubeconfig string `json:"kubeconfig,omitempty"`
	Context    string `json:"context,omitempty"`
	NodesFile  string `json:"nodesFile,omitempty"`
	PodsFile   string `json:"podsFile,omitempty"`

	Output   string `json:"output,omitempty"`
	NoColor  bool   `json:"noColor,omitempty"`
	LogLevel string `json:"logLevel,omitempty"`
	Textfile string `json:"textfile,omitempty"`
}

// Defaults returns the built-in options.
func Defaults() Options {
	return Options{
		SelectorMode: match.SelectorPattern,
		QuantityMode: quantity.ModeDigits,
		Workers:      capacity.DefaultWorkers,
		Timeout:      metav1.Duration{Duration: time.Minute},
		Output:       "table",
		LogLevel:     "warn",
	}
}

// LoadFile merges the YAML file at path over o. When optional is set a
// missing file is not an error.
func (o *Options) LoadFile(path string, optional bool) error {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("failed to expand config path: %w", err)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.UnmarshalStrict(data, o); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", expanded, err)
	}
	return nil
}

// ApplyEnv overrides o with any non-empty KRC_* variables.
func (o *Options) ApplyEnv(lookup func(string) (string, bool)) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(EnvLabel); ok && v != "" {
		o.Label = v
	}
	if v, ok := lookup(EnvResource); ok && v != "" {
		o.Keyword = v
	}
	if v, ok := lookup(EnvKubeconfig); ok && v != "" {
		o.Kubeconfig = v
	}
}

// Validate checks that the options describe a runnable check and normalizes
// the mode names. All failures wrap ErrUsage.
func (o *Options) Validate() error {
	if o.Label == "" || o.Keyword == "" {
		return fmt.Errorf("%w: both a label selector (-l) and a resource keyword (-r) are required", ErrUsage)
	}
	selectorMode, err := match.ParseSelectorMode(string(o.SelectorMode))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	quantityMode, err := quantity.ParseMode(string(o.QuantityMode))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	o.SelectorMode, o.QuantityMode = selectorMode, quantityMode

	if !slices.Contains(OutputFormats, o.Output) {
		return fmt.Errorf("%w: unknown output format %q (want table, json or yaml)", ErrUsage, o.Output)
	}
	if (o.NodesFile == "") != (o.PodsFile == "") {
		return fmt.Errorf("%w: --nodes-file and --pods-file must be given together", ErrUsage)
	}
	if o.Timeout.Duration < 0 {
		return fmt.Errorf("%w: timeout must not be negative", ErrUsage)
	}
	return nil
}

// Offline reports whether the inventory is read from dump files.
func (o *Options) Offline() bool {
	return o.NodesFile != "" && o.PodsFile != ""
}
