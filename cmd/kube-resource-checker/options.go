package main

import (
	"os"

	"github.com/spf13/pflag"

	"github.com/xuanhe95/kubeScripts/internal/config"
)

// resolveOptions layers defaults, the config file, the environment,
// positional arguments and explicitly set flags, in that order, then
// validates the result.
func resolveOptions(flags *pflag.FlagSet, positional, applyFlags func(*config.Options)) (config.Options, error) {
	opts := config.Defaults()

	path, optional := configFile, false
	if path == "" {
		path, optional = config.DefaultFile, true
	}
	if err := opts.LoadFile(path, optional); err != nil {
		return opts, err
	}
	opts.ApplyEnv(os.LookupEnv)

	if positional != nil {
		positional(&opts)
	}
	applyGlobalFlags(flags, &opts)
	if applyFlags != nil {
		applyFlags(&opts)
	}
	return opts, opts.Validate()
}

func applyGlobalFlags(flags *pflag.FlagSet, opts *config.Options) {
	if flags.Changed("output") {
		opts.Output = outputFmt
	}
	if flags.Changed("kubeconfig") {
		opts.Kubeconfig = kubeconfig
	}
	if flags.Changed("context") {
		opts.Context = kubeContext
	}
	if flags.Changed("log-level") {
		opts.LogLevel = logLevel
	}
	if flags.Changed("no-color") {
		opts.NoColor = noColor
	}
	if flags.Changed("timeout") {
		opts.Timeout.Duration = timeout
	}
}
