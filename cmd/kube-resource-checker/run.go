package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/xuanhe95/kubeScripts/internal/config"
	"github.com/xuanhe95/kubeScripts/internal/inventory"
	"github.com/xuanhe95/kubeScripts/internal/logging"
	"github.com/xuanhe95/kubeScripts/internal/match"
	"github.com/xuanhe95/kubeScripts/internal/metrics"
	"github.com/xuanhe95/kubeScripts/internal/quantity"
	"github.com/xuanhe95/kubeScripts/internal/report"
)

// getClientFunc is the function used to create a Kubernetes clientset.
// It can be overridden in tests to inject a fake client.
var getClientFunc = inventory.NewClientset

func usageError(err error) error {
	return fmt.Errorf("%w: %v", config.ErrUsage, err)
}

func newSource(opts config.Options, logger *zap.Logger) (inventory.Source, error) {
	if opts.Offline() {
		return inventory.NewFileSource(opts.NodesFile, opts.PodsFile, logger), nil
	}
	client, err := getClientFunc(opts.Kubeconfig, opts.Context)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return inventory.NewKubeSource(client, logger), nil
}

// execute runs one check with validated options and renders the report.
func execute(ctx context.Context, opts config.Options, keyword match.Keyword) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logger, err := logging.New(opts.LogLevel)
	if err != nil {
		return usageError(err)
	}
	defer logger.Sync()

	sel, err := match.NewSelector(opts.Label, opts.SelectorMode)
	if err != nil {
		return usageError(err)
	}

	src, err := newSource(opts, logger)
	if err != nil {
		return err
	}

	if opts.Timeout.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout.Duration)
		defer cancel()
	}

	rep, err := report.NewRunner(src, logger).Run(ctx, report.Options{
		Selector: sel,
		Keyword:  keyword,
		Parse:    quantity.ForMode(opts.QuantityMode),
		Workers:  opts.Workers,
	})
	if err != nil {
		return err
	}

	if opts.Textfile != "" {
		if err := metrics.Export(rep, opts.Textfile); err != nil {
			return err
		}
		logger.Info("Wrote metrics textfile", zap.String("path", opts.Textfile))
	}

	return outputResult(rep, opts.Output, !opts.NoColor)
}
