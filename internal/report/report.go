// Package report runs one capacity check: it fetches the node and workload
// snapshots, aggregates every node and folds the results into a Report.
package report

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/xuanhe95/kubeScripts/internal/capacity"
	"github.com/xuanhe95/kubeScripts/internal/inventory"
	"github.com/xuanhe95/kubeScripts/internal/match"
	"github.com/xuanhe95/kubeScripts/internal/quantity"
	"github.com/xuanhe95/kubeScripts/internal/types"
)

// Report is the structured result of a run. Rendering is left to the caller.
type Report struct {
	Label        string               `json:"label"`
	Keyword      string               `json:"keyword"`
	GeneratedAt  time.Time            `json:"generatedAt"`
	Nodes        []types.NodeSummary  `json:"nodes"`
	Cluster      types.ClusterSummary `json:"cluster"`
	SkippedNodes []string             `json:"skippedNodes,omitempty"`
}

// Options configures a run.
type Options struct {
	Selector match.Selector
	Keyword  match.Keyword
	Parse    quantity.Parser
	Workers  int
}

// Runner produces reports from an inventory source.
type Runner struct {
	logger *zap.Logger
	source inventory.Source
	now    func() time.Time
}

// NewRunner creates a Runner over source.
func NewRunner(source inventory.Source, logger *zap.Logger) *Runner {
	return &Runner{
		logger: logger.Named("report"),
		source: source,
		now:    time.Now,
	}
}

// Run fetches both snapshots concurrently and builds the report. Any fetch
// failure aborts the run; no partial report is returned.
func (r *Runner) Run(ctx context.Context, opts Options) (*Report, error) {
	if opts.Selector == nil || opts.Keyword == nil {
		return nil, fmt.Errorf("selector and keyword are required")
	}

	var (
		wg                sync.WaitGroup
		nodes             []types.Node
		workloads         []types.Workload
		nodesErr, podsErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		nodes, nodesErr = r.source.ListNodes(ctx, opts.Selector)
	}()
	go func() {
		defer wg.Done()
		workloads, podsErr = r.source.ListAllWorkloads(ctx)
	}()
	wg.Wait()

	if nodesErr != nil {
		return nil, nodesErr
	}
	if podsErr != nil {
		return nil, podsErr
	}

	r.logger.Info("Fetched inventory",
		zap.String("selector", opts.Selector.String()),
		zap.Int("nodes", len(nodes)),
		zap.Int("workloads", len(workloads)),
	)

	agg := capacity.NewAggregator(r.logger, opts.Keyword, opts.Parse, opts.Workers)
	summaries, err := agg.Run(ctx, nodes, workloads)
	if err != nil {
		return nil, fmt.Errorf("aggregation interrupted: %w", err)
	}

	rep := &Report{
		Label:       opts.Selector.String(),
		Keyword:     opts.Keyword.String(),
		GeneratedAt: r.now().UTC(),
		Nodes:       summaries,
		Cluster:     capacity.Summarize(summaries),
	}
	if sr, ok := r.source.(inventory.SkipReporter); ok {
		rep.SkippedNodes = sr.Skipped()
	}
	if len(rep.SkippedNodes) > 0 {
		r.logger.Warn("Some nodes were skipped",
			zap.Strings("nodes", rep.SkippedNodes),
		)
	}
	return rep, nil
}

// Resource returns the cluster-wide entry for name.
func (r *Report) Resource(name string) (types.ClusterResource, bool) {
	for _, res := range r.Cluster.Resources {
		if res.Name == name {
			return res, true
		}
	}
	return types.ClusterResource{}, false
}
