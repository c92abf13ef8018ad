package capacity

import (
	"context"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/xuanhe95/kubeScripts/internal/match"
	"github.com/xuanhe95/kubeScripts/internal/quantity"
	"github.com/xuanhe95/kubeScripts/internal/types"
)

// DefaultWorkers is the default number of concurrent node tasks.
var DefaultWorkers = runtime.NumCPU()

// Aggregator runs AggregateNode over a node set concurrently.
type Aggregator struct {
	logger  *zap.Logger
	keyword match.Keyword
	parse   quantity.Parser

	// workers bounds concurrent node tasks; <= 0 runs one goroutine per node
	// with no bound.
	workers int
}

// NewAggregator creates an Aggregator. A nil parse selects quantity.Parse.
func NewAggregator(logger *zap.Logger, keyword match.Keyword, parse quantity.Parser, workers int) *Aggregator {
	if parse == nil {
		parse = quantity.Parse
	}
	return &Aggregator{
		logger:  logger.Named("aggregator"),
		keyword: keyword,
		parse:   parse,
		workers: workers,
	}
}

type nodeResult struct {
	summary types.NodeSummary
	ok      bool
}

// Run aggregates every node and returns the summaries of nodes with at least
// one matching resource, sorted by (address, name).
//
// The workload slice is shared read-only by all tasks. Run returns ctx.Err()
// if the context is cancelled before every node has been processed.
func (a *Aggregator) Run(ctx context.Context, nodes []types.Node, workloads []types.Workload) ([]types.NodeSummary, error) {
	start := time.Now()
	byNode := IndexByNode(workloads)

	// Each task owns results[i]; no lock is needed.
	results := make([]nodeResult, len(nodes))

	var sem chan struct{}
	if a.workers > 0 {
		sem = make(chan struct{}, a.workers)
	}
	var wg sync.WaitGroup

	for i := range nodes {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			if sem != nil {
				sem <- struct{}{}        // Acquire
				defer func() { <-sem }() // Release
			}
			if ctx.Err() != nil {
				return
			}

			node := nodes[i]
			summary, ok := AggregateNode(node, byNode[node.Name], a.keyword, a.parse)
			if !ok {
				a.logger.Debug("No matching resources on node",
					zap.String("node", node.Name),
					zap.String("keyword", a.keyword.String()),
				)
			}
			results[i] = nodeResult{summary: summary, ok: ok}
		}(i)
	}

	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	summaries := make([]types.NodeSummary, 0, len(nodes))
	for _, r := range results {
		if r.ok {
			summaries = append(summaries, r.summary)
		}
	}
	SortNodes(summaries)

	a.logger.Debug("Aggregated nodes",
		zap.Int("nodes", len(nodes)),
		zap.Int("reported", len(summaries)),
		zap.Int("workloads", len(workloads)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return summaries, nil
}

// IndexByNode groups scheduled workloads by node name, preserving input order
// within each group. Unscheduled workloads are dropped.
func IndexByNode(workloads []types.Workload) map[string][]types.Workload {
	byNode := make(map[string][]types.Workload)
	for _, w := range workloads {
		if w.NodeName == "" {
			continue
		}
		byNode[w.NodeName] = append(byNode[w.NodeName], w)
	}
	return byNode
}
