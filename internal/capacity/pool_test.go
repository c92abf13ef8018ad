package capacity

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xuanhe95/kubeScripts/internal/quantity"
	"github.com/xuanhe95/kubeScripts/internal/testutil"
	"github.com/xuanhe95/kubeScripts/internal/types"
)

func makeCluster(n int) ([]types.Node, []types.Workload) {
	var nodes []types.Node
	var workloads []types.Workload
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("node-%02d", i)
		// Reverse address order so sorting is observable.
		addr := fmt.Sprintf("10.0.%d.1", n-i)
		allocatable := map[string]string{"cpu": "32"}
		if i%3 != 0 {
			allocatable[gpu] = "8"
		}
		nodes = append(nodes, testutil.MakeNode(name, addr, nil, allocatable))
		workloads = append(workloads,
			testutil.MakeWorkload("ns", name+"-run", name, types.PhaseRunning, map[string]string{gpu: "2"}),
			testutil.MakeWorkload("ns", name+"-done", name, types.PhaseSucceeded, map[string]string{gpu: "1"}),
		)
	}
	return nodes, workloads
}

func TestAggregatorRun(t *testing.T) {
	nodes, workloads := makeCluster(12)
	agg := NewAggregator(zap.NewNop(), mustPattern(t, "gpu"), quantity.Parse, 4)

	summaries, err := agg.Run(context.Background(), nodes, workloads)
	require.NoError(t, err)

	// Every third node has no GPU resource and is absent.
	assert.Len(t, summaries, 8)
	for i := 1; i < len(summaries); i++ {
		assert.Less(t, summaries[i-1].Address, summaries[i].Address)
	}
	for _, s := range summaries {
		require.Len(t, s.Resources, 1)
		assert.Equal(t, int64(6), *s.Resources[0].AvailableExcluding)
		assert.Equal(t, int64(5), *s.Resources[0].AvailableIncluding)
		assert.Equal(t, []string{"ns/" + s.NodeName + "-run requests nvidia.com/gpu: 2"}, s.Resources[0].Consumers)
	}
}

func TestAggregatorRun_WorkerCountsAgree(t *testing.T) {
	nodes, workloads := makeCluster(30)

	base, err := NewAggregator(zap.NewNop(), mustPattern(t, "."), quantity.Parse, 1).Run(context.Background(), nodes, workloads)
	require.NoError(t, err)

	for _, workers := range []int{0, 2, 8, 64} {
		got, err := NewAggregator(zap.NewNop(), mustPattern(t, "."), quantity.Parse, workers).Run(context.Background(), nodes, workloads)
		require.NoError(t, err)
		assert.Equal(t, base, got, "workers=%d", workers)
	}
}

func TestAggregatorRun_Empty(t *testing.T) {
	summaries, err := NewAggregator(zap.NewNop(), mustPattern(t, "gpu"), nil, 0).Run(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestAggregatorRun_Cancelled(t *testing.T) {
	nodes, workloads := makeCluster(5)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewAggregator(zap.NewNop(), mustPattern(t, "gpu"), quantity.Parse, 2).Run(ctx, nodes, workloads)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIndexByNode(t *testing.T) {
	workloads := []types.Workload{
		testutil.MakeWorkload("ns", "a1", "A", types.PhaseRunning, nil),
		testutil.MakeWorkload("ns", "b1", "B", types.PhaseRunning, nil),
		testutil.MakeWorkload("ns", "u", "", types.PhasePending, nil),
		testutil.MakeWorkload("ns", "a2", "A", types.PhaseFailed, nil),
	}

	byNode := IndexByNode(workloads)
	require.Len(t, byNode, 2)
	require.Len(t, byNode["A"], 2)
	assert.Equal(t, "a1", byNode["A"][0].Name)
	assert.Equal(t, "a2", byNode["A"][1].Name)
	assert.Len(t, byNode["B"], 1)
	assert.NotContains(t, byNode, "")
}
