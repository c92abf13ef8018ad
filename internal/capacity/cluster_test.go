package capacity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xuanhe95/kubeScripts/internal/quantity"
	"github.com/xuanhe95/kubeScripts/internal/testutil"
	"github.com/xuanhe95/kubeScripts/internal/types"
)

func TestUtilization(t *testing.T) {
	assert.Equal(t, 0.25, Utilization(6, 8))
	assert.Equal(t, 0.0, Utilization(8, 8))
	assert.Equal(t, 1.0, Utilization(0, 8))

	// A zero total is defined to yield exactly 0.
	assert.Equal(t, 0.0, Utilization(0, 0))
	assert.Equal(t, 0.0, Utilization(-3, 0))
}

func TestUtilizationBounds(t *testing.T) {
	for total := int64(1); total <= 16; total++ {
		for available := int64(0); available <= total; available++ {
			u := Utilization(available, total)
			assert.GreaterOrEqual(t, u, 0.0)
			assert.LessOrEqual(t, u, 1.0)
		}
	}
}

func TestSummarize_TwoNodes(t *testing.T) {
	kw := mustPattern(t, "gpu")
	nodeA := testutil.MakeNode("a", "10.0.0.1", nil, map[string]string{gpu: "4"})
	nodeB := testutil.MakeNode("b", "10.0.0.2", nil, map[string]string{gpu: "4"})
	workloads := []types.Workload{
		testutil.MakeWorkload("ns", "p1", "a", types.PhaseRunning, map[string]string{gpu: "2"}),
	}

	sa, ok := AggregateNode(nodeA, workloads, kw, quantity.Parse)
	require.True(t, ok)
	sb, ok := AggregateNode(nodeB, workloads, kw, quantity.Parse)
	require.True(t, ok)

	cluster := Summarize([]types.NodeSummary{sa, sb})
	require.Len(t, cluster.Resources, 1)

	cr := cluster.Resources[0]
	assert.Equal(t, gpu, cr.Name)
	assert.Equal(t, int64(8), cr.Total)
	assert.Equal(t, int64(6), cr.AvailableExcluding)
	assert.Equal(t, int64(6), cr.AvailableIncluding)
	assert.Equal(t, 0.25, cr.UtilizationExcl)
	assert.Equal(t, 0.25, cr.UtilizationIncl)
}

func TestSummarize_ExcludesOpaque(t *testing.T) {
	node := testutil.MakeNode("a", "10.0.0.1", nil, map[string]string{
		gpu:                    "8",
		"example.com/gpu-mode": "shared",
	})
	s, ok := AggregateNode(node, nil, mustPattern(t, "gpu"), quantity.Parse)
	require.True(t, ok)
	require.Len(t, s.Resources, 2)

	cluster := Summarize([]types.NodeSummary{s})
	require.Len(t, cluster.Resources, 1)
	assert.Equal(t, gpu, cluster.Resources[0].Name)
	for _, a := range cluster.AvailableExcluding {
		assert.NotEqual(t, "example.com/gpu-mode", a.Resource)
	}
}

func TestSummarize_ZeroTotal(t *testing.T) {
	node := testutil.MakeNode("a", "10.0.0.1", nil, map[string]string{gpu: "0"})
	s, ok := AggregateNode(node, nil, mustPattern(t, "gpu"), quantity.Parse)
	require.True(t, ok)

	cluster := Summarize([]types.NodeSummary{s})
	require.Len(t, cluster.Resources, 1)
	assert.Equal(t, 0.0, cluster.Resources[0].UtilizationExcl)
	assert.Equal(t, 0.0, cluster.Resources[0].UtilizationIncl)
	assert.Empty(t, cluster.AvailableExcluding)
}

func TestSummarize_AvailabilityLists(t *testing.T) {
	kw := mustPattern(t, "gpu")
	nodes := []types.Node{
		testutil.MakeNode("full", "10.0.0.9", nil, map[string]string{gpu: "2"}),
		testutil.MakeNode("z-free", "10.0.0.1", nil, map[string]string{gpu: "4"}),
		testutil.MakeNode("a-free", "10.0.0.1", nil, map[string]string{gpu: "4"}),
		testutil.MakeNode("done", "10.0.0.5", nil, map[string]string{gpu: "2"}),
	}
	workloads := []types.Workload{
		testutil.MakeWorkload("ns", "p1", "full", types.PhaseRunning, map[string]string{gpu: "2"}),
		testutil.MakeWorkload("ns", "p2", "done", types.PhaseSucceeded, map[string]string{gpu: "2"}),
	}

	var summaries []types.NodeSummary
	for _, n := range nodes {
		s, ok := AggregateNode(n, workloads, kw, quantity.Parse)
		require.True(t, ok)
		summaries = append(summaries, s)
	}

	cluster := Summarize(summaries)

	require.Len(t, cluster.AvailableExcluding, 3)
	assert.Equal(t, "a-free", cluster.AvailableExcluding[0].NodeName)
	assert.Equal(t, "z-free", cluster.AvailableExcluding[1].NodeName)
	assert.Equal(t, "done", cluster.AvailableExcluding[2].NodeName)
	assert.Equal(t, int64(2), cluster.AvailableExcluding[2].Available)

	require.Len(t, cluster.AvailableIncluding, 2)
	assert.Equal(t, "a-free", cluster.AvailableIncluding[0].NodeName)
	assert.Equal(t, "z-free", cluster.AvailableIncluding[1].NodeName)
}

func TestSummarize_Empty(t *testing.T) {
	cluster := Summarize(nil)
	assert.Empty(t, cluster.Resources)
	assert.Empty(t, cluster.AvailableExcluding)
	assert.Empty(t, cluster.AvailableIncluding)
}

func TestSortNodes(t *testing.T) {
	nodes := []types.NodeSummary{
		{NodeName: "b", Address: "10.0.0.2"},
		{NodeName: "z", Address: "10.0.0.1"},
		{NodeName: "a", Address: "10.0.0.2"},
	}
	SortNodes(nodes)
	assert.Equal(t, "z", nodes[0].NodeName)
	assert.Equal(t, "a", nodes[1].NodeName)
	assert.Equal(t, "b", nodes[2].NodeName)
}
