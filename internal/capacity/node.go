package capacity

import (
	"github.com/xuanhe95/kubeScripts/internal/match"
	"github.com/xuanhe95/kubeScripts/internal/quantity"
	"github.com/xuanhe95/kubeScripts/internal/types"
	"github.com/xuanhe95/kubeScripts/internal/util"
)

// AggregateNode builds the summary of one node. It returns false when no
// allocatable resource of the node matches keyword.
func AggregateNode(node types.Node, workloads []types.Workload, keyword match.Keyword, parse quantity.Parser) (types.NodeSummary, bool) {
	matched := match.Resources(node.Allocatable, keyword, parse)
	if len(matched) == 0 {
		return types.NodeSummary{}, false
	}

	used := Accumulate(node.Name, matched, workloads, parse)

	summary := types.NodeSummary{
		NodeName:  node.Name,
		Address:   node.Address,
		Resources: make([]types.ResourceSummary, 0, len(matched)),
	}
	for _, name := range util.SortedKeys(matched) {
		total := matched[name]
		rs := types.ResourceSummary{
			Name:      name,
			Total:     total,
			Consumers: used.Consumers[name],
		}
		if total.Numeric {
			active := used.Active[name]
			all := used.All[name]
			rs.UsedActive = int64Ptr(active)
			rs.UsedAll = int64Ptr(all)
			rs.AvailableExcluding = int64Ptr(total.Value - active)
			rs.AvailableIncluding = int64Ptr(total.Value - all)
		}
		summary.Resources = append(summary.Resources, rs)
	}
	return summary, true
}

func int64Ptr(v int64) *int64 {
	return &v
}
