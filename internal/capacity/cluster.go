package capacity

import (
	"cmp"
	"slices"

	"github.com/xuanhe95/kubeScripts/internal/types"
	"github.com/xuanhe95/kubeScripts/internal/util"
)

// Utilization returns 1 - available/total. A total of 0 yields exactly 0;
// this is a policy choice that avoids dividing by zero.
func Utilization(available, total int64) float64 {
	if total == 0 {
		return 0
	}
	return 1 - float64(available)/float64(total)
}

type clusterTotals struct {
	total, excluding, including int64
}

// Summarize folds node summaries into cluster-wide totals. Resources with
// opaque totals are excluded from the fold entirely. It must run after every
// node aggregation has completed.
func Summarize(nodes []types.NodeSummary) types.ClusterSummary {
	totals := make(map[string]*clusterTotals)
	var summary types.ClusterSummary

	for _, node := range nodes {
		for _, rs := range node.Resources {
			if !rs.Total.Numeric {
				continue
			}
			t, ok := totals[rs.Name]
			if !ok {
				t = &clusterTotals{}
				totals[rs.Name] = t
			}
			excluding := *rs.AvailableExcluding
			including := *rs.AvailableIncluding
			t.total += rs.Total.Value
			t.excluding += excluding
			t.including += including

			if excluding > 0 {
				summary.AvailableExcluding = append(summary.AvailableExcluding, types.NodeAvailability{
					NodeName: node.NodeName, Address: node.Address, Resource: rs.Name, Available: excluding,
				})
			}
			if including > 0 {
				summary.AvailableIncluding = append(summary.AvailableIncluding, types.NodeAvailability{
					NodeName: node.NodeName, Address: node.Address, Resource: rs.Name, Available: including,
				})
			}
		}
	}

	summary.Resources = make([]types.ClusterResource, 0, len(totals))
	for _, name := range util.SortedKeys(totals) {
		t := totals[name]
		summary.Resources = append(summary.Resources, types.ClusterResource{
			Name:               name,
			Total:              t.total,
			AvailableExcluding: t.excluding,
			AvailableIncluding: t.including,
			UtilizationExcl:    Utilization(t.excluding, t.total),
			UtilizationIncl:    Utilization(t.including, t.total),
		})
	}
	sortAvailability(summary.AvailableExcluding)
	sortAvailability(summary.AvailableIncluding)
	return summary
}

// SortNodes orders node summaries by (address, name) ascending.
func SortNodes(nodes []types.NodeSummary) {
	slices.SortFunc(nodes, func(a, b types.NodeSummary) int {
		return cmp.Or(
			cmp.Compare(a.Address, b.Address),
			cmp.Compare(a.NodeName, b.NodeName),
		)
	})
}

func sortAvailability(list []types.NodeAvailability) {
	slices.SortFunc(list, func(a, b types.NodeAvailability) int {
		return cmp.Or(
			cmp.Compare(a.Address, b.Address),
			cmp.Compare(a.NodeName, b.NodeName),
			cmp.Compare(a.Resource, b.Resource),
		)
	})
}
