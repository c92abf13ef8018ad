// Package metrics exports a report as Prometheus gauges in the node_exporter
// textfile format.
package metrics

import (
	"fmt"

	"github.com/mitchellh/go-homedir"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/xuanhe95/kubeScripts/internal/report"
)

const (
	modeActive = "active"
	modeAll    = "all"
)

type gauges struct {
	nodeAllocatable    *prometheus.GaugeVec
	nodeRequested      *prometheus.GaugeVec
	clusterAllocatable *prometheus.GaugeVec
	clusterAvailable   *prometheus.GaugeVec
	clusterUtilization *prometheus.GaugeVec
	skippedNodes       prometheus.Gauge
}

func newGauges(reg prometheus.Registerer) *gauges {
	factory := promauto.With(reg)
	return &gauges{
		nodeAllocatable: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "kube_resource_checker_node_allocatable",
				Help: "Allocatable amount of a matched resource on a node.",
			},
			[]string{"node", "address", "resource"},
		),
		nodeRequested: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "kube_resource_checker_node_requested",
				Help: "Requested amount of a matched resource on a node by accounting mode.",
			},
			[]string{"node", "address", "resource", "mode"},
		),
		clusterAllocatable: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "kube_resource_checker_cluster_allocatable",
				Help: "Allocatable amount of a matched resource across selected nodes.",
			},
			[]string{"resource"},
		),
		clusterAvailable: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "kube_resource_checker_cluster_available",
				Help: "Available amount of a matched resource across selected nodes by accounting mode.",
			},
			[]string{"resource", "mode"},
		),
		clusterUtilization: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "kube_resource_checker_cluster_utilization_ratio",
				Help: "Fraction of a matched resource that is not available, by accounting mode.",
			},
			[]string{"resource", "mode"},
		),
		skippedNodes: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "kube_resource_checker_skipped_nodes",
				Help: "Selected nodes skipped because they have no InternalIP address.",
			},
		),
	}
}

func (g *gauges) observe(rep *report.Report) {
	for _, node := range rep.Nodes {
		for _, rs := range node.Resources {
			if !rs.Total.Numeric {
				continue
			}
			g.nodeAllocatable.WithLabelValues(node.NodeName, node.Address, rs.Name).Set(float64(rs.Total.Value))
			g.nodeRequested.WithLabelValues(node.NodeName, node.Address, rs.Name, modeActive).Set(float64(*rs.UsedActive))
			g.nodeRequested.WithLabelValues(node.NodeName, node.Address, rs.Name, modeAll).Set(float64(*rs.UsedAll))
		}
	}
	for _, res := range rep.Cluster.Resources {
		g.clusterAllocatable.WithLabelValues(res.Name).Set(float64(res.Total))
		g.clusterAvailable.WithLabelValues(res.Name, modeActive).Set(float64(res.AvailableExcluding))
		g.clusterAvailable.WithLabelValues(res.Name, modeAll).Set(float64(res.AvailableIncluding))
		g.clusterUtilization.WithLabelValues(res.Name, modeActive).Set(res.UtilizationExcl)
		g.clusterUtilization.WithLabelValues(res.Name, modeAll).Set(res.UtilizationIncl)
	}
	g.skippedNodes.Set(float64(len(rep.SkippedNodes)))
}

// Gather registers the report's gauges on a fresh registry.
func Gather(rep *report.Report) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	newGauges(reg).observe(rep)
	return reg
}

// Export writes the report's gauges to path. The file is written to a
// temporary file first and renamed, so collectors never read a partial file.
func Export(rep *report.Report, path string) error {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("failed to expand textfile path: %w", err)
	}
	if err := prometheus.WriteToTextfile(expanded, Gather(rep)); err != nil {
		return fmt.Errorf("failed to write textfile %s: %w", expanded, err)
	}
	return nil
}
