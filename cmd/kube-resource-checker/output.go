package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"sigs.k8s.io/yaml"

	"github.com/xuanhe95/kubeScripts/internal/report"
	"github.com/xuanhe95/kubeScripts/internal/types"
)

const (
	colorAvailable = "\033[93m" // Bright yellow
	colorConsumer  = "\033[92m" // Bright green
	colorReset     = "\033[0m"

	notAvailable = "N/A"
)

// palette wraps text in ANSI colors when enabled.
type palette bool

func (p palette) paint(color, s string) string {
	if !p {
		return s
	}
	return color + s + colorReset
}

// outputResult outputs the report in the specified format.
func outputResult(rep *report.Report, format string, color bool) error {
	switch format {
	case "json":
		return outputJSON(rep)
	case "yaml":
		return outputYAML(rep)
	default:
		return outputTable(rep, palette(color))
	}
}

func outputJSON(result interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func outputYAML(result interface{}) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// formatPercent renders a ratio as a percentage with two decimals.
func formatPercent(ratio float64) string {
	return decimal.NewFromFloat(ratio).Shift(2).StringFixed(2) + "%"
}

func formatOptional(v *int64) string {
	if v == nil {
		return notAvailable
	}
	return fmt.Sprintf("%d", *v)
}

func outputTable(rep *report.Report, p palette) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "LABEL:\t%s\n", rep.Label)
	fmt.Fprintf(w, "RESOURCE:\t%s\n", rep.Keyword)
	fmt.Fprintf(w, "NODES:\t%d\n", len(rep.Nodes))
	if len(rep.SkippedNodes) > 0 {
		fmt.Fprintf(w, "SKIPPED:\t%s\n", strings.Join(rep.SkippedNodes, ", "))
	}
	fmt.Fprintln(w)

	if len(rep.Nodes) == 0 {
		fmt.Fprintf(w, "No resources found matching keyword '%s' on nodes with label '%s'.\n", rep.Keyword, rep.Label)
		return nil
	}

	fmt.Fprintln(w, "NODE\tADDRESS\tRESOURCE\tTOTAL\tUSED\tUSED (ALL)\tAVAILABLE\tAVAILABLE (ALL)")
	for _, node := range rep.Nodes {
		for _, rs := range node.Resources {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				node.NodeName, node.Address, rs.Name, rs.Total.String(),
				formatOptional(rs.UsedActive), formatOptional(rs.UsedAll),
				formatOptional(rs.AvailableExcluding), formatOptional(rs.AvailableIncluding))
		}
	}

	outputConsumers(w, rep, p)
	outputCluster(w, rep.Cluster, p)
	return nil
}

func outputConsumers(w *tabwriter.Writer, rep *report.Report, p palette) {
	fmt.Fprintln(w, "\nPODS:")
	for _, node := range rep.Nodes {
		for _, rs := range node.Resources {
			if !rs.Total.Numeric {
				continue
			}
			fmt.Fprintf(w, "%s (%s) %s:\n", node.Address, node.NodeName, rs.Name)
			if len(rs.Consumers) == 0 {
				fmt.Fprintf(w, "  No Pods are using %s.\n", rs.Name)
				continue
			}
			for _, c := range rs.Consumers {
				fmt.Fprintf(w, "  %s\n", p.paint(colorConsumer, c))
			}
		}
	}
}

func outputCluster(w *tabwriter.Writer, cluster types.ClusterSummary, p palette) {
	if len(cluster.Resources) == 0 {
		return
	}

	fmt.Fprintln(w, "\nSUMMARY ACROSS ALL NODES:")
	fmt.Fprintln(w, "RESOURCE\tTOTAL\tAVAILABLE\tUTILIZATION\tAVAILABLE (ALL)\tUTILIZATION (ALL)")
	for _, res := range cluster.Resources {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%d\t%s\n",
			res.Name, res.Total,
			res.AvailableExcluding, formatPercent(res.UtilizationExcl),
			res.AvailableIncluding, formatPercent(res.UtilizationIncl))
	}

	outputAvailability(w, "EXCLUDING COMPLETE", cluster.AvailableExcluding, p)
	outputAvailability(w, "INCLUDING COMPLETE", cluster.AvailableIncluding, p)
}

func outputAvailability(w *tabwriter.Writer, mode string, list []types.NodeAvailability, p palette) {
	if len(list) == 0 {
		fmt.Fprintf(w, "\nNo nodes with available resources (%s).\n", strings.ToLower(mode))
		return
	}
	fmt.Fprintf(w, "\nNODES WITH AVAILABLE RESOURCES (%s): %s\n", mode, p.paint(colorAvailable, fmt.Sprintf("%d", len(list))))
	fmt.Fprintln(w, "ADDRESS\tNODE\tRESOURCE\tAVAILABLE")
	for _, a := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", a.Address, a.NodeName, a.Resource, a.Available)
	}
}
