package main

import (
	"github.com/spf13/cobra"

	"github.com/xuanhe95/kubeScripts/internal/config"
	"github.com/xuanhe95/kubeScripts/internal/match"
	"github.com/xuanhe95/kubeScripts/internal/quantity"
)

var (
	checkLabel        string
	checkKeyword      string
	checkSelectorMode string
	checkLiteral      bool
	checkQuantityMode string
	checkWorkers      int
	checkNodesFile    string
	checkPodsFile     string
	checkTextfile     string
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [resource_keyword [label]]",
		Short: "Report capacity and utilization of matching resources",
		Long: `Report, per node and across the cluster, the allocatable amount of every
resource whose name matches the keyword, how much of it is requested by
running pods, and how much by pods in any phase.

The label is a pattern matched against every key=value label of a node
(--selector-mode pattern, the default) or a Kubernetes label selector
(--selector-mode exact). The keyword is a case-insensitive regular
expression, or a plain substring with --literal.

Examples:
  # GPUs on production nodes
  kube-resource-checker check -l environment=production -r gpu

  # Positional form
  kube-resource-checker check rdma 'gpu-type=a100.*'

  # CPU and memory with unit-aware parsing, as JSON
  kube-resource-checker check -l pool=cpu -r '^(cpu|memory)$' --quantity-mode milli -o json

  # Offline, from kubectl dumps
  kubectl get nodes -o json > nodes.json
  kubectl get pods -A -o json > pods.json
  kube-resource-checker check -l pool=gpu -r gpu --nodes-file nodes.json --pods-file pods.json`,
		Args: cobra.MaximumNArgs(2),
		RunE: runCheck,
	}

	cmd.Flags().StringVarP(&checkLabel, "label", "l", "", "Label used to select nodes")
	cmd.Flags().StringVarP(&checkKeyword, "resource_keyword", "r", "", "Keyword matched against allocatable resource names")
	cmd.Flags().StringVar(&checkSelectorMode, "selector-mode", string(match.SelectorPattern), "Label matching: exact or pattern")
	cmd.Flags().BoolVar(&checkLiteral, "literal", false, "Match the keyword as a plain substring")
	cmd.Flags().StringVar(&checkQuantityMode, "quantity-mode", string(quantity.ModeDigits), "Quantity parsing: digits, units or milli")
	cmd.Flags().IntVar(&checkWorkers, "workers", 0, "Concurrent node aggregations (default: number of CPUs)")
	cmd.Flags().StringVar(&checkNodesFile, "nodes-file", "", "Read nodes from a 'kubectl get nodes -o json' dump")
	cmd.Flags().StringVar(&checkPodsFile, "pods-file", "", "Read pods from a 'kubectl get pods -A -o json' dump")
	cmd.Flags().StringVar(&checkTextfile, "textfile", "", "Also write Prometheus metrics to this textfile")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	opts, err := resolveCheckOptions(cmd, args)
	if err != nil {
		return err
	}

	keyword, err := match.NewKeyword(opts.Keyword, opts.KeywordLiteral)
	if err != nil {
		return usageError(err)
	}
	return execute(cmd.Context(), opts, keyword)
}

// resolveCheckOptions applies the positional "[resource_keyword [label]]"
// form first so that -r and -l take precedence over it.
func resolveCheckOptions(cmd *cobra.Command, args []string) (config.Options, error) {
	flags := cmd.Flags()
	return resolveOptions(flags,
		func(o *config.Options) {
			if len(args) > 0 {
				o.Keyword = args[0]
			}
			if len(args) > 1 {
				o.Label = args[1]
			}
		},
		func(o *config.Options) {
			if flags.Changed("label") {
				o.Label = checkLabel
			}
			if flags.Changed("resource_keyword") {
				o.Keyword = checkKeyword
			}
			if flags.Changed("selector-mode") {
				o.SelectorMode = match.SelectorMode(checkSelectorMode)
			}
			if flags.Changed("literal") {
				o.KeywordLiteral = checkLiteral
			}
			if flags.Changed("quantity-mode") {
				o.QuantityMode = quantity.Mode(checkQuantityMode)
			}
			if flags.Changed("workers") {
				o.Workers = checkWorkers
			}
			if flags.Changed("nodes-file") {
				o.NodesFile = checkNodesFile
			}
			if flags.Changed("pods-file") {
				o.PodsFile = checkPodsFile
			}
			if flags.Changed("textfile") {
				o.Textfile = checkTextfile
			}
		},
	)
}
