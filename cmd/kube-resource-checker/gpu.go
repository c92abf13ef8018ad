package main

import (
	"github.com/spf13/cobra"

	"github.com/xuanhe95/kubeScripts/internal/config"
	"github.com/xuanhe95/kubeScripts/internal/match"
)

const defaultGPUResource = "nvidia.com/gpu"

var (
	gpuLabel    string
	gpuResource string
	gpuTextfile string
)

func gpuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gpu [label]",
		Short: "Report GPU capacity of nodes matching a label selector",
		Long: `Report the nvidia.com/gpu capacity of every node matching a Kubernetes
label selector, with the pods using it.

Examples:
  kube-resource-checker gpu environment=production
  kube-resource-checker gpu -l 'gpu-type in (a100,h100)' --resource amd.com/gpu`,
		Args: cobra.MaximumNArgs(1),
		RunE: runGPU,
	}

	cmd.Flags().StringVarP(&gpuLabel, "label", "l", "", "Label selector used to select nodes")
	cmd.Flags().StringVar(&gpuResource, "resource", defaultGPUResource, "Exact name of the GPU resource")
	cmd.Flags().StringVar(&gpuTextfile, "textfile", "", "Also write Prometheus metrics to this textfile")

	return cmd
}

func runGPU(cmd *cobra.Command, args []string) error {
	opts, err := resolveGPUOptions(cmd, args)
	if err != nil {
		return err
	}
	return execute(cmd.Context(), opts, match.Exact(opts.Keyword))
}

func resolveGPUOptions(cmd *cobra.Command, args []string) (config.Options, error) {
	flags := cmd.Flags()
	return resolveOptions(flags,
		func(o *config.Options) {
			o.Keyword = defaultGPUResource
			o.SelectorMode = match.SelectorExact
			if len(args) > 0 {
				o.Label = args[0]
			}
		},
		func(o *config.Options) {
			if flags.Changed("label") {
				o.Label = gpuLabel
			}
			if flags.Changed("resource") {
				o.Keyword = gpuResource
			}
			if flags.Changed("textfile") {
				o.Textfile = gpuTextfile
			}
		},
	)
}
