// kube-resource-checker reports the capacity and utilization of a class of
// schedulable resources on the nodes matching a label.
//
// Installation:
//
//	go build -o kube-resource-checker ./cmd/kube-resource-checker
//	mv kube-resource-checker /usr/local/bin/
//
// Usage:
//
//	kube-resource-checker check -l environment=production -r gpu
//	kube-resource-checker check gpu 'gpu-type=a100.*'
//	kube-resource-checker check -l pool=cpu -r '^(cpu|memory)$' --quantity-mode milli -o json
//	kube-resource-checker gpu environment=production
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/xuanhe95/kubeScripts/internal/config"
)

var (
	version = "dev"

	outputFmt   string
	kubeconfig  string
	kubeContext string
	configFile  string
	logLevel    string
	noColor     bool
	timeout     time.Duration
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kube-resource-checker",
		Short: "Report resource capacity and utilization of Kubernetes nodes",
		Long: `kube-resource-checker lists the nodes matching a label, finds the allocatable
resources whose names match a keyword, and reports how much of each is
requested by running pods and by pods in any phase.

Options are read from ~/.kube-resource-checker.yaml (or --config), then from
KRC_LABEL, KRC_RESOURCE and KRC_KUBECONFIG, then from flags.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&outputFmt, "output", "o", "table", "Output format: table, json, yaml")
	pf.StringVar(&kubeconfig, "kubeconfig", "", "Path to the kubeconfig file (default: KUBECONFIG or ~/.kube/config)")
	pf.StringVar(&kubeContext, "context", "", "Kubeconfig context to use")
	pf.StringVar(&configFile, "config", "", "Config file (default "+config.DefaultFile+")")
	pf.StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	pf.BoolVar(&noColor, "no-color", false, "Disable colored table output")
	pf.DurationVar(&timeout, "timeout", time.Minute, "Deadline for fetching the inventory (0 disables)")

	// Add subcommands
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(gpuCmd())

	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, config.ErrUsage) {
			fmt.Fprintln(os.Stderr, "Run 'kube-resource-checker --help' for usage.")
		}
		os.Exit(1)
	}
}
