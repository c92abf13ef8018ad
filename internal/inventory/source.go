package inventory

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	corev1 "k8s.io/api/core/v1"

	"github.com/xuanhe95/kubeScripts/internal/match"
	"github.com/xuanhe95/kubeScripts/internal/types"
)

// ErrMissingAddress reports a node without an InternalIP address.
var ErrMissingAddress = errors.New("node has no InternalIP address")

// Source returns the node and workload snapshots of a cluster.
type Source interface {
	// ListNodes returns every node whose labels satisfy sel.
	ListNodes(ctx context.Context, sel match.Selector) ([]types.Node, error)

	// ListAllWorkloads returns the pods of every namespace.
	ListAllWorkloads(ctx context.Context) ([]types.Workload, error)
}

// SkipReporter is implemented by sources that drop malformed nodes.
type SkipReporter interface {
	// Skipped returns the names of nodes dropped by the last ListNodes call.
	Skipped() []string
}

// FetchError wraps a failure to obtain a snapshot.
type FetchError struct {
	Op  string // "list nodes", "read pods file", ...
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// InternalIP returns the first InternalIP address of node.
func InternalIP(node *corev1.Node) (string, error) {
	for _, addr := range node.Status.Addresses {
		if addr.Type == corev1.NodeInternalIP {
			return addr.Address, nil
		}
	}
	return "", fmt.Errorf("%s: %w", node.Name, ErrMissingAddress)
}

// ConvertNode converts a corev1 Node. Allocatable quantities are rendered in
// their canonical string form.
func ConvertNode(node *corev1.Node) (types.Node, error) {
	addr, err := InternalIP(node)
	if err != nil {
		return types.Node{}, err
	}
	allocatable := make(map[string]string, len(node.Status.Allocatable))
	for name, q := range node.Status.Allocatable {
		allocatable[string(name)] = q.String()
	}
	return types.Node{
		Name:        node.Name,
		Address:     addr,
		Labels:      node.Labels,
		Allocatable: allocatable,
	}, nil
}

// ConvertPod converts a corev1 Pod. Only regular containers are converted;
// init containers never count toward consumption.
func ConvertPod(pod *corev1.Pod) types.Workload {
	containers := make([]types.Container, 0, len(pod.Spec.Containers))
	for _, c := range pod.Spec.Containers {
		requests := make(map[string]string, len(c.Resources.Requests))
		for name, q := range c.Resources.Requests {
			requests[string(name)] = q.String()
		}
		containers = append(containers, types.Container{Name: c.Name, Requests: requests})
	}
	return types.Workload{
		Namespace:  pod.Namespace,
		Name:       pod.Name,
		NodeName:   pod.Spec.NodeName,
		Phase:      types.Phase(pod.Status.Phase),
		Containers: containers,
	}
}

// nodeFilter converts and filters nodes, skipping those without an address.
type nodeFilter struct {
	logger  *zap.Logger
	sel     match.Selector
	nodes   []types.Node
	skipped []string
}

func (f *nodeFilter) add(node *corev1.Node) {
	if f.sel != nil && !f.sel.Matches(node.Labels) {
		return
	}
	n, err := ConvertNode(node)
	if err != nil {
		f.logger.Warn("Skipping node",
			zap.String("node", node.Name),
			zap.Error(err),
		)
		f.skipped = append(f.skipped, node.Name)
		return
	}
	f.nodes = append(f.nodes, n)
}
