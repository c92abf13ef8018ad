// Package testutil provides shared test helpers for the kube-resource-checker packages.
// Import this in test files to avoid duplicating node, pod and fixture builders.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/xuanhe95/kubeScripts/internal/types"
)

// WriteFixture writes content to name inside a fresh temp dir and returns the path.
// Fails the test immediately if the file can't be written.
func WriteFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600), "failed to write fixture %s", path)
	return path
}

// MakeNode creates a domain Node with the given allocatable amounts.
func MakeNode(name, address string, labels, allocatable map[string]string) types.Node {
	return types.Node{
		Name:        name,
		Address:     address,
		Labels:      labels,
		Allocatable: allocatable,
	}
}

// MakeWorkload creates a single-container domain Workload. Pass an empty node
// for an unscheduled workload.
func MakeWorkload(ns, name, node string, phase types.Phase, requests map[string]string) types.Workload {
	return types.Workload{
		Namespace: ns,
		Name:      name,
		NodeName:  node,
		Phase:     phase,
		Containers: []types.Container{
			{Name: "main", Requests: requests},
		},
	}
}

// MakeCoreNode creates a corev1 Node with an InternalIP address (omitted when
// ip is empty) and the given allocatable quantities.
func MakeCoreNode(name, ip string, labels, allocatable map[string]string) *corev1.Node {
	node := &corev1.Node{
		ObjectMeta: metav1.ObjectMeta{
			Name:   name,
			Labels: labels,
		},
		Status: corev1.NodeStatus{
			Allocatable: resourceList(allocatable),
			Addresses: []corev1.NodeAddress{
				{Type: corev1.NodeHostName, Address: name},
			},
		},
	}
	if ip != "" {
		node.Status.Addresses = append(node.Status.Addresses, corev1.NodeAddress{
			Type:    corev1.NodeInternalIP,
			Address: ip,
		})
	}
	return node
}

// MakeCorePod creates a single-container corev1 Pod.
func MakeCorePod(ns, name, node string, phase corev1.PodPhase, requests map[string]string) *corev1.Pod {
	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: ns,
		},
		Spec: corev1.PodSpec{
			NodeName: node,
			Containers: []corev1.Container{
				{
					Name:  "main",
					Image: "registry.k8s.io/pause:3.9",
					Resources: corev1.ResourceRequirements{
						Requests: resourceList(requests),
					},
				},
			},
		},
		Status: corev1.PodStatus{Phase: phase},
	}
}

func resourceList(amounts map[string]string) corev1.ResourceList {
	if amounts == nil {
		return nil
	}
	list := make(corev1.ResourceList, len(amounts))
	for name, amount := range amounts {
		list[corev1.ResourceName(name)] = resource.MustParse(amount)
	}
	return list
}
