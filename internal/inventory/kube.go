package inventory

import (
	"context"
	"fmt"
	"sync"

	"github.com/mitchellh/go-homedir"
	"go.uber.org/zap"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/tools/pager"

	"github.com/xuanhe95/kubeScripts/internal/match"
	"github.com/xuanhe95/kubeScripts/internal/types"
)

// DefaultPageSize is the chunk size used when listing nodes and pods.
const DefaultPageSize = 500

// KubeSource lists nodes and pods from the API server.
type KubeSource struct {
	logger   *zap.Logger
	client   kubernetes.Interface
	pageSize int64

	mu      sync.Mutex
	skipped []string
}

// NewKubeSource creates a KubeSource over client.
func NewKubeSource(client kubernetes.Interface, logger *zap.Logger) *KubeSource {
	return &KubeSource{
		logger:   logger.Named("inventory"),
		client:   client,
		pageSize: DefaultPageSize,
	}
}

// SetPageSize overrides the list chunk size. Values <= 0 disable chunking.
func (s *KubeSource) SetPageSize(n int64) {
	s.pageSize = n
}

// ListNodes lists nodes matching sel. When sel can be evaluated by the API
// server it is sent as a label selector; it is re-checked client-side either way.
func (s *KubeSource) ListNodes(ctx context.Context, sel match.Selector) ([]types.Node, error) {
	opts := metav1.ListOptions{}
	if sel != nil {
		opts.LabelSelector = sel.ServerSide()
	}

	f := &nodeFilter{logger: s.logger, sel: sel}
	p := pager.New(pager.SimplePageFunc(func(opts metav1.ListOptions) (runtime.Object, error) {
		return s.client.CoreV1().Nodes().List(ctx, opts)
	}))
	p.PageSize = s.pageSize

	err := p.EachListItem(ctx, opts, func(obj runtime.Object) error {
		node, ok := obj.(*corev1.Node)
		if !ok {
			return fmt.Errorf("unexpected object %T in node list", obj)
		}
		f.add(node)
		return nil
	})
	if err != nil {
		return nil, &FetchError{Op: "list nodes", Err: err}
	}

	s.mu.Lock()
	s.skipped = f.skipped
	s.mu.Unlock()

	s.logger.Debug("Listed nodes",
		zap.String("selector", opts.LabelSelector),
		zap.Int("count", len(f.nodes)),
		zap.Int("skipped", len(f.skipped)),
	)
	return f.nodes, nil
}

// ListAllWorkloads lists the pods of every namespace.
func (s *KubeSource) ListAllWorkloads(ctx context.Context) ([]types.Workload, error) {
	var workloads []types.Workload
	p := pager.New(pager.SimplePageFunc(func(opts metav1.ListOptions) (runtime.Object, error) {
		return s.client.CoreV1().Pods(metav1.NamespaceAll).List(ctx, opts)
	}))
	p.PageSize = s.pageSize

	err := p.EachListItem(ctx, metav1.ListOptions{}, func(obj runtime.Object) error {
		pod, ok := obj.(*corev1.Pod)
		if !ok {
			return fmt.Errorf("unexpected object %T in pod list", obj)
		}
		workloads = append(workloads, ConvertPod(pod))
		return nil
	})
	if err != nil {
		return nil, &FetchError{Op: "list pods", Err: err}
	}

	s.logger.Debug("Listed pods", zap.Int("count", len(workloads)))
	return workloads, nil
}

// Skipped returns the nodes dropped by the last ListNodes call.
func (s *KubeSource) Skipped() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.skipped...)
}

// NewClientset builds a clientset from the default kubeconfig loading rules
// (KUBECONFIG, ~/.kube/config, in-cluster). A non-empty kubeconfig path or
// context overrides the defaults.
func NewClientset(kubeconfig, kubeContext string) (kubernetes.Interface, error) {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	if kubeconfig != "" {
		path, err := homedir.Expand(kubeconfig)
		if err != nil {
			return nil, fmt.Errorf("failed to expand kubeconfig path: %w", err)
		}
		rules.ExplicitPath = path
	}
	overrides := &clientcmd.ConfigOverrides{CurrentContext: kubeContext}

	config, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, overrides).ClientConfig()
	if err != nil {
		return nil, err
	}
	return kubernetes.NewForConfig(config)
}

var (
	_ Source       = (*KubeSource)(nil)
	_ SkipReporter = (*KubeSource)(nil)
)
