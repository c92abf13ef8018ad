package inventory

import (
	"context"
	"os"
	"sync"

	"github.com/mitchellh/go-homedir"
	"go.uber.org/zap"
	corev1 "k8s.io/api/core/v1"
	"sigs.k8s.io/yaml"

	"github.com/xuanhe95/kubeScripts/internal/match"
	"github.com/xuanhe95/kubeScripts/internal/types"
)

// FileSource reads node and pod lists from kubectl dumps.
type FileSource struct {
	logger    *zap.Logger
	nodesPath string
	podsPath  string

	mu      sync.Mutex
	skipped []string
}

// NewFileSource creates a FileSource. Paths may start with "~".
func NewFileSource(nodesPath, podsPath string, logger *zap.Logger) *FileSource {
	return &FileSource{
		logger:    logger.Named("inventory"),
		nodesPath: nodesPath,
		podsPath:  podsPath,
	}
}

func readList(path string, into interface{}) error {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, into)
}

// ListNodes reads the nodes file and keeps the nodes matching sel.
func (s *FileSource) ListNodes(ctx context.Context, sel match.Selector) ([]types.Node, error) {
	var list corev1.NodeList
	if err := readList(s.nodesPath, &list); err != nil {
		return nil, &FetchError{Op: "read nodes file " + s.nodesPath, Err: err}
	}

	f := &nodeFilter{logger: s.logger, sel: sel}
	for i := range list.Items {
		f.add(&list.Items[i])
	}

	s.mu.Lock()
	s.skipped = f.skipped
	s.mu.Unlock()
	return f.nodes, nil
}

// ListAllWorkloads reads every pod of the pods file.
func (s *FileSource) ListAllWorkloads(ctx context.Context) ([]types.Workload, error) {
	var list corev1.PodList
	if err := readList(s.podsPath, &list); err != nil {
		return nil, &FetchError{Op: "read pods file " + s.podsPath, Err: err}
	}

	workloads := make([]types.Workload, 0, len(list.Items))
	for i := range list.Items {
		workloads = append(workloads, ConvertPod(&list.Items[i]))
	}
	return workloads, nil
}

// Skipped returns the nodes dropped by the last ListNodes call.
func (s *FileSource) Skipped() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.skipped...)
}

var (
	_ Source       = (*FileSource)(nil)
	_ SkipReporter = (*FileSource)(nil)
)
