package types

// Phase is the lifecycle phase of a workload.
type Phase string

const (
	PhasePending   Phase = "Pending"
	PhaseRunning   Phase = "Running" // Only Running workloads count as active consumers
	PhaseSucceeded Phase = "Succeeded"
	PhaseFailed    Phase = "Failed"
	PhaseUnknown   Phase = "Unknown"
)

// Active reports whether requests of a workload in this phase count toward
// active consumption.
func (p Phase) Active() bool {
	return p == PhaseRunning
}

// Node is the immutable snapshot of a cluster node taken at the start of a run.
type Node struct {
	Name    string
	Address string // InternalIP, informational

	Labels map[string]string

	// Allocatable maps resource name to its raw amount string as advertised
	// by the node, e.g. {"nvidia.com/gpu": "8", "memory": "263518764Ki"}.
	Allocatable map[string]string
}

// Container carries the resource requests of a single container.
type Container struct {
	Name     string
	Requests map[string]string
}

// Workload is the immutable snapshot of a pod taken at the start of a run.
type Workload struct {
	Namespace string
	Name      string

	// NodeName is empty for unscheduled workloads, which are never accounted.
	NodeName string
	Phase    Phase

	Containers []Container
}

// Key returns the "namespace/name" identity of the workload.
func (w Workload) Key() string {
	return w.Namespace + "/" + w.Name
}
