package types

import (
	"encoding/json"
	"strconv"
)

// Amount is a parsed resource quantity. Numeric amounts take part in
// arithmetic; opaque amounts are carried for display only.
type Amount struct {
	Numeric bool
	Value   int64  // valid only when Numeric
	Raw     string // amount as advertised, always set
}

// NumericAmount builds a numeric Amount.
func NumericAmount(raw string, v int64) Amount {
	return Amount{Numeric: true, Value: v, Raw: raw}
}

// OpaqueAmount builds a display-only Amount.
func OpaqueAmount(raw string) Amount {
	return Amount{Raw: raw}
}

// String returns the parsed value for numeric amounts and the raw string otherwise.
func (a Amount) String() string {
	if a.Numeric {
		return strconv.FormatInt(a.Value, 10)
	}
	return a.Raw
}

// MarshalJSON encodes numeric amounts as JSON numbers and opaque amounts as strings.
func (a Amount) MarshalJSON() ([]byte, error) {
	if a.Numeric {
		return []byte(strconv.FormatInt(a.Value, 10)), nil
	}
	return json.Marshal(a.Raw)
}

// ResourceSummary is the per-node accounting of one matched resource.
//
// The quantity fields are nil when Total is opaque; a renderer shows them as "N/A".
type ResourceSummary struct {
	Name  string `json:"name"`
	Total Amount `json:"total"`

	UsedActive         *int64 `json:"usedActive"`
	UsedAll            *int64 `json:"usedAll"`
	AvailableExcluding *int64 `json:"availableExcludingComplete"`
	AvailableIncluding *int64 `json:"availableIncludingComplete"`

	// Consumers lists "namespace/name requests <resource>: <raw>" for every
	// Running workload request, in workload iteration order.
	Consumers []string `json:"consumers"`
}

// NodeSummary is the result of aggregating one node.
type NodeSummary struct {
	NodeName  string            `json:"nodeName"`
	Address   string            `json:"address"`
	Resources []ResourceSummary `json:"resources"`
}

// ClusterResource is the cluster-wide fold of one resource with a numeric total.
type ClusterResource struct {
	Name               string  `json:"name"`
	Total              int64   `json:"total"`
	AvailableExcluding int64   `json:"availableExcludingComplete"`
	AvailableIncluding int64   `json:"availableIncludingComplete"`
	UtilizationExcl    float64 `json:"utilizationExcludingComplete"`
	UtilizationIncl    float64 `json:"utilizationIncludingComplete"`
}

// NodeAvailability is one (node, resource) pair that still has capacity left.
type NodeAvailability struct {
	NodeName  string `json:"nodeName"`
	Address   string `json:"address"`
	Resource  string `json:"resource"`
	Available int64  `json:"available"`
}

// ClusterSummary is the fold of every node summary of a run.
type ClusterSummary struct {
	Resources []ClusterResource `json:"resources"`

	// Nodes with available > 0, sorted by (address, name, resource).
	AvailableExcluding []NodeAvailability `json:"availableExcludingComplete,omitempty"`
	AvailableIncluding []NodeAvailability `json:"availableIncludingComplete,omitempty"`
}
