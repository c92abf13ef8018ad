package capacity

import (
	"fmt"

	"github.com/xuanhe95/kubeScripts/internal/quantity"
	"github.com/xuanhe95/kubeScripts/internal/types"
)

// Consumption holds the requested quantities of one node's matched resources.
type Consumption struct {
	Active map[string]int64
	All    map[string]int64

	// Consumers holds the descriptors of Running workload requests per
	// resource, in workload iteration order.
	Consumers map[string][]string
}

// ConsumerDescriptor formats the identity of an active consumer.
func ConsumerDescriptor(w types.Workload, resourceName, raw string) string {
	return fmt.Sprintf("%s/%s requests %s: %s", w.Namespace, w.Name, resourceName, raw)
}

// Accumulate sums the requests of the workloads assigned to nodeName for every
// matched resource with a numeric total. Requests that fail to parse are
// skipped individually.
func Accumulate(nodeName string, matched map[string]types.Amount, workloads []types.Workload, parse quantity.Parser) Consumption {
	c := Consumption{
		Active:    make(map[string]int64),
		All:       make(map[string]int64),
		Consumers: make(map[string][]string, len(matched)),
	}
	for name, total := range matched {
		c.Consumers[name] = []string{}
		if total.Numeric {
			c.Active[name] = 0
			c.All[name] = 0
		}
	}

	for _, w := range workloads {
		if w.NodeName == "" || w.NodeName != nodeName {
			continue
		}
		active := w.Phase.Active()
		for _, container := range w.Containers {
			for name, total := range matched {
				if !total.Numeric {
					continue
				}
				raw := container.Requests[name]
				if raw == "" {
					continue
				}
				v, err := parse(raw)
				if err != nil {
					continue
				}
				c.All[name] += v
				if active {
					c.Active[name] += v
					c.Consumers[name] = append(c.Consumers[name], ConsumerDescriptor(w, name, raw))
				}
			}
		}
	}
	return c
}
