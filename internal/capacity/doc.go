// Package capacity is the utilization accounting engine.
//
// # Pipeline
//
//	Accumulate     per node: sum workload requests for each matched resource,
//	               once over every phase ("all") and once over Running pods ("active")
//	AggregateNode  per node: match resources, accumulate, derive availability
//	Aggregator     runs AggregateNode over every node with a bounded worker pool
//	Summarize      single-threaded fold of node summaries into cluster totals
//
// # Accounting
//
// For every resource with a numeric total:
//
//	availableExcluding = total - usedActive
//	availableIncluding = total - usedAll
//	utilization        = 1 - available/total, and 0 when total is 0
//
// usedActive never exceeds usedAll because every active request is also
// counted in the all-phase total. Resources whose total does not parse are
// listed with their raw amount and excluded from arithmetic and from the fold.
//
// # Concurrency
//
// Node tasks share the workload snapshot read-only and write their result into
// their own slot of a pre-sized slice. The WaitGroup join before Summarize is
// the only synchronization point. Output order is fixed by SortNodes, never by
// completion order.
package capacity
