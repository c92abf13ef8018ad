// Package match decides which nodes and which node resources take part in a run.
//
// # Resource keywords
//
// A Keyword is a case-insensitive predicate over resource names:
//
//	Pattern("gpu")          regular expression search, "nvidia.com/gpu" and "amd.com/gpu" match
//	Substring("nvidia.com/") literal substring, no regex metacharacters
//
// Resources(allocatable, keyword, parse) returns every matching resource with
// its parsed quantity. Amounts that fail to parse are kept as opaque values so
// the resource is still reported.
//
// # Label selectors
//
// A Selector chooses the working set of nodes:
//
//	ExactSelector   kubectl selector syntax ("env=prod"); pushed down to the API server
//	PatternSelector regular expression that must fully match at least one "key=value" label pair
package match
