// Package quantity normalizes resource amount strings into comparable integers.
//
// # Modes
//
//	digits  Strip every non-digit character and parse the rest. "8" -> 8,
//	        "32Gi" -> 32, "0.5" -> 5, "500m" -> 500. Matches the kubectl-era
//	        scripts bit for bit; this is the default.
//	units   Parse as a Kubernetes quantity and round up to whole units.
//	        "32Gi" -> 34359738368, "500m" -> 1.
//	milli   Parse as a Kubernetes quantity in milli-units. "500m" -> 500,
//	        "2" -> 2000.
//
// Every mode rejects negative results. A failed parse is never fatal: callers
// treat the amount as opaque or skip the single request.
package quantity
