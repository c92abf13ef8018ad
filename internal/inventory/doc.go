// Package inventory fetches the node and workload snapshots a run works on.
//
// Two Source implementations exist:
//
//	KubeSource  lists Nodes and Pods through client-go, page by page
//	FileSource  reads `kubectl get nodes -o json` and `kubectl get pods -A -o json`
//	            dumps (JSON or YAML) for offline analysis
//
// Both snapshots are taken once per run. There is no consistency guarantee
// between them; a pod scheduled between the two lists may be missed.
//
// Fetch failures are returned as *FetchError and abort the run. A node without
// an InternalIP address is skipped with a warning and reported by Skipped.
package inventory
