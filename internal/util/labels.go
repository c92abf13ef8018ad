package util

import "sort"

// LabelPairs renders labels as sorted "key=value" strings.
func LabelPairs(lbls map[string]string) []string {
	pairs := make([]string, 0, len(lbls))
	for k, v := range lbls {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return pairs
}
