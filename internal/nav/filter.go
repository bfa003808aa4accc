package nav

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// filterRows narrows rows to those whose labels fuzzily match the query,
// preserving the original view order. Substring matching on the node ID is
// the fallback for queries the fuzzy ranker rejects outright.
func filterRows(rows []Row, query string) []Row {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return rows
	}
	labels := make([]string, len(rows))
	for i, row := range rows {
		labels[i] = row.Node.Label
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) > 0 {
		keep := make(map[int]struct{}, len(ranks))
		for _, rank := range ranks {
			keep[rank.OriginalIndex] = struct{}{}
		}
		filtered := make([]Row, 0, len(keep))
		for i, row := range rows {
			if _, ok := keep[i]; ok {
				filtered = append(filtered, row)
			}
		}
		return filtered
	}
	lower := strings.ToLower(trimmed)
	filtered := make([]Row, 0, len(rows))
	for _, row := range rows {
		if strings.Contains(strings.ToLower(row.Node.ID), lower) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}
