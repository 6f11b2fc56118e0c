package common

import "sort"

// NMSConfig defines parameters for Non-Maximum Suppression.
type NMSConfig struct {
	IoUThreshold float32 // Overlap threshold for suppression.
	ClassAware   bool    // If true, suppress only within same label.
}

// ApplyGreedyNMS performs standard greedy Non-Maximum Suppression.
//
// Arguments:
//   - detections: Detections in any order. The slice is not modified.
//   - config: IoU threshold above which the lower-confidence box is suppressed.
//
// Returns:
//   - Surviving detections sorted by descending confidence. Ties keep input order.
//
// @example
// kept := ApplyGreedyNMS(dets, NMSConfig{IoUThreshold: 0.5, ClassAware: true})
func ApplyGreedyNMS(detections []BoundingBox, config NMSConfig) []BoundingBox {
	n := len(detections)
	if n == 0 {
		return nil
	}

	sorted := append([]BoundingBox(nil), detections...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Confidence > sorted[j].Confidence
	})

	filtered := make([]BoundingBox, 0, n)
	used := make([]bool, n)

	for i := 0; i < n; i++ {
		if used[i] {
			continue
		}

		anchor := sorted[i]
		filtered = append(filtered, anchor)
		used[i] = true

		for j := i + 1; j < n; j++ {
			if used[j] {
				continue
			}
			if config.ClassAware && anchor.Label != sorted[j].Label {
				continue
			}
			if anchor.IoU(&sorted[j]) > config.IoUThreshold {
				used[j] = true
			}
		}
	}

	return filtered
}
