package history

// BuildTrend pairs each snapshot with deltas against its predecessor.
// Snapshots must be ordered oldest first.
func BuildTrend(snapshots []Snapshot) []TrendPoint {
	points := make([]TrendPoint, 0, len(snapshots))
	for i, current := range snapshots {
		point := TrendPoint{Snapshot: current}
		if i > 0 {
			prev := snapshots[i-1]
			point.DeltaFunctions = current.FunctionCount - prev.FunctionCount
			point.DeltaEdges = current.EdgeCount - prev.EdgeCount
			point.DeltaMaxLevel = current.MaxLevel - prev.MaxLevel
		}
		points = append(points, point)
	}
	return points
}
