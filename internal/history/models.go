package history

import "time"

const SchemaVersion = 1

// Snapshot captures one scan's headline numbers.
type Snapshot struct {
	ID            string    `json:"id"`
	SchemaVersion int       `json:"schema_version"`
	Timestamp     time.Time `json:"timestamp"`
	FileCount     int       `json:"file_count"`
	FunctionCount int       `json:"function_count"`
	EdgeCount     int       `json:"edge_count"`
	LeafCount     int       `json:"leaf_count"`
	MaxLevel      int       `json:"max_level"`
	NoticeCount   int       `json:"notice_count"`
	DurationMS    int64     `json:"duration_ms"`
}

// TrendPoint is a snapshot enriched with deltas against its predecessor.
type TrendPoint struct {
	Snapshot
	DeltaFunctions int `json:"delta_functions"`
	DeltaEdges     int `json:"delta_edges"`
	DeltaMaxLevel  int `json:"delta_max_level"`
}
