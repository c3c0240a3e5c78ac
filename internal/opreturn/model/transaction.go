package model

import "time"

// Transaction is a persisted transaction row. HasOpReturn is set iff an
// ExtractedData record is written for the same hash.
type Transaction struct {
	Hash             string
	BlockHash        string
	BlockHeight      uint64
	FeeSats          uint64
	Size             uint32
	Weight           uint32
	Version          int32
	Locktime         uint32
	InputCount       uint32
	OutputCount      uint32
	HasOpReturn      bool
	ConfirmationTime *time.Time
}
