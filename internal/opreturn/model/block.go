// Package model defines domain models for OP_RETURN indexing.
package model

import "time"

// Block represents a chain block persisted as the unit of sync progress.
type Block struct {
	Hash              string
	Height            uint64
	TransactionCount  uint32
	Timestamp         time.Time
	Size              uint32
	Weight            uint32
	MerkleRoot        string
	Difficulty        float64
	Nonce             uint32
	Version           int32
	PreviousBlockHash *string
}
