package model

import (
	"strings"
	"time"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// OpReturnFilter selects a page of OP_RETURN records. An empty Search matches everything.
type OpReturnFilter struct {
	Search string
	Limit  uint64
	Offset uint64
}

// SearchPattern returns Search as a substring ILIKE pattern with wildcards escaped.
func (f OpReturnFilter) SearchPattern() string {
	return "%" + likeEscaper.Replace(f.Search) + "%"
}

// OpReturnRecord is an extracted payload joined with its transaction and block context.
type OpReturnRecord struct {
	TxHash         string
	BlockHeight    uint64
	BlockHash      string
	BlockTimestamp time.Time
	PayloadText    *string
	PayloadHex     string
	FeeSats        uint64
	SenderAddress  *string
	DataSizeBytes  uint32
	DataType       DataType
	IsUTF8Valid    bool
	CreatedAt      time.Time
}

// Stats aggregates the indexed OP_RETURN data set.
type Stats struct {
	TotalTransactions  uint64
	TotalFees          uint64
	AverageFee         float64
	TotalBlocks        uint64
	FirstBlock         uint64
	LatestBlock        uint64
	TotalDataSize      uint64
	AverageDataSize    float64
	BlocksWithOpReturn uint64
	TextDataCount      uint64
	HexDataCount       uint64
	BinaryDataCount    uint64
	JSONDataCount      uint64
	OtherDataCount     uint64
}

// BlockInfo is a stored block with the number of its OP_RETURN transactions.
type BlockInfo struct {
	Block
	OpReturnCount uint64
	CreatedAt     time.Time
}
