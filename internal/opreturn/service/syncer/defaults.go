package syncer

import "time"

const (
	DefaultBlockBatchSize        = 5
	DefaultTxBatchSize           = 3
	DefaultGapRepairLimit uint64 = 100
	DefaultSyncInterval          = 10 * time.Minute
)

// Config tunes a sync pass. Zero batch sizes and gap limit fall back to the defaults.
// InitialHeight is taken as given so that height 0 can be indexed.
type Config struct {
	InitialHeight  uint64
	BlockBatchSize int
	TxBatchSize    int
	RepairGaps     bool
	GapRepairLimit uint64
}

func (c Config) withDefaults() Config {
	if c.BlockBatchSize <= 0 {
		c.BlockBatchSize = DefaultBlockBatchSize
	}
	if c.TxBatchSize <= 0 {
		c.TxBatchSize = DefaultTxBatchSize
	}
	if c.GapRepairLimit == 0 {
		c.GapRepairLimit = DefaultGapRepairLimit
	}
	return c
}
