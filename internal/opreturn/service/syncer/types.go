//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE
package syncer

import (
	"context"
	"time"

	"github.com/goodnatureofminers/opreturn-explorer-backend/internal/opreturn/chain"
	"github.com/goodnatureofminers/opreturn-explorer-backend/internal/opreturn/model"
)

// ChainSource is the upstream the syncer reads blocks and transactions from.
type ChainSource interface {
	TipHeight(ctx context.Context) (uint64, error)
	BlockHash(ctx context.Context, height uint64) (string, error)
	Block(ctx context.Context, hash string) (model.Block, error)
	BlockTxIDs(ctx context.Context, hash string) ([]string, error)
	Transaction(ctx context.Context, txid string) (*chain.Transaction, error)
}

// Repository is the persistence gateway used by the syncer.
type Repository interface {
	LatestBlockHeight(ctx context.Context) (uint64, bool, error)
	MissingBlockHeights(ctx context.Context, from, to, limit uint64) ([]uint64, error)
	SaveBlock(ctx context.Context, block model.Block) error
	SaveTransaction(ctx context.Context, tx model.Transaction) error
	SaveExtractedData(ctx context.Context, data model.ExtractedData) error
}

type Metrics interface {
	ObserveRun(err error, heights uint64, started time.Time)
	ObserveSkippedRun()
	ObserveProcessHeight(err error, height uint64, started time.Time)
	ObserveProcessTransaction(err error, hasOpReturn bool, started time.Time)
	SetProgress(percent float64)
}

type HeightRangeResolver interface {
	Resolve(ctx context.Context) (HeightRange, error)
}

type BlockProcessor interface {
	Process(ctx context.Context, height uint64) error
}

type TxProcessor interface {
	Process(ctx context.Context, block model.Block, txid string) (bool, error)
}

// Syncer runs a single sync pass.
type Syncer interface {
	Sync(ctx context.Context)
}
