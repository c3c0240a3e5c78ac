package query

import (
	"context"
	"time"

	"github.com/goodnatureofminers/opreturn-explorer-backend/internal/opreturn/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Repository interface {
		ListOpReturns(ctx context.Context, filter model.OpReturnFilter) ([]model.OpReturnRecord, uint64, error)
		Stats(ctx context.Context) (model.Stats, error)
		BlockInfo(ctx context.Context, height uint64) (*model.BlockInfo, bool, error)
	}

	Cache interface {
		Get(ctx context.Context, key string) ([]byte, bool, error)
		Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	}

	Metrics interface {
		ObserveCacheLookup(key, result string)
	}
)
