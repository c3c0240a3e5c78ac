package transport

import (
	"context"
	"time"

	"github.com/goodnatureofminers/opreturn-explorer-backend/internal/opreturn/model"
	"github.com/goodnatureofminers/opreturn-explorer-backend/internal/opreturn/service/query"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	QueryService interface {
		ListOpReturns(ctx context.Context, page, limit int) (query.Page, error)
		Search(ctx context.Context, q string, page, limit int) (query.Page, error)
		Stats(ctx context.Context) (model.Stats, error)
		BlockInfo(ctx context.Context, height uint64) (*model.BlockInfo, error)
	}

	Metrics interface {
		ObserveRequest(route, method string, code int, started time.Time)
	}
)
