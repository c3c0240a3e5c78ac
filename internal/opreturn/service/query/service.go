// Package query serves read-side views of the indexed OP_RETURN data.
package query

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goodnatureofminers/opreturn-explorer-backend/internal/opreturn/model"
	"go.uber.org/zap"
)

const statsCacheKey = "stats"

var (
	ErrEmptyQuery    = errors.New("search query is required")
	ErrBlockNotFound = errors.New("block not found")
)

// Page is one page of OP_RETURN records.
type Page struct {
	Records    []model.OpReturnRecord
	Pagination Pagination
}

type Service struct {
	repo     Repository
	cache    Cache
	cacheTTL time.Duration
	metrics  Metrics
	logger   *zap.Logger
}

// NewService builds a query service. cache may be nil, which disables stats caching.
func NewService(repo Repository, cache Cache, cacheTTL time.Duration, metrics Metrics, logger *zap.Logger) (*Service, error) {
	if repo == nil {
		return nil, errors.New("query repository is required")
	}
	if metrics == nil {
		return nil, errors.New("query metrics is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cache = nil
	}
	return &Service{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		metrics:  metrics,
		logger:   logger.Named("query"),
	}, nil
}

// ListOpReturns returns a page of all OP_RETURN records.
func (s *Service) ListOpReturns(ctx context.Context, page, limit int) (Page, error) {
	return s.list(ctx, "", page, limit)
}

// Search returns a page of OP_RETURN records whose text, hex or tx hash contains q.
func (s *Service) Search(ctx context.Context, q string, page, limit int) (Page, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return Page{}, ErrEmptyQuery
	}
	return s.list(ctx, q, page, limit)
}

func (s *Service) list(ctx context.Context, search string, rawPage, rawLimit int) (Page, error) {
	page, limit := NormalizePage(rawPage, rawLimit)
	records, total, err := s.repo.ListOpReturns(ctx, model.OpReturnFilter{
		Search: search,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return Page{}, fmt.Errorf("list op returns: %w", err)
	}
	return Page{Records: records, Pagination: newPagination(page, limit, total)}, nil
}

// Stats returns the aggregate statistics, served from the cache when fresh.
func (s *Service) Stats(ctx context.Context) (model.Stats, error) {
	if stats, ok := s.cachedStats(ctx); ok {
		return stats, nil
	}

	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return model.Stats{}, fmt.Errorf("load stats: %w", err)
	}

	if s.cache != nil {
		payload, err := json.Marshal(stats)
		if err == nil {
			err = s.cache.Set(ctx, statsCacheKey, payload, s.cacheTTL)
		}
		if err != nil {
			s.logger.Warn("failed to cache stats", zap.Error(err))
		}
	}
	return stats, nil
}

func (s *Service) cachedStats(ctx context.Context) (model.Stats, bool) {
	if s.cache == nil {
		return model.Stats{}, false
	}

	payload, found, err := s.cache.Get(ctx, statsCacheKey)
	if err != nil {
		s.metrics.ObserveCacheLookup(statsCacheKey, "error")
		s.logger.Warn("failed to read cached stats", zap.Error(err))
		return model.Stats{}, false
	}
	if !found {
		s.metrics.ObserveCacheLookup(statsCacheKey, "miss")
		return model.Stats{}, false
	}

	var stats model.Stats
	if err := json.Unmarshal(payload, &stats); err != nil {
		s.metrics.ObserveCacheLookup(statsCacheKey, "error")
		s.logger.Warn("failed to decode cached stats", zap.Error(err))
		return model.Stats{}, false
	}
	s.metrics.ObserveCacheLookup(statsCacheKey, "hit")
	return stats, true
}

// BlockInfo returns the stored block at height or ErrBlockNotFound.
func (s *Service) BlockInfo(ctx context.Context, height uint64) (*model.BlockInfo, error) {
	info, found, err := s.repo.BlockInfo(ctx, height)
	if err != nil {
		return nil, fmt.Errorf("load block %d: %w", height, err)
	}
	if !found {
		return nil, fmt.Errorf("block %d: %w", height, ErrBlockNotFound)
	}
	return info, nil
}
