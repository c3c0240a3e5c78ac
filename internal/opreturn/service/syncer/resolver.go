package syncer

import (
	"context"
	"fmt"
)

// HeightRange is an inclusive span of block heights. Start > End means nothing to do.
type HeightRange struct {
	Start uint64
	End   uint64
}

func (r HeightRange) Empty() bool {
	return r.Start > r.End
}

// Len returns the number of heights in the range.
func (r HeightRange) Len() uint64 {
	if r.Empty() {
		return 0
	}
	return r.End - r.Start + 1
}

type heightRangeResolver struct {
	repository    Repository
	source        ChainSource
	initialHeight uint64
}

func (r *heightRangeResolver) Resolve(ctx context.Context) (HeightRange, error) {
	cursor, found, err := r.repository.LatestBlockHeight(ctx)
	if err != nil {
		return HeightRange{}, fmt.Errorf("read sync cursor: %w", err)
	}

	start := r.initialHeight
	if found {
		start = cursor + 1
	}

	tip, err := r.source.TipHeight(ctx)
	if err != nil {
		return HeightRange{}, fmt.Errorf("fetch tip height: %w", err)
	}

	return HeightRange{Start: start, End: tip}, nil
}
