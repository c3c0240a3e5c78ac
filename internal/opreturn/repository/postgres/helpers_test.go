package postgres

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/goodnatureofminers/opreturn-explorer-backend/internal/opreturn/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var insertTag = pgconn.NewCommandTag("INSERT 0 1")

type queryContains string

func (m queryContains) Matches(x any) bool {
	s, ok := x.(string)
	return ok && strings.Contains(s, string(m))
}

func (m queryContains) String() string {
	return "query containing " + strconv.Quote(string(m))
}

type fixture struct {
	ctrl    *gomock.Controller
	db      *MockDB
	metrics *MockMetrics
	repo    *Repository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &fixture{
		ctrl:    ctrl,
		db:      NewMockDB(ctrl),
		metrics: NewMockMetrics(ctrl),
	}
	f.repo = &Repository{db: f.db, metrics: f.metrics}
	return f
}

func (f *fixture) expectObserve(operation string, wantErr bool) {
	if wantErr {
		f.metrics.EXPECT().Observe(operation, gomock.Not(gomock.Nil()), gomock.Any())
		return
	}
	f.metrics.EXPECT().Observe(operation, nil, gomock.Any())
}

// expectRow expects a single-row query matching fragment; scan fills dest or err is returned.
func (f *fixture) expectRow(fragment string, scan func(dest ...any), err error, args ...any) {
	row := NewMockRow(f.ctrl)
	f.db.EXPECT().QueryRow(gomock.Any(), queryContains(fragment), args...).Return(row)
	row.EXPECT().Scan(gomock.Any()).DoAndReturn(func(dest ...any) error {
		if err != nil {
			return err
		}
		scan(dest...)
		return nil
	})
}

func (f *fixture) expectRows(fragment string, scans []func(dest ...any), args ...any) {
	rows := NewMockRows(f.ctrl)
	f.db.EXPECT().Query(gomock.Any(), queryContains(fragment), args...).Return(rows, nil)

	calls := make([]*gomock.Call, 0, 2*len(scans)+3)
	for _, scan := range scans {
		scan := scan
		calls = append(calls,
			rows.EXPECT().Next().Return(true),
			rows.EXPECT().Scan(gomock.Any()).DoAndReturn(func(dest ...any) error {
				scan(dest...)
				return nil
			}),
		)
	}
	calls = append(calls,
		rows.EXPECT().Next().Return(false),
		rows.EXPECT().Err().Return(nil),
		rows.EXPECT().Close(),
	)
	gomock.InOrder(calls...)
}

func noRows(...any) {}

var errNoRows = pgx.ErrNoRows

func testBlock() model.Block {
	prev := "00000000000000000000f1e2d3c4b5a6978877665544332211000fedcba98765"
	return model.Block{
		Hash:              "00000000000000000001a0b1c2d3e4f5a6b7c8d9e0f1a2b3c4d5e6f7a8b9c0d1",
		Height:            905001,
		TransactionCount:  2,
		Timestamp:         time.Unix(1752000000, 0).UTC(),
		Size:              1500,
		Weight:            4000,
		MerkleRoot:        "a1b2c3",
		Difficulty:        1.5,
		Nonce:             42,
		Version:           536870912,
		PreviousBlockHash: &prev,
	}
}
