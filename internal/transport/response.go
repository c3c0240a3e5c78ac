package transport

import (
	"math"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/opreturn-explorer-backend/internal/opreturn/model"
	"github.com/goodnatureofminers/opreturn-explorer-backend/internal/opreturn/service/query"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type dataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type pageResponse struct {
	Success    bool               `json:"success"`
	Data       []opReturnResponse `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

type paginationResponse struct {
	Page       uint64 `json:"page"`
	Limit      uint64 `json:"limit"`
	Total      uint64 `json:"total"`
	TotalPages uint64 `json:"totalPages"`
}

type opReturnResponse struct {
	TxHash         string    `json:"tx_hash"`
	BlockHeight    uint64    `json:"block_height"`
	BlockHash      string    `json:"block_hash"`
	BlockTimestamp time.Time `json:"block_timestamp"`
	PayloadText    *string   `json:"payload_text"`
	PayloadHex     string    `json:"payload_hex"`
	FeeSats        uint64    `json:"fee_sats"`
	SenderAddress  *string   `json:"sender_address"`
	DataSizeBytes  uint32    `json:"data_size_bytes"`
	DataType       string    `json:"data_type"`
	IsUTF8Valid    bool      `json:"is_utf8_valid"`
	CreatedAt      time.Time `json:"created_at"`
}

type statsResponse struct {
	TotalTransactions  uint64  `json:"totalTransactions"`
	TotalFees          uint64  `json:"totalFees"`
	TotalFeesBTC       float64 `json:"totalFeesBtc"`
	AverageFee         float64 `json:"averageFee"`
	TotalBlocks        uint64  `json:"totalBlocks"`
	FirstBlock         uint64  `json:"firstBlock"`
	LatestBlock        uint64  `json:"latestBlock"`
	TotalDataSize      uint64  `json:"totalDataSize"`
	AverageDataSize    float64 `json:"averageDataSize"`
	BlocksWithOpReturn uint64  `json:"blocksWithOpReturn"`
	TextDataCount      uint64  `json:"textDataCount"`
	HexDataCount       uint64  `json:"hexDataCount"`
	BinaryDataCount    uint64  `json:"binaryDataCount"`
	JSONDataCount      uint64  `json:"jsonDataCount"`
	OtherDataCount     uint64  `json:"otherDataCount"`
}

type blockInfoResponse struct {
	Hash              string    `json:"hash"`
	Height            uint64    `json:"height"`
	TransactionCount  uint32    `json:"transaction_count"`
	Timestamp         time.Time `json:"timestamp"`
	Size              uint32    `json:"size"`
	Weight            uint32    `json:"weight"`
	MerkleRoot        string    `json:"merkle_root"`
	Difficulty        float64   `json:"difficulty"`
	Nonce             uint32    `json:"nonce"`
	Version           int32     `json:"version"`
	PreviousBlockHash *string   `json:"previous_block_hash"`
	CreatedAt         time.Time `json:"created_at"`
	OpReturnCount     uint64    `json:"op_return_count"`
}

func newPageResponse(page query.Page) pageResponse {
	data := make([]opReturnResponse, 0, len(page.Records))
	for _, r := range page.Records {
		data = append(data, opReturnResponse{
			TxHash:         r.TxHash,
			BlockHeight:    r.BlockHeight,
			BlockHash:      r.BlockHash,
			BlockTimestamp: r.BlockTimestamp,
			PayloadText:    r.PayloadText,
			PayloadHex:     r.PayloadHex,
			FeeSats:        r.FeeSats,
			SenderAddress:  r.SenderAddress,
			DataSizeBytes:  r.DataSizeBytes,
			DataType:       string(r.DataType),
			IsUTF8Valid:    r.IsUTF8Valid,
			CreatedAt:      r.CreatedAt,
		})
	}
	return pageResponse{
		Success: true,
		Data:    data,
		Pagination: paginationResponse{
			Page:       page.Pagination.Page,
			Limit:      page.Pagination.Limit,
			Total:      page.Pagination.Total,
			TotalPages: page.Pagination.TotalPages,
		},
	}
}

func newStatsResponse(s model.Stats) statsResponse {
	return statsResponse{
		TotalTransactions:  s.TotalTransactions,
		TotalFees:          s.TotalFees,
		TotalFeesBTC:       btcutil.Amount(s.TotalFees).ToBTC(), //nolint:gosec // fee totals stay far below MaxInt64
		AverageFee:         math.Round(s.AverageFee),
		TotalBlocks:        s.TotalBlocks,
		FirstBlock:         s.FirstBlock,
		LatestBlock:        s.LatestBlock,
		TotalDataSize:      s.TotalDataSize,
		AverageDataSize:    math.Round(s.AverageDataSize),
		BlocksWithOpReturn: s.BlocksWithOpReturn,
		TextDataCount:      s.TextDataCount,
		HexDataCount:       s.HexDataCount,
		BinaryDataCount:    s.BinaryDataCount,
		JSONDataCount:      s.JSONDataCount,
		OtherDataCount:     s.OtherDataCount,
	}
}

func newBlockInfoResponse(info *model.BlockInfo) blockInfoResponse {
	return blockInfoResponse{
		Hash:              info.Hash,
		Height:            info.Height,
		TransactionCount:  info.TransactionCount,
		Timestamp:         info.Timestamp,
		Size:              info.Size,
		Weight:            info.Weight,
		MerkleRoot:        info.MerkleRoot,
		Difficulty:        info.Difficulty,
		Nonce:             info.Nonce,
		Version:           info.Version,
		PreviousBlockHash: info.PreviousBlockHash,
		CreatedAt:         info.CreatedAt,
		OpReturnCount:     info.OpReturnCount,
	}
}
