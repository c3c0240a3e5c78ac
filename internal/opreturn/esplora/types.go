package esplora

import (
	"time"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Metrics records metrics for upstream calls.
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

type blockResponse struct {
	ID                string  `json:"id"`
	Height            uint64  `json:"height"`
	Version           int64   `json:"version"`
	Timestamp         int64   `json:"timestamp"`
	TxCount           uint64  `json:"tx_count"`
	Size              uint64  `json:"size"`
	Weight            uint64  `json:"weight"`
	MerkleRoot        string  `json:"merkle_root"`
	PreviousBlockHash *string `json:"previousblockhash"`
	MedianTime        int64   `json:"mediantime"`
	Nonce             uint64  `json:"nonce"`
	Bits              uint64  `json:"bits"`
	Difficulty        float64 `json:"difficulty"`
}

type txResponse struct {
	TxID     string     `json:"txid"`
	Version  int64      `json:"version"`
	Locktime uint64     `json:"locktime"`
	Vin      []vin      `json:"vin"`
	Vout     []vout     `json:"vout"`
	Size     uint64     `json:"size"`
	Weight   uint64     `json:"weight"`
	Fee      int64      `json:"fee"`
	Status   statusResp `json:"status"`
}

type vin struct {
	TxID         string   `json:"txid"`
	Vout         uint64   `json:"vout"`
	Prevout      *vout    `json:"prevout"`
	ScriptSig    string   `json:"scriptsig"`
	ScriptSigAsm string   `json:"scriptsig_asm"`
	Witness      []string `json:"witness"`
	IsCoinbase   bool     `json:"is_coinbase"`
	Sequence     uint64   `json:"sequence"`
}

type vout struct {
	ScriptPubKey        string `json:"scriptpubkey"`
	ScriptPubKeyAsm     string `json:"scriptpubkey_asm"`
	ScriptPubKeyType    string `json:"scriptpubkey_type"`
	ScriptPubKeyAddress string `json:"scriptpubkey_address"`
	Value               uint64 `json:"value"`
}

type statusResp struct {
	Confirmed   bool    `json:"confirmed"`
	BlockHeight *uint64 `json:"block_height"`
	BlockHash   *string `json:"block_hash"`
	BlockTime   *int64  `json:"block_time"`
}
