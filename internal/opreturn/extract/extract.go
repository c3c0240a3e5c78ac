// Package extract locates and decodes OP_RETURN payloads in transactions.
package extract

import (
	"encoding/hex"
	"strings"
	"unicode/utf8"

	"github.com/btcsuite/btcd/txscript"
	"github.com/goodnatureofminers/opreturn-explorer-backend/internal/opreturn/chain"
	"github.com/goodnatureofminers/opreturn-explorer-backend/internal/opreturn/model"
	"golang.org/x/text/encoding/charmap"
)

const (
	nullDataType  = "op_return"
	nullDataAsm   = "OP_RETURN"
	payloadOffset = 4 // opcode byte + one push length byte, in hex characters
)

var opReturnHex = hex.EncodeToString([]byte{txscript.OP_RETURN})

// Result is the embedded data found in a transaction.
type Result struct {
	Text          *string
	Hex           string
	FeeSats       uint64
	SenderAddress *string
}

// Extract returns the payload of the first null-data output of tx. The bool is false
// when tx carries no OP_RETURN output or its script is not valid hex.
//
// The payload starts after a single push length byte; scripts using OP_PUSHDATA1/2/4
// keep their extra length bytes in the payload.
func Extract(tx *chain.Transaction) (Result, bool) {
	if tx == nil {
		return Result{}, false
	}

	out, ok := firstNullData(tx.Outputs)
	if !ok {
		return Result{}, false
	}

	script := out.ScriptPubKey
	if _, err := hex.DecodeString(script); err != nil {
		return Result{}, false
	}

	var payloadHex string
	if strings.HasPrefix(strings.ToLower(script), opReturnHex) && len(script) >= payloadOffset {
		payloadHex = script[payloadOffset:]
	}

	payload, err := hex.DecodeString(payloadHex)
	if err != nil {
		return Result{}, false
	}

	return Result{
		Text:          losslessText(payload),
		Hex:           payloadHex,
		FeeSats:       tx.FeeSats,
		SenderAddress: sender(tx.Inputs),
	}, true
}

// NewExtractedData builds the stored record for a transaction's extraction result.
func NewExtractedData(txHash string, res Result) model.ExtractedData {
	return model.ExtractedData{
		TxHash:        txHash,
		PayloadText:   res.Text,
		PayloadHex:    res.Hex,
		FeeSats:       res.FeeSats,
		SenderAddress: res.SenderAddress,
		DataSizeBytes: uint32(len(res.Hex) / 2), //nolint:gosec // bounded by the script size
		DataType:      Classify(res.Text),
		IsUTF8Valid:   res.Text != nil,
	}
}

func firstNullData(outputs []chain.Output) (chain.Output, bool) {
	for _, out := range outputs {
		if out.ScriptPubKeyType == nullDataType || strings.HasPrefix(out.ScriptPubKeyAsm, nullDataAsm) {
			return out, true
		}
	}
	return chain.Output{}, false
}

// losslessText returns the payload as text only when reading it as UTF-8 and as
// ISO-8859-1 yields the same string.
func losslessText(payload []byte) *string {
	if len(payload) == 0 {
		return nil
	}
	latin1, err := charmap.ISO8859_1.NewDecoder().Bytes(payload)
	if err != nil {
		return nil
	}
	text := strings.ToValidUTF8(string(payload), string(utf8.RuneError))
	if text != string(latin1) {
		return nil
	}
	return &text
}

func sender(inputs []chain.Input) *string {
	if len(inputs) == 0 || inputs[0].Prevout == nil || inputs[0].Prevout.Address == "" {
		return nil
	}
	addr := inputs[0].Prevout.Address
	return &addr
}
