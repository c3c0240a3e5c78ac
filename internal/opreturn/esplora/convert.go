package esplora

import (
	"fmt"
	"time"

	"github.com/goodnatureofminers/opreturn-explorer-backend/internal/opreturn/chain"
	"github.com/goodnatureofminers/opreturn-explorer-backend/internal/opreturn/model"
	"github.com/goodnatureofminers/opreturn-explorer-backend/pkg/safe"
)

func convertBlock(src blockResponse) (model.Block, error) {
	version, err := safe.Int32(src.Version)
	if err != nil {
		return model.Block{}, fmt.Errorf("block %d version: %w", src.Height, err)
	}
	size, err := safe.Uint32(src.Size)
	if err != nil {
		return model.Block{}, fmt.Errorf("block %d size: %w", src.Height, err)
	}
	weight, err := safe.Uint32(src.Weight)
	if err != nil {
		return model.Block{}, fmt.Errorf("block %d weight: %w", src.Height, err)
	}
	nonce, err := safe.Uint32(src.Nonce)
	if err != nil {
		return model.Block{}, fmt.Errorf("block %d nonce: %w", src.Height, err)
	}
	txCount, err := safe.Uint32(src.TxCount)
	if err != nil {
		return model.Block{}, fmt.Errorf("block %d tx count: %w", src.Height, err)
	}

	var prev *string
	if src.PreviousBlockHash != nil && *src.PreviousBlockHash != "" {
		p := *src.PreviousBlockHash
		prev = &p
	}

	return model.Block{
		Hash:              src.ID,
		Height:            src.Height,
		TransactionCount:  txCount,
		Timestamp:         time.Unix(src.Timestamp, 0).UTC(),
		Size:              size,
		Weight:            weight,
		MerkleRoot:        src.MerkleRoot,
		Difficulty:        src.Difficulty,
		Nonce:             nonce,
		Version:           version,
		PreviousBlockHash: prev,
	}, nil
}

func convertTransaction(src txResponse) (*chain.Transaction, error) {
	version, err := safe.Int32(src.Version)
	if err != nil {
		return nil, fmt.Errorf("tx %s version: %w", src.TxID, err)
	}
	locktime, err := safe.Uint32(src.Locktime)
	if err != nil {
		return nil, fmt.Errorf("tx %s locktime: %w", src.TxID, err)
	}
	size, err := safe.Uint32(src.Size)
	if err != nil {
		return nil, fmt.Errorf("tx %s size: %w", src.TxID, err)
	}
	weight, err := safe.Uint32(src.Weight)
	if err != nil {
		return nil, fmt.Errorf("tx %s weight: %w", src.TxID, err)
	}
	fee, err := safe.Uint64(src.Fee)
	if err != nil {
		return nil, fmt.Errorf("tx %s fee: %w", src.TxID, err)
	}

	inputs := make([]chain.Input, 0, len(src.Vin))
	for i, in := range src.Vin {
		outIndex, err := safe.Uint32(in.Vout)
		if err != nil {
			return nil, fmt.Errorf("tx %s input %d vout: %w", src.TxID, i, err)
		}
		sequence, err := safe.Uint32(in.Sequence)
		if err != nil {
			return nil, fmt.Errorf("tx %s input %d sequence: %w", src.TxID, i, err)
		}
		input := chain.Input{
			TxID:       in.TxID,
			Vout:       outIndex,
			IsCoinbase: in.IsCoinbase,
			Sequence:   sequence,
		}
		if in.Prevout != nil {
			prevout := convertOutput(*in.Prevout)
			input.Prevout = &prevout
		}
		inputs = append(inputs, input)
	}

	outputs := make([]chain.Output, 0, len(src.Vout))
	for _, out := range src.Vout {
		outputs = append(outputs, convertOutput(out))
	}

	status := chain.Status{Confirmed: src.Status.Confirmed}
	if src.Status.BlockHeight != nil {
		status.BlockHeight = *src.Status.BlockHeight
	}
	if src.Status.BlockHash != nil {
		status.BlockHash = *src.Status.BlockHash
	}
	if src.Status.BlockTime != nil {
		t := time.Unix(*src.Status.BlockTime, 0).UTC()
		status.BlockTime = &t
	}

	return &chain.Transaction{
		TxID:     src.TxID,
		Version:  version,
		Locktime: locktime,
		Size:     size,
		Weight:   weight,
		FeeSats:  fee,
		Inputs:   inputs,
		Outputs:  outputs,
		Status:   status,
	}, nil
}

func convertOutput(src vout) chain.Output {
	return chain.Output{
		ScriptPubKey:     src.ScriptPubKey,
		ScriptPubKeyAsm:  src.ScriptPubKeyAsm,
		ScriptPubKeyType: src.ScriptPubKeyType,
		Address:          src.ScriptPubKeyAddress,
		ValueSats:        src.Value,
	}
}
