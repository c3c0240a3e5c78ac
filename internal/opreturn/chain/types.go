// Package chain defines transaction shapes shared between the chain source and extraction.
package chain

import "time"

// Transaction is a fully populated upstream transaction.
type Transaction struct {
	TxID     string
	Version  int32
	Locktime uint32
	Size     uint32
	Weight   uint32
	FeeSats  uint64
	Inputs   []Input
	Outputs  []Output
	Status   Status
}

// Input references a previous output. Prevout is nil when the upstream could not resolve it.
type Input struct {
	TxID       string
	Vout       uint32
	IsCoinbase bool
	Sequence   uint32
	Prevout    *Output
}

// Output carries a locking script with its decoded form.
type Output struct {
	ScriptPubKey     string
	ScriptPubKeyAsm  string
	ScriptPubKeyType string
	Address          string
	ValueSats        uint64
}

// Status is the confirmation state of a transaction.
type Status struct {
	Confirmed   bool
	BlockHeight uint64
	BlockHash   string
	BlockTime   *time.Time
}
