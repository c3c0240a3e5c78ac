package model

// Network identifies the chain an Esplora endpoint serves.
type Network string

var (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
	Signet  Network = "signet"
)
