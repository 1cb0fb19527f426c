package types

//---------- Env ---------

// Env is the execution environment handed to a contract entry point.
// It is json encoded the same way the chain encodes it for wasm contracts.
type Env struct {
	Block    BlockInfo    `json:"block"`
	Contract ContractInfo `json:"contract"`
}

// BlockInfo represents information about the simulated current block.
type BlockInfo struct {
	// block height the query is executed at
	Height uint64 `json:"height"`
	// time in nanoseconds since unix epoch. Uses Uint64 to ensure JavaScript compatibility.
	Time    Uint64 `json:"time"`
	ChainID string `json:"chain_id"`
}

// ContractInfo identifies the contract being called.
type ContractInfo struct {
	Address HumanAddress `json:"address"`
}
