package ensemble

import (
	"github.com/CosmWasm/ensemble/bank"
	"github.com/CosmWasm/ensemble/staking"
)

// Context is the shared state of one ensemble. Queries only read it; the
// setup methods of its parts are the write path.
type Context struct {
	Bank      *bank.Ledger
	Staking   *staking.Registry
	Contracts *ContractRegistry
}
