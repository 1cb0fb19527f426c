package ensemble

import (
	"sort"

	errorsmod "cosmossdk.io/errors"
	dbm "github.com/cometbft/cometbft-db"

	"github.com/CosmWasm/ensemble/storage"
	"github.com/CosmWasm/ensemble/types"
)

// Deps is what a contract gets to work with during a query.
type Deps struct {
	// Storage is a read-only view of the contract's own namespace.
	Storage storage.KVStore
	// Querier re-enters the router. Queries issued through it run nested.
	Querier types.Querier
}

// QuerierWrapper returns typed helpers over d.Querier.
func (d Deps) QuerierWrapper() QuerierWrapper {
	return NewQuerierWrapper(d.Querier)
}

// Contract is the query entry point of a deployed contract instance.
type Contract interface {
	Query(deps Deps, env types.Env, msg []byte) ([]byte, error)
}

// ContractFunc adapts a function to a Contract.
type ContractFunc func(deps Deps, env types.Env, msg []byte) ([]byte, error)

func (f ContractFunc) Query(deps Deps, env types.Env, msg []byte) ([]byte, error) {
	return f(deps, env, msg)
}

type instance struct {
	contract Contract
	store    dbm.DB
}

// ContractRegistry tracks the contract instances of an ensemble. Every
// instance owns a namespace of the shared contract store.
type ContractRegistry struct {
	db        dbm.DB
	instances map[string]instance
}

func NewContractRegistry(db dbm.DB) *ContractRegistry {
	return &ContractRegistry{
		db:        db,
		instances: make(map[string]instance),
	}
}

func (r *ContractRegistry) Contains(address string) bool {
	_, ok := r.instances[address]
	return ok
}

// Register deploys contract at address. Addresses are unique.
func (r *ContractRegistry) Register(address string, contract Contract) error {
	if address == "" {
		return ErrEmptyAddress
	}
	if r.Contains(address) {
		return errorsmod.Wrap(ErrDuplicateContract, address)
	}
	r.instances[address] = instance{
		contract: contract,
		store:    storage.Prefix(r.db, "contract/"+address),
	}
	return nil
}

// Addresses lists the registered contracts in lexical order.
func (r *ContractRegistry) Addresses() []string {
	out := make([]string, 0, len(r.instances))
	for addr := range r.instances {
		out = append(out, addr)
	}
	sort.Strings(out)
	return out
}

// Store returns the writable namespace of the contract at address, for seeding state.
func (r *ContractRegistry) Store(address string) (storage.KVStore, error) {
	inst, ok := r.instances[address]
	if !ok {
		return nil, types.NoSuchContract{Addr: address}
	}
	return inst.store, nil
}

// Query runs the query entry point of the contract at address on the calling
// goroutine. Contract failures come back as *ContractError.
func (r *ContractRegistry) Query(address string, env types.Env, msg []byte, querier types.Querier) ([]byte, error) {
	inst, ok := r.instances[address]
	if !ok {
		return nil, types.NoSuchContract{Addr: address}
	}
	env.Contract = types.ContractInfo{Address: address}
	deps := Deps{
		Storage: storage.ReadOnly(inst.store),
		Querier: querier,
	}
	res, err := inst.contract.Query(deps, env, msg)
	if err != nil {
		return nil, &ContractError{Contract: address, Err: err}
	}
	return res, nil
}
