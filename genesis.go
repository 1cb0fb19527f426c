package ensemble

import (
	"os"

	errorsmod "cosmossdk.io/errors"
	"gopkg.in/yaml.v3"

	"github.com/CosmWasm/ensemble/bank"
	"github.com/CosmWasm/ensemble/staking"
	"github.com/CosmWasm/ensemble/types"
)

// DefaultMaxQueryDepth matches the maximum query stack size of wasmd.
const DefaultMaxQueryDepth = 10

const (
	DefaultChainID     = "ensemble-1"
	DefaultBondedDenom = "uscrt"
)

// Genesis is the initial state of an ensemble.
type Genesis struct {
	ChainID       string            `yaml:"chain_id"`
	BondedDenom   string            `yaml:"bonded_denom"`
	Block         Block             `yaml:"block"`
	MaxQueryDepth int               `yaml:"max_query_depth"`
	Balances      []bank.Balance    `yaml:"balances"`
	Validators    []types.Validator `yaml:"validators"`
	Delegations   []staking.Bond    `yaml:"delegations"`
	// Contracts is not read by New. Front ends map Kind to an implementation
	// and register the instances themselves.
	Contracts []ContractGenesis `yaml:"contracts"`
}

type Block struct {
	Height uint64 `yaml:"height"`
	// nanoseconds since unix epoch
	Time uint64 `yaml:"time"`
}

type ContractGenesis struct {
	Address string         `yaml:"address"`
	Kind    string         `yaml:"kind"`
	Init    map[string]any `yaml:"init,omitempty"`
}

func DefaultGenesis() Genesis {
	return Genesis{
		ChainID:       DefaultChainID,
		BondedDenom:   DefaultBondedDenom,
		Block:         Block{Height: 1},
		MaxQueryDepth: DefaultMaxQueryDepth,
	}
}

// LoadGenesis reads a YAML genesis file. Omitted fields keep their defaults.
func LoadGenesis(path string) (Genesis, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}
	return ParseGenesis(bz)
}

func ParseGenesis(bz []byte) (Genesis, error) {
	g := DefaultGenesis()
	if err := yaml.Unmarshal(bz, &g); err != nil {
		return Genesis{}, errorsmod.Wrap(ErrInvalidGenesis, err.Error())
	}
	return g, g.Validate()
}

// Validate checks what can be checked without building the state.
func (g Genesis) Validate() error {
	if g.ChainID == "" {
		return errorsmod.Wrap(ErrInvalidGenesis, "empty chain id")
	}
	if g.BondedDenom == "" {
		return errorsmod.Wrap(ErrInvalidGenesis, "empty bonded denom")
	}
	if g.MaxQueryDepth < 0 {
		return errorsmod.Wrapf(ErrInvalidGenesis, "negative max query depth %d", g.MaxQueryDepth)
	}
	seen := make(map[string]bool, len(g.Contracts))
	for _, c := range g.Contracts {
		if c.Address == "" || c.Kind == "" {
			return errorsmod.Wrapf(ErrInvalidGenesis, "contract %q needs an address and a kind", c.Address)
		}
		if seen[c.Address] {
			return errorsmod.Wrapf(ErrInvalidGenesis, "contract %q listed twice", c.Address)
		}
		seen[c.Address] = true
	}
	return nil
}

func (g Genesis) blockInfo() types.BlockInfo {
	return types.BlockInfo{
		Height:  g.Block.Height,
		Time:    types.Uint64(g.Block.Time),
		ChainID: g.ChainID,
	}
}
