// Package staking holds the simulated validator set and delegations of an ensemble.
package staking

import (
	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	"github.com/google/btree"

	"github.com/CosmWasm/ensemble/bank"
	"github.com/CosmWasm/ensemble/types"
)

// Codespace of the staking errors, distinct from the sdk staking module.
const Codespace = "ensemble_staking"

var (
	ErrGenesisInitialized = errorsmod.Register(Codespace, 2, "bonded denom already initialized")
	ErrNoGenesis          = errorsmod.Register(Codespace, 3, "bonded denom not initialized")
	ErrDuplicateValidator = errorsmod.Register(Codespace, 4, "validator already registered")
	ErrInvalidDenom       = errorsmod.Register(Codespace, 5, "invalid denom")
	ErrNoDelegation       = errorsmod.Register(Codespace, 6, "no delegation")
	ErrInsufficientBond   = errorsmod.Register(Codespace, 7, "insufficient delegation")
	ErrEmptyAddress       = errorsmod.Register(Codespace, 8, "empty address")
)

const btreeDegree = 32

// Genesis is the export form of a Registry.
type Genesis struct {
	BondedDenom string            `json:"bonded_denom" yaml:"bonded_denom" msgpack:"bonded_denom"`
	Validators  []types.Validator `json:"validators" yaml:"validators" msgpack:"validators"`
	Delegations []Bond            `json:"delegations" yaml:"delegations" msgpack:"delegations"`
}

// Bond is the export form of one delegation.
type Bond struct {
	Delegator string       `json:"delegator" yaml:"delegator" msgpack:"delegator"`
	Validator string       `json:"validator" yaml:"validator" msgpack:"validator"`
	Amount    string       `json:"amount" yaml:"amount" msgpack:"amount"`
	Rewards   []types.Coin `json:"rewards,omitempty" yaml:"rewards,omitempty" msgpack:"rewards"`
}

type bond struct {
	delegator string
	validator string
	amount    sdkmath.Int
	rewards   []types.Coin
}

func lessBond(a, b bond) bool {
	if a.delegator != b.delegator {
		return a.delegator < b.delegator
	}
	return a.validator < b.validator
}

// Registry is the validator set, the delegations and the bonded denom.
//
// The validator set keeps registration order. Delegations are kept ordered by
// delegator then validator; whether the validator exists is not checked.
type Registry struct {
	bondedDenom string
	validators  []types.Validator
	bonds       *btree.BTreeG[bond]
}

func NewRegistry() *Registry {
	return &Registry{bonds: btree.NewG(btreeDegree, lessBond)}
}

// InitGenesis sets the bonded denom. It can be called once.
func (r *Registry) InitGenesis(denom string) error {
	if r.Initialized() {
		return errorsmod.Wrapf(ErrGenesisInitialized, "bonded denom is %q", r.bondedDenom)
	}
	if denom == "" {
		return errorsmod.Wrap(ErrInvalidDenom, "bonded denom must not be empty")
	}
	r.bondedDenom = denom
	return nil
}

func (r *Registry) Initialized() bool {
	return r.bondedDenom != ""
}

// BondedDenom returns the staking denom. Asking for it before InitGenesis is a
// programmer error and panics.
func (r *Registry) BondedDenom() string {
	if !r.Initialized() {
		panic("staking: BondedDenom called before InitGenesis")
	}
	return r.bondedDenom
}

// AddValidator appends v to the validator set.
func (r *Registry) AddValidator(v types.Validator) error {
	if v.Address == "" {
		return ErrEmptyAddress
	}
	if r.Validator(v.Address) != nil {
		return errorsmod.Wrap(ErrDuplicateValidator, v.Address)
	}
	r.validators = append(r.validators, v)
	return nil
}

// Validators returns the validator set in registration order.
func (r *Registry) Validators() types.Validators {
	out := make(types.Validators, len(r.validators))
	copy(out, r.validators)
	return out
}

// Validator returns the first registered validator with address, or nil.
func (r *Registry) Validator(address string) *types.Validator {
	for i := range r.validators {
		if r.validators[i].Address == address {
			v := r.validators[i]
			return &v
		}
	}
	return nil
}

// Delegate bonds amount, which must be in the bonded denom, from delegator to validator.
func (r *Registry) Delegate(delegator, validator string, amount types.Coin) error {
	value, err := r.parseBond(delegator, validator, amount)
	if err != nil {
		return err
	}
	b, _ := r.bonds.Get(bond{delegator: delegator, validator: validator})
	if b.amount.IsNil() {
		b = bond{delegator: delegator, validator: validator, amount: sdkmath.ZeroInt()}
	}
	b.amount = b.amount.Add(value)
	r.bonds.ReplaceOrInsert(b)
	return nil
}

// Undelegate unbonds amount. A delegation that reaches zero is removed along with its rewards.
func (r *Registry) Undelegate(delegator, validator string, amount types.Coin) error {
	value, err := r.parseBond(delegator, validator, amount)
	if err != nil {
		return err
	}
	b, ok := r.bonds.Get(bond{delegator: delegator, validator: validator})
	if !ok {
		return errorsmod.Wrapf(ErrNoDelegation, "%s to %s", delegator, validator)
	}
	if b.amount.LT(value) {
		return errorsmod.Wrapf(ErrInsufficientBond, "%s bonded %s%s, unbonding %s%s", delegator, b.amount, r.bondedDenom, value, r.bondedDenom)
	}
	b.amount = b.amount.Sub(value)
	if b.amount.IsZero() {
		r.bonds.Delete(b)
		return nil
	}
	r.bonds.ReplaceOrInsert(b)
	return nil
}

// AddRewards accrues rewards on an existing delegation.
func (r *Registry) AddRewards(delegator, validator string, coins ...types.Coin) error {
	b, ok := r.bonds.Get(bond{delegator: delegator, validator: validator})
	if !ok {
		return errorsmod.Wrapf(ErrNoDelegation, "%s to %s", delegator, validator)
	}
	ledger := bank.NewLedger()
	if err := ledger.Mint(delegator, b.rewards...); err != nil {
		return err
	}
	if err := ledger.Mint(delegator, coins...); err != nil {
		return err
	}
	b.rewards = ledger.Query(delegator, types.None())
	r.bonds.ReplaceOrInsert(b)
	return nil
}

// AllDelegations lists the delegations of delegator ordered by validator.
func (r *Registry) AllDelegations(delegator string) types.Delegations {
	out := types.Delegations{}
	r.bonds.AscendGreaterOrEqual(bond{delegator: delegator}, func(b bond) bool {
		if b.delegator != delegator {
			return false
		}
		out = append(out, types.Delegation{
			Delegator: b.delegator,
			Validator: b.validator,
			Amount:    r.coin(b.amount),
		})
		return true
	})
	return out
}

// Delegation returns the full delegation of delegator to validator, or nil.
func (r *Registry) Delegation(delegator, validator string) *types.FullDelegation {
	b, ok := r.bonds.Get(bond{delegator: delegator, validator: validator})
	if !ok {
		return nil
	}
	rewards := make(types.Coins, len(b.rewards))
	copy(rewards, b.rewards)
	return &types.FullDelegation{
		Delegator:          b.delegator,
		Validator:          b.validator,
		Amount:             r.coin(b.amount),
		AccumulatedRewards: rewards,
		// nothing is ever redelegated in the mock, so the whole bond can be
		CanRedelegate: r.coin(b.amount),
	}
}

// Export returns the registry state.
func (r *Registry) Export() Genesis {
	g := Genesis{
		BondedDenom: r.bondedDenom,
		Validators:  r.Validators(),
	}
	r.bonds.Ascend(func(b bond) bool {
		g.Delegations = append(g.Delegations, Bond{
			Delegator: b.delegator,
			Validator: b.validator,
			Amount:    b.amount.String(),
			Rewards:   append([]types.Coin(nil), b.rewards...),
		})
		return true
	})
	return g
}

// Import replaces the registry state with g. The bonded denom of an
// initialized registry cannot change.
func (r *Registry) Import(g Genesis) error {
	next := NewRegistry()
	if r.Initialized() && g.BondedDenom != r.bondedDenom {
		return errorsmod.Wrapf(ErrGenesisInitialized, "cannot change bonded denom %q to %q", r.bondedDenom, g.BondedDenom)
	}
	if err := next.InitGenesis(g.BondedDenom); err != nil {
		return err
	}
	for _, v := range g.Validators {
		if err := next.AddValidator(v); err != nil {
			return err
		}
	}
	for _, d := range g.Delegations {
		if err := next.Delegate(d.Delegator, d.Validator, types.Coin{Denom: g.BondedDenom, Amount: d.Amount}); err != nil {
			return errorsmod.Wrapf(err, "delegation of %s to %s", d.Delegator, d.Validator)
		}
		if len(d.Rewards) > 0 {
			if err := next.AddRewards(d.Delegator, d.Validator, d.Rewards...); err != nil {
				return err
			}
		}
	}
	*r = *next
	return nil
}

// Clone returns an independent copy of the registry.
func (r *Registry) Clone() *Registry {
	return &Registry{
		bondedDenom: r.bondedDenom,
		validators:  r.Validators(),
		bonds:       r.bonds.Clone(),
	}
}

func (r *Registry) parseBond(delegator, validator string, amount types.Coin) (sdkmath.Int, error) {
	if delegator == "" || validator == "" {
		return sdkmath.Int{}, ErrEmptyAddress
	}
	if !r.Initialized() {
		return sdkmath.Int{}, ErrNoGenesis
	}
	if amount.Denom != r.bondedDenom {
		return sdkmath.Int{}, errorsmod.Wrapf(ErrInvalidDenom, "got %q, bonded denom is %q", amount.Denom, r.bondedDenom)
	}
	value, err := bank.ParseAmount(amount)
	if err != nil {
		return sdkmath.Int{}, err
	}
	if value.IsZero() {
		return sdkmath.Int{}, errorsmod.Wrap(bank.ErrInvalidAmount, "bond amount must be positive")
	}
	return value, nil
}

func (r *Registry) coin(amount sdkmath.Int) types.Coin {
	return types.Coin{Denom: r.bondedDenom, Amount: amount.String()}
}
