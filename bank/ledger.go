// Package bank holds the simulated balances of an ensemble.
//
// Reads go through Query, Balance and Supply. The mutating methods are the
// write path used by test harnesses to seed and move funds; they never leave
// a negative balance behind.
package bank

import (
	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	"github.com/google/btree"

	"github.com/CosmWasm/ensemble/types"
)

const btreeDegree = 32

// Balance is the genesis/export form of all coins held by one address.
type Balance struct {
	Address string       `json:"address" yaml:"address" msgpack:"address"`
	Coins   []types.Coin `json:"coins" yaml:"coins" msgpack:"coins"`
}

// entry is a single (address, denom) -> amount record. Amounts are always positive,
// zero balances are removed from the tree.
type entry struct {
	address string
	denom   string
	amount  sdkmath.Int
}

func lessEntry(a, b entry) bool {
	if a.address != b.address {
		return a.address < b.address
	}
	return a.denom < b.denom
}

// Ledger maps (address, denom) to an amount, ordered by address then denom.
type Ledger struct {
	tree *btree.BTreeG[entry]
}

func NewLedger() *Ledger {
	return &Ledger{tree: btree.NewG(btreeDegree, lessEntry)}
}

// Query returns the balances of address ordered by denom.
//
// When denom is set the result always holds exactly one coin: the balance in
// that denom, or a zero amount if the address holds none of it. Callers that
// take the first element of a filtered query can rely on that.
func (l *Ledger) Query(address string, denom types.OptionalString) types.Coins {
	if d, ok := denom.Get(); ok {
		return types.Coins{toCoin(d, l.Balance(address, d))}
	}
	coins := types.Coins{}
	l.tree.AscendGreaterOrEqual(entry{address: address}, func(e entry) bool {
		if e.address != address {
			return false
		}
		coins = append(coins, toCoin(e.denom, e.amount))
		return true
	})
	return coins
}

// Balance returns the amount of denom held by address, zero if none.
func (l *Ledger) Balance(address, denom string) sdkmath.Int {
	if e, ok := l.tree.Get(entry{address: address, denom: denom}); ok {
		return e.amount
	}
	return sdkmath.ZeroInt()
}

// Supply sums denom over all addresses.
func (l *Ledger) Supply(denom string) sdkmath.Int {
	total := sdkmath.ZeroInt()
	l.tree.Ascend(func(e entry) bool {
		if e.denom == denom {
			total = total.Add(e.amount)
		}
		return true
	})
	return total
}

// Set overwrites the balance of address in denom.
func (l *Ledger) Set(address, denom string, amount sdkmath.Int) error {
	if address == "" {
		return ErrEmptyAddress
	}
	if denom == "" {
		return ErrInvalidDenom
	}
	if amount.IsNil() || amount.IsNegative() {
		return errorsmod.Wrapf(ErrInvalidAmount, "%s%s", amount, denom)
	}
	l.set(address, denom, amount)
	return nil
}

// Mint adds coins to address.
func (l *Ledger) Mint(address string, coins ...types.Coin) error {
	if address == "" {
		return ErrEmptyAddress
	}
	parsed, err := parseCoins(coins)
	if err != nil {
		return err
	}
	for _, c := range parsed {
		l.set(address, c.denom, l.Balance(address, c.denom).Add(c.amount))
	}
	return nil
}

// Burn removes coins from address. Nothing is changed if any of the coins
// exceeds the balance.
func (l *Ledger) Burn(address string, coins ...types.Coin) error {
	if address == "" {
		return ErrEmptyAddress
	}
	parsed, err := parseCoins(coins)
	if err != nil {
		return err
	}
	for _, c := range parsed {
		if have := l.Balance(address, c.denom); have.LT(c.amount) {
			return errorsmod.Wrapf(ErrInsufficientFunds, "%s has %s%s, needs %s%s", address, have, c.denom, c.amount, c.denom)
		}
	}
	for _, c := range parsed {
		l.set(address, c.denom, l.Balance(address, c.denom).Sub(c.amount))
	}
	return nil
}

// Send moves coins from one address to another.
func (l *Ledger) Send(from, to string, coins ...types.Coin) error {
	if to == "" {
		return ErrEmptyAddress
	}
	if err := l.Burn(from, coins...); err != nil {
		return err
	}
	return l.Mint(to, coins...)
}

// Export lists all balances ordered by address.
func (l *Ledger) Export() []Balance {
	var out []Balance
	l.tree.Ascend(func(e entry) bool {
		if n := len(out); n == 0 || out[n-1].Address != e.address {
			out = append(out, Balance{Address: e.address})
		}
		last := &out[len(out)-1]
		last.Coins = append(last.Coins, toCoin(e.denom, e.amount))
		return true
	})
	return out
}

// Import replaces the whole ledger with balances.
func (l *Ledger) Import(balances []Balance) error {
	next := NewLedger()
	for _, b := range balances {
		if err := next.Mint(b.Address, b.Coins...); err != nil {
			return errorsmod.Wrapf(err, "balance of %q", b.Address)
		}
	}
	l.tree = next.tree
	return nil
}

// Clone returns an independent copy of the ledger.
func (l *Ledger) Clone() *Ledger {
	return &Ledger{tree: l.tree.Clone()}
}

func (l *Ledger) set(address, denom string, amount sdkmath.Int) {
	if amount.IsZero() {
		l.tree.Delete(entry{address: address, denom: denom})
		return
	}
	l.tree.ReplaceOrInsert(entry{address: address, denom: denom, amount: amount})
}

type parsedCoin struct {
	denom  string
	amount sdkmath.Int
}

// parseCoins validates coins and merges repeated denoms, keeping first-seen order.
func parseCoins(coins []types.Coin) ([]parsedCoin, error) {
	out := make([]parsedCoin, 0, len(coins))
	index := make(map[string]int, len(coins))
	for _, c := range coins {
		amount, err := ParseAmount(c)
		if err != nil {
			return nil, err
		}
		if i, ok := index[c.Denom]; ok {
			out[i].amount = out[i].amount.Add(amount)
			continue
		}
		index[c.Denom] = len(out)
		out = append(out, parsedCoin{denom: c.Denom, amount: amount})
	}
	return out, nil
}

// ParseAmount validates a coin and returns its amount.
func ParseAmount(c types.Coin) (sdkmath.Int, error) {
	if c.Denom == "" {
		return sdkmath.Int{}, ErrInvalidDenom
	}
	amount, ok := sdkmath.NewIntFromString(c.Amount)
	if !ok || amount.IsNegative() {
		return sdkmath.Int{}, errorsmod.Wrapf(ErrInvalidAmount, "%q", c.Amount)
	}
	return amount, nil
}

func toCoin(denom string, amount sdkmath.Int) types.Coin {
	return types.Coin{Denom: denom, Amount: amount.String()}
}
