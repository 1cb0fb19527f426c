package ensemble_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CosmWasm/ensemble"
	"github.com/CosmWasm/ensemble/storage"
	"github.com/CosmWasm/ensemble/types"
)

var note = storage.NewItem("note", storage.JSON[string]{})

func noop(ensemble.Deps, types.Env, []byte) ([]byte, error) {
	return []byte(`{}`), nil
}

func TestNew(t *testing.T) {
	e := newEnsemble(t, testGenesis())
	ctx := e.Context()

	assert.Equal(t, "uscrt", ctx.Staking.BondedDenom())
	assert.Equal(t, "100", ctx.Bank.Balance("alice", "uscrt").String())
	assert.Len(t, ctx.Staking.Validators(), 2)
	assert.Equal(t, types.BlockInfo{Height: 1, ChainID: ensemble.DefaultChainID}, e.Block())

	specs := map[string]func(g *ensemble.Genesis){
		"empty bonded denom":    func(g *ensemble.Genesis) { g.BondedDenom = "" },
		"empty chain id":        func(g *ensemble.Genesis) { g.ChainID = "" },
		"negative balance":      func(g *ensemble.Genesis) { g.Balances[0].Coins[0].Amount = "-1" },
		"duplicate validator":   func(g *ensemble.Genesis) { g.Validators[1].Address = "val2" },
		"bad delegation amount": func(g *ensemble.Genesis) { g.Delegations[0].Amount = "x" },
		"zero delegation":       func(g *ensemble.Genesis) { g.Delegations[0].Amount = "0" },
		"negative depth":        func(g *ensemble.Genesis) { g.MaxQueryDepth = -1 },
	}
	for name, mutate := range specs {
		t.Run(name, func(t *testing.T) {
			g := testGenesis()
			mutate(&g)
			_, err := ensemble.New(g)
			require.ErrorIs(t, err, ensemble.ErrInvalidGenesis)
		})
	}
}

func TestNewMaxQueryDepthOption(t *testing.T) {
	_, err := ensemble.New(testGenesis(), ensemble.WithMaxQueryDepth(-1))
	require.ErrorIs(t, err, ensemble.ErrInvalidConfig)

	// the genesis is still validated when the option overrides its depth
	g := testGenesis()
	g.MaxQueryDepth = -1
	_, err = ensemble.New(g, ensemble.WithMaxQueryDepth(3))
	require.ErrorIs(t, err, ensemble.ErrInvalidGenesis)

	e, err := ensemble.New(testGenesis(), ensemble.WithMaxQueryDepth(0))
	require.NoError(t, err)
	assert.NotNil(t, e.Querier())
}

func TestRegister(t *testing.T) {
	e := newEnsemble(t, testGenesis())

	require.NoError(t, e.Register("b", ensemble.ContractFunc(noop)))
	require.NoError(t, e.Register("a", ensemble.ContractFunc(noop)))
	require.ErrorIs(t, e.Register("a", ensemble.ContractFunc(noop)), ensemble.ErrDuplicateContract)
	require.ErrorIs(t, e.Register("", ensemble.ContractFunc(noop)), ensemble.ErrEmptyAddress)

	contracts := e.Context().Contracts
	assert.True(t, contracts.Contains("a"))
	assert.False(t, contracts.Contains("c"))
	assert.Equal(t, []string{"a", "b"}, contracts.Addresses())

	_, err := contracts.Store("c")
	assert.Equal(t, types.NoSuchContract{Addr: "c"}, err)
}

func TestContractStorageIsolation(t *testing.T) {
	e := newEnsemble(t, testGenesis())
	reader := ensemble.ContractFunc(func(deps ensemble.Deps, _ types.Env, _ []byte) ([]byte, error) {
		v, ok, err := note.MayLoad(deps.Storage)
		if err != nil || !ok {
			return []byte(`null`), err
		}
		return []byte(`"` + v + `"`), nil
	})
	require.NoError(t, e.Register("a", reader))
	require.NoError(t, e.Register("ab", reader))

	store, err := e.Context().Contracts.Store("a")
	require.NoError(t, err)
	require.NoError(t, note.Save(store, "written for a"))

	q := e.Querier()
	assert.Equal(t, `"written for a"`, okData(t, q.Dispatch([]byte(`{"wasm":{"smart":{"contract_addr":"a","msg":"e30="}}}`))))
	assert.Equal(t, `null`, okData(t, q.Dispatch([]byte(`{"wasm":{"smart":{"contract_addr":"ab","msg":"e30="}}}`))))
}

func TestSetBlock(t *testing.T) {
	e := newEnsemble(t, testGenesis())
	e.SetBlock(types.BlockInfo{Height: 7, Time: 99})
	assert.Equal(t, types.BlockInfo{Height: 7, Time: 99, ChainID: ensemble.DefaultChainID}, e.Block())
	e.SetBlock(types.BlockInfo{Height: 8, ChainID: "other"})
	assert.Equal(t, "other", e.Block().ChainID)
}

func TestClose(t *testing.T) {
	e, err := ensemble.New(testGenesis())
	require.NoError(t, err)
	q := e.Querier()
	okData(t, q.Dispatch([]byte(`{"staking":{"bonded_denom":{}}}`)))

	require.NoError(t, e.Close())
	require.NoError(t, e.Close())

	assert.PanicsWithValue(t, ensemble.ErrEnsembleClosed, func() {
		q.Dispatch([]byte(`{"staking":{"bonded_denom":{}}}`))
	})
	assert.PanicsWithValue(t, ensemble.ErrEnsembleClosed, func() {
		q.RawQuery([]byte(`not even json`))
	})
	assert.PanicsWithValue(t, ensemble.ErrEnsembleClosed, func() { e.Context() })
	assert.Panics(t, func() { _ = e.Register("x", ensemble.ContractFunc(noop)) })
}

func TestSnapshotRevert(t *testing.T) {
	e := newEnsemble(t, testGenesis())
	require.NoError(t, e.Register("c", ensemble.ContractFunc(noop)))
	ctx := e.Context()
	store, err := ctx.Contracts.Store("c")
	require.NoError(t, err)
	require.NoError(t, note.Save(store, "before"))

	snap, err := e.Snapshot()
	require.NoError(t, err)

	require.NoError(t, ctx.Bank.Send("alice", "carol", types.NewCoin(60, "uscrt")))
	require.NoError(t, ctx.Bank.Set("dave", "uatom", sdkmath.NewInt(9)))
	require.NoError(t, ctx.Staking.Undelegate("alice", "val1", types.NewCoin(50, "uscrt")))
	require.NoError(t, ctx.Staking.Delegate("bob", "val1", types.NewCoin(1, "uscrt")))
	require.NoError(t, note.Save(store, "after"))
	require.NoError(t, storage.NewItem("extra", storage.JSON[int]{}).Save(store, 1))
	e.SetBlock(types.BlockInfo{Height: 100})

	require.NoError(t, e.Revert(snap))

	assert.Equal(t, "100", ctx.Bank.Balance("alice", "uscrt").String())
	assert.True(t, ctx.Bank.Balance("carol", "uscrt").IsZero())
	assert.True(t, ctx.Bank.Balance("dave", "uatom").IsZero())
	assert.NotNil(t, ctx.Staking.Delegation("alice", "val1"))
	assert.Nil(t, ctx.Staking.Delegation("bob", "val1"))
	assert.Equal(t, uint64(1), e.Block().Height)

	got, err := note.Load(store)
	require.NoError(t, err)
	assert.Equal(t, "before", got)
	_, ok, err := storage.NewItem("extra", storage.JSON[int]{}).MayLoad(store)
	require.NoError(t, err)
	assert.False(t, ok)

	// the querier sees the reverted state
	q := e.Querier()
	assert.JSONEq(t, `{"amount":{"denom":"uscrt","amount":"100"}}`,
		okData(t, q.Dispatch([]byte(`{"bank":{"balance":{"address":"alice","denom":"uscrt"}}}`))))
}

func TestRevertInvalidSnapshot(t *testing.T) {
	e := newEnsemble(t, testGenesis())
	require.ErrorIs(t, e.Revert([]byte("garbage")), ensemble.ErrInvalidSnapshot)
	assert.Equal(t, "100", e.Context().Bank.Balance("alice", "uscrt").String())

	other := newEnsemble(t, func() ensemble.Genesis {
		g := ensemble.DefaultGenesis()
		g.BondedDenom = "uatom"
		return g
	}())
	snap, err := other.Snapshot()
	require.NoError(t, err)
	require.ErrorIs(t, e.Revert(snap), ensemble.ErrInvalidSnapshot)
	assert.Equal(t, "100", e.Context().Bank.Balance("alice", "uscrt").String())
}
