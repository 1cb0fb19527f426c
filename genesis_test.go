package ensemble_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CosmWasm/ensemble"
	"github.com/CosmWasm/ensemble/types"
)

func TestLoadGenesis(t *testing.T) {
	g, err := ensemble.LoadGenesis("testdata/genesis.yaml")
	require.NoError(t, err)

	assert.Equal(t, "pulsar-3", g.ChainID)
	assert.Equal(t, "uscrt", g.BondedDenom)
	assert.Equal(t, ensemble.Block{Height: 12, Time: 1700000000000000000}, g.Block)
	assert.Equal(t, 5, g.MaxQueryDepth)
	require.Len(t, g.Balances, 2)
	assert.Equal(t, []types.Coin{types.NewCoin(1000, "uscrt"), types.NewCoin(7, "uatom")}, g.Balances[0].Coins)
	require.Len(t, g.Validators, 1)
	assert.Equal(t, "0.2", g.Validators[0].MaxCommission)
	require.Len(t, g.Delegations, 1)
	assert.Equal(t, []types.Coin{types.NewCoin(4, "uscrt")}, g.Delegations[0].Rewards)
	require.Len(t, g.Contracts, 1)
	assert.Equal(t, "counter", g.Contracts[0].Kind)
	assert.Equal(t, "alice", g.Contracts[0].Init["owner"])

	e, err := ensemble.New(g)
	require.NoError(t, err)
	defer e.Close()
	assert.Equal(t, types.BlockInfo{Height: 12, Time: 1700000000000000000, ChainID: "pulsar-3"}, e.Block())
	assert.Equal(t, "300", e.Context().Staking.Delegation("alice", "secretvaloper1first").Amount.Amount)

	_, err = ensemble.LoadGenesis("testdata/missing.yaml")
	require.Error(t, err)
}

func TestParseGenesis(t *testing.T) {
	g, err := ensemble.ParseGenesis([]byte(`balances: [{address: a, coins: [{denom: x, amount: "1"}]}]`))
	require.NoError(t, err)
	assert.Equal(t, ensemble.DefaultChainID, g.ChainID)
	assert.Equal(t, ensemble.DefaultBondedDenom, g.BondedDenom)
	assert.Equal(t, ensemble.DefaultMaxQueryDepth, g.MaxQueryDepth)

	specs := map[string]string{
		"not yaml":              "chain_id: [",
		"empty bonded denom":    `bonded_denom: ""`,
		"negative depth":        "max_query_depth: -2",
		"contract without kind": `contracts: [{address: c}]`,
		"duplicate contract":    `contracts: [{address: c, kind: counter}, {address: c, kind: counter}]`,
	}
	for name, doc := range specs {
		t.Run(name, func(t *testing.T) {
			_, err := ensemble.ParseGenesis([]byte(doc))
			require.ErrorIs(t, err, ensemble.ErrInvalidGenesis)
		})
	}
}
