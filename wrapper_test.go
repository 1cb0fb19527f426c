package ensemble_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CosmWasm/ensemble"
	"github.com/CosmWasm/ensemble/types"
)

// staticQuerier answers every request with the same bytes.
type staticQuerier []byte

func (s staticQuerier) RawQuery([]byte) []byte { return s }

func TestQuerierWrapper(t *testing.T) {
	w := ensemble.NewQuerierWrapper(newEnsemble(t, testGenesis()).Querier())

	coin, err := w.QueryBalance("alice", "uatom")
	require.NoError(t, err)
	assert.Equal(t, types.NewCoin(5, "uatom"), coin)

	coins, err := w.QueryAllBalances("bob")
	require.NoError(t, err)
	assert.Equal(t, types.Coins{types.NewCoin(20, "uscrt")}, coins)

	supply, err := w.QuerySupply("uatom")
	require.NoError(t, err)
	assert.Equal(t, types.NewCoin(5, "uatom"), supply)

	denom, err := w.QueryBondedDenom()
	require.NoError(t, err)
	assert.Equal(t, "uscrt", denom)

	validators, err := w.QueryAllValidators()
	require.NoError(t, err)
	require.Len(t, validators, 2)
	assert.Equal(t, "val2", validators[0].Address)

	v, err := w.QueryValidator("val1")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "0.02", v.Commission)
	v, err = w.QueryValidator("val9")
	require.NoError(t, err)
	assert.Nil(t, v)

	delegations, err := w.QueryAllDelegations("alice")
	require.NoError(t, err)
	assert.Len(t, delegations, 2)
	delegations, err = w.QueryAllDelegations("bob")
	require.NoError(t, err)
	assert.Empty(t, delegations)

	d, err := w.QueryDelegation("alice", "val2")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, types.Coins{types.NewCoin(3, "uscrt")}, d.AccumulatedRewards)
	d, err = w.QueryDelegation("bob", "val2")
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestQuerierWrapperErrors(t *testing.T) {
	w := ensemble.NewQuerierWrapper(newEnsemble(t, testGenesis()).Querier())

	err := w.QuerySmart("missing", struct{}{}, nil)
	var sysErr types.SystemError
	require.True(t, errors.As(err, &sysErr))
	require.NotNil(t, sysErr.NoSuchContract)
	assert.Equal(t, "missing", sysErr.NoSuchContract.Addr)

	_, err = w.QueryBalance("", "uscrt")
	var queryErr *ensemble.QueryError
	require.True(t, errors.As(err, &queryErr))
	assert.Contains(t, queryErr.Msg, "invalid address")

	err = w.Query(types.QueryRequest{IBC: &types.IBCQuery{PortID: &types.PortIDQuery{}}}, nil)
	require.True(t, errors.As(err, &sysErr))
	require.NotNil(t, sysErr.UnsupportedRequest)
	assert.Equal(t, "ibc", sysErr.UnsupportedRequest.Kind)
}

func TestQuerierWrapperInvalidResponse(t *testing.T) {
	specs := map[string][]byte{
		"not json":      []byte("nope"),
		"empty object":  []byte(`{}`),
		"bad payload":   []byte(`{"ok":{"ok":"bm90IGpzb24="}}`),
		"wrong payload": []byte(`{"ok":{"ok":"WzEsMl0="}}`),
	}
	for name, raw := range specs {
		t.Run(name, func(t *testing.T) {
			w := ensemble.NewQuerierWrapper(staticQuerier(raw))
			_, err := w.QueryBondedDenom()
			var invalid types.InvalidResponse
			require.True(t, errors.As(err, &invalid), "got %v", err)
		})
	}
}
