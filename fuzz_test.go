package ensemble_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/CosmWasm/ensemble"
)

func FuzzDispatch(f *testing.F) {
	for _, seed := range []string{
		`{"bank":{"balance":{"address":"alice","denom":"uscrt"}}}`,
		`{"bank":{"all_balances":{"address":"alice"}}}`,
		`{"staking":{"delegation":{"delegator":"alice","validator":"val1"}}}`,
		`{"staking":{"bonded_denom":{}}}`,
		`{"wasm":{"smart":{"contract_addr":"c","msg":"e30="}}}`,
		`{"wasm":{"raw":{"contract_addr":"c","key":""}}}`,
		`{"custom":null}`,
		`{}`,
		`nope`,
	} {
		f.Add([]byte(seed))
	}

	e, err := ensemble.New(testGenesis())
	require.NoError(f, err)
	require.NoError(f, e.Register("c", ensemble.ContractFunc(noop)))
	q := e.Querier()

	f.Fuzz(func(t *testing.T, request []byte) {
		original := bytes.Clone(request)
		res := q.Dispatch(request)
		require.True(t, (res.Ok == nil) != (res.Err == nil), "exactly one tier must be set")
		if !json.Valid(original) {
			require.NotNil(t, res.Err)
			require.NotNil(t, res.Err.InvalidRequest)
			require.Equal(t, original, res.Err.InvalidRequest.Request)
		}
		require.True(t, json.Valid(q.RawQuery(request)))
	})
}
