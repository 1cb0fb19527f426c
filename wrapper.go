package ensemble

import (
	"encoding/json"

	"github.com/CosmWasm/ensemble/types"
)

// QuerierWrapper decodes envelopes for contract code.
//
// Transport failures are returned as types.SystemError, application failures
// as *QueryError. A response that cannot be decoded is a types.InvalidResponse.
type QuerierWrapper struct {
	types.Querier
}

func NewQuerierWrapper(q types.Querier) QuerierWrapper {
	return QuerierWrapper{Querier: q}
}

// Query sends request and decodes the response into out, unless out is nil.
func (w QuerierWrapper) Query(request types.QueryRequest, out any) error {
	bz, err := json.Marshal(request)
	if err != nil {
		return types.InvalidRequest{Err: err.Error()}
	}
	raw := w.RawQuery(bz)

	var res types.QuerierResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return types.InvalidResponse{Err: err.Error(), Response: raw}
	}
	if res.Err != nil {
		return *res.Err
	}
	if res.Ok == nil {
		return types.InvalidResponse{Err: "neither ok nor error", Response: raw}
	}
	if res.Ok.Err != "" {
		return &QueryError{Msg: res.Ok.Err}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(res.Ok.Ok, out); err != nil {
		return types.InvalidResponse{Err: err.Error(), Response: res.Ok.Ok}
	}
	return nil
}

// QuerySmart sends msg, JSON encoded, to the contract at address.
func (w QuerierWrapper) QuerySmart(address string, msg any, out any) error {
	bz, err := json.Marshal(msg)
	if err != nil {
		return types.InvalidRequest{Err: err.Error()}
	}
	return w.Query(types.QueryRequest{
		Wasm: &types.WasmQuery{Smart: &types.SmartQuery{ContractAddr: address, Msg: bz}},
	}, out)
}

func (w QuerierWrapper) QueryBalance(address, denom string) (types.Coin, error) {
	var res types.BalanceResponse
	err := w.Query(types.QueryRequest{
		Bank: &types.BankQuery{Balance: &types.BalanceQuery{Address: address, Denom: denom}},
	}, &res)
	return res.Amount, err
}

func (w QuerierWrapper) QueryAllBalances(address string) (types.Coins, error) {
	var res types.AllBalancesResponse
	err := w.Query(types.QueryRequest{
		Bank: &types.BankQuery{AllBalances: &types.AllBalancesQuery{Address: address}},
	}, &res)
	return res.Amount, err
}

func (w QuerierWrapper) QuerySupply(denom string) (types.Coin, error) {
	var res types.SupplyResponse
	err := w.Query(types.QueryRequest{
		Bank: &types.BankQuery{Supply: &types.SupplyQuery{Denom: denom}},
	}, &res)
	return res.Amount, err
}

func (w QuerierWrapper) QueryBondedDenom() (string, error) {
	var res types.BondedDenomResponse
	err := w.Query(types.QueryRequest{
		Staking: &types.StakingQuery{BondedDenom: &types.BondedDenomQuery{}},
	}, &res)
	return res.Denom, err
}

// QueryValidator returns nil without error when no validator has address.
func (w QuerierWrapper) QueryValidator(address string) (*types.Validator, error) {
	var res types.ValidatorResponse
	err := w.Query(types.QueryRequest{
		Staking: &types.StakingQuery{Validator: &types.ValidatorQuery{Address: address}},
	}, &res)
	return res.Validator, err
}

func (w QuerierWrapper) QueryAllValidators() (types.Validators, error) {
	var res types.AllValidatorsResponse
	err := w.Query(types.QueryRequest{
		Staking: &types.StakingQuery{AllValidators: &types.AllValidatorsQuery{}},
	}, &res)
	return res.Validators, err
}

// QueryDelegation returns nil without error when there is no such delegation.
func (w QuerierWrapper) QueryDelegation(delegator, validator string) (*types.FullDelegation, error) {
	var res types.DelegationResponse
	err := w.Query(types.QueryRequest{
		Staking: &types.StakingQuery{Delegation: &types.DelegationQuery{Delegator: delegator, Validator: validator}},
	}, &res)
	return res.Delegation, err
}

func (w QuerierWrapper) QueryAllDelegations(delegator string) (types.Delegations, error) {
	var res types.AllDelegationsResponse
	err := w.Query(types.QueryRequest{
		Staking: &types.StakingQuery{AllDelegations: &types.AllDelegationsQuery{Delegator: delegator}},
	}, &res)
	return res.Delegations, err
}
