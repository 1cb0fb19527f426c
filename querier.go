package ensemble

import (
	"encoding/json"

	errorsmod "cosmossdk.io/errors"

	"github.com/CosmWasm/ensemble/internal/metrics"
	"github.com/CosmWasm/ensemble/types"
)

// Querier routes query requests to the modules of an Ensemble.
//
// It holds a handle to the ensemble, not a copy of its state, and may only be
// used while the ensemble is open. Nested queries issued by contracts go through
// a Querier one level deeper.
type Querier struct {
	ensemble *Ensemble
	depth    int
}

var _ types.Querier = (*Querier)(nil)

// Depth is 0 for the top level and grows by one per nested contract query.
func (q *Querier) Depth() int {
	return q.depth
}

var unknownResult = []byte(`{"error":{"unknown":{}}}`)

// RawQuery dispatches request and returns the JSON encoded QuerierResult.
func (q *Querier) RawQuery(request []byte) []byte {
	res := q.Dispatch(request)
	bz, err := json.Marshal(res)
	if err != nil {
		q.ensemble.logger.Error().Err(err).Int("depth", q.depth).Msg("encode querier result")
		return unknownResult
	}
	return bz
}

// Dispatch decodes request, routes it and classifies the outcome into the two
// tiers of a QuerierResult.
func (q *Querier) Dispatch(request []byte) types.QuerierResult {
	ctx := q.ensemble.Context()
	logger := q.ensemble.logger.With().Int("depth", q.depth).Logger()

	var req types.QueryRequest
	if err := json.Unmarshal(request, &req); err != nil {
		original := make([]byte, len(request))
		copy(original, request)
		logger.Debug().Err(err).Msg("undecodable query request")
		q.ensemble.metrics.Observe("invalid", metrics.OutcomeSystemError, q.depth)
		return types.QuerierResult{
			Err: &types.SystemError{
				InvalidRequest: &types.InvalidRequest{
					Err:     "Parsing query request: " + err.Error(),
					Request: original,
				},
			},
		}
	}

	kind := req.Kind()
	logger.Debug().Str("kind", kind).Msg("dispatch query")
	res := types.ToQuerierResult(q.query(ctx, req))

	outcome := metrics.OutcomeOk
	switch {
	case res.Err != nil:
		outcome = metrics.OutcomeSystemError
		if res.Err.UnsupportedRequest != nil {
			logger.Warn().Str("kind", kind).Msg("unsupported query request")
		}
	case res.Ok.Err != "":
		outcome = metrics.OutcomeAppError
		logger.Debug().Str("kind", kind).Str("error", res.Ok.Err).Msg("query failed")
	}
	q.ensemble.metrics.Observe(kind, outcome, q.depth)
	return res
}

// Query routes a decoded request. SystemError values returned from here are
// transport failures, any other error is an application failure.
func (q *Querier) Query(request types.QueryRequest) ([]byte, error) {
	return q.query(q.ensemble.Context(), request)
}

func (q *Querier) query(ctx *Context, request types.QueryRequest) ([]byte, error) {
	switch {
	case request.Bank != nil:
		return q.bank(ctx, request.Bank)
	case request.Staking != nil:
		return q.staking(ctx, request.Staking)
	case request.Wasm != nil:
		return q.wasm(ctx, request.Wasm)
	default:
		return q.ensemble.baseline.Query(request)
	}
}

func (q *Querier) bank(ctx *Context, request *types.BankQuery) ([]byte, error) {
	switch {
	case request.Balance != nil:
		if request.Balance.Address == "" {
			return nil, errorsmod.Wrap(ErrInvalidAddress, "empty address")
		}
		coins := ctx.Bank.Query(request.Balance.Address, types.Some(request.Balance.Denom))
		return json.Marshal(types.BalanceResponse{Amount: coins[0]})
	case request.AllBalances != nil:
		if request.AllBalances.Address == "" {
			return nil, errorsmod.Wrap(ErrInvalidAddress, "empty address")
		}
		coins := ctx.Bank.Query(request.AllBalances.Address, types.None())
		return json.Marshal(types.AllBalancesResponse{Amount: coins})
	case request.Supply != nil:
		supply := ctx.Bank.Supply(request.Supply.Denom)
		return json.Marshal(types.SupplyResponse{
			Amount: types.Coin{Denom: request.Supply.Denom, Amount: supply.String()},
		})
	default:
		return nil, types.UnsupportedRequest{Kind: types.QueryRequest{Bank: request}.Kind()}
	}
}

func (q *Querier) staking(ctx *Context, request *types.StakingQuery) ([]byte, error) {
	switch {
	case request.BondedDenom != nil:
		return json.Marshal(types.BondedDenomResponse{Denom: ctx.Staking.BondedDenom()})
	case request.AllDelegations != nil:
		if request.AllDelegations.Delegator == "" {
			return nil, errorsmod.Wrap(ErrInvalidAddress, "empty delegator address")
		}
		return json.Marshal(types.AllDelegationsResponse{
			Delegations: ctx.Staking.AllDelegations(request.AllDelegations.Delegator),
		})
	case request.Delegation != nil:
		d := request.Delegation
		if d.Delegator == "" || d.Validator == "" {
			return nil, errorsmod.Wrap(ErrInvalidAddress, "empty delegator or validator address")
		}
		return json.Marshal(types.DelegationResponse{
			Delegation: ctx.Staking.Delegation(d.Delegator, d.Validator),
		})
	case request.AllValidators != nil:
		return json.Marshal(types.AllValidatorsResponse{Validators: ctx.Staking.Validators()})
	case request.Validator != nil:
		return json.Marshal(types.ValidatorResponse{Validator: ctx.Staking.Validator(request.Validator.Address)})
	default:
		return nil, types.UnsupportedRequest{Kind: types.QueryRequest{Staking: request}.Kind()}
	}
}

func (q *Querier) wasm(ctx *Context, request *types.WasmQuery) ([]byte, error) {
	switch {
	case request.Smart != nil:
		addr := request.Smart.ContractAddr
		if !ctx.Contracts.Contains(addr) {
			return nil, types.NoSuchContract{Addr: addr}
		}
		if q.depth >= q.ensemble.maxQueryDepth {
			return nil, errorsmod.Wrapf(ErrExceedMaxQueryDepth, "max %d", q.ensemble.maxQueryDepth)
		}
		nested := &Querier{ensemble: q.ensemble, depth: q.depth + 1}
		env := types.Env{Block: q.ensemble.block}
		return ctx.Contracts.Query(addr, env, request.Smart.Msg, nested)
	case request.Raw != nil:
		if !ctx.Contracts.Contains(request.Raw.ContractAddr) {
			return nil, types.NoSuchContract{Addr: request.Raw.ContractAddr}
		}
		return nil, types.UnsupportedRequest{Kind: "wasm/raw"}
	case request.ContractInfo != nil:
		if !ctx.Contracts.Contains(request.ContractInfo.ContractAddr) {
			return nil, types.NoSuchContract{Addr: request.ContractInfo.ContractAddr}
		}
		return nil, types.UnsupportedRequest{Kind: "wasm/contract_info"}
	case request.CodeInfo != nil:
		return nil, types.NoSuchCode{CodeID: request.CodeInfo.CodeID}
	default:
		return nil, types.UnsupportedRequest{Kind: types.QueryRequest{Wasm: request}.Kind()}
	}
}
