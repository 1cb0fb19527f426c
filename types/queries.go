package types

import (
	"encoding/json"
)

//-------- Querier -----------

// Querier is the capability a contract uses to read chain state. RawQuery takes a
// JSON encoded QueryRequest and returns a JSON encoded QuerierResult, exactly like
// the query_chain import of a wasm contract.
type Querier interface {
	RawQuery(request []byte) []byte
}

// QuerierResult is the outer, transport level result of a query.
// Exactly one of Ok and Err is set.
type QuerierResult struct {
	Ok  *QueryResult `json:"ok,omitempty"`
	Err *SystemError `json:"error,omitempty"`
}

// EmptyErrorMessage stands in for application errors whose Error() is empty,
// which would otherwise encode as a successful result.
const EmptyErrorMessage = "query failed with an empty error message"

// ToQuerierResult sorts a query outcome into the two tiers. Errors that are a
// SystemError variant become a transport failure, every other error is rendered
// into an application level error string.
func ToQuerierResult(response []byte, err error) QuerierResult {
	if err == nil {
		return QuerierResult{
			Ok: &QueryResult{Ok: response},
		}
	}
	if syserr := ToSystemError(err); syserr != nil {
		return QuerierResult{
			Err: syserr,
		}
	}
	msg := err.Error()
	if msg == "" {
		msg = EmptyErrorMessage
	}
	return QuerierResult{
		Ok: &QueryResult{Err: msg},
	}
}

// QueryResult is the inner, application level result of a query.
// This is the counterpart of ContractResult<Binary>.
type QueryResult struct {
	Ok  []byte `json:"ok,omitempty"`
	Err string `json:"error,omitempty"`
}

// MarshalJSON always emits the "ok" key on success, even for empty data,
// since the contract side has no way to express "neither ok nor error".
func (q QueryResult) MarshalJSON() ([]byte, error) {
	if q.Err != "" {
		return json.Marshal(struct {
			Err string `json:"error"`
		}{q.Err})
	}
	ok := q.Ok
	if ok == nil {
		ok = []byte{}
	}
	return json.Marshal(struct {
		Ok []byte `json:"ok"`
	}{ok})
}

//-------- Queries --------

// QueryRequest is the tagged union a contract sends to the chain.
// Exactly one field is set.
type QueryRequest struct {
	Bank         *BankQuery         `json:"bank,omitempty"`
	Custom       json.RawMessage    `json:"custom,omitempty"`
	IBC          *IBCQuery          `json:"ibc,omitempty"`
	Staking      *StakingQuery      `json:"staking,omitempty"`
	Distribution *DistributionQuery `json:"distribution,omitempty"`
	Stargate     *StargateQuery     `json:"stargate,omitempty"`
	Grpc         *GrpcQuery         `json:"grpc,omitempty"`
	Wasm         *WasmQuery         `json:"wasm,omitempty"`
}

func (q *QueryRequest) UnmarshalJSON(data []byte) error {
	if _, err := checkVariant(data, "QueryRequest",
		"bank", "custom", "ibc", "staking", "distribution", "stargate", "grpc", "wasm"); err != nil {
		return err
	}
	type queryRequest QueryRequest
	var tmp queryRequest
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*q = QueryRequest(tmp)
	return nil
}

// Kind names the request variant, eg. "bank/balance". Used for logs, metrics
// and UnsupportedRequest errors.
func (q QueryRequest) Kind() string {
	switch {
	case q.Bank != nil:
		return "bank/" + q.Bank.kind()
	case q.Staking != nil:
		return "staking/" + q.Staking.kind()
	case q.Wasm != nil:
		return "wasm/" + q.Wasm.kind()
	case q.Custom != nil:
		return "custom"
	case q.IBC != nil:
		return "ibc"
	case q.Distribution != nil:
		return "distribution"
	case q.Stargate != nil:
		return "stargate"
	case q.Grpc != nil:
		return "grpc"
	default:
		return "unknown"
	}
}

//-------- Bank --------

type BankQuery struct {
	Supply           *SupplyQuery           `json:"supply,omitempty"`
	Balance          *BalanceQuery          `json:"balance,omitempty"`
	AllBalances      *AllBalancesQuery      `json:"all_balances,omitempty"`
	DenomMetadata    *DenomMetadataQuery    `json:"denom_metadata,omitempty"`
	AllDenomMetadata *AllDenomMetadataQuery `json:"all_denom_metadata,omitempty"`
}

func (q *BankQuery) UnmarshalJSON(data []byte) error {
	if _, err := checkVariant(data, "BankQuery",
		"supply", "balance", "all_balances", "denom_metadata", "all_denom_metadata"); err != nil {
		return err
	}
	type bankQuery BankQuery
	var tmp bankQuery
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*q = BankQuery(tmp)
	return nil
}

func (q *BankQuery) kind() string {
	switch {
	case q.Supply != nil:
		return "supply"
	case q.Balance != nil:
		return "balance"
	case q.AllBalances != nil:
		return "all_balances"
	case q.DenomMetadata != nil:
		return "denom_metadata"
	case q.AllDenomMetadata != nil:
		return "all_denom_metadata"
	default:
		return "unknown"
	}
}

type SupplyQuery struct {
	Denom string `json:"denom"`
}

// SupplyResponse is the expected response to SupplyQuery
type SupplyResponse struct {
	Amount Coin `json:"amount"`
}

type BalanceQuery struct {
	Address string `json:"address"`
	Denom   string `json:"denom"`
}

// BalanceResponse is the expected response to BalanceQuery
type BalanceResponse struct {
	Amount Coin `json:"amount"`
}

type AllBalancesQuery struct {
	Address string `json:"address"`
}

// AllBalancesResponse is the expected response to AllBalancesQuery
type AllBalancesResponse struct {
	Amount Coins `json:"amount"`
}

type DenomMetadataQuery struct {
	Denom string `json:"denom"`
}

type AllDenomMetadataQuery struct {
	// Pagination is an optional argument.
	// Default pagination will be used if this is omitted
	Pagination *PageRequest `json:"pagination,omitempty"`
}

// Simplified version of the cosmos-sdk PageRequest type
type PageRequest struct {
	// Key is a value returned in PageResponse.next_key to begin
	// querying the next page most efficiently. Only one of offset or key
	// should be set.
	Key []byte `json:"key"`
	// Limit is the total number of results to be returned in the result page.
	// If left empty it will default to a value to be set by each app.
	Limit uint32 `json:"limit"`
	// Reverse is set to true if results are to be returned in the descending order.
	Reverse bool `json:"reverse"`
}

//-------- Staking --------

type StakingQuery struct {
	AllValidators  *AllValidatorsQuery  `json:"all_validators,omitempty"`
	Validator      *ValidatorQuery      `json:"validator,omitempty"`
	AllDelegations *AllDelegationsQuery `json:"all_delegations,omitempty"`
	Delegation     *DelegationQuery     `json:"delegation,omitempty"`
	BondedDenom    *BondedDenomQuery    `json:"bonded_denom,omitempty"`
}

func (q *StakingQuery) UnmarshalJSON(data []byte) error {
	if _, err := checkVariant(data, "StakingQuery",
		"all_validators", "validator", "all_delegations", "delegation", "bonded_denom"); err != nil {
		return err
	}
	type stakingQuery StakingQuery
	var tmp stakingQuery
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*q = StakingQuery(tmp)
	return nil
}

func (q *StakingQuery) kind() string {
	switch {
	case q.AllValidators != nil:
		return "all_validators"
	case q.Validator != nil:
		return "validator"
	case q.AllDelegations != nil:
		return "all_delegations"
	case q.Delegation != nil:
		return "delegation"
	case q.BondedDenom != nil:
		return "bonded_denom"
	default:
		return "unknown"
	}
}

type AllValidatorsQuery struct{}

// AllValidatorsResponse is the expected response to AllValidatorsQuery
type AllValidatorsResponse struct {
	Validators Validators `json:"validators"`
}

type ValidatorQuery struct {
	// Address is the validator's address (e.g. secretvaloper1...)
	Address string `json:"address"`
}

// ValidatorResponse is the expected response to ValidatorQuery
type ValidatorResponse struct {
	Validator *Validator `json:"validator"` // serializes to `null` when unset which matches Option::None
}

type Validator struct {
	Address string `json:"address" yaml:"address"`
	// decimal string, eg "0.02"
	Commission string `json:"commission" yaml:"commission"`
	// decimal string, eg "0.02"
	MaxCommission string `json:"max_commission" yaml:"max_commission"`
	// decimal string, eg "0.02"
	MaxChangeRate string `json:"max_change_rate" yaml:"max_change_rate"`
}

// Validators must JSON encode empty array as []
type Validators = Array[Validator]

type AllDelegationsQuery struct {
	Delegator string `json:"delegator"`
}

// AllDelegationsResponse is the expected response to AllDelegationsQuery
type AllDelegationsResponse struct {
	Delegations Delegations `json:"delegations"`
}

type Delegation struct {
	Delegator string `json:"delegator"`
	Validator string `json:"validator"`
	Amount    Coin   `json:"amount"`
}

// Delegations must JSON encode empty array as []
type Delegations = Array[Delegation]

type DelegationQuery struct {
	Delegator string `json:"delegator"`
	Validator string `json:"validator"`
}

// DelegationResponse is the expected response to DelegationQuery
type DelegationResponse struct {
	Delegation *FullDelegation `json:"delegation,omitempty"`
}

type FullDelegation struct {
	Delegator          string `json:"delegator"`
	Validator          string `json:"validator"`
	Amount             Coin   `json:"amount"`
	AccumulatedRewards Coins  `json:"accumulated_rewards"`
	CanRedelegate      Coin   `json:"can_redelegate"`
}

type BondedDenomQuery struct{}

type BondedDenomResponse struct {
	Denom string `json:"denom"`
}

//-------- Wasm --------

type WasmQuery struct {
	Smart        *SmartQuery        `json:"smart,omitempty"`
	Raw          *RawQuery          `json:"raw,omitempty"`
	ContractInfo *ContractInfoQuery `json:"contract_info,omitempty"`
	CodeInfo     *CodeInfoQuery     `json:"code_info,omitempty"`
}

func (q *WasmQuery) UnmarshalJSON(data []byte) error {
	if _, err := checkVariant(data, "WasmQuery", "smart", "raw", "contract_info", "code_info"); err != nil {
		return err
	}
	type wasmQuery WasmQuery
	var tmp wasmQuery
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*q = WasmQuery(tmp)
	return nil
}

func (q *WasmQuery) kind() string {
	switch {
	case q.Smart != nil:
		return "smart"
	case q.Raw != nil:
		return "raw"
	case q.ContractInfo != nil:
		return "contract_info"
	case q.CodeInfo != nil:
		return "code_info"
	default:
		return "unknown"
	}
}

// SmartQuery response is raw bytes ([]byte)
type SmartQuery struct {
	ContractAddr string `json:"contract_addr"`
	Msg          []byte `json:"msg"`
}

// RawQuery response is raw bytes ([]byte)
type RawQuery struct {
	ContractAddr string `json:"contract_addr"`
	Key          []byte `json:"key"`
}

type ContractInfoQuery struct {
	ContractAddr string `json:"contract_addr"`
}

type CodeInfoQuery struct {
	CodeID uint64 `json:"code_id"`
}

//-------- Passed through to the baseline querier --------

// IBCQuery defines a query request from the contract into the chain.
type IBCQuery struct {
	PortID       *PortIDQuery       `json:"port_id,omitempty"`
	ListChannels *ListChannelsQuery `json:"list_channels,omitempty"`
	Channel      *ChannelQuery      `json:"channel,omitempty"`
}

type PortIDQuery struct{}

type ListChannelsQuery struct {
	// optional argument
	PortID string `json:"port_id,omitempty"`
}

type ChannelQuery struct {
	ChannelID string `json:"channel_id"`
	// optional argument
	PortID string `json:"port_id,omitempty"`
}

type DistributionQuery struct {
	DelegatorWithdrawAddress *DelegatorWithdrawAddressQuery `json:"delegator_withdraw_address,omitempty"`
	DelegationRewards        *DelegationRewardsQuery        `json:"delegation_rewards,omitempty"`
	DelegationTotalRewards   *DelegationTotalRewardsQuery   `json:"delegation_total_rewards,omitempty"`
	DelegatorValidators      *DelegatorValidatorsQuery      `json:"delegator_validators,omitempty"`
}

type DelegatorWithdrawAddressQuery struct {
	DelegatorAddress string `json:"delegator_address"`
}

type DelegationRewardsQuery struct {
	DelegatorAddress string `json:"delegator_address"`
	ValidatorAddress string `json:"validator_address"`
}

type DelegationTotalRewardsQuery struct {
	DelegatorAddress string `json:"delegator_address"`
}

type DelegatorValidatorsQuery struct {
	DelegatorAddress string `json:"delegator_address"`
}

// StargateQuery is encoded the same way as abci_query, with path and protobuf encoded request data.
type StargateQuery struct {
	// The expected protobuf message type (not [Any](https://protobuf.dev/programming-guides/proto3/#any)), binary encoded
	Data []byte `json:"data"`
	// this is the fully qualified service path used for routing,
	// eg. custom/cosmos_sdk.x.bank.v1.Query/QueryBalance
	Path string `json:"path"`
}

// GrpcQuery queries the chain using a grpc query.
type GrpcQuery struct {
	// The expected protobuf message type (not [Any](https://protobuf.dev/programming-guides/proto3/#any)), binary encoded
	Data []byte `json:"data"`
	// The fully qualified endpoint path used for routing.
	// It follows the format `/service_path/method_name`,
	// eg. "/cosmos.authz.v1beta1.Query/Grants"
	Path string `json:"path"`
}
