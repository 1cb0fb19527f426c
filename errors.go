package ensemble

import (
	errorsmod "cosmossdk.io/errors"
)

const ModuleName = "ensemble"

var (
	ErrInvalidAddress      = errorsmod.Register(ModuleName, 2, "invalid address")
	ErrExceedMaxQueryDepth = errorsmod.Register(ModuleName, 3, "query depth exceeded")
	ErrDuplicateContract   = errorsmod.Register(ModuleName, 4, "contract already registered")
	ErrEmptyAddress        = errorsmod.Register(ModuleName, 5, "empty address")
	ErrEnsembleClosed      = errorsmod.Register(ModuleName, 6, "ensemble closed")
	ErrInvalidGenesis      = errorsmod.Register(ModuleName, 7, "invalid genesis")
	ErrInvalidSnapshot     = errorsmod.Register(ModuleName, 8, "invalid snapshot")
	ErrInvalidConfig       = errorsmod.Register(ModuleName, 9, "invalid config")
)

// ContractError is the failure of a contract query entry point.
//
// It renders as the contract's own message. A contract that fails with a
// SystemError (eg. one it got back from a nested query) has still failed at
// the application level, so the cause is kept behind this type instead of
// being returned as is.
type ContractError struct {
	Contract string
	Err      error
}

func (e *ContractError) Error() string {
	return e.Err.Error()
}

func (e *ContractError) Unwrap() error {
	return e.Err
}

// QueryError is an application level query failure as seen from a contract:
// the error string of an {"ok":{"error":"..."}} envelope.
type QueryError struct {
	Msg string
}

func (e *QueryError) Error() string {
	return e.Msg
}
