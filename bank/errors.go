package bank

import (
	errorsmod "cosmossdk.io/errors"
)

// Codespace of the bank errors. It differs from the sdk bank module so both can
// be linked into one binary.
const Codespace = "ensemble_bank"

var (
	ErrInsufficientFunds = errorsmod.Register(Codespace, 2, "insufficient funds")
	ErrInvalidAmount     = errorsmod.Register(Codespace, 3, "invalid amount")
	ErrInvalidDenom      = errorsmod.Register(Codespace, 4, "invalid denom")
	ErrEmptyAddress      = errorsmod.Register(Codespace, 5, "empty address")
)
