package ensemble

import (
	errorsmod "cosmossdk.io/errors"
	"github.com/shamaton/msgpack/v2"

	"github.com/CosmWasm/ensemble/bank"
	"github.com/CosmWasm/ensemble/staking"
	"github.com/CosmWasm/ensemble/types"
)

type snapshot struct {
	Block   types.BlockInfo `msgpack:"block"`
	Bank    []bank.Balance  `msgpack:"bank"`
	Staking staking.Genesis `msgpack:"staking"`
	Storage []kvPair        `msgpack:"storage"`
}

type kvPair struct {
	Key   []byte `msgpack:"k"`
	Value []byte `msgpack:"v"`
}

// Snapshot encodes the block, bank, staking and contract storage state.
// Registered contracts are not part of it.
func (e *Ensemble) Snapshot() ([]byte, error) {
	ctx := e.Context()
	s := snapshot{
		Block:   e.block,
		Bank:    ctx.Bank.Export(),
		Staking: ctx.Staking.Export(),
	}
	it, err := e.db.Iterator(nil, nil)
	if err != nil {
		return nil, err
	}
	defer it.Close()
	for ; it.Valid(); it.Next() {
		s.Storage = append(s.Storage, kvPair{
			Key:   append([]byte(nil), it.Key()...),
			Value: append([]byte(nil), it.Value()...),
		})
	}
	if err := it.Error(); err != nil {
		return nil, err
	}
	return msgpack.Marshal(s)
}

// Revert restores a state taken with Snapshot. Nothing changes when it fails.
func (e *Ensemble) Revert(bz []byte) error {
	ctx := e.Context()
	var s snapshot
	if err := msgpack.Unmarshal(bz, &s); err != nil {
		return errorsmod.Wrap(ErrInvalidSnapshot, err.Error())
	}

	stakingRegistry := ctx.Staking.Clone()
	if err := stakingRegistry.Import(s.Staking); err != nil {
		return errorsmod.Wrap(ErrInvalidSnapshot, err.Error())
	}
	if err := ctx.Bank.Import(s.Bank); err != nil {
		return errorsmod.Wrap(ErrInvalidSnapshot, err.Error())
	}
	*ctx.Staking = *stakingRegistry
	e.block = s.Block

	if err := e.restoreStorage(s.Storage); err != nil {
		return err
	}
	e.logger.Info().Uint64("height", s.Block.Height).Msg("state reverted")
	return nil
}

func (e *Ensemble) restoreStorage(pairs []kvPair) error {
	it, err := e.db.Iterator(nil, nil)
	if err != nil {
		return err
	}
	var keys [][]byte
	for ; it.Valid(); it.Next() {
		keys = append(keys, append([]byte(nil), it.Key()...))
	}
	if err := it.Close(); err != nil {
		return err
	}
	for _, k := range keys {
		if err := e.db.Delete(k); err != nil {
			return err
		}
	}
	for _, p := range pairs {
		if err := e.db.Set(p.Key, p.Value); err != nil {
			return err
		}
	}
	return nil
}
