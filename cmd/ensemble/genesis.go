package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func genesisCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "genesis",
		Short: "Genesis file commands",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Build an ensemble from the genesis file and report what it holds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(v, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			e, err := buildEnsemble(v, logger)
			if err != nil {
				return err
			}
			defer e.Close()

			ctx := e.Context()
			_, err = fmt.Fprintf(cmd.OutOrStdout(),
				"genesis ok: chain %s, bonded denom %s, %d validators, %d contracts\n",
				e.Block().ChainID, ctx.Staking.BondedDenom(), len(ctx.Staking.Validators()), len(ctx.Contracts.Addresses()))
			return err
		},
	})
	return cmd
}
