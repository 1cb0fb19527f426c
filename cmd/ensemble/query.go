package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func queryCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "query <request-json>",
		Short: "Dispatch a query request and print the result envelope",
		Example: `  ensemble query '{"bank":{"balance":{"address":"alice","denom":"uscrt"}}}'
  ensemble --genesis genesis.yaml query '{"wasm":{"smart":{"contract_addr":"secret1counter","msg":"eyJnZXRfY291bnQiOnt9fQ=="}}}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(v, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			e, err := buildEnsemble(v, logger)
			if err != nil {
				return err
			}
			defer e.Close()

			raw := e.Querier().RawQuery([]byte(args[0]))
			var out bytes.Buffer
			if err := json.Indent(&out, raw, "", "  "); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out.String())
			return err
		},
	}
}
