package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/CosmWasm/ensemble"
	"github.com/CosmWasm/ensemble/examples/counter"
)

const (
	// envPrefix is the prefix of environment variables overriding flags, eg. ENSEMBLE_GENESIS.
	envPrefix = "ENSEMBLE"

	flagGenesis  = "genesis"
	flagLogLevel = "log-level"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "devel"

// contractKinds maps the kind of a genesis contract to its implementation.
var contractKinds = map[string]func() ensemble.Contract{
	counter.Kind: func() ensemble.Contract { return counter.New() },
}

func NewRootCmd() *cobra.Command {
	v := viper.New()
	root := &cobra.Command{
		Use:           "ensemble",
		Short:         "Mock chain for contract queries",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			v.SetEnvPrefix(envPrefix)
			v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
			v.AutomaticEnv()
			return v.BindPFlags(cmd.Flags())
		},
	}
	root.PersistentFlags().String(flagGenesis, "", "YAML genesis file, the default genesis when empty")
	root.PersistentFlags().String(flagLogLevel, "warn", "log level (trace, debug, info, warn, error)")

	root.AddCommand(
		queryCmd(v),
		genesisCmd(v),
		versionCmd(),
	)
	return root
}

func newLogger(v *viper.Viper, w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(v.GetString(flagLogLevel))
	if err != nil {
		return zerolog.Nop(), err
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).Level(level).With().Timestamp().Logger(), nil
}

func loadGenesis(v *viper.Viper) (ensemble.Genesis, error) {
	path := v.GetString(flagGenesis)
	if path == "" {
		return ensemble.DefaultGenesis(), nil
	}
	return ensemble.LoadGenesis(path)
}

// buildEnsemble creates the ensemble of the configured genesis, with its
// contracts registered and instantiated.
func buildEnsemble(v *viper.Viper, logger zerolog.Logger) (*ensemble.Ensemble, error) {
	g, err := loadGenesis(v)
	if err != nil {
		return nil, err
	}
	e, err := ensemble.New(g, ensemble.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	for _, c := range g.Contracts {
		if err := registerContract(e, c); err != nil {
			_ = e.Close()
			return nil, fmt.Errorf("contract %s: %w", c.Address, err)
		}
	}
	return e, nil
}

func registerContract(e *ensemble.Ensemble, c ensemble.ContractGenesis) error {
	newContract, ok := contractKinds[c.Kind]
	if !ok {
		return fmt.Errorf("unknown contract kind %q", c.Kind)
	}
	if err := e.Register(c.Address, newContract()); err != nil {
		return err
	}
	store, err := e.Context().Contracts.Store(c.Address)
	if err != nil {
		return err
	}
	switch c.Kind {
	case counter.Kind:
		var msg counter.InitMsg
		if err := convert(c.Init, &msg); err != nil {
			return err
		}
		return counter.Instantiate(store, msg)
	}
	return nil
}

// convert decodes a YAML mapping into a JSON tagged struct.
func convert(in map[string]any, out any) error {
	bz, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(bz, out)
}
