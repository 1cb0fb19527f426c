// Package ensemble is a mock chain for testing contract queries without a node.
//
// An Ensemble owns the simulated bank, staking and contract state of one test
// run. Its Querier decodes query requests, routes them to the owning module and
// answers with the same envelopes a CosmWasm chain produces, including the split
// between system errors and application errors.
package ensemble

import (
	errorsmod "cosmossdk.io/errors"
	dbm "github.com/cometbft/cometbft-db"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/CosmWasm/ensemble/bank"
	"github.com/CosmWasm/ensemble/internal/metrics"
	"github.com/CosmWasm/ensemble/staking"
	"github.com/CosmWasm/ensemble/types"
)

type config struct {
	logger        zerolog.Logger
	registerer    prometheus.Registerer
	maxQueryDepth int
	baseline      Baseline
}

type Option func(*config)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithRegisterer registers the query metrics with reg instead of a private registry.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *config) { c.registerer = reg }
}

// WithMaxQueryDepth overrides the max query depth of the genesis.
func WithMaxQueryDepth(depth int) Option {
	return func(c *config) { c.maxQueryDepth = depth }
}

// WithBaseline sets the responder for requests outside bank, staking and wasm.
func WithBaseline(b Baseline) Option {
	return func(c *config) { c.baseline = b }
}

// Ensemble owns the Context of one test run.
type Ensemble struct {
	ctx   *Context
	db    dbm.DB
	block types.BlockInfo

	maxQueryDepth int
	baseline      Baseline
	logger        zerolog.Logger
	metrics       *metrics.Metrics
}

// New builds an ensemble from genesis. The bonded denom is always initialized.
func New(genesis Genesis, opts ...Option) (*Ensemble, error) {
	cfg := config{
		logger:        zerolog.Nop(),
		maxQueryDepth: genesis.MaxQueryDepth,
		baseline:      BaselineQuerier{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.maxQueryDepth < 0 {
		return nil, errorsmod.Wrapf(ErrInvalidConfig, "max query depth %d is negative", cfg.maxQueryDepth)
	}
	if cfg.maxQueryDepth == 0 {
		cfg.maxQueryDepth = DefaultMaxQueryDepth
	}
	if cfg.registerer == nil {
		cfg.registerer = prometheus.NewRegistry()
	}
	if err := genesis.Validate(); err != nil {
		return nil, err
	}

	ledger := bank.NewLedger()
	if err := ledger.Import(genesis.Balances); err != nil {
		return nil, errorsmod.Wrap(ErrInvalidGenesis, err.Error())
	}
	stakingRegistry := staking.NewRegistry()
	err := stakingRegistry.Import(staking.Genesis{
		BondedDenom: genesis.BondedDenom,
		Validators:  genesis.Validators,
		Delegations: genesis.Delegations,
	})
	if err != nil {
		return nil, errorsmod.Wrap(ErrInvalidGenesis, err.Error())
	}
	m, err := metrics.New(cfg.registerer)
	if err != nil {
		return nil, err
	}

	db := dbm.NewMemDB()
	e := &Ensemble{
		ctx: &Context{
			Bank:      ledger,
			Staking:   stakingRegistry,
			Contracts: NewContractRegistry(db),
		},
		db:            db,
		block:         genesis.blockInfo(),
		maxQueryDepth: cfg.maxQueryDepth,
		baseline:      cfg.baseline,
		logger:        cfg.logger.With().Str("module", ModuleName).Str("chain_id", genesis.ChainID).Logger(),
		metrics:       m,
	}
	e.logger.Info().
		Int("balances", len(genesis.Balances)).
		Int("validators", len(genesis.Validators)).
		Int("delegations", len(genesis.Delegations)).
		Msg("ensemble initialized")
	return e, nil
}

// Context returns the shared state. It panics once the ensemble is closed.
func (e *Ensemble) Context() *Context {
	if e.ctx == nil {
		panic(ErrEnsembleClosed)
	}
	return e.ctx
}

// Register deploys contract at address.
func (e *Ensemble) Register(address string, contract Contract) error {
	if err := e.Context().Contracts.Register(address, contract); err != nil {
		return err
	}
	e.logger.Info().Str("contract", address).Msg("contract registered")
	return nil
}

// Querier returns the query router of e, at the top level.
func (e *Ensemble) Querier() *Querier {
	return &Querier{ensemble: e}
}

func (e *Ensemble) Block() types.BlockInfo {
	return e.block
}

// SetBlock sets the block info contracts see. The chain id is kept when
// block leaves it empty.
func (e *Ensemble) SetBlock(block types.BlockInfo) {
	if block.ChainID == "" {
		block.ChainID = e.block.ChainID
	}
	e.block = block
}

// Close releases the state. Any later use of the ensemble or of a Querier
// taken from it panics with ErrEnsembleClosed.
func (e *Ensemble) Close() error {
	if e.ctx == nil {
		return nil
	}
	e.ctx = nil
	e.logger.Info().Msg("ensemble closed")
	return e.db.Close()
}
