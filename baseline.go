package ensemble

import (
	"encoding/json"

	"github.com/CosmWasm/ensemble/types"
)

// Baseline answers the requests the ensemble has no module for:
// custom, ibc, distribution, stargate and grpc.
type Baseline interface {
	Query(request types.QueryRequest) ([]byte, error)
}

// CustomQuerier handles chain specific custom queries.
type CustomQuerier func(request json.RawMessage) ([]byte, error)

// BaselineQuerier is the default Baseline. Custom queries go to Custom when
// set; everything else is reported as an unsupported request.
type BaselineQuerier struct {
	Custom CustomQuerier
}

var _ Baseline = BaselineQuerier{}

func (b BaselineQuerier) Query(request types.QueryRequest) ([]byte, error) {
	if request.Custom != nil && b.Custom != nil {
		return b.Custom(request.Custom)
	}
	return nil, types.UnsupportedRequest{Kind: request.Kind()}
}
