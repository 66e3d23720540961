package dashboard

import (
	"context"
	"errors"
	"fmt"

	"shelter-dashboard/internal/domain/animals"
	"shelter-dashboard/internal/domain/rescue"
	"shelter-dashboard/internal/platform/httpclient"
	"shelter-dashboard/internal/platform/logger"
	"shelter-dashboard/internal/platform/metrics"
)

const animalsPath = "/api/animals"

var ErrFetch = errors.New("fetch failed")

// Fetcher trae los records de un tipo de rescate, ya sin _id.
type Fetcher interface {
	Fetch(ctx context.Context, label string) ([]animals.Record, error)
}

// APIFetcher lee a través del propio API HTTP (no directo al store).
type APIFetcher struct {
	client  *httpclient.Client
	metrics *metrics.Metrics
	log     logger.Logger
}

func NewAPIFetcher(client *httpclient.Client, m *metrics.Metrics, log logger.Logger) *APIFetcher {
	if log == nil {
		log = logger.Nop()
	}
	return &APIFetcher{
		client:  client,
		metrics: m,
		log:     log.With(map[string]any{"component": "dashboard.fetch"}),
	}
}

func (f *APIFetcher) Fetch(ctx context.Context, label string) ([]animals.Record, error) {
	d, err := rescue.Resolve(label)
	if err != nil {
		return nil, err
	}

	var raw []animals.Record
	err = f.client.GetJSON(ctx, animalsPath, animals.EncodeParams(d.Query()), &raw)
	f.metrics.Fetch(d.Label, err)
	if err != nil {
		f.log.Warn("fetch failed", map[string]any{"filter": d.Label, "err": err})
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	out := make([]animals.Record, 0, len(raw))
	for _, r := range raw {
		if r == nil {
			continue
		}
		out = append(out, r.WithoutID())
	}

	f.log.Debug("fetch ok", map[string]any{"filter": d.Label, "count": len(out)})
	return out, nil
}
