// Package queryer runs one SQL query end to end: translate, fetch,
// load, execute.
//
// The Queryer itself is stateless between calls; concurrent queries
// share only the HTTP client. A failure at any stage is terminal for
// that query and is returned as the typed error of the failing stage.
package queryer

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/tabq/tabq/internal/config"
	"github.com/tabq/tabq/internal/engine"
	"github.com/tabq/tabq/internal/fetch"
	"github.com/tabq/tabq/internal/load"
	"github.com/tabq/tabq/internal/translate"
)

// Queryer executes SQL queries against tabular sources.
type Queryer struct {
	cfg    *config.Config
	client *http.Client
	log    *slog.Logger
}

// Option configures a Queryer.
type Option func(*Queryer)

// WithHTTPClient overrides the HTTP client used for URL sources.
func WithHTTPClient(client *http.Client) Option {
	return func(q *Queryer) { q.client = client }
}

// WithLogger overrides the logger.
func WithLogger(log *slog.Logger) Option {
	return func(q *Queryer) { q.log = log }
}

// New creates a Queryer. A nil cfg means no source aliases and no
// fetch timeout.
func New(cfg *config.Config, opts ...Option) *Queryer {
	if cfg == nil {
		cfg = config.Default()
	}
	q := &Queryer{
		cfg: cfg,
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(q)
	}
	if q.client == nil {
		q.client = &http.Client{Timeout: cfg.Timeout()}
	}
	return q
}

// Query translates sql, retrieves the named source, and executes the
// filter/sort/slice/project pipeline, returning the materialized
// result.
func (q *Queryer) Query(ctx context.Context, sql string) (*engine.Dataset, error) {
	parsed, err := translate.SQL(sql)
	if err != nil {
		return nil, err
	}

	source := q.cfg.Resolve(parsed.Source)
	q.log.Info("retrieving data",
		"query_id", uuid.NewString(),
		"source", source,
	)

	content, err := fetch.Retrieve(ctx, q.client, source)
	if err != nil {
		return nil, err
	}

	df, err := load.Load(content)
	if err != nil {
		return nil, err
	}

	return engine.NewPlan(df).
		Filter(parsed.Condition).
		Sort(parsed.OrderBy).
		Slice(parsed.Offset, parsed.Limit).
		Project(parsed.Selection).
		Collect()
}

// Describe retrieves and loads a source without running a query,
// returning the full frame as a dataset.
func (q *Queryer) Describe(ctx context.Context, name string) (*engine.Dataset, error) {
	source := q.cfg.Resolve(name)
	q.log.Info("retrieving data",
		"query_id", uuid.NewString(),
		"source", source,
	)

	content, err := fetch.Retrieve(ctx, q.client, source)
	if err != nil {
		return nil, err
	}

	df, err := load.Load(content)
	if err != nil {
		return nil, err
	}
	return engine.NewPlan(df).Collect()
}

// ExampleSQL returns a runnable sample query against the public OWID
// COVID dataset.
func ExampleSQL() string {
	return `SELECT location, total_cases, new_deaths, total_deaths ` +
		`FROM "https://raw.githubusercontent.com/owid/covid-19-data/master/public/data/latest/owid-covid-latest.csv" ` +
		`WHERE new_deaths >= 500 ORDER BY new_cases DESC`
}
