// Package probegate decides, for a set of egress nodes (proxies), whether
// each node can reach one or more remote services, and answers cheaply on
// repeat invocations by caching verdicts.
//
// The engine bounds concurrent probes, enforces a wall-clock budget for each
// round, classifies responses under a pluggable strictness policy, gives up
// on a node after a configured number of failed attempts, and locks an
// entire batch into cache-only answers once its probing allowance is spent.
//
// Basic usage:
//
//	cfg := probegate.DefaultConfig().
//	    WithTarget("api", "https://api.example.com/v1/me", nil).
//	    WithMode(probegate.ModeAPIOnly)
//
//	checker, err := probegate.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer checker.Close()
//
//	usable, err := checker.Check(context.Background(), nodes)
package probegate

import (
	"context"
	"log/slog"

	"github.com/eleven-am/probegate/internal/adapters/cache"
	"github.com/eleven-am/probegate/internal/adapters/httpclient"
	"github.com/eleven-am/probegate/internal/adapters/materializer"
	"github.com/eleven-am/probegate/internal/adapters/probe"
	"github.com/eleven-am/probegate/internal/core"
	"github.com/eleven-am/probegate/internal/domain"
	"github.com/eleven-am/probegate/internal/ports"
)

// Node is one egress path configuration under test.
type Node = domain.Node

// Config carries every engine option; see DefaultConfig for the defaults.
type Config = domain.Config

// Mode selects which probe strategy a round runs.
type Mode = domain.Mode

const (
	ModeAPIOnly    = domain.ModeAPIOnly
	ModeWebOnly    = domain.ModeWebOnly
	ModeAPIThenWeb = domain.ModeAPIThenWeb
	ModeAll        = domain.ModeAll
)

// DecisionRecord is the persisted per-node verdict history.
type DecisionRecord = domain.DecisionRecord

// BatchMeta is the persisted per-batch round history.
type BatchMeta = domain.BatchMeta

// RoundMetrics is a snapshot of one Check invocation.
type RoundMetrics = core.RoundMetrics

// Cache is the decision store collaborators may replace.
type Cache = ports.Cache

// Materializer turns a node configuration into a live connection handle.
type Materializer = ports.Materializer

// HTTPClient performs probe requests through a connection handle.
type HTTPClient = ports.HTTPClient

// ProbeStrategy turns a live connection into a verdict.
type ProbeStrategy = ports.ProbeStrategy

// ConnHandle is a materialized node.
type ConnHandle = ports.ConnHandle

// Checker is the public entry point: it owns the cache, the default
// collaborators, and the probing engine.
type Checker struct {
	engine *core.Engine
	cache  ports.Cache
	cfg    *domain.Config
}

// New builds a Checker with the default collaborators: a badger-backed
// decision cache (falling back to an in-memory cache when the data dir
// cannot be opened), the in-process proxy materializer, and the strategy
// selected by cfg.Mode.
func New(cfg *Config) (*Checker, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.ApplyDefaults(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var store ports.Cache
	badgerStore, err := cache.NewBadger(cfg.DataDir, cfg.Logger)
	if err != nil {
		cfg.Logger.Warn("decision cache unavailable, verdicts will not persist", "data_dir", cfg.DataDir, "error", err)
		store = cache.NewMemory()
	} else {
		store = badgerStore
	}

	client := httpclient.New(cfg.Logger)
	mat := materializer.NewProxy(cfg.Logger)

	return NewWithCollaborators(cfg, store, mat, client)
}

// NewWithCollaborators builds a Checker around caller-supplied adapters,
// the injection seam tests and embedders use.
func NewWithCollaborators(cfg *Config, store Cache, mat Materializer, client HTTPClient) (*Checker, error) {
	if err := cfg.ApplyDefaults(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	strategy, err := buildStrategy(cfg, client, cfg.Logger)
	if err != nil {
		return nil, err
	}

	return &Checker{
		engine: core.NewEngine(cfg, store, mat, strategy, cfg.Logger),
		cache:  store,
		cfg:    cfg,
	}, nil
}

func buildStrategy(cfg *domain.Config, client ports.HTTPClient, logger *slog.Logger) (ports.ProbeStrategy, error) {
	switch cfg.Mode {
	case domain.ModeAPIOnly:
		return probe.NewAPI(client, cfg.Targets[domain.TargetAPI], cfg.Classifier, logger), nil
	case domain.ModeWebOnly:
		return probe.NewWeb(client, cfg.Targets[domain.TargetWeb], cfg.Classifier, logger), nil
	case domain.ModeAPIThenWeb:
		api := probe.NewAPI(client, cfg.Targets[domain.TargetAPI], cfg.Classifier, logger)
		web := probe.NewWeb(client, cfg.Targets[domain.TargetWeb], cfg.Classifier, logger)
		return probe.NewFallback(api, web, logger), nil
	case domain.ModeAll:
		webPolicy := cfg.Classifier
		webPolicy.Permissive = true
		policies := map[string]domain.ClassifierConfig{
			domain.TargetAPI: cfg.Classifier,
			domain.TargetWeb: webPolicy,
		}
		return probe.NewMulti(client, cfg.Targets, policies, logger), nil
	default:
		return nil, domain.NewConfigError("mode", domain.ErrInvalidConfig)
	}
}

// Check probes the supplied nodes and returns the subset whose verdict is
// accept, labels tagged with the configured prefix.
func (c *Checker) Check(ctx context.Context, nodes []Node) ([]Node, error) {
	return c.engine.Check(ctx, nodes)
}

// Reset clears the cached verdicts and round history for the supplied node
// set, forcing the next Check to probe fresh.
func (c *Checker) Reset(ctx context.Context, nodes []Node) error {
	return c.engine.Reset(ctx, nodes)
}

// LastRound returns metrics for the most recent Check invocation.
func (c *Checker) LastRound() RoundMetrics {
	return c.engine.LastRound()
}

// Close releases the decision cache.
func (c *Checker) Close() error {
	return c.cache.Close()
}
