package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/powerhive/pooldesc/pkg/database"
	"github.com/powerhive/pooldesc/pkg/pool"
)

// Checker turns configured pool strings into adjusted descriptors.
type Checker struct {
	cfg         *Config
	table       *pool.Table
	defaultAlgo pool.Algorithm
	variant     pool.Variant
	mapper      *database.PoolMapper
	logger      glog.Logger
}

// NewChecker validates the algorithm settings in cfg.
func NewChecker(cfg *Config, logger glog.Logger) (*Checker, error) {
	if logger == nil {
		logger = glog.Nop()
	}

	features, err := pool.FeaturesFromNames(cfg.Features)
	if err != nil {
		return nil, err
	}
	table := pool.NewTable(logger, features...)

	algo := table.Resolve(cfg.Algorithm)
	if algo == pool.InvalidAlgorithm {
		return nil, fmt.Errorf("%w: default algorithm %q is not available", pool.ErrUnknownAlgorithm, cfg.Algorithm)
	}

	variant, err := pool.ParseVariant(cfg.Variant)
	if err != nil {
		return nil, err
	}

	return &Checker{
		cfg:         cfg,
		table:       table,
		defaultAlgo: algo,
		variant:     variant,
		mapper:      database.NewPoolMapper(table),
		logger:      logger,
	}, nil
}

// Build parses url and applies credentials, flags and the default algorithm.
func (c *Checker) Build(url string) (*pool.Descriptor, error) {
	d, err := pool.New(url)
	if err != nil {
		return nil, err
	}
	if c.cfg.Userpass != "" {
		if err := d.SetUserpass(c.cfg.Userpass); err != nil {
			return nil, err
		}
	}
	if err := d.SetVariant(int(c.variant)); err != nil {
		return nil, err
	}
	d.SetKeepAlive(c.cfg.KeepAlive)
	d.SetNiceHash(c.cfg.NiceHash)
	d.Adjust(c.defaultAlgo)
	return d, nil
}

// Run checks every configured URL, writes a report to out and stores accepted
// descriptors in repo when it is non-nil. It returns the number of rejected
// pools.
func (c *Checker) Run(ctx context.Context, out io.Writer, repo database.Repository) int {
	failed := 0
	for i, url := range c.cfg.URLs {
		if ctx.Err() != nil {
			return failed + len(c.cfg.URLs) - i
		}

		d, err := c.Build(url)
		if err != nil {
			rich := pool.ToServiceError(err)
			c.logger.Error("pool rejected", "url", url, "code", rich.TextCode, "error", err)
			failed++
			continue
		}

		if err := c.print(out, i, d); err != nil {
			c.logger.Error("failed to write report", "error", err)
			failed++
			continue
		}

		if repo == nil {
			continue
		}
		rec, err := c.mapper.ToRecord(fmt.Sprintf("pool-%d", i+1), d)
		if err == nil {
			err = repo.UpsertPool(ctx, rec)
		}
		if err != nil {
			c.logger.Error("failed to store pool", "url", url, "error", err)
			failed++
			continue
		}
		c.logger.Debug("stored pool", "url", url, "uuid", rec.UUID)
	}
	return failed
}

// print writes one report entry. Both formats reject algorithms this table
// does not enable.
func (c *Checker) print(out io.Writer, i int, d *pool.Descriptor) error {
	algo, err := c.table.Name(d.Algorithm(), false)
	if err != nil {
		return err
	}

	if c.cfg.JSON {
		b, err := json.Marshal(d)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(b))
		return err
	}

	_, err = fmt.Fprintf(out, "Pool %d: %s\n  host=%s port=%d user=%s algo=%s variant=%s nicehash=%t keepalive=%d\n",
		i+1, d.URL(), d.Host(), d.Port(), d.User(), algo, d.Variant(), d.NiceHash(), d.KeepAlive())
	return err
}

// ListAlgorithms writes the enabled algorithms as "long (short)" lines.
func (c *Checker) ListAlgorithms(out io.Writer) error {
	for _, a := range c.table.Algorithms() {
		long, err := c.table.Name(a, false)
		if err != nil {
			return err
		}
		short, err := c.table.Name(a, true)
		if err != nil {
			return err
		}
		line := long + " (" + short + ")"
		if a == c.defaultAlgo {
			line += " default"
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}
