package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/powerhive/pooldesc/internal/logging"
	"github.com/powerhive/pooldesc/pkg/database"
	"github.com/powerhive/pooldesc/pkg/pool"
)

func TestNewCheckerRejectsBadSettings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Algorithm = "scrypt"
	_, err := NewChecker(cfg, nil)
	require.ErrorIs(t, err, pool.ErrUnknownAlgorithm)
	rich := pool.ToServiceError(err)
	assert.Equal(t, pool.ErrorUnknownAlgorithm, rich.TextCode)
	assert.Equal(t, goerrors.CategoryValidation, rich.Category)

	cfg = DefaultConfig()
	cfg.Features = nil
	cfg.Algorithm = "cn-lite"
	_, err = NewChecker(cfg, nil)
	assert.ErrorIs(t, err, pool.ErrUnknownAlgorithm)

	cfg = DefaultConfig()
	cfg.Variant = "3"
	_, err = NewChecker(cfg, nil)
	assert.ErrorIs(t, err, pool.ErrInvalidVariant)

	cfg = DefaultConfig()
	cfg.Features = []string{"x11"}
	_, err = NewChecker(cfg, nil)
	assert.ErrorIs(t, err, pool.ErrUnknownFeature)
}

func TestCheckerBuild(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Userpass = "wallet:pass"
	cfg.Algorithm = "cn-lite"
	cfg.Variant = "1"
	cfg.KeepAlive = pool.KeepAliveTimeout

	checker, err := NewChecker(cfg, nil)
	require.NoError(t, err)

	d, err := checker.Build("stratum+tcp://xmr.pool.minergate.com:45560")
	require.NoError(t, err)
	assert.Equal(t, "xmr.pool.minergate.com", d.Host())
	assert.Equal(t, "wallet", d.User())
	assert.Equal(t, pool.CryptonightLite, d.Algorithm())
	assert.Equal(t, pool.Variant1, d.Variant())
	assert.Equal(t, 0, d.KeepAlive())

	_, err = checker.Build("http://pool.example.com")
	assert.ErrorIs(t, err, pool.ErrUnsupportedScheme)

	cfg.Userpass = "nocolon"
	_, err = checker.Build("pool.example.com")
	assert.ErrorIs(t, err, pool.ErrMissingSeparator)
}

func TestCheckerRunReportsAndStores(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.URLs = []string{"stratum+tcp://eu.nicehash.com:3355", "[::1]", "pool.example.com"}

	var logs bytes.Buffer
	checker, err := NewChecker(cfg, logging.New(&logs, logging.LevelInfo))
	require.NoError(t, err)

	repo, err := database.NewSQLiteRepository(filepath.Join(t.TempDir(), "pools.db"))
	require.NoError(t, err)
	defer repo.Close()

	var out bytes.Buffer
	failed := checker.Run(ctx, &out, repo)
	assert.Equal(t, 1, failed)

	report := out.String()
	assert.Contains(t, report, "Pool 1: stratum+tcp://eu.nicehash.com:3355")
	assert.Contains(t, report, "algo=cryptonight variant=auto nicehash=true keepalive=0")
	assert.Contains(t, report, "Pool 3: pool.example.com")
	assert.NotContains(t, report, "Pool 2")
	assert.Contains(t, logs.String(), pool.ErrorMissingPort)

	stored, err := repo.ListPools(ctx, database.PoolFilter{})
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "pool-1", stored[0].Label)
	assert.Equal(t, "pool-3", stored[1].Label)
	assert.Equal(t, "cn", stored[1].Algorithm)
}

func TestCheckerRunJSON(t *testing.T) {
	cfg := DefaultConfig()
	cfg.URLs = []string{"pool.example.com:5555"}
	cfg.JSON = true

	checker, err := NewChecker(cfg, nil)
	require.NoError(t, err)

	var out bytes.Buffer
	assert.Equal(t, 0, checker.Run(context.Background(), &out, nil))
	assert.Equal(t, 1, strings.Count(out.String(), "\n"))
	assert.Contains(t, out.String(), `"port":5555`)
	assert.Contains(t, out.String(), `"algo":"cn"`)
}

func TestCheckerPrintRejectsDisabledAlgorithm(t *testing.T) {
	for _, asJSON := range []bool{false, true} {
		cfg := DefaultConfig()
		cfg.Features = nil
		cfg.JSON = asJSON

		checker, err := NewChecker(cfg, nil)
		require.NoError(t, err)

		d, err := pool.New("pool.example.com")
		require.NoError(t, err)
		d.SetAlgorithm(pool.CryptonightIPBC)

		var out bytes.Buffer
		assert.ErrorIs(t, checker.print(&out, 0, d), pool.ErrAlgorithmDisabled, "json=%t", asJSON)
		assert.Empty(t, out.String())
	}
}

func TestCheckerBuildIPBC(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Algorithm = "cn-ipbc"
	cfg.Variant = "0"
	cfg.URLs = []string{"pool.example.com"}

	checker, err := NewChecker(cfg, nil)
	require.NoError(t, err)

	d, err := checker.Build("pool.example.com")
	require.NoError(t, err)
	assert.Equal(t, pool.CryptonightIPBC, d.Algorithm())
	assert.Equal(t, pool.Variant1, d.Variant())

	var out bytes.Buffer
	assert.Equal(t, 0, checker.Run(context.Background(), &out, nil))
	assert.Contains(t, out.String(), "algo=cryptonight-ipbc variant=1")
}

func TestCheckerRunCancelled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.URLs = []string{"a.example.com", "b.example.com"}

	checker, err := NewChecker(cfg, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	assert.Equal(t, 2, checker.Run(ctx, &out, nil))
	assert.Empty(t, out.String())
}

func TestListAlgorithms(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Features = []string{"cn-heavy"}

	checker, err := NewChecker(cfg, nil)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, checker.ListAlgorithms(&out))
	assert.Equal(t, "cryptonight (cn) default\ncryptonight-heavy (cn-heavy)\n", out.String())
}
