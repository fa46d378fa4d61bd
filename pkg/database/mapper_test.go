package database

import (
	"context"
	"testing"

	"github.com/powerhive/pooldesc/pkg/pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolMapperRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	mapper := NewPoolMapper(pool.NewTable(nil, pool.CryptonightLite, pool.CryptonightHeavy))

	d, err := pool.New("stratum+tcp://eu.nicehash.com:3355")
	require.NoError(t, err)
	require.NoError(t, d.SetUserpass("wallet:pass:word"))
	require.NoError(t, d.SetVariant(1))
	d.SetAlgorithm(pool.CryptonightHeavy)
	d.SetKeepAlive(pool.KeepAliveTimeout)
	d.Adjust(pool.Cryptonight)

	rec, err := mapper.ToRecord("nicehash", d)
	require.NoError(t, err)
	assert.Equal(t, "cn-heavy", rec.Algorithm)
	assert.Equal(t, 1, rec.Variant)
	require.NoError(t, repo.UpsertPool(ctx, rec))

	stored, err := repo.GetPool(ctx, rec.UUID)
	require.NoError(t, err)
	require.NotNil(t, stored)

	back, err := mapper.ToDescriptor(stored)
	require.NoError(t, err)
	assert.True(t, d.Equal(back))
}

func TestPoolMapperFieldsIPv6(t *testing.T) {
	mapper := NewPoolMapper(pool.NewTable(nil))

	d := pool.NewFromFields(pool.Fields{Host: "::1", Port: 4444, User: "u", Variant: pool.VariantAuto})
	d.Adjust(pool.Cryptonight)

	rec, err := mapper.ToRecord("", d)
	require.NoError(t, err)
	assert.Equal(t, "::1:4444", rec.URL)

	back, err := mapper.ToDescriptor(rec)
	require.NoError(t, err)
	assert.True(t, d.Equal(back))
}

func TestPoolMapperInvalidAlgorithm(t *testing.T) {
	mapper := NewPoolMapper(pool.NewTable(nil))

	d, err := pool.New("pool.example.com")
	require.NoError(t, err)

	rec, err := mapper.ToRecord("", d)
	require.NoError(t, err)
	assert.Equal(t, "invalid", rec.Algorithm)

	back, err := mapper.ToDescriptor(rec)
	require.NoError(t, err)
	assert.Equal(t, pool.InvalidAlgorithm, back.Algorithm())
	assert.True(t, d.Equal(back))
}

func TestPoolMapperRejects(t *testing.T) {
	liteTable := pool.NewTable(nil, pool.CryptonightLite)
	mapper := NewPoolMapper(pool.NewTable(nil))

	invalid, _ := pool.New("")
	_, err := mapper.ToRecord("", invalid)
	assert.ErrorIs(t, err, pool.ErrEmptyHost)

	d, err := pool.New("pool.example.com")
	require.NoError(t, err)
	d.SetAlgorithm(pool.CryptonightLite)
	_, err = mapper.ToRecord("", d)
	assert.ErrorIs(t, err, pool.ErrAlgorithmDisabled)

	rec, err := NewPoolMapper(liteTable).ToRecord("", d)
	require.NoError(t, err)
	_, err = mapper.ToDescriptor(rec)
	assert.ErrorIs(t, err, pool.ErrAlgorithmDisabled)

	rec.Variant = 5
	_, err = NewPoolMapper(liteTable).ToDescriptor(rec)
	assert.ErrorIs(t, err, pool.ErrInvalidVariant)
}
