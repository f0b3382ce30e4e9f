package usecase

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techforge-labs/fulfillment/internal/domain/entity"
)

func buildTestBundle(t *testing.T) (map[string][]byte, []byte) {
	t.Helper()

	packager := NewPackager("TechForge")
	asset := entity.Asset{Name: "saas", MinPlan: entity.PlanStarter, ObjectKey: "saas.zip"}
	license := &entity.License{
		Key:   "TF-AAAAAAA-BBBBBBB-CCCCCCC-DDDDDDD",
		Email: "buyer@example.com",
		Plan:  entity.PlanPro,
	}
	original := []byte("original archive bytes")
	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)

	bundle, err := packager.Build(asset, license, original, now)
	require.NoError(t, err)

	reader, err := zip.NewReader(bytes.NewReader(bundle), int64(len(bundle)))
	require.NoError(t, err)

	entries := make(map[string][]byte, len(reader.File))
	for _, f := range reader.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		entries[f.Name] = data
	}
	return entries, original
}

func TestPackagerBundleEntries(t *testing.T) {
	entries, original := buildTestBundle(t)

	require.Len(t, entries, 3)

	watermark, ok := entries["WATERMARK.txt"]
	require.True(t, ok)
	assert.Contains(t, string(watermark), "TechForge Watermark")
	assert.Contains(t, string(watermark), "buyer@example.com")
	assert.Contains(t, string(watermark), "TF-AAAAAAA-BBBBBBB-CCCCCCC-DDDDDDD")
	assert.Contains(t, string(watermark), "2026-08-27T12:00:00Z")

	summary, ok := entries["LICENSE.txt"]
	require.True(t, ok)
	assert.Contains(t, string(summary), "License Key: TF-AAAAAAA-BBBBBBB-CCCCCCC-DDDDDDD")
	assert.Contains(t, string(summary), "Plan: pro")

	inner, ok := entries["saas-original.zip"]
	require.True(t, ok)
	assert.Equal(t, original, inner, "original asset bytes must pass through untouched")
}

func TestPackagerBundleFilename(t *testing.T) {
	packager := NewPackager("TechForge")
	assert.Equal(t, "techforge-saas-watermarked.zip", packager.BundleFilename("saas"))
}
