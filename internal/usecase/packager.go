package usecase

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/techforge-labs/fulfillment/internal/domain/entity"
)

// Packager assembles the deliverable bundle: a watermark artifact, a
// license summary and the untouched original asset. The watermark is
// bundled alongside the asset instead of injected into its internal
// file structure, trading tamper-resistance for reliability.
type Packager struct {
	brand string
}

// NewPackager creates a packager stamping bundles with the given brand.
func NewPackager(brand string) *Packager {
	return &Packager{brand: brand}
}

// Build produces the watermarked zip bundle. Output is deterministic
// for the same inputs except for the embedded generation timestamp.
func (p *Packager) Build(asset entity.Asset, license *entity.License, original []byte, now time.Time) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	watermark := fmt.Sprintf("%s Watermark\nEmail: %s\nLicense: %s\nTemplate: %s\nGenerated: %s\n",
		p.brand, license.Email, license.Key, asset.Name, now.UTC().Format(time.RFC3339))
	if err := p.addFile(w, "WATERMARK.txt", []byte(watermark)); err != nil {
		return nil, err
	}

	summary := fmt.Sprintf("License Key: %s\nPlan: %s\n", license.Key, license.Plan)
	if err := p.addFile(w, "LICENSE.txt", []byte(summary)); err != nil {
		return nil, err
	}

	if err := p.addFile(w, fmt.Sprintf("%s-original.zip", asset.Name), original); err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize bundle: %w", err)
	}

	return buf.Bytes(), nil
}

// BundleFilename returns the attachment filename for a template bundle.
func (p *Packager) BundleFilename(template string) string {
	return fmt.Sprintf("%s-%s-watermarked.zip", strings.ToLower(p.brand), template)
}

func (p *Packager) addFile(w *zip.Writer, name string, data []byte) error {
	f, err := w.Create(name)
	if err != nil {
		return fmt.Errorf("failed to add %s to bundle: %w", name, err)
	}
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
