package config

import "fmt"

type ServiceConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	// Brand stamps watermark artifacts, bundle filenames and emails.
	Brand string `yaml:"brand"`
	// SiteURL is the public site checkout redirects back to.
	SiteURL string `yaml:"site_url"`
	// DownloadBase is the public base URL for download links in
	// license emails.
	DownloadBase        string `yaml:"download_base"`
	StripeSecretKey     string `yaml:"stripe_secret_key"`
	StripeWebhookSecret string `yaml:"stripe_webhook_secret"`
	// PriceIDs maps purchasable plan names to gateway price identifiers.
	PriceIDs map[string]string `yaml:"price_ids"`
	// AdminJWTSecret signs tokens for the admin license routes.
	AdminJWTSecret string `yaml:"admin_jwt_secret"`
}

// Validate checks the fields the service cannot run without.
func (c *ServiceConfig) Validate() error {
	if c.StripeSecretKey == "" {
		return fmt.Errorf("service.stripe_secret_key is required")
	}
	if c.StripeWebhookSecret == "" {
		return fmt.Errorf("service.stripe_webhook_secret is required")
	}
	if len(c.PriceIDs) == 0 {
		return fmt.Errorf("service.price_ids is required")
	}
	return nil
}
