package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/maison-storefront/internal/domain/cart"
	"github.com/xenking/maison-storefront/internal/payment"
	"github.com/xenking/maison-storefront/internal/stylist"
)

// Config holds the complete application configuration, loadable from
// environment variables (MAISON_ prefix), flags, or YAML config files.
type Config struct {
	Addr          string `default:"0.0.0.0:8080" usage:"HTTP server listen address"`
	AdminKey      string `default:"admin123" usage:"Admin login credential (MAISON_ADMIN_KEY)" flag:"admin-key"`
	SessionPepper string `default:"maison-session-pepper" usage:"HMAC pepper for credential hashing" flag:"session-pepper"`
	Pricing       PricingConfig
	Payment       PaymentConfig
	Stylist       StylistConfig
	RateLimit     RateLimitConfig
	CORS          CORSConfig
	Graceful      GracefulConfig
}

// PricingConfig controls cart totals derivation. Amounts are decimal
// strings in the store currency.
type PricingConfig struct {
	FreeShippingThreshold string `default:"40000" usage:"Subtotal above which shipping is free" flag:"free-shipping-threshold"`
	ShippingFee           string `default:"2500" usage:"Flat shipping fee below the threshold" flag:"shipping-fee"`
}

// PaymentConfig identifies the payee in generated UPI links.
type PaymentConfig struct {
	PayeeVPA  string `default:"shopvibe@bank" usage:"UPI virtual payment address" flag:"payee-vpa"`
	PayeeName string `default:"ShopVibe Maison" usage:"Payee display name" flag:"payee-name"`
	Currency  string `default:"INR" usage:"ISO currency code for payment links"`
	Note      string `default:"MaisonPurchase" usage:"Transaction note on payment links"`
	QRSize    int    `default:"300" usage:"QR image size in pixels" flag:"qr-size"`
}

// StylistConfig points at the text-generation upstream. An empty URL
// disables remote calls and every advice request resolves to a fallback.
type StylistConfig struct {
	URL    string `default:"" usage:"Text-generation endpoint URL (empty disables)" flag:"stylist-url"`
	APIKey string `default:"" usage:"Bearer token for the stylist upstream (MAISON_STYLIST_API_KEY)" flag:"stylist-api-key"`
	Model  string `default:"maison-styler-1" usage:"Generation model name" flag:"stylist-model"`
}

// RateLimitConfig controls the per-client fixed window rate limiter.
type RateLimitConfig struct {
	Max    int           `default:"100" usage:"Max requests per window"`
	Window time.Duration `default:"1m"  usage:"Rate limit window duration"`
}

// CORSConfig controls Cross-Origin Resource Sharing headers.
type CORSConfig struct {
	Origins          []string `default:"*" usage:"Allowed CORS origins"`
	AllowCredentials bool     `default:"false" usage:"Allow credentials (cookies, auth headers)" flag:"cors-credentials"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from environment variables, YAML config
// files, and applies platform-specific defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "MAISON",
		Files:     []string{"config.yaml", "/etc/maison/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()
	return &cfg, nil
}

// applyPlatformDefaults maps platform-provided environment variables
// (Railway, Render, etc.) that use standard names like PORT to the
// application's MAISON_-prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if port := os.Getenv("PORT"); port != "" && c.Addr == "0.0.0.0:8080" {
		c.Addr = "0.0.0.0:" + port
	}
}

// pricing parses the decimal pricing amounts.
func (c *Config) pricing() (cart.Pricing, error) {
	threshold, err := decimal.NewFromString(c.Pricing.FreeShippingThreshold)
	if err != nil {
		return cart.Pricing{}, errors.Wrap(err, "parse free shipping threshold")
	}
	fee, err := decimal.NewFromString(c.Pricing.ShippingFee)
	if err != nil {
		return cart.Pricing{}, errors.Wrap(err, "parse shipping fee")
	}
	return cart.Pricing{FreeShippingThreshold: threshold, ShippingFee: fee}, nil
}

// paymentConfig converts the payee settings for the link builder.
func (c *Config) paymentConfig() payment.LinkConfig {
	return payment.LinkConfig{
		PayeeVPA:  c.Payment.PayeeVPA,
		PayeeName: c.Payment.PayeeName,
		Currency:  c.Payment.Currency,
		Note:      c.Payment.Note,
		QRSize:    c.Payment.QRSize,
	}
}

// stylistConfig converts the upstream settings for the advice client.
func (c *Config) stylistConfig() stylist.Config {
	return stylist.Config{
		BaseURL: c.Stylist.URL,
		APIKey:  c.Stylist.APIKey,
		Model:   c.Stylist.Model,
	}
}
