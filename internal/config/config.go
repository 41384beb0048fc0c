// Package config loads runtime settings from an optional YAML file and the
// environment. Environment variables always win over the file.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const service = "stripe-graphql-api"

// Default Stripe price ids per plan.
const (
	DefaultPriceStarter = "price_1Kvv6bKfsnO6FKLvWmtNLe6j"
	DefaultPricePro     = "price_1KvbGMKfsnO6FKLva9EtEJn7"
	DefaultPricePartner = "price_1KvbEIKfsnO6FKLvdzHnPXpj"
)

// ErrMissingStripeKey is returned by Validate when no secret key is configured.
var ErrMissingStripeKey = errors.New("STRIPE_SECRET_KEY environment variable is required")

// Tables holds the DynamoDB table name per entity.
type Tables struct {
	Users         string `yaml:"users"`
	Subscriptions string `yaml:"subscriptions"`
	Orders        string `yaml:"orders"`
	Products      string `yaml:"products"`
	Payments      string `yaml:"payments"`
}

// Stripe holds billing provider settings.
type Stripe struct {
	SecretKey    string `yaml:"secret_key"`
	PriceStarter string `yaml:"price_starter"`
	PricePro     string `yaml:"price_pro"`
	PricePartner string `yaml:"price_partner"`
}

// Config is the process configuration.
type Config struct {
	Stage            string `yaml:"stage"`
	Region           string `yaml:"region"`
	Offline          bool   `yaml:"offline"`
	EndpointOverride string `yaml:"endpoint_override"`
	Tables           Tables `yaml:"tables"`
	Stripe           Stripe `yaml:"stripe"`
	EventsQueueURL   string `yaml:"events_queue_url"`
	MetricsNamespace string `yaml:"metrics_namespace"`
	LogMode          string `yaml:"log_mode"`
	LogLevel         string `yaml:"log_level"`
}

// Load reads CONFIG_FILE when set, then applies environment overrides and
// defaults.
func Load() (*Config, error) {
	var c Config
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	c.applyEnv(os.LookupEnv)
	c.applyDefaults()
	return &c, nil
}

// Validate checks settings that must be present before serving requests.
func (c *Config) Validate() error {
	if c.Stripe.SecretKey == "" {
		return ErrMissingStripeKey
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str("STAGE", &c.Stage)
	str("AWS_REGION", &c.Region)
	str("AWS_ENDPOINT_OVERRIDE", &c.EndpointOverride)
	str("USERS_TABLE", &c.Tables.Users)
	str("SUBSCRIPTIONS_TABLE", &c.Tables.Subscriptions)
	str("ORDERS_TABLE", &c.Tables.Orders)
	str("PRODUCTS_TABLE", &c.Tables.Products)
	str("PAYMENTS_TABLE", &c.Tables.Payments)
	str("STRIPE_SECRET_KEY", &c.Stripe.SecretKey)
	str("STRIPE_PRICE_STARTER", &c.Stripe.PriceStarter)
	str("STRIPE_PRICE_PRO", &c.Stripe.PricePro)
	str("STRIPE_PRICE_PARTNER", &c.Stripe.PricePartner)
	str("EVENTS_QUEUE_URL", &c.EventsQueueURL)
	str("METRICS_NAMESPACE", &c.MetricsNamespace)
	str("LOG_MODE", &c.LogMode)
	str("LOG_LEVEL", &c.LogLevel)

	// any non-empty value counts, matching how serverless-offline sets it
	if v, ok := lookup("IS_OFFLINE"); ok && v != "" && v != "false" {
		c.Offline = true
	}
}

func (c *Config) applyDefaults() {
	if c.Stage == "" {
		c.Stage = "dev"
	}
	table := func(dst *string, entity string) {
		if *dst == "" {
			*dst = fmt.Sprintf("%s-%s-%s", service, entity, c.Stage)
		}
	}
	table(&c.Tables.Users, "users")
	table(&c.Tables.Subscriptions, "subscriptions")
	table(&c.Tables.Orders, "orders")
	table(&c.Tables.Products, "products")
	table(&c.Tables.Payments, "payments")

	if c.Stripe.PriceStarter == "" {
		c.Stripe.PriceStarter = DefaultPriceStarter
	}
	if c.Stripe.PricePro == "" {
		c.Stripe.PricePro = DefaultPricePro
	}
	if c.Stripe.PricePartner == "" {
		c.Stripe.PricePartner = DefaultPricePartner
	}

	if c.LogMode == "" {
		if c.Offline {
			c.LogMode = "development"
		} else {
			c.LogMode = "production"
		}
	}
}
