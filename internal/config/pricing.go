package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// PricingConfig drives the order pricing pipeline. VATFactor is the
// multiplicative VAT factor (1.21 = 21% VAT). UnitScale is the decimal scale
// kept on derived unit prices; SumScale is the scale line sums are rounded to.
type PricingConfig struct {
	VATFactor       float64 `mapstructure:"vatFactor"`
	UnitScale       int32   `mapstructure:"unitScale"`
	SumScale        int32   `mapstructure:"sumScale"`
	DefaultCustomer string  `mapstructure:"defaultCustomer"`
}

func DefaultPricingConfig() PricingConfig {
	return PricingConfig{
		VATFactor:       1.21,
		UnitScale:       4,
		SumScale:        2,
		DefaultCustomer: "WAREHOUSE",
	}
}

// PricingConfigHolder exposes the current pricing config and hot-reloads it
// when pricing.yml changes on disk.
type PricingConfigHolder struct {
	current atomic.Value // holds PricingConfig
}

func NewPricingConfigHolder() (*PricingConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("pricing")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/sandelia")
	v.AddConfigPath(".")

	v.SetEnvPrefix("SANDELIA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultPricingConfig()
	v.SetDefault("pricing.vatFactor", defaults.VATFactor)
	v.SetDefault("pricing.unitScale", defaults.UnitScale)
	v.SetDefault("pricing.sumScale", defaults.SumScale)
	v.SetDefault("pricing.defaultCustomer", defaults.DefaultCustomer)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg PricingConfig
	if err := v.UnmarshalKey("pricing", &cfg); err != nil {
		return nil, err
	}
	if err := validatePricingConfig(cfg); err != nil {
		return nil, err
	}

	holder := &PricingConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated PricingConfig
		if err := v.UnmarshalKey("pricing", &updated); err != nil {
			log.Printf("[pricing-config] reload failed: %v", err)
			return
		}
		if err := validatePricingConfig(updated); err != nil {
			log.Printf("[pricing-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[pricing-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// NewStaticPricingConfigHolder wraps a fixed config, for tests.
func NewStaticPricingConfigHolder(cfg PricingConfig) *PricingConfigHolder {
	holder := &PricingConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *PricingConfigHolder) Get() PricingConfig {
	return h.current.Load().(PricingConfig)
}

func validatePricingConfig(cfg PricingConfig) error {
	if cfg.VATFactor < 1 {
		return errors.New("pricing.vatFactor must be at least 1")
	}
	if cfg.SumScale < 0 || cfg.UnitScale < cfg.SumScale {
		return errors.New("pricing.unitScale must be at least pricing.sumScale")
	}
	return nil
}
