package config

import "go.uber.org/fx"

// Module wires application and pricing configuration.
var Module = fx.Module("config",
	fx.Provide(
		Load,
		NewPricingConfigHolder,
	),
)
