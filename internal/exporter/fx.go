package exporter

import "go.uber.org/fx"

var Module = fx.Module("exporter",
	fx.Provide(New),
)
