package masterdata

import "go.uber.org/fx"

var Module = fx.Module("masterdata.service",
	fx.Provide(New),
)
