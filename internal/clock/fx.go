package clock

import "go.uber.org/fx"

// Module wires the system clock for the application.
var Module = fx.Module("clock",
	fx.Provide(NewSystem),
)
