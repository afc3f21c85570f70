package recordlog

import (
	"github.com/medexy/sandelia/internal/recordlog/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("recordlog",
	fx.Provide(repository.Provide),
)
