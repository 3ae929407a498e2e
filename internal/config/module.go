package config

import "go.uber.org/fx"

// Module provides the process configuration to fx graphs.
var Module = fx.Provide(Load)
