package logger

import "go.uber.org/fx"

// Module wires the JSON slog logger built from configuration.
var Module = fx.Provide(New)
