package usecase

import "go.uber.org/fx"

// Module provides core business use cases to the fx container. A Notifier
// must be supplied by the notification module.
var Module = fx.Provide(
	NewAuthUseCase,
	NewOrderUseCase,
	NewLedgerUseCase,
	NewInvoiceUseCase,
	NewReportUseCase,
)
