package usecase

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	domainErrors "github.com/polkiloo/foodcourt/internal/domain/errors"
	"github.com/polkiloo/foodcourt/internal/domain/model"
	"github.com/polkiloo/foodcourt/internal/domain/repository"
)

// InvoiceUseCase bills the infrastructure vendor fee once per month.
type InvoiceUseCase struct {
	invoices repository.InvoiceRepository
	logger   *slog.Logger
}

// NewInvoiceUseCase constructs InvoiceUseCase.
func NewInvoiceUseCase(invoices repository.InvoiceRepository, logger *slog.Logger) *InvoiceUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &InvoiceUseCase{invoices: invoices, logger: logger}
}

// Generate creates the vendor invoice for period.
func (u *InvoiceUseCase) Generate(ctx context.Context, rawPeriod string) (invoice *model.VendorInvoice, err error) {
	ctx, span := tracer.Start(ctx, "InvoiceUseCase.Generate", trace.WithAttributes(attribute.String("invoice.period", rawPeriod)))
	defer func() { endSpan(span, err) }()

	period, err := model.ParsePeriod(rawPeriod)
	if err != nil {
		return nil, domainErrors.Validation(err.Error())
	}

	if _, err := u.invoices.GetByPeriod(ctx, period.String()); err == nil {
		return nil, domainErrors.ErrAlreadyExists
	} else if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}

	gmv, err := u.invoices.CompletedGMV(ctx, period)
	if err != nil {
		return nil, err
	}
	if !gmv.IsPositive() {
		return nil, domainErrors.ErrNothingToInvoice
	}

	invoice, err = u.invoices.Create(ctx, &model.VendorInvoice{
		Period:      period.String(),
		TotalGMV:    gmv,
		VariableFee: VariableFee(gmv),
		Status:      model.InvoiceStatusUnpaid,
	})
	if err != nil {
		return nil, err
	}
	u.logger.InfoContext(ctx, "vendor invoice generated",
		slog.String("period", invoice.Period),
		slog.String("gmv", invoice.TotalGMV.String()),
		slog.String("fee", invoice.VariableFee.String()),
	)
	return invoice, nil
}

// MarkPaid settles an unpaid invoice.
func (u *InvoiceUseCase) MarkPaid(ctx context.Context, rawPeriod string) (*model.VendorInvoice, error) {
	period, err := model.ParsePeriod(rawPeriod)
	if err != nil {
		return nil, domainErrors.Validation(err.Error())
	}
	return u.invoices.MarkPaid(ctx, period.String())
}

// List returns every invoice, most recent period first.
func (u *InvoiceUseCase) List(ctx context.Context) ([]model.VendorInvoice, error) {
	return u.invoices.List(ctx)
}
