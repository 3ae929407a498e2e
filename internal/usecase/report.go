package usecase

import (
	"context"

	domainErrors "github.com/polkiloo/foodcourt/internal/domain/errors"
	"github.com/polkiloo/foodcourt/internal/domain/model"
	"github.com/polkiloo/foodcourt/internal/domain/repository"
)

// ReportUseCase serves finance reports to admins.
type ReportUseCase struct {
	reports repository.ReportRepository
}

// NewReportUseCase constructs ReportUseCase.
func NewReportUseCase(reports repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{reports: reports}
}

// HandlingFees returns handling fee revenue per merchant for completed
// orders created within period.
func (u *ReportUseCase) HandlingFees(ctx context.Context, rawPeriod string) ([]model.MerchantFee, error) {
	period, err := model.ParsePeriod(rawPeriod)
	if err != nil {
		return nil, domainErrors.Validation(err.Error())
	}
	return u.reports.HandlingFeesByMerchant(ctx, period)
}
