package reconcile

import (
	"fmt"
	"time"

	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/entity"
	errs "github.com/amirhossein-jamali/finance-dashboard/internal/domain/error"
)

// ResolvePeriod turns a period token into an inclusive date range in now's location.
// A nil range means no filter: the "all" and empty tokens, and a custom period with
// either bound missing.
func ResolvePeriod(token entity.PeriodToken, start, end string, now time.Time) (*entity.DateRange, error) {
	loc := now.Location()
	year, month, _ := now.Date()

	switch token {
	case "", entity.PeriodAll:
		return nil, nil
	case entity.PeriodThisMonth:
		r := entity.MonthRange(year, month, loc)
		return &r, nil
	case entity.PeriodLastMonth:
		r := entity.MonthRange(year, month-1, loc)
		return &r, nil
	case entity.PeriodLastThreeMonths:
		from := entity.MonthRange(year, month-2, loc)
		to := entity.MonthRange(year, month, loc)
		return &entity.DateRange{Start: from.Start, End: to.End}, nil
	case entity.PeriodCustom:
		return customRange(start, end, loc)
	default:
		return nil, errs.NewValidationError("period", string(token), errs.ErrInvalidPeriod)
	}
}

func customRange(start, end string, loc *time.Location) (*entity.DateRange, error) {
	if start == "" || end == "" {
		return nil, nil
	}

	from, err := time.ParseInLocation(entity.DateLayout, start, loc)
	if err != nil {
		return nil, errs.NewValidationError("start", start, fmt.Errorf("%w: %v", errs.ErrInvalidDate, err))
	}
	to, err := time.ParseInLocation(entity.DateLayout, end, loc)
	if err != nil {
		return nil, errs.NewValidationError("end", end, fmt.Errorf("%w: %v", errs.ErrInvalidDate, err))
	}
	if from.After(to) {
		return nil, errs.NewValidationError("period", start+".."+end, errs.ErrInvalidPeriod)
	}

	return &entity.DateRange{Start: entity.StartOfDay(from), End: entity.EndOfDay(to)}, nil
}

// FilterByRange keeps the records dated inside dateRange
func FilterByRange(records []*entity.Transaction, dateRange *entity.DateRange) []*entity.Transaction {
	out := make([]*entity.Transaction, 0, len(records))
	for _, record := range records {
		if wellFormed(record) && dateRange.Contains(record.Date) {
			out = append(out, record)
		}
	}
	return out
}
