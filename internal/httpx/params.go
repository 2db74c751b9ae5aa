package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/AngelCh415/adreport-proxy/internal/apperrors"
	"github.com/AngelCh415/adreport-proxy/internal/models"
)

const dateLayout = "2006-01-02"

type reportParams struct {
	AdvertiserID string `query:"advertiser_id" validate:"required,max=128"`
	RangeDays    int    `query:"range_days" validate:"min=1,max=90"`
	StartDate    string `query:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate      string `query:"end_date" validate:"omitempty,datetime=2006-01-02,excluded_without=StartDate"`
}

type paramBinder struct {
	validate         *validator.Validate
	defaultRangeDays int
}

func newParamBinder(defaultRangeDays int) *paramBinder {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("query")
	})
	return &paramBinder{validate: v, defaultRangeDays: defaultRangeDays}
}

// bindReport reads and validates the /api/report query string.
func (b *paramBinder) bindReport(r *http.Request) (models.Query, error) {
	q := r.URL.Query()
	p := reportParams{
		AdvertiserID: strings.TrimSpace(q.Get("advertiser_id")),
		RangeDays:    b.defaultRangeDays,
		StartDate:    strings.TrimSpace(q.Get("start_date")),
		EndDate:      strings.TrimSpace(q.Get("end_date")),
	}
	if s := strings.TrimSpace(q.Get("range_days")); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return models.Query{}, invalid("range_days must be an integer")
		}
		p.RangeDays = n
	}

	if err := b.validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return models.Query{}, invalid(describe(verrs))
		}
		return models.Query{}, err
	}

	out := models.Query{AdvertiserID: p.AdvertiserID, RangeDays: p.RangeDays}
	if p.StartDate != "" {
		t, _ := time.Parse(dateLayout, p.StartDate)
		out.StartDate, out.StartRaw = &t, &p.StartDate
	}
	if p.EndDate != "" {
		t, _ := time.Parse(dateLayout, p.EndDate)
		out.EndDate, out.EndRaw = &t, &p.EndDate
	}
	// Reversed bounds describe the same window.
	if out.StartDate != nil && out.EndDate != nil && out.EndDate.Before(*out.StartDate) {
		out.StartDate, out.EndDate = out.EndDate, out.StartDate
		out.StartRaw, out.EndRaw = out.EndRaw, out.StartRaw
	}
	return out, nil
}

func invalid(details string) error {
	return apperrors.InvalidInput("Invalid query parameters", details)
}

func describe(errs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		var m string
		switch e.Tag() {
		case "required":
			m = fmt.Sprintf("%s is required", e.Field())
		case "min":
			m = fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
		case "max":
			m = fmt.Sprintf("%s must be at most %s", e.Field(), e.Param())
		case "datetime":
			m = fmt.Sprintf("%s must be a YYYY-MM-DD date", e.Field())
		case "excluded_without":
			m = fmt.Sprintf("%s requires start_date", e.Field())
		default:
			m = fmt.Sprintf("%s is invalid", e.Field())
		}
		msgs = append(msgs, m)
	}
	return strings.Join(msgs, "; ")
}
