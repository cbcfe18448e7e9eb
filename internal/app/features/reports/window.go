package reports

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/alexsaussier/teamdesk/internal/app/system/utilization"
	"github.com/alexsaussier/teamdesk/internal/domain/models"
)

const (
	defaultMonthsBack    = 6
	defaultMonthsForward = 5
	defaultForwardDays   = 30
)

// parseWindow maps report query parameters onto a bucket list.
//
//	window=monthly   back=N forward=M   (defaults 6 back, 5 forward)
//	window=forward   days=N             (default 30)
//	window=trailing                     (trailing 12 months, one bucket)
//
// ref=YYYY-MM-DD anchors the window for reproducible output; it defaults
// to today.
func parseWindow(q url.Values) ([]utilization.Bucket, error) {
	ref := time.Now().UTC()
	if s := q.Get("ref"); s != "" {
		parsed, err := time.Parse(models.DateLayout, s)
		if err != nil {
			return nil, fmt.Errorf("ref must be YYYY-MM-DD")
		}
		ref = parsed
	}

	switch q.Get("window") {
	case "", "monthly":
		back, err := intParam(q, "back", defaultMonthsBack)
		if err != nil {
			return nil, err
		}
		forward, err := intParam(q, "forward", defaultMonthsForward)
		if err != nil {
			return nil, err
		}
		return utilization.MonthlyBuckets(ref, back, forward), nil
	case "forward":
		days, err := intParam(q, "days", defaultForwardDays)
		if err != nil {
			return nil, err
		}
		if days < 1 {
			return nil, fmt.Errorf("days must be positive")
		}
		return utilization.ForwardWindow(ref, days), nil
	case "trailing":
		return utilization.TrailingYear(ref), nil
	default:
		return nil, fmt.Errorf("unknown window %q", q.Get("window"))
	}
}

func intParam(q url.Values, key string, def int) (int, error) {
	s := q.Get(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", key)
	}
	return n, nil
}
