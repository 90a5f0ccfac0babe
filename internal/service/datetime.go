package service

import (
	"time"
	_ "time/tzdata" // zone database for minimal images

	"home_climate/internal/logger"
	"home_climate/internal/models"
)

const defaultTimezone = "Asia/Ho_Chi_Minh"

type DateTimeService struct {
	loc *time.Location
	now func() time.Time
}

// NewDateTimeService resolves tz (default Asia/Ho_Chi_Minh). An unknown zone
// falls back to UTC.
func NewDateTimeService(tz string, log *logger.Logger) *DateTimeService {
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		logger.OrNop(log).Warnw("timezone_fallback_utc", "timezone", tz, "err", err)
		loc = time.UTC
	}
	return &DateTimeService{loc: loc, now: time.Now}
}

func (s *DateTimeService) Now() models.DateTimeInfo {
	t := s.now().In(s.loc)
	return models.DateTimeInfo{
		Timestamp: t.Unix(),
		Date:      t.Format("2006-01-02"),
		Time:      t.Format("15:04:05"),
		DayName:   t.Format("Monday"),
		Formatted: t.Format("Monday, 02/01/2006 15:04:05"),
	}
}
