package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/timeblock-app/timeblock/internal/models"
	"github.com/timeblock-app/timeblock/internal/scheduler"
	"github.com/timeblock-app/timeblock/internal/storage"
	"github.com/timeblock-app/timeblock/internal/urgency"
	"github.com/timeblock-app/timeblock/internal/utils"
)

type Context struct {
	Store storage.Provider
}

// BuildScheduler loads windows, tasks, and previously placed blocks from the
// store and rebuilds the engine around them, so repeated invocations respect
// earlier placements.
func (c *Context) BuildScheduler() (*scheduler.Scheduler, models.Settings, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return nil, models.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}

	windows, err := c.Store.GetAllWindows()
	if err != nil {
		return nil, settings, fmt.Errorf("failed to load windows: %w", err)
	}

	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return nil, settings, fmt.Errorf("invalid timezone in settings: %w", err)
	}

	sched := scheduler.New(windows,
		scheduler.WithStrategy(urgency.ByName(settings.UrgencyStrategy)),
		scheduler.WithDefaultBlockMin(settings.DefaultBlockMin),
		scheduler.WithClock(func() time.Time { return time.Now().In(loc) }),
	)

	tasks, err := c.Store.GetAllTasks()
	if err != nil {
		return nil, settings, fmt.Errorf("failed to load tasks: %w", err)
	}
	for _, t := range tasks {
		sched.RegisterTask(t)
	}

	blocks, err := c.Store.GetAllBlocks()
	if err != nil {
		return nil, settings, fmt.Errorf("failed to load blocks: %w", err)
	}
	sched.LoadBlocks(blocks)

	return sched, settings, nil
}

// ParseWeekdays parses a comma-separated list of weekdays
func ParseWeekdays(s string) ([]time.Weekday, error) {
	parts := strings.Split(s, ",")
	var weekdays []time.Weekday

	dayMap := map[string]time.Weekday{
		"sun":       time.Sunday,
		"sunday":    time.Sunday,
		"mon":       time.Monday,
		"monday":    time.Monday,
		"tue":       time.Tuesday,
		"tuesday":   time.Tuesday,
		"wed":       time.Wednesday,
		"wednesday": time.Wednesday,
		"thu":       time.Thursday,
		"thursday":  time.Thursday,
		"fri":       time.Friday,
		"friday":    time.Friday,
		"sat":       time.Saturday,
		"saturday":  time.Saturday,
	}

	for _, part := range parts {
		part = strings.TrimSpace(strings.ToLower(part))
		if wd, ok := dayMap[part]; ok {
			weekdays = append(weekdays, wd)
		} else {
			// Try parsing as number (0=Sunday, 6=Saturday)
			num, err := strconv.Atoi(part)
			if err == nil && num >= 0 && num <= 6 {
				weekdays = append(weekdays, time.Weekday(num))
			} else {
				return nil, fmt.Errorf("invalid weekday: %s", part)
			}
		}
	}

	return weekdays, nil
}

// FormatSchedule renders a window's weekly schedule as one line per day.
func FormatSchedule(w models.TimeWindow) string {
	var days []string
	for day := time.Sunday; day <= time.Saturday; day++ {
		ranges := w.RangesOn(day)
		if len(ranges) == 0 {
			continue
		}
		var parts []string
		for _, r := range ranges {
			parts = append(parts, fmt.Sprintf("%s-%s", r.Start, r.End))
		}
		days = append(days, fmt.Sprintf("%s %s", day.String()[:3], strings.Join(parts, ", ")))
	}
	if len(days) == 0 {
		return "(empty)"
	}
	return strings.Join(days, "; ")
}
