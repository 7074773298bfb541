package service

import (
	"sort"

	"campusclubs/internal/db"
	"campusclubs/internal/entities"
	"campusclubs/internal/repository"
)

// Fixed Monday-first week order for the optimal-times report.
var weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

const optimalRecommendation = "Optimal time - lowest student activity"

// CalendarService answers the three read-only reports over the scraped
// time-slot collection. All aggregation is an in-memory fold keyed by
// (day, start, end); no state is mutated.
type CalendarService struct {
	Repo repository.CourseRepository
}

func NewCalendarService(repo repository.CourseRepository) *CalendarService {
	return &CalendarService{Repo: repo}
}

type slotGroup struct {
	day, start, end string
	totalStudents   int
	courseCount     int
}

type groupKey struct {
	day, start, end string
}

// groupSlots folds the slot collection by (day, start, end), preserving
// first-seen group order.
func groupSlots(slots []db.TimeSlot) []slotGroup {
	index := make(map[groupKey]int)
	var groups []slotGroup
	for _, s := range slots {
		key := groupKey{s.DayOfWeek, s.StartTime, s.EndTime}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, slotGroup{day: s.DayOfWeek, start: s.StartTime, end: s.EndTime})
		}
		groups[i].totalStudents += s.StudentsCount
		groups[i].courseCount++
	}
	return groups
}

// ComputeHeatmap groups all time slots by day and time range and sums
// student counts per group, ordered by start time ascending.
func (s *CalendarService) ComputeHeatmap() ([]entities.DensityCell, error) {
	slots, err := s.Repo.ListTimeSlots()
	if err != nil {
		return nil, err
	}

	groups := groupSlots(slots)
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].start < groups[j].start
	})

	cells := make([]entities.DensityCell, 0, len(groups))
	for _, g := range groups {
		cells = append(cells, entities.DensityCell{
			Day:           g.day,
			StartTime:     g.start,
			EndTime:       g.end,
			TotalStudents: g.totalStudents,
			CourseCount:   g.courseCount,
			Density:       g.totalStudents,
		})
	}
	return cells, nil
}

// ComputeOptimalTimes picks, for each weekday that has any slots, the
// grouped slot with the fewest students. Ties go to the earliest start
// time. Weekdays with no slots are omitted.
func (s *CalendarService) ComputeOptimalTimes() ([]entities.OptimalTime, error) {
	slots, err := s.Repo.ListTimeSlots()
	if err != nil {
		return nil, err
	}
	groups := groupSlots(slots)

	optimal := make([]entities.OptimalTime, 0, len(weekdays))
	for _, day := range weekdays {
		var best *slotGroup
		for i := range groups {
			g := &groups[i]
			if g.day != day {
				continue
			}
			if best == nil || g.totalStudents < best.totalStudents ||
				(g.totalStudents == best.totalStudents && g.start < best.start) {
				best = g
			}
		}
		if best == nil {
			continue
		}
		optimal = append(optimal, entities.OptimalTime{
			Day:            day,
			StartTime:      best.start,
			EndTime:        best.end,
			StudentCount:   best.totalStudents,
			Recommendation: optimalRecommendation,
		})
	}
	return optimal, nil
}

// ComputeStats summarizes the scraped collection. BusiestDay groups by
// day only; BusiestTime groups by start time only, across days, so two
// classes on different days that start at the same clock time are
// combined. Both are nil when no slots exist.
func (s *CalendarService) ComputeStats() (*entities.CalendarStats, error) {
	slots, err := s.Repo.ListTimeSlots()
	if err != nil {
		return nil, err
	}
	totalCourses, err := s.Repo.CountCourses()
	if err != nil {
		return nil, err
	}

	stats := &entities.CalendarStats{
		TotalCourses:   totalCourses,
		TotalTimeSlots: len(slots),
	}

	byDay := make(map[string]int)
	byStart := make(map[string]int)
	var dayOrder, startOrder []string
	for _, slot := range slots {
		stats.TotalStudentsTracked += slot.StudentsCount
		if _, ok := byDay[slot.DayOfWeek]; !ok {
			dayOrder = append(dayOrder, slot.DayOfWeek)
		}
		byDay[slot.DayOfWeek] += slot.StudentsCount
		if _, ok := byStart[slot.StartTime]; !ok {
			startOrder = append(startOrder, slot.StartTime)
		}
		byStart[slot.StartTime] += slot.StudentsCount
	}

	if day, ok := maxKey(dayOrder, byDay); ok {
		stats.BusiestDay = &day
	}
	if start, ok := maxKey(startOrder, byStart); ok {
		stats.BusiestTime = &start
	}
	return stats, nil
}

// maxKey returns the first-seen key with the maximum total.
func maxKey(order []string, totals map[string]int) (string, bool) {
	if len(order) == 0 {
		return "", false
	}
	best := order[0]
	for _, k := range order[1:] {
		if totals[k] > totals[best] {
			best = k
		}
	}
	return best, true
}
