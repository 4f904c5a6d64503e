package ledger

import (
	"sort"

	"github.com/julianstephens/quitwise/internal/constants"
	"github.com/julianstephens/quitwise/internal/models"
	"github.com/julianstephens/quitwise/internal/utils"
)

// recomputeDay recounts the events on date and rewrites its stat record from scratch
// using the current settings. A record is created on first use and never removed.
func recomputeDay(doc *models.Document, date string) {
	smokes, cravings := 0, 0
	for _, e := range doc.SmokeLogs {
		if utils.TimestampDay(e.Timestamp) == date {
			smokes++
		}
	}
	for _, e := range doc.CravingLogs {
		if utils.TimestampDay(e.Timestamp) == date {
			cravings++
		}
	}

	stat := models.DailyStat{
		Date:             date,
		CigaretteCount:   smokes,
		MoneySaved:       float64(smokes) * doc.Settings.CostPerCigarette(),
		CravingsResisted: cravings,
	}
	for i := range doc.DailyStats {
		if doc.DailyStats[i].Date == date {
			doc.DailyStats[i] = stat
			return
		}
	}
	doc.DailyStats = append(doc.DailyStats, stat)
}

// rebuildStats recomputes every day that has an event or an existing record.
func rebuildStats(doc *models.Document) {
	days := make(map[string]bool)
	var order []string
	note := func(d string) {
		if !days[d] {
			days[d] = true
			order = append(order, d)
		}
	}
	for _, s := range doc.DailyStats {
		note(s.Date)
	}
	for _, e := range doc.SmokeLogs {
		note(utils.TimestampDay(e.Timestamp))
	}
	for _, e := range doc.CravingLogs {
		note(utils.TimestampDay(e.Timestamp))
	}
	for _, d := range order {
		recomputeDay(doc, d)
	}
}

// DailyStats returns the stat records within the last days calendar days, today
// included, oldest first. days <= 0 means 30 and windows longer than ten years are
// cut to ten years.
func (l *Ledger) DailyStats(days int) []models.DailyStat {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dailyStatsLocked(days)
}

// statsWindow bounds a caller-supplied window to 1..MaxStatsWindowDays.
func statsWindow(days int) int {
	if days <= 0 {
		return constants.DefaultStatsWindowDays
	}
	return min(days, constants.MaxStatsWindowDays)
}

func (l *Ledger) dailyStatsLocked(days int) []models.DailyStat {
	days = statsWindow(days)
	window := make(map[string]bool, days)
	for _, d := range utils.DaysBack(l.now(), l.loc, days) {
		window[d] = true
	}

	out := make([]models.DailyStat, 0)
	for _, s := range l.doc.DailyStats {
		if window[s.Date] {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// DailySeries is DailyStats with the days lacking a record filled in as zeros, so it
// always has exactly days entries.
func (l *Ledger) DailySeries(days int) []models.DailyStat {
	l.mu.Lock()
	defer l.mu.Unlock()

	days = statsWindow(days)
	byDate := make(map[string]models.DailyStat)
	for _, s := range l.doc.DailyStats {
		byDate[s.Date] = s
	}
	keys := utils.DaysBack(l.now(), l.loc, days)
	out := make([]models.DailyStat, len(keys))
	for i, d := range keys {
		if s, ok := byDate[d]; ok {
			out[i] = s
		} else {
			out[i] = models.DailyStat{Date: d}
		}
	}
	return out
}

// TodayStats returns today's record, or a zero record that is not persisted.
func (l *Ledger) TodayStats() models.DailyStat {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.statFor(l.today())
}

func (l *Ledger) statFor(date string) models.DailyStat {
	for _, s := range l.doc.DailyStats {
		if s.Date == date {
			return s
		}
	}
	return models.DailyStat{Date: date}
}

// Comparison returns today's cigarette count minus yesterday's.
func (l *Ledger) Comparison() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	yesterday := utils.DayKey(utils.StartOfDay(now, l.loc).AddDate(0, 0, -1), l.loc)
	return l.statFor(utils.DayKey(now, l.loc)).CigaretteCount - l.statFor(yesterday).CigaretteCount
}

// CurrentStreak counts consecutive smoke-free days ending today, capped at 365.
func (l *Ledger) CurrentStreak() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.streakLocked()
}

func (l *Ledger) streakLocked() int {
	smoked := make(map[string]bool, len(l.doc.SmokeLogs))
	for _, e := range l.doc.SmokeLogs {
		smoked[utils.TimestampDay(e.Timestamp)] = true
	}

	today := utils.StartOfDay(l.now(), l.loc)
	streak := 0
	for i := 0; i < constants.StreakCapDays; i++ {
		if smoked[utils.DayKey(today.AddDate(0, 0, -i), l.loc)] {
			break
		}
		streak++
	}
	return streak
}

// TotalCigarettesAvoided estimates avoided cigarettes against a 20 per day baseline:
// (baseline - observed daily average) * tracked days, floored at zero.
func (l *Ledger) TotalCigarettesAvoided() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	tracked := len(l.doc.DailyStats)
	if tracked == 0 {
		return 0
	}
	avg := AverageCigarettesPerDay(l.doc.DailyStats)
	avoided := (constants.BaselineCigarettesPerDay - avg) * float64(tracked)
	if avoided < 0 {
		return 0
	}
	return avoided
}

// TotalMoneySaved sums moneySaved over every stat record.
func (l *Ledger) TotalMoneySaved() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.moneySavedLocked()
}

func (l *Ledger) moneySavedLocked() float64 {
	total := 0.0
	for _, s := range l.doc.DailyStats {
		total += s.MoneySaved
	}
	return total
}

// TriggerAnalysis counts smoke events per trigger tag.
func (l *Ledger) TriggerAnalysis() map[string]int {
	l.mu.Lock()
	defer l.mu.Unlock()

	counts := make(map[string]int)
	for _, e := range l.doc.SmokeLogs {
		counts[e.Trigger]++
	}
	return counts
}

// TriggerCount is one row of a sorted trigger breakdown.
type TriggerCount struct {
	Trigger string
	Count   int
}

// SortTriggers orders a trigger histogram by count descending, then by name.
func SortTriggers(counts map[string]int) []TriggerCount {
	out := make([]TriggerCount, 0, len(counts))
	for t, c := range counts {
		out = append(out, TriggerCount{Trigger: t, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Trigger < out[j].Trigger
	})
	return out
}

// DayIntensity is the mean craving intensity logged on one day.
type DayIntensity struct {
	Date    string
	Average float64
	Count   int
}

// CravingIntensityByDay averages craving intensity per day over the last days
// calendar days, oldest first. Days without cravings are omitted.
func (l *Ledger) CravingIntensityByDay(days int) []DayIntensity {
	l.mu.Lock()
	defer l.mu.Unlock()

	days = statsWindow(days)
	keys := utils.DaysBack(l.now(), l.loc, days)
	sums := make(map[string]int, len(keys))
	counts := make(map[string]int, len(keys))
	for _, e := range l.doc.CravingLogs {
		d := utils.TimestampDay(e.Timestamp)
		sums[d] += e.Intensity
		counts[d]++
	}

	var out []DayIntensity
	for _, d := range keys {
		if counts[d] == 0 {
			continue
		}
		out = append(out, DayIntensity{Date: d, Average: float64(sums[d]) / float64(counts[d]), Count: counts[d]})
	}
	return out
}

// AverageCigarettesPerDay is the mean cigaretteCount over stats, or 0 when empty.
func AverageCigarettesPerDay(stats []models.DailyStat) float64 {
	if len(stats) == 0 {
		return 0
	}
	total := 0
	for _, s := range stats {
		total += s.CigaretteCount
	}
	return float64(total) / float64(len(stats))
}

// BestDay returns the record with the fewest cigarettes; the earliest one wins ties.
func BestDay(stats []models.DailyStat) (models.DailyStat, bool) {
	if len(stats) == 0 {
		return models.DailyStat{}, false
	}
	best := stats[0]
	for _, s := range stats[1:] {
		if s.CigaretteCount < best.CigaretteCount {
			best = s
		}
	}
	return best, true
}
