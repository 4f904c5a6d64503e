package ledger

import (
	"fmt"
	"math"
	"time"

	"github.com/julianstephens/quitwise/internal/constants"
	"github.com/julianstephens/quitwise/internal/models"
	"github.com/julianstephens/quitwise/internal/utils"
)

// AddGoal creates a goal starting now and ending Duration Units later.
func (l *Ledger) AddGoal(in models.GoalInput) (models.Goal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.validator.Struct(in); err != nil {
		return models.Goal{}, err
	}

	start := l.now()
	end, err := utils.AddDuration(start, in.Duration, in.Unit)
	if err != nil {
		return models.Goal{}, err
	}
	goal := models.Goal{
		ID:        l.newID(),
		Type:      in.Type,
		Target:    in.Target,
		Duration:  in.Duration,
		Unit:      in.Unit,
		StartDate: utils.FormatTimestamp(start, l.loc),
		EndDate:   utils.FormatTimestamp(end, l.loc),
	}

	err = l.mutate(func(doc *models.Document) error {
		doc.Goals = append(doc.Goals, goal)
		return nil
	})
	if err != nil {
		return models.Goal{}, err
	}
	return goal, nil
}

// UpdateGoal merges the non-nil fields of u into the goal with id. It returns
// ErrNotFound, without writing, when no goal has that id.
func (l *Ledger) UpdateGoal(id string, u models.GoalUpdate) (models.Goal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := -1
	for i, g := range l.doc.Goals {
		if g.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Goal{}, fmt.Errorf("goal %q: %w", id, ErrNotFound)
	}

	updated := u.Apply(l.doc.Goals[idx])
	if err := l.validator.Struct(updated); err != nil {
		return models.Goal{}, err
	}

	err := l.mutate(func(doc *models.Document) error {
		doc.Goals[idx] = updated
		return nil
	})
	if err != nil {
		return models.Goal{}, err
	}
	return updated, nil
}

// Goals returns every goal in creation order.
func (l *Ledger) Goals() []models.Goal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.Goal{}, l.doc.Goals...)
}

// CurrentGoal returns the first goal that is not completed.
func (l *Ledger) CurrentGoal() (models.Goal, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, g := range l.doc.Goals {
		if !g.Completed {
			return g, true
		}
	}
	return models.Goal{}, false
}

// GoalProgress returns progress in percent, capped at 100. Smoke-free-day goals
// measure the current streak against the target; other goals measure elapsed time
// against the goal window.
func (l *Ledger) GoalProgress(g models.Goal) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	if g.Type == constants.GoalSmokeFreeDays {
		if g.Target <= 0 {
			return 100
		}
		return clampPercent(float64(l.streakLocked()) / g.Target * 100)
	}

	start, err := utils.ParseTimestamp(g.StartDate)
	if err != nil {
		return 0
	}
	end, err := utils.ParseTimestamp(g.EndDate)
	if err != nil {
		return 0
	}
	total := end.Sub(start)
	if total <= 0 {
		return 100
	}
	return clampPercent(float64(l.now().Sub(start)) / float64(total) * 100)
}

// GoalRemaining returns the time left until the goal ends, floored at zero.
func (l *Ledger) GoalRemaining(g models.Goal) time.Duration {
	end, err := utils.ParseTimestamp(g.EndDate)
	if err != nil {
		return 0
	}
	if left := end.Sub(l.now()); left > 0 {
		return left
	}
	return 0
}

func clampPercent(p float64) float64 {
	return math.Max(0, math.Min(100, p))
}
