// Package urgency scores tasks on a 0-100 scale from deadline proximity,
// priority, and remaining-duration pressure, and orders candidate slots
// according to per-task heuristics.
package urgency

import (
	"fmt"
	"math"
	"time"

	"github.com/timeblock-app/timeblock/internal/constants"
	"github.com/timeblock-app/timeblock/internal/models"
)

// Strategy computes an urgency score for a task at a given instant. Pure
// function: strategies are selected by configuration, never by recovering
// from a failed computation.
type Strategy func(task models.Task, now time.Time) float64

const (
	// hoursPerWeek anchors the logarithmic decay: a deadline exactly one week
	// out scores ~0 before priority and pressure adjustments.
	hoursPerWeek = 168.0

	priorityBonusStep = 6.67
	pressureBonusMax  = 15.0
	splitBonusMax     = 5.0
)

// Linear is the simple ratio formula: duration pressure against remaining
// minutes, amplified by priority.
func Linear(task models.Task, now time.Time) float64 {
	if task.DueDate == nil || task.EstimatedDuration <= 0 {
		return 0
	}
	minutesRemaining := task.DueDate.Sub(now).Minutes()
	if minutesRemaining <= 0 {
		return constants.UrgencyMax
	}

	priorityFactor := 1 + float64(5-task.Priority)*0.5
	score := float64(task.EstimatedDuration) / minutesRemaining * 100 * priorityFactor
	return clamp(score)
}

// Logarithmic is the preferred formula: logarithmic deadline decay with
// additive bonuses for priority, workload pressure, and block splitting.
func Logarithmic(task models.Task, now time.Time) float64 {
	if task.DueDate == nil || task.EstimatedDuration <= 0 {
		return 0
	}
	hoursRemaining := task.DueDate.Sub(now).Hours()
	if hoursRemaining <= 0 {
		return constants.UrgencyMax
	}

	score := 100 - (math.Log(hoursRemaining+1)/math.Log(hoursPerWeek))*100

	score += float64(5-task.Priority) * priorityBonusStep

	hoursNeeded := float64(task.EstimatedDuration) / 60
	if ratio := hoursNeeded / hoursRemaining; ratio > 0.5 {
		score += math.Min(pressureBonusMax, ratio*pressureBonusMax)
	}

	if task.SplitUpBlock > 0 && task.EstimatedDuration > task.SplitUpBlock {
		count := math.Ceil(float64(task.EstimatedDuration) / float64(task.SplitUpBlock))
		score += math.Min(splitBonusMax, count)
	}

	return clamp(score)
}

// ByName resolves a configured strategy name. Unrecognized names fall back
// to the logarithmic default.
func ByName(name string) Strategy {
	if name == "linear" {
		return Linear
	}
	return Logarithmic
}

// Assessment pairs a score with a human-readable account of it.
type Assessment struct {
	Score       float64
	Explanation string
}

// Assess scores a task and explains the result.
func Assess(strategy Strategy, task models.Task, now time.Time) Assessment {
	score := strategy(task, now)

	var explanation string
	switch {
	case task.DueDate == nil:
		explanation = "no due date"
	case task.EstimatedDuration <= 0:
		explanation = "no estimated duration"
	case task.DueDate.Sub(now) <= 0:
		explanation = "past due"
	default:
		explanation = fmt.Sprintf("due in %s, priority %d, %dm of work remaining",
			task.DueDate.Sub(now).Round(time.Minute), task.Priority, task.EstimatedDuration)
	}

	return Assessment{Score: score, Explanation: explanation}
}

func clamp(score float64) float64 {
	return math.Max(0, math.Min(constants.UrgencyMax, score))
}
