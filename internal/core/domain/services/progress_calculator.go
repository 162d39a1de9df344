package services

import (
	"math"
	"time"

	"marketplace/internal/core/domain/model/order"
)

// StageProgress is the derived completion state of a single fulfillment stage.
type StageProgress struct {
	Percent     int
	MinutesLeft int
}

// Progress aggregates per-stage completion for an order at a point in time.
type Progress struct {
	Preparation StageProgress
	Pickup      StageProgress
	Delivery    StageProgress
}

// ProgressCalculator is a domain service deriving stage completion from an
// order's timeline. It is a pure function of the order and the clock: nothing
// is persisted, and any stored copy of its output is a cache that must be
// recomputed on read.
//
// For each stage:
//   - A stage the order has already passed (by status) reports 100% and zero
//     minutes left.
//   - A stage with a pending estimate interpolates linearly between the
//     stage's start and its estimate, clamped to [0, 100]. The stage start is
//     the preceding stage's actual timestamp, falling back to placement time.
//   - A stage not yet reached and without an estimate reports zero.
type ProgressCalculator struct{}

// NewProgressCalculator creates a new ProgressCalculator instance.
func NewProgressCalculator() ProgressCalculator {
	return ProgressCalculator{}
}

// Calculate computes the progress of every stage of the order at the given
// instant.
func (p ProgressCalculator) Calculate(o *order.Order, now time.Time) (Progress, error) {
	if err := o.Validate(); err != nil {
		return Progress{}, err
	}

	return Progress{
		Preparation: p.stageProgress(
			o.Status(), order.StagePreparation, o.AcceptedAt(), o.PreparedAt(), o.PlacedAt(), now),
		Pickup: p.stageProgress(
			o.Status(), order.StagePickup, o.ClaimedAt(), o.PickedUpAt(), o.PlacedAt(), now),
		Delivery: p.stageProgress(
			o.Status(), order.StageDelivery, o.PickedUpAt(), o.DeliveredAt(), o.PlacedAt(), now),
	}, nil
}

func (p ProgressCalculator) stageProgress(
	status order.Status,
	stage order.Stage,
	start order.StageTime,
	end order.StageTime,
	placedAt time.Time,
	now time.Time,
) StageProgress {
	if status.ReachedStage(stage) {
		return StageProgress{Percent: 100, MinutesLeft: 0}
	}

	if !end.IsEstimated() {
		return StageProgress{}
	}

	stageStart := placedAt
	if start.IsActual() {
		stageStart = start.Time()
	}

	estimate := end.Time()

	percent := 100.0
	if window := estimate.Sub(stageStart); window > 0 {
		percent = float64(now.Sub(stageStart)) / float64(window) * 100
	}
	percent = math.Min(100, math.Max(0, percent))

	minutesLeft := 0
	if remaining := estimate.Sub(now); remaining > 0 {
		minutesLeft = int(math.Ceil(remaining.Minutes()))
	}

	return StageProgress{
		Percent:     int(percent),
		MinutesLeft: minutesLeft,
	}
}
