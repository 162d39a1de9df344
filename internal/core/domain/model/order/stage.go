package order

import (
	"fmt"
	"time"

	"marketplace/internal/pkg/errs"
)

// Stage identifies a timed span of the fulfillment lifecycle for which an
// estimate exists and progress can be derived.
type Stage int

const (
	// StageUnknown is the invalid zero value.
	StageUnknown Stage = iota

	// StagePreparation runs from acceptance until the store marks Prepared.
	StagePreparation

	// StagePickup runs from the driver claim until PickedUp.
	StagePickup

	// StageDelivery runs from pickup until Delivered.
	StageDelivery
)

// String returns the stage name for logging and API payloads.
func (s Stage) String() string {
	switch s {
	case StagePreparation:
		return "Preparation"
	case StagePickup:
		return "Pickup"
	case StageDelivery:
		return "Delivery"
	default:
		return "Unknown"
	}
}

// StageFromString parses a stage name from API input.
func StageFromString(v string) (Stage, error) {
	switch v {
	case "Preparation":
		return StagePreparation, nil
	case "Pickup":
		return StagePickup, nil
	case "Delivery":
		return StageDelivery, nil
	default:
		return StageUnknown, errs.NewValueIsInvalidErrorWithCause("stage",
			fmt.Errorf("%q is not a valid stage", v))
	}
}

// Validate checks that the stage is one of the defined non-zero values.
func (s Stage) Validate() error {
	switch s {
	case StagePreparation, StagePickup, StageDelivery:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("stage",
			fmt.Errorf("%d is not a valid stage", s))
	}
}

// StageTimeKind discriminates the three states a stage timestamp can be in.
type StageTimeKind int

const (
	// StageTimeNotReached means the order has not entered the stage and no
	// estimate has been seeded yet.
	StageTimeNotReached StageTimeKind = iota

	// StageTimeEstimated means the stage carries a planning-time projection.
	StageTimeEstimated

	// StageTimeActual means the stage completed at the recorded moment.
	StageTimeActual
)

// StageTime models a per-stage timestamp as an explicit
// NotReached | Estimated(time) | Actual(time) union instead of a nullable
// time field. This keeps the progress calculator total: callers branch on
// Kind, never on nil.
type StageTime struct {
	kind StageTimeKind
	at   time.Time
}

// NotReachedStageTime returns the empty stage timestamp.
func NotReachedStageTime() StageTime {
	return StageTime{kind: StageTimeNotReached}
}

// EstimatedStageTime creates a planning-time projection for a stage.
func EstimatedStageTime(at time.Time) (StageTime, error) {
	if at.IsZero() {
		return StageTime{}, errs.NewValueIsRequiredError("estimated stage time")
	}
	return StageTime{kind: StageTimeEstimated, at: at}, nil
}

// ActualStageTime records the real completion moment of a stage.
func ActualStageTime(at time.Time) (StageTime, error) {
	if at.IsZero() {
		return StageTime{}, errs.NewValueIsRequiredError("actual stage time")
	}
	return StageTime{kind: StageTimeActual, at: at}, nil
}

// RestoreStageTime reconstructs a StageTime from persistence.
func RestoreStageTime(kind StageTimeKind, at time.Time) (StageTime, error) {
	switch kind {
	case StageTimeNotReached:
		return NotReachedStageTime(), nil
	case StageTimeEstimated:
		return EstimatedStageTime(at)
	case StageTimeActual:
		return ActualStageTime(at)
	default:
		return StageTime{}, errs.NewValueIsInvalidErrorWithCause("stage time kind",
			fmt.Errorf("%d is not a valid kind", kind))
	}
}

// Kind returns the discriminator of the union.
func (t StageTime) Kind() StageTimeKind {
	return t.kind
}

// Time returns the recorded moment. Zero for NotReached.
func (t StageTime) Time() time.Time {
	return t.at
}

// IsNotReached reports whether the stage has no timestamp yet.
func (t StageTime) IsNotReached() bool {
	return t.kind == StageTimeNotReached
}

// IsEstimated reports whether the timestamp is a projection.
func (t StageTime) IsEstimated() bool {
	return t.kind == StageTimeEstimated
}

// IsActual reports whether the stage actually completed.
func (t StageTime) IsActual() bool {
	return t.kind == StageTimeActual
}
