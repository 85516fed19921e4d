// Package lifecycle classifies items into lifecycle stages and orders them
// for display. All functions are pure and safe for concurrent use.
package lifecycle

import (
	"itemtracker/internal/countdown"
	"itemtracker/internal/model"
	"math"
	"slices"
	"time"
)

// Stage is where an item sits in the order-to-refund lifecycle.
type Stage int

// Stages in precedence order. The numeric value is the display rank.
const (
	StageRejected Stage = iota + 1
	StageFullySettled
	StageRefundInProcess
	StageRefundSubmitted
	StageReviewLive
	StageNew
	StageOther
)

var stageNames = map[Stage]string{
	StageRejected:        "rejected",
	StageFullySettled:    "fully_settled",
	StageRefundInProcess: "refund_in_process",
	StageRefundSubmitted: "refund_submitted",
	StageReviewLive:      "review_live",
	StageNew:             "new",
	StageOther:           "other",
}

// Stages lists every stage by rank.
var Stages = []Stage{
	StageRejected,
	StageFullySettled,
	StageRefundInProcess,
	StageRefundSubmitted,
	StageReviewLive,
	StageNew,
	StageOther,
}

// Rank is the display position of the stage, lowest first.
func (s Stage) Rank() int {
	return int(s)
}

// String returns the stage's wire name, or "unknown".
func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "unknown"
}

// MarshalText encodes the stage by name in JSON bodies and map keys.
func (s Stage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseStage is the inverse of String.
func ParseStage(name string) (Stage, bool) {
	for stage, n := range stageNames {
		if n == name {
			return stage, true
		}
	}
	return 0, false
}

// Tone is the row colour a UI paints for the stage.
func (s Stage) Tone() string {
	switch s {
	case StageRejected:
		return "yellow"
	case StageFullySettled:
		return "slate"
	case StageRefundInProcess:
		return "lime"
	case StageRefundSubmitted:
		return "indigo"
	default:
		return "white"
	}
}

// Classify returns the first stage whose predicate the item's flags satisfy.
func Classify(item *model.Item) Stage {
	if item == nil {
		return StageNew
	}
	switch {
	case item.Reject:
		return StageRejected
	case item.ReviewLive && item.RefundProcess && item.RefundSubmitted && item.Received:
		return StageFullySettled
	case item.ReviewLive && item.RefundProcess && item.RefundSubmitted:
		return StageRefundInProcess
	case item.ReviewLive && item.RefundSubmitted && !item.RefundProcess:
		return StageRefundSubmitted
	case item.ReviewLive && !item.RefundSubmitted && !item.RefundProcess && !item.Received:
		return StageReviewLive
	case !item.ReviewLive && !item.RefundSubmitted && !item.RefundProcess && !item.Received:
		return StageNew
	default:
		return StageOther
	}
}

// urgency is the number of days until the return window closes. Sentinels,
// unparsable and already passed dates sort last.
func urgency(item *model.Item, now time.Time) int {
	if item == nil {
		return math.MaxInt
	}
	days, ok := countdown.DaysUntil(item.ReturnCloseOn, now)
	if !ok || days < 0 {
		return math.MaxInt
	}
	return days
}

func urgencyOrdered(s Stage) bool {
	return s == StageNew || s == StageReviewLive
}

// Compare orders items by stage rank, then by nearest return window within
// the New and Review Live stages. Equal items compare as 0.
func Compare(a, b *model.Item, now time.Time) int {
	sa, sb := Classify(a), Classify(b)
	if sa != sb {
		return sa.Rank() - sb.Rank()
	}
	if !urgencyOrdered(sa) {
		return 0
	}
	ua, ub := urgency(a, now), urgency(b, now)
	switch {
	case ua < ub:
		return -1
	case ua > ub:
		return 1
	}
	return 0
}

// Sort orders items in place. The sort is stable so ties keep input order.
func Sort(items []*model.Item, now time.Time) {
	slices.SortStableFunc(items, func(a, b *model.Item) int {
		return Compare(a, b, now)
	})
}

// Sorted returns a sorted copy and leaves items untouched.
func Sorted(items []*model.Item, now time.Time) []*model.Item {
	out := slices.Clone(items)
	Sort(out, now)
	return out
}

// Summarize counts items per stage. Every stage is present in the result.
func Summarize(items []*model.Item) map[Stage]int {
	counts := make(map[Stage]int, len(Stages))
	for _, s := range Stages {
		counts[s] = 0
	}
	for _, item := range items {
		counts[Classify(item)]++
	}
	return counts
}
