package lifecycle

import (
	"itemtracker/internal/model"
	"testing"
	"time"
)

var now = time.Date(2024, 6, 20, 9, 0, 0, 0, time.Local)

// flags builds an item from the five lifecycle flags in the order
// reject, reviewLive, refundSubmitted, refundProcess, received.
func flags(id string, bits ...bool) *model.Item {
	item := &model.Item{ID: id}
	set := []*bool{&item.Reject, &item.ReviewLive, &item.RefundSubmitted, &item.RefundProcess, &item.Received}
	for i, b := range bits {
		*set[i] = b
	}
	return item
}

func ids(items []*model.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRejectWinsOverEveryCombination(t *testing.T) {
	for mask := 0; mask < 16; mask++ {
		item := flags("x", true, mask&1 != 0, mask&2 != 0, mask&4 != 0, mask&8 != 0)
		if got := Classify(item); got != StageRejected {
			t.Errorf("mask %04b: got %s, want rejected", mask, got)
		}
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		item *model.Item
		want Stage
	}{
		{"nil", nil, StageNew},
		{"empty", &model.Item{}, StageNew},
		{"settled", flags("a", false, true, true, true, true), StageFullySettled},
		{"refund in process", flags("b", false, true, true, true, false), StageRefundInProcess},
		{"submitted", flags("c", false, true, true, false, false), StageRefundSubmitted},
		{"submitted and received", flags("d", false, true, true, false, true), StageRefundSubmitted},
		{"review live", flags("e", false, true), StageReviewLive},
		{"received without review", flags("f", false, false, false, false, true), StageOther},
		{"processed without submit", flags("g", false, true, false, true), StageOther},
		{"submitted without review", flags("h", false, false, true), StageOther},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.item); got != tc.want {
				t.Errorf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestSortByStage(t *testing.T) {
	items := []*model.Item{
		flags("rejected", true),
		flags("new"),
		flags("live", false, true),
	}
	Sort(items, now)
	got := ids(items)
	want := []string{"rejected", "live", "new"}
	if !equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSortByReturnWindowWithinStage(t *testing.T) {
	items := []*model.Item{
		{ID: "no-return", ReturnCloseOn: "No Return"},
		{ID: "far", ReturnCloseOn: "2024-07-10"},
		{ID: "undecided", ReturnCloseOn: "-"},
		{ID: "past", ReturnCloseOn: "2024-06-01"},
		{ID: "today", ReturnCloseOn: "2024-06-20"},
		{ID: "soon", ReturnCloseOn: "2024-06-22"},
		{ID: "garbage", ReturnCloseOn: "whenever"},
	}
	Sort(items, now)
	want := []string{"today", "soon", "far", "no-return", "undecided", "past", "garbage"}
	if got := ids(items); !equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSettledStagesIgnoreReturnWindow(t *testing.T) {
	late := flags("late", false, true, true, true, true)
	late.ReturnCloseOn = "2024-07-30"
	early := flags("early", false, true, true, true, true)
	early.ReturnCloseOn = "2024-06-21"
	items := []*model.Item{late, early}
	Sort(items, now)
	if got := ids(items); !equal(got, []string{"late", "early"}) {
		t.Errorf("settled items were reordered: %v", got)
	}
}

func TestSortIsStableAndIdempotent(t *testing.T) {
	items := []*model.Item{
		{ID: "a"},
		flags("b", false, true),
		{ID: "c", ReturnCloseOn: "-"},
		flags("d", true),
		{ID: "e"},
		flags("f", false, true),
		{ID: "g", ReturnCloseOn: "No Return"},
	}
	once := Sorted(items, now)
	want := []string{"d", "b", "f", "a", "c", "e", "g"}
	if got := ids(once); !equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	twice := Sorted(once, now)
	if !equal(ids(once), ids(twice)) {
		t.Errorf("re-sorting changed order: %v -> %v", ids(once), ids(twice))
	}
	if items[0].ID != "a" || items[3].ID != "d" {
		t.Error("Sorted mutated its input")
	}
}

func TestCompareHandlesNil(t *testing.T) {
	if Compare(nil, &model.Item{}, now) != 0 {
		t.Error("nil and empty item should tie")
	}
	if Compare(flags("r", true), nil, now) >= 0 {
		t.Error("rejected should sort before nil")
	}
}

func TestSummarize(t *testing.T) {
	counts := Summarize([]*model.Item{flags("a", true), {}, {}, flags("b", false, true)})
	if counts[StageRejected] != 1 || counts[StageNew] != 2 || counts[StageReviewLive] != 1 {
		t.Errorf("unexpected counts %v", counts)
	}
	if _, ok := counts[StageFullySettled]; !ok {
		t.Error("every stage should be present")
	}
}

func TestStageNames(t *testing.T) {
	for _, s := range Stages {
		got, ok := ParseStage(s.String())
		if !ok || got != s {
			t.Errorf("ParseStage(%q) = %v, %v", s.String(), got, ok)
		}
	}
	if _, ok := ParseStage("archived"); ok {
		t.Error("unknown stage name parsed")
	}
	if StageRejected.Tone() != "yellow" || StageNew.Tone() != "white" {
		t.Error("unexpected tones")
	}
	if Stage(0).String() != "unknown" {
		t.Errorf("zero stage = %q", Stage(0).String())
	}
	for i, s := range Stages {
		if s.Rank() != i+1 {
			t.Errorf("%s rank = %d, want %d", s, s.Rank(), i+1)
		}
	}
}
