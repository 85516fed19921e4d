package jobs

import (
	"context"
	"itemtracker/internal/client"
	"itemtracker/internal/config"
	"itemtracker/internal/countdown"
	"itemtracker/internal/lifecycle"
	"itemtracker/internal/model"
	"itemtracker/internal/repository"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fixedClock struct {
	now time.Time
}

type noopTimer struct{}

func (noopTimer) Stop() bool { return false }

func (c fixedClock) Now() time.Time                                  { return c.now }
func (c fixedClock) AfterFunc(time.Duration, func()) countdown.Timer { return noopTimer{} }
func (c fixedClock) Every(time.Duration, func()) countdown.Timer     { return noopTimer{} }

func ids(items []*model.Item) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func TestBuildDigest(t *testing.T) {
	now := time.Date(2024, 6, 20, 9, 0, 0, 0, time.Local)
	items := []*model.Item{
		{ID: "due", OrderedOn: "2024-06-05"},
		{ID: "due-live", OrderedOn: "2024-06-05", ReviewLive: true},
		{ID: "closing", ReturnCloseOn: "2024-06-20"},
		{ID: "closing-rejected", Reject: true, ReturnCloseOn: "2024-06-20"},
		{ID: "later", OrderedOn: "2024-06-10", ReturnCloseOn: "2024-06-25"},
		{ID: "no-return", ReturnCloseOn: "No Return"},
	}

	digest := BuildDigest(items, now)
	if digest.Date != "2024-06-20" {
		t.Errorf("date = %s", digest.Date)
	}
	if got := ids(digest.ReviewDue); len(got) != 1 || got[0] != "due" {
		t.Errorf("review due = %v", got)
	}
	if got := ids(digest.ReturnClosing); len(got) != 1 || got[0] != "closing" {
		t.Errorf("return closing = %v", got)
	}
	if digest.Stages[lifecycle.StageNew] != 4 || digest.Stages[lifecycle.StageRejected] != 1 {
		t.Errorf("stages = %v", digest.Stages)
	}
}

func TestRunOnceLogsAcrossOwners(t *testing.T) {
	db, err := client.InitDBClient(config.Database{Driver: "sqlite", URL: "file::memory:"})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	repo := repository.NewItemRepository(db)
	ctx := context.Background()
	for _, item := range []*model.Item{
		{ID: "a", Email: "asha@itemapp.com", ReturnCloseOn: "2024-06-20"},
		{ID: "b", Email: "ravi@itemapp.com", ReturnCloseOn: "2024-06-20"},
	} {
		if _, err := repo.Create(ctx, item); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	core, logs := observer.New(zap.InfoLevel)
	job := NewDigestJob(repo, fixedClock{now: time.Date(2024, 6, 20, 0, 0, 1, 0, time.Local)}, zap.New(core))

	digest, err := job.RunOnce(ctx)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(digest.ReturnClosing) != 2 {
		t.Errorf("expected both owners' items, got %v", ids(digest.ReturnClosing))
	}
	if n := logs.FilterMessage("return window closes today").Len(); n != 2 {
		t.Errorf("logged %d closing entries", n)
	}
	if logs.FilterMessage("daily digest").Len() != 1 {
		t.Error("missing summary entry")
	}
}

func TestStartRejectsBadSchedule(t *testing.T) {
	job := NewDigestJob(nil, nil, zap.NewNop())
	if err := job.Start("not a schedule"); err == nil {
		t.Fatal("expected parse error")
	}
	job.Stop()

	if err := job.Start("@midnight"); err != nil {
		t.Fatalf("start: %v", err)
	}
	job.Stop()
}
