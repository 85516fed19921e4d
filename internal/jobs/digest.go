// Package jobs runs the scheduled background work of the item tracker.
package jobs

import (
	"context"
	"itemtracker/internal/countdown"
	"itemtracker/internal/lifecycle"
	"itemtracker/internal/model"
	"itemtracker/internal/repository"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Digest summarises the items that need attention today.
type Digest struct {
	Date          string                  `json:"date"`
	Stages        map[lifecycle.Stage]int `json:"stages"`
	ReviewDue     []*model.Item           `json:"reviewDue"`     // review window closes today
	ReturnClosing []*model.Item           `json:"returnClosing"` // return window closes today
}

// BuildDigest picks the open items whose review or return window ends on
// the day of now.
func BuildDigest(items []*model.Item, now time.Time) *Digest {
	digest := &Digest{
		Date:          countdown.Today(now).Format("2006-01-02"),
		Stages:        lifecycle.Summarize(items),
		ReviewDue:     []*model.Item{},
		ReturnClosing: []*model.Item{},
	}

	for _, item := range lifecycle.Sorted(items, now) {
		stage := lifecycle.Classify(item)
		if stage != lifecycle.StageNew && stage != lifecycle.StageReviewLive {
			continue
		}
		if stage == lifecycle.StageNew {
			if age := countdown.OrderAge(item.OrderedOn, now); age.Days != nil && *age.Days == 0 {
				digest.ReviewDue = append(digest.ReviewDue, item)
			}
		}
		if left, ok := countdown.DaysUntil(item.ReturnCloseOn, now); ok && left == 0 {
			digest.ReturnClosing = append(digest.ReturnClosing, item)
		}
	}

	return digest
}

type DigestJob struct {
	itemRepo repository.ItemRepository
	clock    countdown.Clock
	logger   *zap.Logger
	sched    *cron.Cron
}

func NewDigestJob(itemRepo repository.ItemRepository, clock countdown.Clock, logger *zap.Logger) *DigestJob {
	if clock == nil {
		clock = countdown.SystemClock()
	}
	return &DigestJob{
		itemRepo: itemRepo,
		clock:    clock,
		logger:   logger.Named("digest"),
	}
}

// RunOnce builds and logs the digest across every owner.
func (j *DigestJob) RunOnce(ctx context.Context) (*Digest, error) {
	items, err := j.itemRepo.List(ctx, "")
	if err != nil {
		return nil, err
	}

	digest := BuildDigest(items, j.clock.Now())
	j.logger.Info("daily digest",
		zap.String("date", digest.Date),
		zap.Int("items", len(items)),
		zap.Int("review_due", len(digest.ReviewDue)),
		zap.Int("return_closing", len(digest.ReturnClosing)),
	)
	for _, item := range digest.ReviewDue {
		j.logger.Info("review window closes today",
			zap.String("owner", item.Email),
			zap.String("item_id", item.ID),
			zap.String("product", item.ProductName),
		)
	}
	for _, item := range digest.ReturnClosing {
		j.logger.Info("return window closes today",
			zap.String("owner", item.Email),
			zap.String("item_id", item.ID),
			zap.String("product", item.ProductName),
		)
	}

	return digest, nil
}

// Start schedules the digest with a cron spec or descriptor such as
// "@midnight", evaluated in local time.
func (j *DigestJob) Start(schedule string) error {
	j.sched = cron.New(cron.WithLocation(time.Local), cron.WithParser(cronParser))
	if _, err := j.sched.AddFunc(schedule, j.run); err != nil {
		return err
	}
	j.sched.Start()
	return nil
}

func (j *DigestJob) run() {
	defer func() {
		if err := recover(); err != nil {
			j.logger.Error("digest panic", zap.Any("panic", err))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if _, err := j.RunOnce(ctx); err != nil {
		j.logger.Error("digest failed", zap.Error(err))
	}
}

// Stop halts the scheduler and waits for a running digest to finish.
func (j *DigestJob) Stop() {
	if j.sched == nil {
		return
	}
	<-j.sched.Stop().Done()
}
