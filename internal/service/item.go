package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"itemtracker/internal/countdown"
	"itemtracker/internal/dto"
	"itemtracker/internal/lifecycle"
	"itemtracker/internal/model"
	"itemtracker/internal/repository"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"gorm.io/gorm"
)

const (
	defaultPerPage = 20
	maxPerPage     = 500
	missingOrderID = "N/A"
)

type ItemService interface {
	Board(ctx context.Context, owner string, query dto.BoardQuery) (*dto.Board, error)
	Get(ctx context.Context, owner, id string) (*model.Item, error)
	Create(ctx context.Context, owner string, req *dto.CreateItemRequest) (string, error)
	Update(ctx context.Context, owner, id string, req dto.UpdateItemRequest) error
	Delete(ctx context.Context, owner, id string) error
	ExportCSV(ctx context.Context, owner string, w io.Writer) error
}

type itemServiceImpl struct {
	itemRepo        repository.ItemRepository
	clock           countdown.Clock
	defaultPlatform string
}

func NewItemService(
	itemRepo repository.ItemRepository,
	clock countdown.Clock,
	defaultPlatform string,
) ItemService {
	if clock == nil {
		clock = countdown.SystemClock()
	}
	return &itemServiceImpl{
		itemRepo:        itemRepo,
		clock:           clock,
		defaultPlatform: defaultPlatform,
	}
}

func (s *itemServiceImpl) Board(ctx context.Context, owner string, query dto.BoardQuery) (*dto.Board, error) {
	var stage lifecycle.Stage
	if query.Stage != "" {
		var ok bool
		if stage, ok = lifecycle.ParseStage(query.Stage); !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStage, query.Stage)
		}
	}

	page := query.Page
	if page <= 0 {
		page = 1
	}
	perPage := query.PerPage
	if perPage <= 0 || perPage > maxPerPage {
		perPage = defaultPerPage
	}

	items, err := s.itemRepo.List(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	now := s.clock.Now()
	sorted := lifecycle.Sorted(items, now)
	if stage != 0 {
		filtered := sorted[:0]
		for _, item := range sorted {
			if lifecycle.Classify(item) == stage {
				filtered = append(filtered, item)
			}
		}
		sorted = filtered
	}

	board := &dto.Board{
		Rows:    []*dto.BoardRow{},
		Total:   len(sorted),
		Page:    page,
		PerPage: perPage,
		Stages:  lifecycle.Summarize(items),
	}

	offset := (page - 1) * perPage
	if offset >= len(sorted) {
		return board, nil
	}
	end := min(offset+perPage, len(sorted))
	for i, item := range sorted[offset:end] {
		board.Rows = append(board.Rows, buildRow(item, offset+i+1, now))
	}

	return board, nil
}

func buildRow(item *model.Item, position int, now time.Time) *dto.BoardRow {
	stage := lifecycle.Classify(item)
	serial := position
	if item.SerialNumber != nil {
		serial = *item.SerialNumber
	}
	return &dto.BoardRow{
		Item:          item,
		SerialNumber:  serial,
		Stage:         stage,
		Tone:          stage.Tone(),
		OrderAge:      countdown.OrderAge(item.OrderedOn, now),
		ReturnClosing: countdown.ReturnClosing(item.ReturnCloseOn, now),
		DeliveredOn:   countdown.FormatDate(item.DeliveredOn),
		ReviewedOn:    countdown.FormatDate(item.ReviewedOn),
	}
}

// Get returns the item when it belongs to owner. Items of other owners are
// reported as not found.
func (s *itemServiceImpl) Get(ctx context.Context, owner, id string) (*model.Item, error) {
	item, err := s.itemRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if owner != "" && item.Email != owner {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (s *itemServiceImpl) Create(ctx context.Context, owner string, req *dto.CreateItemRequest) (string, error) {
	productName := capitalizeFirst(req.ProductName)
	productCode := capitalizeFirst(req.ProductCode)
	if productName == "" || productCode == "" {
		return "", fmt.Errorf("%w: product name and product code are required", ErrInvalidInput)
	}
	if req.AmountPaid.IsNegative() || req.RefundAmount.IsNegative() {
		return "", fmt.Errorf("%w: amounts must not be negative", ErrInvalidInput)
	}

	orderID := capitalizeFirst(req.OrderID)
	if orderID == "" {
		orderID = missingOrderID
	}
	platform := capitalizeFirst(req.Platform)
	if platform == "" {
		platform = s.defaultPlatform
	}

	item := &model.Item{
		ID:            uuid.NewString(),
		Email:         owner,
		ProductName:   productName,
		OrderID:       orderID,
		ProductCode:   productCode,
		UserID:        capitalizeFirst(req.UserID),
		Platform:      platform,
		ReviewerName:  capitalizeFirst(req.ReviewerName),
		PaidBy:        capitalizeFirst(req.PaidBy),
		AmountPaid:    req.AmountPaid,
		RefundAmount:  req.RefundAmount,
		OrderedOn:     strings.TrimSpace(req.OrderedOn),
		DeliveredOn:   strings.TrimSpace(req.DeliveredOn),
		ReviewedOn:    strings.TrimSpace(req.ReviewedOn),
		ReturnCloseOn: strings.TrimSpace(req.ReturnCloseOn),
		SerialNumber:  req.SerialNumber,
	}

	id, err := s.itemRepo.Create(ctx, item)
	if err != nil {
		return "", fmt.Errorf("store item in db: %w", err)
	}

	return id, nil
}

func (s *itemServiceImpl) Update(ctx context.Context, owner, id string, req dto.UpdateItemRequest) error {
	fields, err := itemColumns(req)
	if err != nil {
		return err
	}
	if _, err := s.Get(ctx, owner, id); err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}

	if err := s.itemRepo.Update(ctx, id, fields); err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

func (s *itemServiceImpl) Delete(ctx context.Context, owner, id string) error {
	if _, err := s.Get(ctx, owner, id); err != nil {
		return err
	}
	if err := s.itemRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

type exportRow struct {
	SerialNumber    int    `csv:"S.No."`
	Stage           string `csv:"Stage"`
	ProductCode     string `csv:"Product Code"`
	ProductName     string `csv:"Product Name"`
	OrderID         string `csv:"Order Id"`
	Platform        string `csv:"Platform"`
	ReviewerName    string `csv:"Reviewer Name"`
	AmountPaid      string `csv:"Amount Paid"`
	PaidBy          string `csv:"Paid By"`
	OrderedOn       string `csv:"Ordered On"`
	ReviewWindow    string `csv:"Review Window"`
	RefundAmount    string `csv:"Refund Amount"`
	DeliveredOn     string `csv:"Delivered On"`
	ReviewedOn      string `csv:"Reviewed On"`
	ReviewLive      bool   `csv:"Review Live"`
	ReturnCloseOn   string `csv:"Return Closes On"`
	RefundSubmitted bool   `csv:"Refund Form"`
	Reject          bool   `csv:"Need Reject"`
	RefundProcess   bool   `csv:"Refund Processed"`
	Received        bool   `csv:"Received"`
}

// ExportCSV writes the owner's whole board in display order.
func (s *itemServiceImpl) ExportCSV(ctx context.Context, owner string, w io.Writer) error {
	items, err := s.itemRepo.List(ctx, owner)
	if err != nil {
		return fmt.Errorf("list items: %w", err)
	}

	now := s.clock.Now()
	rows := make([]*exportRow, 0, len(items))
	for i, item := range lifecycle.Sorted(items, now) {
		row := buildRow(item, i+1, now)
		rows = append(rows, &exportRow{
			SerialNumber:    row.SerialNumber,
			Stage:           row.Stage.String(),
			ProductCode:     item.ProductCode,
			ProductName:     item.ProductName,
			OrderID:         item.OrderID,
			Platform:        item.Platform,
			ReviewerName:    item.ReviewerName,
			AmountPaid:      item.AmountPaid.StringFixed(2),
			PaidBy:          item.PaidBy,
			OrderedOn:       countdown.FormatDate(item.OrderedOn),
			ReviewWindow:    row.OrderAge.Label,
			RefundAmount:    item.RefundAmount.StringFixed(2),
			DeliveredOn:     row.DeliveredOn,
			ReviewedOn:      row.ReviewedOn,
			ReviewLive:      item.ReviewLive,
			ReturnCloseOn:   row.ReturnClosing.Label,
			RefundSubmitted: item.RefundSubmitted,
			Reject:          item.Reject,
			RefundProcess:   item.RefundProcess,
			Received:        item.Received,
		})
	}

	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

var (
	textColumns = map[string]string{
		"productName":  "product_name",
		"orderId":      "order_id",
		"productCode":  "product_code",
		"userId":       "user_id",
		"platform":     "platform",
		"reviewerName": "reviewer_name",
		"paidBy":       "paid_by",
	}
	dateColumns = map[string]string{
		"orderedOn":     "ordered_on",
		"deliveredOn":   "delivered_on",
		"reviewedOn":    "reviewed_on",
		"returnCloseOn": "return_close_on",
	}
	amountColumns = map[string]string{
		"amountPaid":   "amount_paid",
		"refundAmount": "refund_amount",
	}
	flagColumns = map[string]string{
		"reviewLive":      "review_live",
		"reject":          "reject",
		"refundSubmitted": "refund_submitted",
		"refundProcess":   "refund_process",
		"received":        "received",
	}
)

// itemColumns maps a partial item onto column updates, normalising text the
// same way Create does. Unknown keys, the id and the owner are ignored.
func itemColumns(req dto.UpdateItemRequest) (map[string]interface{}, error) {
	fields := make(map[string]interface{})
	for key, value := range req {
		if column, ok := textColumns[key]; ok {
			text, err := cast.ToStringE(value)
			if err != nil {
				return nil, fmt.Errorf("%w: %s must be text", ErrInvalidInput, key)
			}
			fields[column] = capitalizeFirst(text)
			continue
		}
		if column, ok := dateColumns[key]; ok {
			text, err := cast.ToStringE(value)
			if err != nil {
				return nil, fmt.Errorf("%w: %s must be text", ErrInvalidInput, key)
			}
			fields[column] = strings.TrimSpace(text)
			continue
		}
		if column, ok := amountColumns[key]; ok {
			amount, err := toAmount(value)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrInvalidInput, key, err)
			}
			fields[column] = amount
			continue
		}
		if column, ok := flagColumns[key]; ok {
			flag, err := cast.ToBoolE(value)
			if err != nil {
				return nil, fmt.Errorf("%w: %s must be a boolean", ErrInvalidInput, key)
			}
			fields[column] = flag
			continue
		}
		if key == "serialNumber" {
			if value == nil || value == "" {
				fields["serial_number"] = nil
				continue
			}
			n, err := cast.ToIntE(value)
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("%w: serialNumber must be a positive number", ErrInvalidInput)
			}
			fields["serial_number"] = n
		}
	}
	return fields, nil
}

func toAmount(value interface{}) (decimal.Decimal, error) {
	text, err := cast.ToStringE(value)
	if err != nil {
		return decimal.Zero, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, err
	}
	if amount.IsNegative() {
		return decimal.Zero, errors.New("must not be negative")
	}
	return amount, nil
}
