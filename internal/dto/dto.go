package dto

import (
	"itemtracker/internal/countdown"
	"itemtracker/internal/lifecycle"
	"itemtracker/internal/model"

	"github.com/shopspring/decimal"
)

type CreateItemRequest struct {
	ProductName   string          `json:"productName"`
	OrderID       string          `json:"orderId"`
	ProductCode   string          `json:"productCode"`
	UserID        string          `json:"userId"`
	Platform      string          `json:"platform"`
	ReviewerName  string          `json:"reviewerName"`
	PaidBy        string          `json:"paidBy"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	RefundAmount  decimal.Decimal `json:"refundAmount"`
	OrderedOn     string          `json:"orderedOn"`
	DeliveredOn   string          `json:"deliveredOn"`
	ReviewedOn    string          `json:"reviewedOn"`
	ReturnCloseOn string          `json:"returnCloseOn"`
	SerialNumber  *int            `json:"serialNumber"`
}

// UpdateItemRequest is a partial item keyed by JSON field name.
type UpdateItemRequest map[string]interface{}

type CreateItemResponse struct {
	ID string `json:"id"`
}

type BoardQuery struct {
	Page    int
	PerPage int
	Stage   string
}

type BoardRow struct {
	Item          *model.Item       `json:"item"`
	SerialNumber  int               `json:"serialNumber"`
	Stage         lifecycle.Stage   `json:"stage"`
	Tone          string            `json:"tone"`
	OrderAge      countdown.Display `json:"orderAge"`
	ReturnClosing countdown.Display `json:"returnClosing"`
	DeliveredOn   string            `json:"deliveredOn"`
	ReviewedOn    string            `json:"reviewedOn"`
}

type Board struct {
	Rows    []*BoardRow             `json:"rows"`
	Total   int                     `json:"total"`
	Page    int                     `json:"page"`
	PerPage int                     `json:"perPage"`
	Stages  map[lifecycle.Stage]int `json:"stages"`
}

type LookupRequest struct {
	Name string `json:"name"`
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token     string `json:"token"`
	Email     string `json:"email"`
	ExpiresAt int64  `json:"expiresAt"`
}

type CurrentUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type LookupOptions struct {
	UserIDs   []string `json:"userIds"`
	Platforms []string `json:"platforms"`
	Reviewers []string `json:"reviewers"`
	PaidBy    []string `json:"paidBy"`
}
