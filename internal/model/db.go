package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ReturnCloseNoReturn  = "No Return"
	ReturnCloseUndecided = "-"
)

type Item struct {
	ID              string          `gorm:"primaryKey;size:64;not null" json:"id"`
	Email           string          `gorm:"size:255;index" json:"email"` // owner
	ProductName     string          `gorm:"size:255" json:"productName"`
	OrderID         string          `gorm:"size:128" json:"orderId"`
	ProductCode     string          `gorm:"size:128" json:"productCode"`
	UserID          string          `gorm:"size:128" json:"userId"`
	Platform        string          `gorm:"size:128" json:"platform"`
	ReviewerName    string          `gorm:"size:128" json:"reviewerName"`
	PaidBy          string          `gorm:"size:128" json:"paidBy"`
	AmountPaid      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"amountPaid"`
	RefundAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"refundAmount"`
	OrderedOn       string          `gorm:"size:10" json:"orderedOn"`     // YYYY-MM-DD
	DeliveredOn     string          `gorm:"size:10" json:"deliveredOn"`   // YYYY-MM-DD
	ReviewedOn      string          `gorm:"size:10" json:"reviewedOn"`    // YYYY-MM-DD
	ReturnCloseOn   string          `gorm:"size:32" json:"returnCloseOn"` // YYYY-MM-DD, "No Return" or "-"
	ReviewLive      bool            `gorm:"not null;default:false" json:"reviewLive"`
	Reject          bool            `gorm:"not null;default:false" json:"reject"`
	RefundSubmitted bool            `gorm:"not null;default:false" json:"refundSubmitted"`
	RefundProcess   bool            `gorm:"not null;default:false" json:"refundProcess"`
	Received        bool            `gorm:"not null;default:false" json:"received"`
	SerialNumber    *int            `json:"serialNumber,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type LookupKind string

const (
	LookupUser     LookupKind = "user"
	LookupPlatform LookupKind = "platform"
	LookupReviewer LookupKind = "reviewer"
)

func (k LookupKind) Valid() bool {
	switch k {
	case LookupUser, LookupPlatform, LookupReviewer:
		return true
	}
	return false
}

type Lookup struct {
	ID        string     `gorm:"primaryKey;size:64;not null" json:"id"`
	Kind      LookupKind `gorm:"size:16;not null;uniqueIndex:idx_lookup_kind_name" json:"kind"`
	Name      string     `gorm:"size:128;not null;uniqueIndex:idx_lookup_kind_name" json:"name"`
	CreatedAt time.Time  `json:"createdAt"`
}

type Account struct {
	ID           string `gorm:"primaryKey;size:64;not null"`
	Username     string `gorm:"size:64;uniqueIndex;not null"`
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	CreatedAt    time.Time
}
