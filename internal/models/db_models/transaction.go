package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type TransactionType string

const (
	TxnTypeSubscription  TransactionType = "subscription"
	TxnTypeSettlementFee TransactionType = "settlement_fee"
	TxnTypePayout        TransactionType = "payout"
)

type TransactionStatus string

const (
	TxnStatusPending   TransactionStatus = "pending"
	TxnStatusCompleted TransactionStatus = "completed"
	TxnStatusFailed    TransactionStatus = "failed"
	TxnStatusRefunded  TransactionStatus = "refunded"
)

type PaymentGateway string

const (
	GatewayStripe   PaymentGateway = "stripe"
	GatewayRazorpay PaymentGateway = "razorpay"
	GatewayManual   PaymentGateway = "manual"
)

// Transaction is an append-only ledger row; nothing but Status is ever
// mutated after creation.
type Transaction struct {
	BaseModel
	Type        TransactionType `gorm:"index;not null" json:"type"`
	UserID      uuid.UUID       `gorm:"type:uuid;index;not null" json:"userId"`
	Amount      float64         `gorm:"not null" json:"amount"`
	Currency    string          `gorm:"size:3;not null" json:"currency"`
	Fee         float64         `gorm:"default:0" json:"fee"`
	NetAmount   float64         `gorm:"not null" json:"netAmount"`
	Description string          `json:"description,omitempty"`

	// Gateway fields stay nil in trial mode.
	Gateway          *PaymentGateway `gorm:"index" json:"gateway,omitempty"`
	GatewayTxnID     *string         `gorm:"index" json:"gatewayTransactionId,omitempty"`
	PaymentMethodRef string          `json:"-"`

	Status   TransactionStatus `gorm:"index;default:pending" json:"status"`
	Metadata datatypes.JSON    `gorm:"type:jsonb;default:'{}'" json:"metadata"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
