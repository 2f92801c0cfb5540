package db_models

import (
	"github.com/google/uuid"
)

type ExpenseCategory string

const (
	CategoryFood          ExpenseCategory = "food"
	CategoryTransport     ExpenseCategory = "transport"
	CategoryShopping      ExpenseCategory = "shopping"
	CategoryEntertainment ExpenseCategory = "entertainment"
	CategoryBills         ExpenseCategory = "bills"
	CategoryHealthcare    ExpenseCategory = "healthcare"
	CategoryEducation     ExpenseCategory = "education"
	CategoryOther         ExpenseCategory = "other"
)

func ValidCategory(c ExpenseCategory) bool {
	switch c {
	case CategoryFood, CategoryTransport, CategoryShopping, CategoryEntertainment,
		CategoryBills, CategoryHealthcare, CategoryEducation, CategoryOther:
		return true
	}
	return false
}

type SplitType string

const (
	SplitEqual      SplitType = "equal"
	SplitCustom     SplitType = "custom"
	SplitPercentage SplitType = "percentage"
)

type Expense struct {
	BaseModel
	Description string          `gorm:"size:100;not null" json:"description"`
	Amount      float64         `gorm:"not null" json:"amount"`
	Currency    string          `gorm:"size:3;default:USD" json:"currency"`
	Category    ExpenseCategory `gorm:"default:other" json:"category"`
	Date        int64           `json:"date"`
	PaidBy      uuid.UUID       `gorm:"type:uuid;index;not null" json:"paidBy"`
	GroupID     *uuid.UUID      `gorm:"type:uuid;index" json:"groupId,omitempty"`
	SplitType   SplitType       `gorm:"default:equal" json:"splitType"`
	Receipt     string          `json:"receipt,omitempty"`
	IsSettled   bool            `gorm:"default:false" json:"isSettled"`

	Participants []ExpenseParticipant `gorm:"foreignKey:ExpenseID" json:"participants"`

	Payer User   `gorm:"foreignKey:PaidBy" json:"-"`
	Group *Group `gorm:"foreignKey:GroupID" json:"-"`
}

// ExpenseParticipant is a child row with a stable id. Paid flips true
// exactly once, through the settlement flow.
type ExpenseParticipant struct {
	BaseModel
	ExpenseID uuid.UUID `gorm:"type:uuid;index;not null" json:"expenseId"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	Share     float64   `gorm:"not null" json:"share"`
	Paid      bool      `gorm:"default:false" json:"paid"`
	SettledAt *int64    `json:"settledAt,omitempty"`
}
