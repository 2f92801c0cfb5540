package db_models

type Country string

const (
	CountryUAE   Country = "UAE"
	CountryIndia Country = "India"
)

type SubscriptionStatus string

const (
	SubStatusTrialing SubscriptionStatus = "trialing"
	SubStatusActive   SubscriptionStatus = "active"
	SubStatusPastDue  SubscriptionStatus = "past_due"
	SubStatusCanceled SubscriptionStatus = "canceled"
)

// Subscription is embedded on User; CurrentPeriodEnd is unix seconds and
// doubles as the trial deadline while Status is "trialing".
type Subscription struct {
	Plan             string             `gorm:"default:basic" json:"plan"`
	Status           SubscriptionStatus `gorm:"default:trialing" json:"status"`
	CurrentPeriodEnd int64              `json:"currentPeriodEnd"`

	StripeCustomerID     *string `json:"-"`
	StripeSubscriptionID *string `json:"-"`
	RazorpayCustomerID   *string `json:"-"`
}

// Usage tracks per-resource counters, one per gated resource type.
type Usage struct {
	GroupsCreated int64 `gorm:"default:0" json:"groupsCreated"`
	MembersAdded  int64 `gorm:"default:0" json:"membersAdded"`
	TotalExpenses int64 `gorm:"default:0" json:"totalExpenses"`
	LastReset     int64 `json:"lastReset"`
}

type User struct {
	BaseModel
	Name         string  `gorm:"size:50;not null" json:"name"`
	Email        string  `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string  `json:"-"`
	Avatar       string  `json:"avatar"`
	Currency     string  `gorm:"size:3;default:USD" json:"currency"`
	Country      Country `gorm:"default:UAE" json:"country"`
	Role         string  `gorm:"default:user" json:"-"`
	IsVerified   bool    `gorm:"default:false" json:"isVerified"`

	Subscription Subscription `gorm:"embedded;embeddedPrefix:subscription_" json:"subscription"`
	Usage        Usage        `gorm:"embedded;embeddedPrefix:usage_" json:"usage"`
}
