package services

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"splitly/internal/models/db_models"
	"splitly/internal/models/request_models"
	"splitly/internal/models/response_models"
	"splitly/internal/repositories"
	"splitly/pkg/utils"
)

// Subscription pricing per country. Gateways are not wired yet, so the
// checkout path records a pending ledger row and answers in trial mode.
var subscriptionPricing = map[db_models.Country]struct {
	Amount   float64
	Currency string
}{
	db_models.CountryUAE:   {Amount: 35.00, Currency: "AED"},
	db_models.CountryIndia: {Amount: 249.00, Currency: "INR"},
}

type PaymentServiceInterface interface {
	CreateSubscription(ctx context.Context, userID uuid.UUID, req request_models.CreateSubscriptionRequest) (*response_models.SubscribeResponse, error)
	HandleWebhook(ctx context.Context, payload []byte) error
	VerifyPayment(ctx context.Context, userID uuid.UUID, req request_models.VerifyPaymentRequest) (*response_models.SubscribeResponse, error)
}

type PaymentService struct {
	txnRepo  repositories.TransactionRepository
	userRepo repositories.UserRepository
}

func NewPaymentService(txnRepo repositories.TransactionRepository, userRepo repositories.UserRepository) PaymentServiceInterface {
	return &PaymentService{
		txnRepo:  txnRepo,
		userRepo: userRepo,
	}
}

func (p *PaymentService) CreateSubscription(ctx context.Context, userID uuid.UUID, req request_models.CreateSubscriptionRequest) (*response_models.SubscribeResponse, error) {
	user, err := p.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrAccountNotFound
	}

	price, ok := subscriptionPricing[db_models.Country(req.Country)]
	if !ok {
		price = subscriptionPricing[db_models.CountryUAE]
	}

	metadata, err := json.Marshal(map[string]interface{}{
		"plan":    req.Plan,
		"country": req.Country,
		"trial":   true,
	})
	if err != nil {
		return nil, err
	}

	txn := &db_models.Transaction{
		Type:        db_models.TxnTypeSubscription,
		UserID:      userID,
		Amount:      price.Amount,
		Currency:    price.Currency,
		NetAmount:   price.Amount,
		Description: "Subscription checkout (trial mode)",
		Status:      db_models.TxnStatusPending,
		Metadata:    datatypes.JSON(metadata),
	}
	if err := p.txnRepo.Insert(ctx, txn); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return &response_models.SubscribeResponse{
		Message: "Free trial active! Payment integration coming soon.",
		Trial:   true,
		Country: req.Country,
		Plan:    req.Plan,
	}, nil
}

func (p *PaymentService) HandleWebhook(ctx context.Context, payload []byte) error {
	// Gateway webhooks are acknowledged while the integration runs in
	// trial mode; a payload naming one of our ledger rows still moves it.
	var event struct {
		TransactionID string `json:"transaction_id"`
		Status        string `json:"status"`
	}
	if err := json.Unmarshal(payload, &event); err != nil || event.TransactionID == "" {
		log.Printf("Payment webhook received in trial mode (%d bytes)", len(payload))
		return nil
	}

	txnID, err := uuid.Parse(event.TransactionID)
	if err != nil {
		log.Printf("Payment webhook carried a malformed transaction id %q", event.TransactionID)
		return nil
	}

	status := db_models.TransactionStatus(event.Status)
	switch status {
	case db_models.TxnStatusCompleted, db_models.TxnStatusFailed, db_models.TxnStatusRefunded:
	default:
		log.Printf("Payment webhook carried an unknown status %q for %s", event.Status, txnID)
		return nil
	}

	if err := p.txnRepo.UpdateStatus(ctx, txnID, status); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (p *PaymentService) VerifyPayment(ctx context.Context, userID uuid.UUID, req request_models.VerifyPaymentRequest) (*response_models.SubscribeResponse, error) {
	log.Printf("Payment verification simulated for user %s (order %s)", userID, req.OrderID)
	return &response_models.SubscribeResponse{
		Message: "Payment verification simulated for trial period",
		Trial:   true,
	}, nil
}
