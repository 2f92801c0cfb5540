package request_models

type ParticipantInput struct {
	UserID string  `json:"userId" binding:"required,uuid"`
	Share  float64 `json:"share" binding:"min=0"`
}

type CreateExpenseRequest struct {
	Description  string             `json:"description" binding:"required"`
	Amount       float64            `json:"amount" binding:"required"`
	Currency     string             `json:"currency" binding:"omitempty,len=3"`
	Category     string             `json:"category"`
	Date         int64              `json:"date"`
	GroupID      string             `json:"group"`
	SplitType    string             `json:"splitType" binding:"omitempty,oneof=equal custom percentage"`
	Participants []ParticipantInput `json:"participants"`
}

// UpdateExpenseRequest carries a partial edit; zero-valued fields keep
// their current value. Sending participants replaces the split entirely.
type UpdateExpenseRequest struct {
	Description  string             `json:"description"`
	Amount       *float64           `json:"amount"`
	Currency     string             `json:"currency" binding:"omitempty,len=3"`
	Category     string             `json:"category"`
	Date         int64              `json:"date"`
	SplitType    string             `json:"splitType" binding:"omitempty,oneof=equal custom percentage"`
	Participants []ParticipantInput `json:"participants"`
}

type SettleExpenseRequest struct {
	ParticipantID string `json:"participantId" binding:"required,uuid"`
	// Optional; when present it has to match the participant's share.
	Amount *float64 `json:"amount"`
}
