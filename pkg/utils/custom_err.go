package utils

import "errors"

var (
	// Account / auth
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidOtpToken    = errors.New("invalid or expired verification code")
	ErrAlreadyVerified    = errors.New("email already verified")

	// Groups / members
	ErrGroupNotFound       = errors.New("group not found")
	ErrNotGroupAdmin       = errors.New("only the group admin can do this")
	ErrMemberNotFound      = errors.New("member not found in group")
	ErrDuplicateMember     = errors.New("member already exists in group")
	ErrGroupLimitExceeded  = errors.New("group limit reached for current plan")
	ErrMemberLimitExceeded = errors.New("member limit reached for current plan")

	// Subscription gate
	ErrTrialExpired        = errors.New("trial period ended")
	ErrSubscriptionExpired = errors.New("subscription period ended")
	ErrSubscriptionBlocked = errors.New("subscription does not allow this operation")

	// Expenses / settlement
	ErrExpenseNotFound          = errors.New("expense not found")
	ErrParticipantNotFound      = errors.New("participant not found in expense")
	ErrInvalidAmount            = errors.New("amount must be greater than zero")
	ErrInvalidDescription       = errors.New("description is required")
	ErrInvalidShareSum          = errors.New("participant shares must add up to the expense amount")
	ErrNotAuthorizedForGroup    = errors.New("not a member of this group")
	ErrAlreadySettled           = errors.New("participant share already settled")
	ErrSettlementAmountMismatch = errors.New("settlement amount does not match participant share")
	ErrFeeProcessingFailed      = errors.New("failed to record settlement fee")

	// Infrastructure
	ErrDatabaseError = errors.New("database error")
)
