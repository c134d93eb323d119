package errors

var (
	ErrInvalidFeeInput = &DomainError{
		Code:    "INVALID_FEE_INPUT",
		Message: "calculation rejected",
	}
	ErrEmptyBatch = &DomainError{
		Code:    "EMPTY_BATCH",
		Message: "batch rejected",
	}
	ErrRecordNotFound = &DomainError{
		Code:    "FEE_RECORD_NOT_FOUND",
		Message: "fee record not found",
	}
	ErrPersistence = &DomainError{
		Code:    "PERSISTENCE_FAILED",
		Message: "failed to store fee record",
	}
	ErrPaymentFailed = &DomainError{
		Code:    "PAYMENT_FAILED",
		Message: "payment provider rejected the request",
	}
	ErrInvalidCredentials = &DomainError{
		Code:    "INVALID_CREDENTIALS",
		Message: "invalid credentials",
	}
	ErrInvalidToken = &DomainError{
		Code:    "INVALID_TOKEN",
		Message: "invalid token",
	}
)
