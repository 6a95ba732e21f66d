package booking

import "fmt"

// ReceiptError reports booking data that cannot be turned into a receipt.
type ReceiptError struct {
	Code    string
	Message string
}

func (e *ReceiptError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewReceiptError(msg string) error {
	return &ReceiptError{
		Code:    "receiptError",
		Message: msg,
	}
}
