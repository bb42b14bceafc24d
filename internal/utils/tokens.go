package utils

import (
	"fmt"
	"time"
)

// Generated identifiers for records the client submitted without one. All
// combine the current time with a random suffix so two devices generating
// offline cannot collide in practice.

// GenerateAccountNumber returns a customer account number of the form
// ACC-<digits>-<alnum>.
func GenerateAccountNumber() string {
	return fmt.Sprintf("ACC-%d-%s", time.Now().UnixMilli(), randomAlnum(6))
}

// GenerateSKU returns a product SKU of the form SKU-<digits>-<alnum>.
func GenerateSKU() string {
	return fmt.Sprintf("SKU-%d-%s", time.Now().UnixMilli(), randomAlnum(4))
}

// GeneratePIN returns a 4-digit employee PIN.
func GeneratePIN() string {
	return randomDigits(4)
}

// GenerateQRToken returns an employee QR badge token.
func GenerateQRToken() string {
	return fmt.Sprintf("QR-%d-%s", time.Now().UnixMilli(), randomAlnum(8))
}
