package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var receiptFilePattern = regexp.MustCompile(`^receipt_[A-Za-z0-9\-_]+\.pdf$`)

// ReceiptNumber builds RCP-<epoch millis>-<last four characters of the customer id>
func ReceiptNumber(customerID uuid.UUID, at time.Time) string {
	id := customerID.String()
	return fmt.Sprintf("RCP-%d-%s", at.UnixMilli(), strings.ToUpper(id[len(id)-4:]))
}

// ReceiptFilename is the on-disk name of a rendered receipt
func ReceiptFilename(receiptNumber string, at time.Time) string {
	return fmt.Sprintf("receipt_%s_%d.pdf", receiptNumber, at.UnixMilli())
}

// IsReceiptFilename reports whether name is safe to serve from the receipts directory
func IsReceiptFilename(name string) bool {
	return receiptFilePattern.MatchString(name)
}
