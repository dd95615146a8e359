package catalog

import "context"

// MerchandiseRepository defines the read operations pricing needs from the catalog.
// Every method ignores removed records.
type MerchandiseRepository interface {
	// FindActiveBySerialNumber finds a merchandise by exact serial number
	FindActiveBySerialNumber(ctx context.Context, serialNumber string) (*Merchandise, error)

	// FindActiveBySerialNumbers finds all merchandise matching the given serial numbers.
	// Missing serial numbers are simply absent from the result.
	FindActiveBySerialNumbers(ctx context.Context, serialNumbers []string) ([]Merchandise, error)

	// Search finds merchandise whose serial number starts with keyword, ordered by serial number
	Search(ctx context.Context, keyword string, limit int) ([]Merchandise, error)
}
