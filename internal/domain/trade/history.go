package trade

import "github.com/google/uuid"

// PurchaseCandidate is one (invoice, related purchase order) pair of a sales history
type PurchaseCandidate struct {
	InvoiceID       uuid.UUID
	InvoiceNumber   string
	PurchaseOrderID uuid.UUID
}

// PurchaseCandidates flattens invoices into the order purchase orders must be
// tried in: invoices as given (newest first), then each invoice's related
// purchase orders in stored order.
func PurchaseCandidates(invoices []Invoice) []PurchaseCandidate {
	var out []PurchaseCandidate
	for _, inv := range invoices {
		for _, poID := range inv.RelatedPurchaseOrderIDs {
			out = append(out, PurchaseCandidate{
				InvoiceID:       inv.ID,
				InvoiceNumber:   inv.Number,
				PurchaseOrderID: poID,
			})
		}
	}
	return out
}
