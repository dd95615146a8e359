package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradeerp/backend/internal/domain/catalog"
)

// MerchandiseResponse represents a merchandise record in API responses
type MerchandiseResponse struct {
	ID               uuid.UUID       `json:"id"`
	SerialNumber     string          `json:"serialNumber"`
	SerialNumberLong string          `json:"serialNumberLong,omitempty"`
	DescriptionEn    string          `json:"description_en"`
	DescriptionCn    string          `json:"description_cn"`
	Weight           decimal.Decimal `json:"weight"`
	VAT              decimal.Decimal `json:"VAT"`
	ETR              decimal.Decimal `json:"ETR"`
	UnitEn           string          `json:"unit_en"`
	UnitCn           string          `json:"unit_cn"`
}

// ToMerchandiseResponse converts a domain merchandise to a response.
// Tax rates are reported with defaults applied.
func ToMerchandiseResponse(m *catalog.Merchandise) MerchandiseResponse {
	info := m.TaxInfo()
	return MerchandiseResponse{
		ID:               m.ID,
		SerialNumber:     m.SerialNumber,
		SerialNumberLong: m.SerialNumberLong,
		DescriptionEn:    m.DescriptionEn,
		DescriptionCn:    m.DescriptionCn,
		Weight:           m.Weight,
		VAT:              info.VAT,
		ETR:              info.ETR,
		UnitEn:           m.UnitEn,
		UnitCn:           m.UnitCn,
	}
}
