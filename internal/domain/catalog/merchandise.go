package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tradeerp/backend/internal/domain/shared"
)

// Default tax attributes applied when a catalog record leaves them blank.
var (
	DefaultVAT = decimal.RequireFromString("1.13")
	DefaultETR = decimal.RequireFromString("0.13")
)

// Merchandise is a catalog entry identified by its serial number.
// Invoice and purchase order lines refer to merchandise by serial number
// through their item name.
type Merchandise struct {
	shared.BaseEntity
	SerialNumber     string
	SerialNumberLong string
	DescriptionEn    string
	DescriptionCn    string
	Weight           decimal.Decimal
	// VAT is a multiplier, 1.13 means 13% value added tax
	VAT decimal.Decimal
	// ETR is the export tax rebate rate, 0.13 means 13%
	ETR    decimal.Decimal
	UnitEn string
	UnitCn string
}

// NewMerchandise creates a merchandise record with default tax attributes
func NewMerchandise(serialNumber string) (*Merchandise, error) {
	serialNumber = strings.TrimSpace(serialNumber)
	if serialNumber == "" {
		return nil, shared.ErrInvalidInput.WithMessage("serial number cannot be empty")
	}
	return &Merchandise{
		BaseEntity:   shared.NewBaseEntity(),
		SerialNumber: serialNumber,
		VAT:          DefaultVAT,
		ETR:          DefaultETR,
	}, nil
}

// TaxInfo is the part of a merchandise record pricing depends on
type TaxInfo struct {
	SerialNumber string          `json:"serialNumber"`
	VAT          decimal.Decimal `json:"VAT"`
	ETR          decimal.Decimal `json:"ETR"`
	UnitEn       string          `json:"unit_en"`
	UnitCn       string          `json:"unit_cn"`
}

// TaxInfo returns the tax attributes with absent or zero values replaced by defaults
func (m *Merchandise) TaxInfo() TaxInfo {
	return TaxInfo{
		SerialNumber: m.SerialNumber,
		VAT:          orDefault(m.VAT, DefaultVAT),
		ETR:          orDefault(m.ETR, DefaultETR),
		UnitEn:       m.UnitEn,
		UnitCn:       m.UnitCn,
	}
}

// OverrideTaxInfo builds tax info from caller supplied rates
func OverrideTaxInfo(serialNumber string, vat, etr decimal.Decimal) TaxInfo {
	return TaxInfo{SerialNumber: serialNumber, VAT: vat, ETR: etr}
}

func orDefault(v, def decimal.Decimal) decimal.Decimal {
	if v.IsZero() {
		return def
	}
	return v
}
