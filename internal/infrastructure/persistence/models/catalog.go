package models

import (
	"github.com/shopspring/decimal"
	"github.com/tradeerp/backend/internal/domain/catalog"
)

// MerchandiseModel is the persistence model for the Merchandise entity
type MerchandiseModel struct {
	BaseModel
	SerialNumber     string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	SerialNumberLong string          `gorm:"type:varchar(200)"`
	DescriptionEn    string          `gorm:"type:text"`
	DescriptionCn    string          `gorm:"type:text"`
	Weight           decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	VAT              decimal.Decimal `gorm:"column:vat;type:decimal(18,4);not null;default:0"`
	ETR              decimal.Decimal `gorm:"column:etr;type:decimal(18,4);not null;default:0"`
	UnitEn           string          `gorm:"type:varchar(20)"`
	UnitCn           string          `gorm:"type:varchar(20)"`
}

// TableName returns the table name for GORM
func (MerchandiseModel) TableName() string {
	return "merchandises"
}

// ToDomain converts the persistence model to a domain Merchandise entity
func (m *MerchandiseModel) ToDomain() *catalog.Merchandise {
	return &catalog.Merchandise{
		BaseEntity:       m.BaseModel.ToDomain(),
		SerialNumber:     m.SerialNumber,
		SerialNumberLong: m.SerialNumberLong,
		DescriptionEn:    m.DescriptionEn,
		DescriptionCn:    m.DescriptionCn,
		Weight:           m.Weight,
		VAT:              m.VAT,
		ETR:              m.ETR,
		UnitEn:           m.UnitEn,
		UnitCn:           m.UnitCn,
	}
}

// FromDomain populates the persistence model from a domain Merchandise entity
func (m *MerchandiseModel) FromDomain(e *catalog.Merchandise) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.SerialNumber = e.SerialNumber
	m.SerialNumberLong = e.SerialNumberLong
	m.DescriptionEn = e.DescriptionEn
	m.DescriptionCn = e.DescriptionCn
	m.Weight = e.Weight
	m.VAT = e.VAT
	m.ETR = e.ETR
	m.UnitEn = e.UnitEn
	m.UnitCn = e.UnitCn
}

// MerchandiseModelFromDomain creates a new persistence model from a domain Merchandise entity
func MerchandiseModelFromDomain(e *catalog.Merchandise) *MerchandiseModel {
	m := &MerchandiseModel{}
	m.FromDomain(e)
	return m
}
