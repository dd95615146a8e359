package models

import "github.com/tradeerp/backend/internal/domain/partner"

// ClientModel is the persistence model for the Client entity
type ClientModel struct {
	BaseModel
	Name    string `gorm:"type:varchar(200);not null"`
	Country string `gorm:"type:varchar(100);index"`
	Email   string `gorm:"type:varchar(200)"`
	Phone   string `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client entity
func (m *ClientModel) ToDomain() *partner.Client {
	return &partner.Client{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Country:    m.Country,
		Email:      m.Email,
		Phone:      m.Phone,
	}
}

// FromDomain populates the persistence model from a domain Client entity
func (m *ClientModel) FromDomain(e *partner.Client) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.Name = e.Name
	m.Country = e.Country
	m.Email = e.Email
	m.Phone = e.Phone
}

// ClientModelFromDomain creates a new persistence model from a domain Client entity
func ClientModelFromDomain(e *partner.Client) *ClientModel {
	m := &ClientModel{}
	m.FromDomain(e)
	return m
}
