// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Structure:
// - base.go: BaseModel shared by every table with soft delete
// - catalog.go: merchandise
// - partner.go: clients
// - trade.go: invoices and purchase orders with their lines and links
package models
