package partner

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/tradeerp/backend/internal/domain/shared"
)

// Client is a buyer. Its country is the region key used when the client has
// no purchase history of its own.
type Client struct {
	shared.BaseEntity
	Name    string
	Country string
	Email   string
	Phone   string
}

// NewClient creates a client
func NewClient(name, country string) (*Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.ErrInvalidInput.WithMessage("client name cannot be empty")
	}
	return &Client{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Country:    strings.TrimSpace(country),
	}, nil
}

// Region returns the client's region key and whether one is set
func (c *Client) Region() (string, bool) {
	country := strings.TrimSpace(c.Country)
	return country, country != ""
}

// ClientRepository defines the client reads used by pricing
type ClientRepository interface {
	// FindByID finds a client by ID, removed or not
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)

	// FindActiveIDsByCountry returns the IDs of active clients in country,
	// leaving out excludeID
	FindActiveIDsByCountry(ctx context.Context, country string, excludeID uuid.UUID) ([]uuid.UUID, error)
}
