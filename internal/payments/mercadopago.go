package payments

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/fadecrew/barbershop-api/internal/models"
)

// Client creates Mercado Pago checkout preferences for bookings. The
// booking itself never depends on payment success; a preference is an
// optional convenience offered alongside the confirmation.
type Client struct {
	prefs preference.Client
}

// New returns nil when no access token is configured.
func New(accessToken string) (*Client, error) {
	if accessToken == "" {
		return nil, nil
	}

	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &Client{prefs: preference.NewClient(cfg)}, nil
}

// CreateBookingPreference registers a checkout for the booking's
// snapshotted total and returns the payment URL.
func (c *Client) CreateBookingPreference(
	ctx context.Context,
	b *models.Booking,
	shopName string,
) (string, error) {

	req := preference.Request{
		ExternalReference: b.Code,
		Items: []preference.ItemRequest{
			{
				Title:     fmt.Sprintf("%s booking %s", shopName, b.Code),
				Quantity:  1,
				UnitPrice: float64(b.TotalPriceCents) / 100,
			},
		},
	}

	pref, err := c.prefs.Create(ctx, req)
	if err != nil {
		return "", fmt.Errorf("create preference: %w", err)
	}

	return pref.InitPoint, nil
}
