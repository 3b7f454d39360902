// Package payments builds the hosted payment URLs checkout redirects to.
// Payment capture and the resulting booking status transitions happen on
// the provider side, outside this service.
package payments

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/emretknc/driveaway/internal/models"
)

type Provider struct {
	baseURL string
}

func NewProvider(baseURL string) *Provider {
	return &Provider{
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// CheckoutURL returns the hosted payment page for a pending booking. The
// amount is carried for display only; the provider charges what the booking
// record says.
func (p *Provider) CheckoutURL(booking *models.Booking) string {
	q := url.Values{}
	q.Set("amount", fmt.Sprintf("%.2f", booking.TotalPrice))
	return fmt.Sprintf("%s/pay/%s?%s", p.baseURL, booking.ID.Hex(), q.Encode())
}
