package payments

import (
	"testing"

	"github.com/emretknc/driveaway/internal/models"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCheckoutURL(t *testing.T) {
	p := NewProvider("https://pay.example.com/")
	booking := &models.Booking{
		ID:         primitive.NewObjectID(),
		TotalPrice: 210.6,
	}

	got := p.CheckoutURL(booking)
	assert.Equal(t, "https://pay.example.com/pay/"+booking.ID.Hex()+"?amount=210.60", got)
}
