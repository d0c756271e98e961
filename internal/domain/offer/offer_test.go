package offer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusIsDecision(t *testing.T) {
	assert.True(t, StatusAccepted.IsDecision())
	assert.True(t, StatusDeclined.IsDecision())
	assert.False(t, StatusPending.IsDecision())
	assert.False(t, Status("cancelled").IsDecision())
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, StatusAccepted.IsTerminal())
	assert.True(t, StatusDeclined.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
}

func TestOfferIsPending(t *testing.T) {
	o := &Offer{Status: StatusPending}
	assert.True(t, o.IsPending())

	o.Accept()
	assert.False(t, o.IsPending())
	assert.Equal(t, StatusAccepted, o.Status)

	o = &Offer{Status: StatusPending}
	o.Decline()
	assert.Equal(t, StatusDeclined, o.Status)
}

func TestOfferIsSelfOffer(t *testing.T) {
	o := &Offer{BuyerID: "user-1", SellerID: "user-1"}
	assert.True(t, o.IsSelfOffer())

	o.SellerID = "user-2"
	assert.False(t, o.IsSelfOffer())
}
