package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSessionType(t *testing.T) {
	st, err := ParseSessionType(" Discovery ")
	require.NoError(t, err)
	assert.Equal(t, SessionDiscovery, st)

	_, err = ParseSessionType("group")
	assert.Error(t, err)
}

func TestDiscoveryCommentDefaults(t *testing.T) {
	d, err := DecodeSessionDetails(SessionDiscovery, nil, "")
	require.NoError(t, err)

	comment, err := d.Comment()
	require.NoError(t, err)
	assert.Contains(t, comment, `"hasCrystalBowls":"Not specified"`)
	assert.Contains(t, comment, `"additionalInfo":"Not specified"`)

	e := Enquiry{SessionType: SessionDiscovery, Comment: comment}
	answers, ok := e.DiscoveryAnswers()
	require.True(t, ok)
	assert.Equal(t, NotSpecified, answers.ExperienceLevel)
}

func TestDiscoveryCommentUsesPayloadAndFreeText(t *testing.T) {
	raw := json.RawMessage(`{"hasCrystalBowls":"Yes","intentions":"sleep"}`)
	d, err := DecodeSessionDetails(SessionDiscovery, raw, "first time here")
	require.NoError(t, err)

	comment, err := d.Comment()
	require.NoError(t, err)

	var got DiscoveryDetails
	require.NoError(t, json.Unmarshal([]byte(comment), &got))
	assert.Equal(t, DiscoveryDetails{
		HasCrystalBowls: "Yes",
		ExperienceLevel: NotSpecified,
		Intentions:      "sleep",
		AdditionalInfo:  "first time here",
	}, got)
}

func TestPlainTextComments(t *testing.T) {
	p, err := DecodeSessionDetails(SessionPrivate, json.RawMessage(`{"focus":"anxiety"}`), "evenings preferred")
	require.NoError(t, err)
	c, err := p.Comment()
	require.NoError(t, err)
	assert.Equal(t, "Focus: anxiety\nevenings preferred", c)

	corp, err := DecodeSessionDetails(SessionCorporate, json.RawMessage(`{"organisation":"Acme","groupSize":12}`), "")
	require.NoError(t, err)
	require.NoError(t, corp.Validate())
	c, err = corp.Comment()
	require.NoError(t, err)
	assert.Equal(t, "Organisation: Acme\nGroup size: 12", c)

	e := Enquiry{SessionType: SessionCorporate, Comment: c}
	_, ok := e.DiscoveryAnswers()
	assert.False(t, ok)
}

func TestCorporateRequiresOrganisation(t *testing.T) {
	d, err := DecodeSessionDetails(SessionCorporate, nil, "hello")
	require.NoError(t, err)
	assert.Error(t, d.Validate())
}

func TestDecodeSessionDetailsRejectsMalformedPayload(t *testing.T) {
	_, err := DecodeSessionDetails(SessionPrivate, json.RawMessage(`[1,2]`), "")
	assert.Error(t, err)
	_, err = DecodeSessionDetails(SessionType("group"), nil, "")
	assert.Error(t, err)
}

func TestEnquiryStatusParsing(t *testing.T) {
	for _, s := range []string{"pending", "Contacted", "COMPLETED"} {
		_, err := ParseEnquiryStatus(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseEnquiryStatus("archived")
	assert.Error(t, err)
}

func TestOrderStatusTransitions(t *testing.T) {
	assert.True(t, OrderPending.CanTransitionTo(OrderPaid))
	assert.True(t, OrderPaid.CanTransitionTo(OrderShipped))
	assert.True(t, OrderShipped.CanTransitionTo(OrderDelivered))
	assert.True(t, OrderPaid.CanTransitionTo(OrderRefunded))

	assert.False(t, OrderPaid.CanTransitionTo(OrderPending))
	assert.False(t, OrderDelivered.CanTransitionTo(OrderShipped))
	assert.False(t, OrderCancelled.CanTransitionTo(OrderPaid))

	assert.True(t, OrderShipped.CountsAsRevenue())
	assert.False(t, OrderRefunded.CountsAsRevenue())
}
