package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDesiredDateTime(t *testing.T) {
	assert.Equal(t, "2025-01-01T09:30:00Z", DesiredDateTime("2025-01-01", "09:30"))
}

func TestBookingRequest_JSONKeys(t *testing.T) {
	req := BookingRequest{
		CitizenName:      "Maria da Silva",
		CitizenCPF:       "52998224725",
		CitizenEmail:     "maria@example.com",
		CitizenTelePhone: "71999998888",
		CitizenCEP:       "40010000",
		CitizenCity:      "Salvador - BA",
		DesiredDateTime:  "2025-01-01T09:30:00Z",
		ServicePointID:   1,
	}

	raw, err := json.Marshal(req)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &got))
	for _, key := range []string{
		"citizenName", "citizenCpf", "citizenEmail", "citizenTelePhone",
		"citizenCep", "citizenCity", "desiredDateTime", "servicePointId",
	} {
		assert.Contains(t, got, key)
	}
	assert.EqualValues(t, 1, got["servicePointId"])
}

func TestOutcomeConstructors(t *testing.T) {
	req := BookingRequest{CitizenCPF: "52998224725"}

	confirmed := Confirmed(req)
	assert.Equal(t, OutcomeConfirmed, confirmed.Kind)
	require.NotNil(t, confirmed.Request)
	assert.Equal(t, "52998224725", confirmed.Request.CitizenCPF)

	rejected := Rejected("Horário indisponível", 409)
	assert.Equal(t, OutcomeRejected, rejected.Kind)
	assert.Equal(t, 409, rejected.StatusCode)

	failed := TransportFailure("falha de rede")
	assert.Equal(t, OutcomeTransportError, failed.Kind)
	assert.Nil(t, failed.Request)
}

func TestWorkflowState_Terminal(t *testing.T) {
	assert.True(t, StateConfirmed.Terminal())
	assert.True(t, StateRejected.Terminal())
	assert.True(t, StateTransportError.Terminal())
	assert.False(t, StateSubmitting.Terminal())
	assert.False(t, StateCollectingIdentity.Terminal())
}

func TestReportPeriod_Valid(t *testing.T) {
	assert.True(t, ReportDaily.Valid())
	assert.True(t, ReportWeekly.Valid())
	assert.True(t, ReportMonthly.Valid())
	assert.False(t, ReportPeriod("anual").Valid())
}
