package snapshot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mutabilityHistory = `{
  "now": 1714564800.5,
  "messages": 81234,
  "aircraft": [
    {"hex":"4CA7B5","squawk":"7000","flight":"RYR4TK  ","lat":53.42,"lon":-6.27,"nucp":7,"seen_pos":0.4,
     "altitude":34000,"vert_rate":-64,"track":112,"speed":447,"messages":512,"seen":0.1,"rssi":-21.4},
    {"hex":"3c6586","altitude":"ground","lat":53.43,"lon":-6.25,"track":270,"speed":12,"vert_rate":0,
     "flight":"DLH4AB  ","messages":98},
    {"hex":"a1b2c3","messages":3,"seen":12.2},
    {"hex":"  ","messages":1},
    {"hex":"~2a01f0","altitude":1500,"messages":4}
  ]
}`

const faAircraft = `{
  "now": 1714564801.0,
  "aircraft": [
    {"hex":"40762f","flight":"EZY81QX ","alt_baro":12025,"baro_rate":1088.5,"gs":298.7,"track":45.3,
     "lat":51.1,"lon":-0.2,"messages":77,"squawk":"4523"},
    {"hex":"406b90","alt_baro":"ground","gs":3.2,"messages":5}
  ]
}`

func TestParse_Mutability(t *testing.T) {
	snap, err := Parse([]byte(mutabilityHistory))
	require.NoError(t, err)

	assert.Equal(t, int64(81234), snap.Messages)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 500000000, time.UTC), snap.Now)
	assert.Equal(t, 1, snap.Rejected)
	require.Len(t, snap.Records, 4)

	r := snap.Records[0]
	assert.Equal(t, "4ca7b5", r.ICAO)
	assert.Equal(t, "RYR4TK  ", r.Callsign)
	require.NotNil(t, r.Squawk)
	assert.Equal(t, "7000", *r.Squawk)
	assert.Equal(t, int64(512), r.Messages)
	assert.True(t, r.HasPosition())
	assert.True(t, r.Airborne())
	assert.Equal(t, 34000, r.Altitude.Feet)
	assert.Equal(t, -64, *r.VerticalRate)
	assert.Equal(t, 447, *r.Speed)
	assert.Equal(t, 112.0, *r.Track)
}

func TestParse_GroundAltitude(t *testing.T) {
	snap, err := Parse([]byte(mutabilityHistory))
	require.NoError(t, err)

	r := snap.Records[1]
	require.NotNil(t, r.Altitude)
	assert.True(t, r.Altitude.Ground)
	assert.True(t, r.HasPosition())
	assert.False(t, r.Airborne())
	assert.Nil(t, r.Squawk)
}

func TestParse_MissingOptionalFields(t *testing.T) {
	snap, err := Parse([]byte(mutabilityHistory))
	require.NoError(t, err)

	r := snap.Records[2]
	assert.Equal(t, "a1b2c3", r.ICAO)
	assert.Empty(t, r.Callsign)
	assert.Nil(t, r.Squawk)
	assert.Nil(t, r.Altitude)
	assert.False(t, r.HasPosition())

	nonICAO := snap.Records[3]
	assert.Equal(t, "~2a01f0", nonICAO.ICAO)
	assert.Equal(t, 1500, nonICAO.Altitude.Feet)
	assert.False(t, nonICAO.HasPosition())
}

func TestParse_FlightAwareFieldNames(t *testing.T) {
	snap, err := Parse([]byte(faAircraft))
	require.NoError(t, err)
	require.Len(t, snap.Records, 2)

	r := snap.Records[0]
	assert.True(t, r.HasPosition())
	assert.Equal(t, 12025, r.Altitude.Feet)
	assert.Equal(t, 1089, *r.VerticalRate)
	assert.Equal(t, 299, *r.Speed)
	assert.Equal(t, "4523", *r.Squawk)

	ground := snap.Records[1]
	assert.True(t, ground.Altitude.Ground)
	assert.Equal(t, 3, *ground.Speed)
}

func TestParse_MalformedAltitudeIgnored(t *testing.T) {
	snap, err := Parse([]byte(`{"aircraft":[{"hex":"abc123","altitude":"n/a","alt_baro":null,"messages":1}]}`))
	require.NoError(t, err)

	require.Len(t, snap.Records, 1)
	assert.Nil(t, snap.Records[0].Altitude)
	assert.True(t, snap.Now.IsZero())
}

func TestParse_InvalidJSON(t *testing.T) {
	_, err := Parse([]byte(`{"aircraft":[`))
	assert.Error(t, err)
}

func TestParse_EmptySnapshot(t *testing.T) {
	snap, err := Parse([]byte(`{"now":1714564800,"aircraft":[]}`))
	require.NoError(t, err)
	assert.Empty(t, snap.Records)
	assert.Zero(t, snap.Rejected)
}
