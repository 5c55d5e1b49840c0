package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"flight-logger/core/reconcile"
)

// Snapshot is one decoded receiver state file.
type Snapshot struct {
	// Now is the receiver's timestamp for the file, zero if absent.
	Now time.Time
	// Messages is the receiver's total message count.
	Messages int64
	// Records holds one entry per aircraft with an identity code, in file order.
	Records []reconcile.Record
	// Rejected counts aircraft entries dropped for lacking an identity code.
	Rejected int
}

type fileJSON struct {
	Now      float64        `json:"now"`
	Messages int64          `json:"messages"`
	Aircraft []aircraftJSON `json:"aircraft"`
}

// aircraftJSON covers both dump1090-mutability and dump1090-fa field names.
type aircraftJSON struct {
	Hex      string   `json:"hex"`
	Flight   string   `json:"flight"`
	Squawk   string   `json:"squawk"`
	Messages int64    `json:"messages"`
	Lat      *float64 `json:"lat"`
	Lon      *float64 `json:"lon"`
	Track    *float64 `json:"track"`

	Altitude json.RawMessage `json:"altitude"`
	AltBaro  json.RawMessage `json:"alt_baro"`

	VertRate *float64 `json:"vert_rate"`
	BaroRate *float64 `json:"baro_rate"`

	Speed *float64 `json:"speed"`
	GS    *float64 `json:"gs"`
}

// Parse decodes a dump1090 aircraft.json or history_N.json payload.
// Optional fields that are missing or malformed are left unset on the record.
func Parse(data []byte) (*Snapshot, error) {
	var file fileJSON
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	snap := &Snapshot{
		Messages: file.Messages,
		Records:  make([]reconcile.Record, 0, len(file.Aircraft)),
	}
	if file.Now > 0 {
		sec, frac := math.Modf(file.Now)
		snap.Now = time.Unix(int64(sec), int64(frac*1e9)).UTC()
	}

	for _, a := range file.Aircraft {
		icao := strings.ToLower(strings.TrimSpace(a.Hex))
		if icao == "" {
			snap.Rejected++
			continue
		}
		snap.Records = append(snap.Records, a.record(icao))
	}
	return snap, nil
}

func (a *aircraftJSON) record(icao string) reconcile.Record {
	r := reconcile.Record{
		ICAO:      icao,
		Callsign:  a.Flight,
		Messages:  a.Messages,
		Latitude:  a.Lat,
		Longitude: a.Lon,
		Track:     a.Track,
	}

	if sq := strings.TrimSpace(a.Squawk); sq != "" {
		r.Squawk = &sq
	}

	r.Altitude = parseAltitude(a.Altitude)
	if r.Altitude == nil {
		r.Altitude = parseAltitude(a.AltBaro)
	}
	r.VerticalRate = roundInt(firstOf(a.VertRate, a.BaroRate))
	r.Speed = roundInt(firstOf(a.Speed, a.GS))
	return r
}

// parseAltitude accepts a number of feet or the "ground" sentinel.
func parseAltitude(raw json.RawMessage) *reconcile.Altitude {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if strings.EqualFold(strings.TrimSpace(s), "ground") {
			return &reconcile.Altitude{Ground: true}
		}
		return nil
	}

	var feet float64
	if err := json.Unmarshal(raw, &feet); err != nil {
		return nil
	}
	return &reconcile.Altitude{Feet: int(math.Round(feet))}
}

func firstOf(values ...*float64) *float64 {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func roundInt(v *float64) *int {
	if v == nil {
		return nil
	}
	n := int(math.Round(*v))
	return &n
}
