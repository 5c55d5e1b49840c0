package flights

import "fmt"

// Column name constants for logical field references.
const (
	ColID           = "id"
	ColICAO         = "icao"
	ColFirstSeen    = "first_seen"
	ColLastSeen     = "last_seen"
	ColAircraft     = "aircraft"
	ColCallsign     = "callsign"
	ColFlight       = "flight"
	ColTime         = "time"
	ColMessage      = "message"
	ColSquawk       = "squawk"
	ColLatitude     = "latitude"
	ColLongitude    = "longitude"
	ColTrack        = "track"
	ColAltitude     = "altitude"
	ColVerticalRate = "vertical_rate"
	ColSpeed        = "speed"
)

// Profile names accepted by GetProfileByName.
const (
	ProfilePortal   = "portal"
	ProfileStandard = "standard"
)

// Table maps one logical table onto its physical name and columns.
type Table struct {
	// Name is the name of the table in the database.
	Name string

	// Columns maps logical field names to actual database column names.
	Columns map[string]string
}

// Col returns the physical column for a logical field.
func (t Table) Col(logical string) string {
	return t.Columns[logical]
}

// Profile defines the database schema mapping for the three tables.
type Profile struct {
	Name      string
	Aircraft  Table
	Flights   Table
	Positions Table
}

// Tables returns the profile's tables in dependency order.
func (p Profile) Tables() []Table {
	return []Table{p.Aircraft, p.Flights, p.Positions}
}

// PortalProfile returns the mapping for the ADS-B receiver portal schema.
func PortalProfile() Profile {
	return Profile{
		Name: ProfilePortal,
		Aircraft: Table{
			Name: "adsb_aircraft",
			Columns: map[string]string{
				ColID:        "id",
				ColICAO:      "icao",
				ColFirstSeen: "firstSeen",
				ColLastSeen:  "lastSeen",
			},
		},
		Flights: Table{
			Name: "adsb_flights",
			Columns: map[string]string{
				ColID:        "id",
				ColAircraft:  "aircraft",
				ColCallsign:  "flight",
				ColFirstSeen: "firstSeen",
				ColLastSeen:  "lastSeen",
			},
		},
		Positions: Table{
			Name: "adsb_positions",
			Columns: map[string]string{
				ColID:        "id",
				ColFlight:    "flight",
				ColTime:      "time",
				ColMessage:   "message",
				ColSquawk:    "squawk",
				ColLatitude:  "latitude",
				ColLongitude: "longitude",
				ColTrack:     "track",
				ColAltitude:  "altitude",
				// Misspelt in the portal schema.
				ColVerticalRate: "verticleRate",
				ColSpeed:        "speed",
			},
		},
	}
}

// StandardProfile returns a snake_case mapping for freshly provisioned databases.
func StandardProfile() Profile {
	return Profile{
		Name: ProfileStandard,
		Aircraft: Table{
			Name: "aircraft",
			Columns: map[string]string{
				ColID:        "id",
				ColICAO:      "icao",
				ColFirstSeen: "first_seen",
				ColLastSeen:  "last_seen",
			},
		},
		Flights: Table{
			Name: "flight",
			Columns: map[string]string{
				ColID:        "id",
				ColAircraft:  "aircraft_id",
				ColCallsign:  "callsign",
				ColFirstSeen: "first_seen",
				ColLastSeen:  "last_seen",
			},
		},
		Positions: Table{
			Name: "position",
			Columns: map[string]string{
				ColID:           "id",
				ColFlight:       "flight_id",
				ColTime:         "time",
				ColMessage:      "message",
				ColSquawk:       "squawk",
				ColLatitude:     "latitude",
				ColLongitude:    "longitude",
				ColTrack:        "track",
				ColAltitude:     "altitude",
				ColVerticalRate: "vertical_rate",
				ColSpeed:        "speed",
			},
		},
	}
}

// GetProfileByName returns the schema profile for a configured name.
func GetProfileByName(name string) (Profile, error) {
	switch name {
	case ProfilePortal, "":
		return PortalProfile(), nil
	case ProfileStandard:
		return StandardProfile(), nil
	default:
		return Profile{}, fmt.Errorf("unknown schema profile: %s", name)
	}
}
