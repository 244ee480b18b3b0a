package domain

import "fmt"

// Collection names one of the two independent slug namespaces.
// A slug must be unique inside its collection; the same slug may be used by
// an agency and a trip at the same time.
type Collection string

const (
	CollectionAgencies Collection = "agencies"
	CollectionTrips    Collection = "trips"
)

// Collections lists every known collection in a stable order.
var Collections = []Collection{CollectionAgencies, CollectionTrips}

// ParseCollection converts a raw string (query parameter, CLI flag) into a
// Collection. Unknown names wrap ErrValidation.
func ParseCollection(s string) (Collection, error) {
	c := Collection(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: unknown collection %q", ErrValidation, s)
	}
	return c, nil
}

// Valid reports whether c is one of the known collections.
func (c Collection) Valid() bool {
	return c == CollectionAgencies || c == CollectionTrips
}

// FallbackPrefix is the synthetic slug base used when a display name has
// nothing that survives slugification.
func (c Collection) FallbackPrefix() string {
	switch c {
	case CollectionTrips:
		return "viagem"
	default:
		return "agencia"
	}
}

// Entity is the singular name used to tag audit issues ("agency", "trip").
func (c Collection) Entity() string {
	if c == CollectionTrips {
		return "trip"
	}
	return "agency"
}

func (c Collection) String() string { return string(c) }
