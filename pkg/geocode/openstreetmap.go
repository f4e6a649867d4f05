package geocode

import (
	"fmt"

	"github.com/codingsince1985/geo-golang"
	"github.com/codingsince1985/geo-golang/openstreetmap"
)

// NewOpenstreetmapClient resolves free-form place names through Nominatim.
// It feeds coordinate detection when the caller only has a place name, not a
// coordinate pair.
func NewOpenstreetmapClient() *oc {
	geocoder := openstreetmap.Geocoder()
	return &oc{geocoder: geocoder}
}

type oc struct {
	geocoder geo.Geocoder
}

var _ Client = (*oc)(nil)

func (c *oc) Geocode(query string) (*Location, error) {
	location, err := c.geocoder.Geocode(query)
	if err != nil {
		return nil, err
	}

	if location == nil {
		return nil, fmt.Errorf("unable to geocode %q", query)
	}

	return &Location{
		Latitude:  location.Lat,
		Longitude: location.Lng,
		Name:      query,
	}, nil
}
