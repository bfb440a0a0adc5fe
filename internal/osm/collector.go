// Package osm collects healthcare facility data from the Overpass API.
package osm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	overpass "github.com/serjvanilla/go-overpass"
	"go.uber.org/zap"

	"github.com/cityscale/healthatlas/internal/classify"
	"github.com/cityscale/healthatlas/internal/geodata"
	"github.com/cityscale/healthatlas/internal/model"
	"github.com/cityscale/healthatlas/internal/resilience"
)

// DefaultEndpoint is the public Overpass API interpreter.
const DefaultEndpoint = "https://overpass-api.de/api/interpreter"

// Collector fetches healthcare facilities for a city area.
type Collector struct {
	client *overpass.Client
	rules  []classify.SectorRule
	retry  resilience.RetryConfig
}

// New creates a Collector against the given Overpass endpoint.
func New(endpoint string, timeout time.Duration, rules []classify.SectorRule) *Collector {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	httpClient := &http.Client{Timeout: timeout}
	client := overpass.NewWithSettings(endpoint, 1, httpClient)
	return &Collector{
		client: &client,
		rules:  rules,
		retry:  resilience.DefaultRetryConfig(),
	}
}

// buildQuery selects hospital, clinic, doctors, and healthcare-tagged
// nodes and ways inside the named administrative area.
func buildQuery(city, adminLevel string) string {
	return fmt.Sprintf(`
[out:json][timeout:120];
area["name"=%q]["admin_level"=%q]->.city;
(
  node["amenity"="hospital"](area.city);
  way["amenity"="hospital"](area.city);
  node["amenity"="clinic"](area.city);
  way["amenity"="clinic"](area.city);
  node["amenity"="doctors"](area.city);
  way["amenity"="doctors"](area.city);
  node["healthcare"](area.city);
  way["healthcare"](area.city);
);
out body;
>;
out skel qt;`, city, adminLevel)
}

// Collect fetches and classifies all healthcare facilities in the city
// area. Results are sorted by OSM ID so repeated runs over the same data
// produce identical output.
func (c *Collector) Collect(ctx context.Context, city, adminLevel string) ([]model.Facility, error) {
	log := zap.L().With(zap.String("component", "osm.collector"), zap.String("city", city))
	query := buildQuery(city, adminLevel)

	var result overpass.Result
	err := resilience.Do(ctx, c.retry, func(ctx context.Context) error {
		var qerr error
		result, qerr = c.client.Query(query)
		return qerr
	})
	if err != nil {
		return nil, eris.Wrap(err, "osm: overpass query")
	}

	facilities := c.convert(&result)
	geodata.SortFacilities(facilities)
	log.Info("osm: collected facilities", zap.Int("count", len(facilities)))
	return facilities, nil
}

// convert maps Overpass nodes and ways to facility records. Skeleton
// nodes carry no tags and are dropped; a way's position is the mean of
// its member nodes.
func (c *Collector) convert(result *overpass.Result) []model.Facility {
	var facilities []model.Facility

	for _, node := range result.Nodes {
		if !isHealthcare(node.Tags) {
			continue
		}
		f := fromTags(node.ID, node.Tags, node.Lon, node.Lat)
		classify.Apply(&f, c.rules)
		facilities = append(facilities, f)
	}

	for _, way := range result.Ways {
		if !isHealthcare(way.Tags) || len(way.Nodes) == 0 {
			continue
		}
		var lat, lon float64
		for _, node := range way.Nodes {
			lat += node.Lat
			lon += node.Lon
		}
		lat /= float64(len(way.Nodes))
		lon /= float64(len(way.Nodes))

		f := fromTags(way.ID, way.Tags, lon, lat)
		classify.Apply(&f, c.rules)
		facilities = append(facilities, f)
	}

	return facilities
}

func isHealthcare(tags map[string]string) bool {
	switch tags["amenity"] {
	case "hospital", "clinic", "doctors":
		return true
	}
	return tags["healthcare"] != ""
}

func fromTags(id int64, tags map[string]string, lon, lat float64) model.Facility {
	name := tags["name"]
	if name == "" {
		name = "Unknown"
	}
	return model.Facility{
		OSMID:        id,
		Name:         name,
		NameEN:       tags["name:en"],
		Amenity:      tags["amenity"],
		Healthcare:   tags["healthcare"],
		Operator:     tags["operator"],
		OperatorType: tags["operator:type"],
		Phone:        tags["phone"],
		Website:      tags["website"],
		AddrDistrict: tags["addr:district"],
		Longitude:    lon,
		Latitude:     lat,
	}
}
