// Package render writes a self-contained interactive map of an analysis
// run as a single HTML file.
package render

import (
	"encoding/json"
	"html/template"
	"os"

	"github.com/paulmach/orb/geojson"
	"github.com/rotisserie/eris"

	"github.com/cityscale/healthatlas/internal/model"
)

// markerColors maps primary facility types to marker colors; anything
// else renders gray.
var markerColors = map[model.FacilityType]string{
	model.FacilityHospital: "#d33",
	model.FacilityClinic:   "#36c",
	model.FacilityDoctor:   "#2a2",
}

// MapOptions configures the rendered map.
type MapOptions struct {
	Title     string
	CenterLat float64
	CenterLon float64
	Zoom      int
}

// WriteMap renders districts (choropleth by accessibility score) and
// facilities (circle markers by type) into an HTML file that only needs
// the Leaflet CDN at view time.
func WriteMap(path string, districts []model.District, facilities []model.Facility, opts MapOptions) error {
	if opts.Zoom == 0 {
		opts.Zoom = 10
	}

	fc := geojson.NewFeatureCollection()
	for i := range districts {
		f := geojson.NewFeature(districts[i].Boundary)
		f.Properties = geojson.Properties{
			"name":                districts[i].Name,
			"facility_count":      districts[i].FacilityCount,
			"nearest_hospital_km": districts[i].NearestKM,
			"accessibility_score": districts[i].Score,
		}
		fc.Append(f)
	}
	districtsJSON, err := json.Marshal(fc)
	if err != nil {
		return eris.Wrap(err, "render: marshal districts")
	}

	type marker struct {
		Lat   float64 `json:"lat"`
		Lon   float64 `json:"lon"`
		Name  string  `json:"name"`
		Type  string  `json:"type"`
		Color string  `json:"color"`
	}
	markers := make([]marker, 0, len(facilities))
	for i := range facilities {
		color, ok := markerColors[facilities[i].Type]
		if !ok {
			color = "#777"
		}
		markers = append(markers, marker{
			Lat:   facilities[i].Latitude,
			Lon:   facilities[i].Longitude,
			Name:  facilities[i].DisplayName(),
			Type:  string(facilities[i].Type),
			Color: color,
		})
	}
	markersJSON, err := json.Marshal(markers)
	if err != nil {
		return eris.Wrap(err, "render: marshal markers")
	}

	out, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "render: create %s", path)
	}
	defer func() { _ = out.Close() }()

	data := struct {
		Title     string
		CenterLat float64
		CenterLon float64
		Zoom      int
		Districts template.JS
		Markers   template.JS
	}{
		Title:     opts.Title,
		CenterLat: opts.CenterLat,
		CenterLon: opts.CenterLon,
		Zoom:      opts.Zoom,
		Districts: template.JS(districtsJSON),
		Markers:   template.JS(markersJSON),
	}
	if err := mapTemplate.Execute(out, data); err != nil {
		return eris.Wrapf(err, "render: execute template %s", path)
	}
	return nil
}

var mapTemplate = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>
  html, body, #map { height: 100%; margin: 0; }
  .legend { background: white; padding: 8px 12px; border-radius: 4px; line-height: 1.6; }
  .legend i { width: 12px; height: 12px; display: inline-block; margin-right: 6px; }
</style>
</head>
<body>
<div id="map"></div>
<script>
var map = L.map('map').setView([{{.CenterLat}}, {{.CenterLon}}], {{.Zoom}});
L.tileLayer('https://tile.openstreetmap.org/{z}/{x}/{y}.png', {
  attribution: '&copy; OpenStreetMap contributors'
}).addTo(map);

var districts = {{.Districts}};
var markers = {{.Markers}};

function scoreColor(score) {
  return score >= 80 ? '#1a9850' :
         score >= 60 ? '#91cf60' :
         score >= 40 ? '#fee08b' :
         score >= 20 ? '#fc8d59' : '#d73027';
}

L.geoJSON(districts, {
  style: function (f) {
    return {
      color: '#444', weight: 1,
      fillColor: scoreColor(f.properties.accessibility_score),
      fillOpacity: 0.45
    };
  },
  onEachFeature: function (f, layer) {
    layer.bindPopup('<b>' + f.properties.name + '</b><br>' +
      'Facilities: ' + f.properties.facility_count + '<br>' +
      'Nearest: ' + f.properties.nearest_hospital_km.toFixed(2) + ' km<br>' +
      'Score: ' + f.properties.accessibility_score.toFixed(1));
  }
}).addTo(map);

markers.forEach(function (m) {
  L.circleMarker([m.lat, m.lon], {
    radius: 5, color: m.color, fillOpacity: 0.7
  }).bindPopup('<b>' + m.name + '</b><br>' + m.type).addTo(map);
});

var legend = L.control({position: 'bottomright'});
legend.onAdd = function () {
  var div = L.DomUtil.create('div', 'legend');
  div.innerHTML = '<b>Accessibility</b><br>' +
    [80, 60, 40, 20, 0].map(function (s) {
      return '<i style="background:' + scoreColor(s) + '"></i>' + s + '+';
    }).join('<br>');
  return div;
};
legend.addTo(map);
</script>
</body>
</html>
`))
