package model

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestFacilityLocation(t *testing.T) {
	f := Facility{Longitude: 28.9784, Latitude: 41.0082}
	assert.Equal(t, orb.Point{28.9784, 41.0082}, f.Location())
}

func TestFacilityDisplayName(t *testing.T) {
	f := Facility{Name: "Şişli Etfal Hastanesi"}
	assert.Equal(t, "Şişli Etfal Hastanesi", f.DisplayName())

	f.NameEN = "Sisli Etfal Hospital"
	assert.Equal(t, "Sisli Etfal Hospital", f.DisplayName())
}
