// Package classify derives facility type and operator sector from raw
// OpenStreetMap tags. Sector matching runs over an ordered rule table so
// new locales can be added through configuration alone.
package classify

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cityscale/healthatlas/internal/model"
)

// SectorRule maps a keyword set to a sector. Rules are evaluated in
// order; the first rule with a matching keyword wins.
type SectorRule struct {
	Sector   model.Sector
	Keywords []string
}

// DefaultSectorRules returns the built-in Turkish/English rule table.
// Rule order is significant: Public before Private before University.
func DefaultSectorRules() []SectorRule {
	return []SectorRule{
		{Sector: model.SectorPublic, Keywords: []string{"devlet", "public", "sağlık bakanlığı", "government"}},
		{Sector: model.SectorPrivate, Keywords: []string{"özel", "private"}},
		{Sector: model.SectorUniversity, Keywords: []string{"üniversite", "university"}},
	}
}

// Turkish casing handles the dotted/dotless İ/ı pair correctly, which
// ASCII lowercasing does not.
var (
	lowerTR = cases.Lower(language.Turkish)
	titleTR = cases.Title(language.Turkish)
)

// FacilityType classifies a facility from its raw category tags.
// Precedence: amenity hospital > clinic > doctors, then the free-text
// healthcare tag title-cased, else Other. A record tagged both
// "hospital" and a healthcare sub-type classifies as Hospital.
func FacilityType(amenity, healthcare string) model.FacilityType {
	switch amenity {
	case "hospital":
		return model.FacilityHospital
	case "clinic":
		return model.FacilityClinic
	case "doctors":
		return model.FacilityDoctor
	}
	if healthcare != "" {
		return model.FacilityType(titleTR.String(healthcare))
	}
	return model.FacilityOther
}

// Sector classifies the operator of a facility using the given rule
// table. Both operator fields are concatenated and case-folded before
// substring matching; no match yields Unknown.
func Sector(rules []SectorRule, operator, operatorType string) model.Sector {
	if len(rules) == 0 {
		rules = DefaultSectorRules()
	}
	text := lowerTR.String(operator + " " + operatorType)
	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			if kw == "" {
				continue
			}
			if strings.Contains(text, lowerTR.String(kw)) {
				return rule.Sector
			}
		}
	}
	return model.SectorUnknown
}

// Apply fills the derived Type and Sector fields of a facility in place.
func Apply(f *model.Facility, rules []SectorRule) {
	f.Type = FacilityType(f.Amenity, f.Healthcare)
	f.Sector = Sector(rules, f.Operator, f.OperatorType)
}
