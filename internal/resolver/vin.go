package resolver

import "strings"

const (
	// vinPenaltyGenericSpec is subtracted from a VIN match's confidence when
	// the manufacturer has no deeper chassis data and only generic specs
	// apply.
	vinPenaltyGenericSpec = 15
	// vinPenaltyUnknownYear is subtracted when position 10 falls outside the
	// pinned model-year window and the manufacture year stays unknown.
	vinPenaltyUnknownYear = 20
)

// resolveVIN handles 17-character identifiers. The VIN alphabet excludes I,
// O, and Q; anything else falls through to the next strategy rather than
// failing the whole resolution.
func (s *Service) resolveVIN(normalized string) (VehicleIdentity, bool) {
	vin := strings.ToUpper(strings.ReplaceAll(normalized, " ", ""))
	if !isVIN(vin) {
		return VehicleIdentity{}, false
	}

	record, ok := s.lookupWMI(vin)
	if !ok {
		return VehicleIdentity{}, false
	}

	year := decodeModelYear(vin)

	confidence := 100
	if !record.HasChassisData {
		confidence -= vinPenaltyGenericSpec
	}
	if year == 0 {
		confidence -= vinPenaltyUnknownYear
	}

	return VehicleIdentity{
		Make:            record.Make,
		ManufactureYear: year,
		OriginCountry:   record.OriginCountry,
		ResolutionType:  ResolutionVIN,
		ConfidenceScore: confidence,
	}, true
}

// lookupWMI matches the longest prefix first so "JA3" wins over a
// hypothetical "JA" entry.
func (s *Service) lookupWMI(vin string) (WMIRecord, bool) {
	best := WMIRecord{}
	found := false
	for _, record := range s.tables.WMI {
		if strings.HasPrefix(vin, record.Prefix) && len(record.Prefix) > len(best.Prefix) {
			best = record
			found = true
		}
	}
	return best, found
}

func isVIN(s string) bool {
	if len(s) != 17 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'A' && r <= 'Z' && r != 'I' && r != 'O' && r != 'Q':
		default:
			return false
		}
	}
	return true
}

// modelYearCodes maps VIN position 10 to a manufacture year. The code space
// repeats every 30 years; this table pins the window that covers the vehicles
// the import rules actually discriminate between.
var modelYearCodes = map[byte]int{
	'L': 1990, 'M': 1991, 'N': 1992, 'P': 1993, 'R': 1994,
	'S': 1995, 'T': 1996, 'V': 1997, 'W': 1998, 'X': 1999,
	'Y': 2000,
	'1': 2001, '2': 2002, '3': 2003, '4': 2004, '5': 2005,
	'6': 2006, '7': 2007, '8': 2008, '9': 2009,
	'A': 2010, 'B': 2011, 'C': 2012, 'D': 2013, 'E': 2014,
	'F': 2015, 'G': 2016, 'H': 2017, 'J': 2018, 'K': 2019,
}

// decodeModelYear returns 0 when the year code is outside the pinned window.
// The zero stays on the identity rather than being guessed at; downstream age
// checks refuse to evaluate an identity without a year.
func decodeModelYear(vin string) int {
	if year, ok := modelYearCodes[vin[9]]; ok {
		return year
	}
	return 0
}
