package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolkeuze/duosync/pkg/duo"
	"github.com/schoolkeuze/duosync/pkg/store"
)

func seed(id, name, postcode, houseNr, suffix string) duo.School {
	return duo.School{
		DUOID:       id,
		Name:        name,
		Postcode:    postcode,
		HouseNr:     houseNr,
		HouseSuffix: suffix,
	}
}

func TestExistingLinkWinsOverNamePostcode(t *testing.T) {
	schools := []store.School{
		{ID: "c1", Name: "De School", Postcode: "1000AB", DUOSchoolID: "d1"},
		{ID: "c2", Name: "Tweede School", Postcode: "2000CD"},
	}
	m := New(schools, nil, false)

	// The seed record is simultaneously eligible for the existing-link tier
	// (to c1) and name+postcode (to c2); the stronger tier must win.
	res := m.Match(seed("d1", "Tweede School", "2000CD", "", ""))
	assert.Equal(t, Matched, res.Outcome)
	assert.Equal(t, "c1", res.SchoolID)
	assert.Equal(t, TierExistingLink, res.Tier)
}

func TestPostcodeHouseMatchFromAddress(t *testing.T) {
	schools := []store.School{
		{ID: "c1", Name: "De School", Address: "Kerkstraat 5, 1000AB Amsterdam"},
		{ID: "c2", Name: "De Andere School", Postcode: "2000CD"},
	}
	m := New(schools, nil, false)

	res := m.Match(seed("d1", "De School", "1000AB", "5", ""))
	assert.Equal(t, Matched, res.Outcome)
	assert.Equal(t, "c1", res.SchoolID)
	assert.Equal(t, TierPostcodeHouse, res.Tier)
}

func TestHouseSuffixParticipatesInAddressKey(t *testing.T) {
	schools := []store.School{
		{ID: "c1", Address: "Lindengracht 12a, 1015KK Amsterdam"},
	}
	m := New(schools, nil, false)

	res := m.Match(seed("d1", "Iets", "1015KK", "12", "a"))
	assert.Equal(t, Matched, res.Outcome)
	assert.Equal(t, "c1", res.SchoolID)
}

func TestAmbiguityShortCircuits(t *testing.T) {
	// Two canonical records share (normalized name, postcode); a third would
	// be the unique name-only candidate. Ambiguity at the stronger tier must
	// terminate the cascade without consulting the weaker tier.
	schools := []store.School{
		{ID: "c1", Name: "Het Lyceum", Postcode: "1000AB"},
		{ID: "c2", Name: "Het  Lyceum", Postcode: "1000 ab"},
		{ID: "c3", Name: "Uniek Lyceum", Postcode: "3000EF"},
	}
	m := New(schools, nil, true)

	res := m.Match(seed("d1", "Het Lyceum", "1000AB", "", ""))
	assert.Equal(t, Ambiguous, res.Outcome)
	assert.Equal(t, TierNamePostcode, res.Tier)
	assert.Empty(t, res.SchoolID)
}

func TestManualOverrideByID(t *testing.T) {
	// Manual override maps d9 directly to c7 even though name+postcode
	// uniquely matches c8.
	schools := []store.School{
		{ID: "00000000-0000-0000-0000-000000000007", Name: "Zeven"},
		{ID: "00000000-0000-0000-0000-000000000008", Name: "Acht", Postcode: "1000AB"},
	}
	overrides := Overrides{"d9": {SchoolID: "00000000-0000-0000-0000-000000000007"}}
	m := New(schools, overrides, false)

	res := m.Match(seed("d9", "Acht", "1000AB", "", ""))
	assert.Equal(t, Matched, res.Outcome)
	assert.Equal(t, "00000000-0000-0000-0000-000000000007", res.SchoolID)
	assert.Equal(t, TierManualID, res.Tier)
}

func TestManualOverrideByName(t *testing.T) {
	schools := []store.School{
		{ID: "c1", Name: "Montessori Lyceum"},
		{ID: "c2", Name: "Ander Lyceum", Postcode: "1000AB"},
	}
	overrides := Overrides{"d1": {SchoolName: "montessori  lyceum"}}
	m := New(schools, overrides, false)

	res := m.Match(seed("d1", "Iets Heel Anders", "", "", ""))
	assert.Equal(t, Matched, res.Outcome)
	assert.Equal(t, "c1", res.SchoolID)
	assert.Equal(t, TierManualName, res.Tier)
}

func TestManualOverrideUnresolvableFallsThrough(t *testing.T) {
	schools := []store.School{
		{ID: "c1", Name: "De School", Postcode: "1000AB", DUOSchoolID: "d1"},
	}
	overrides := Overrides{"d1": {SchoolID: "00000000-0000-0000-0000-00000000dead"}}
	m := New(schools, overrides, false)

	// The named target does not exist; the cascade continues and the
	// existing link resolves the record.
	res := m.Match(seed("d1", "De School", "1000AB", "", ""))
	assert.Equal(t, Matched, res.Outcome)
	assert.Equal(t, "c1", res.SchoolID)
	assert.Equal(t, TierExistingLink, res.Tier)
}

func TestNameOnlyGatedByFlag(t *testing.T) {
	schools := []store.School{
		{ID: "c1", Name: "Uniek College"},
	}

	off := New(schools, nil, false)
	res := off.Match(seed("d1", "Uniek College", "", "", ""))
	assert.Equal(t, Unmatched, res.Outcome)

	on := New(schools, nil, true)
	res = on.Match(seed("d1", "Uniek College", "", "", ""))
	assert.Equal(t, Matched, res.Outcome)
	assert.Equal(t, TierNameOnly, res.Tier)
}

func TestStatsBreakdown(t *testing.T) {
	schools := []store.School{
		{ID: "00000000-0000-0000-0000-000000000001", Name: "Een", DUOSchoolID: "d1"},
		{ID: "00000000-0000-0000-0000-000000000002", Name: "Twee"},
		{ID: "00000000-0000-0000-0000-000000000003", Name: "Drie", Postcode: "1000AB"},
		{ID: "00000000-0000-0000-0000-000000000004", Name: "Drie", Postcode: "1000AB"},
	}
	overrides := Overrides{"d2": {SchoolName: "Twee"}}
	m := New(schools, overrides, true)

	m.Match(seed("d1", "Een", "", "", ""))          // existing link
	m.Match(seed("d2", "Wat dan ook", "", "", ""))  // manual by name
	m.Match(seed("d3", "Drie", "1000AB", "", ""))   // ambiguous
	m.Match(seed("d4", "Onbekend", "", "", ""))     // unmatched
	m.Match(seed("d5", "Twee", "", "", ""))         // name-only

	require.Equal(t, Stats{
		Matched:   3,
		Ambiguous: 1,
		Unmatched: 1,
		Manual:    1,
		NameOnly:  1,
	}, m.Stats())
}
