// Package match resolves each DUO seed record to at most one canonical
// school. Matching is exact on normalized keys through a strictly ordered
// cascade of progressively weaker strategies; a tier that produces two or
// more equally valid candidates refuses to guess and terminates the record
// as ambiguous.
package match

import (
	"strings"

	"github.com/schoolkeuze/duosync/pkg/duo"
	"github.com/schoolkeuze/duosync/pkg/normalize"
	"github.com/schoolkeuze/duosync/pkg/store"
)

// Tier identifies one strategy in the matching cascade, strongest first.
type Tier int

// Cascade tiers in order of application.
const (
	TierNone Tier = iota
	TierManualID
	TierManualName
	TierExistingLink
	TierPostcodeHouse
	TierNamePostcode
	TierNameOnly
)

// String returns a short label for reporting.
func (t Tier) String() string {
	switch t {
	case TierManualID:
		return "manual-id"
	case TierManualName:
		return "manual-name"
	case TierExistingLink:
		return "existing-link"
	case TierPostcodeHouse:
		return "postcode-house"
	case TierNamePostcode:
		return "name-postcode"
	case TierNameOnly:
		return "name-only"
	default:
		return "none"
	}
}

// Outcome is the three-way result per seed record. Exactly one outcome per
// record; the three are mutually exclusive and collectively exhaustive.
type Outcome int

// Possible outcomes.
const (
	Unmatched Outcome = iota
	Matched
	Ambiguous
)

// Result is the outcome of matching one seed record.
type Result struct {
	Outcome  Outcome
	SchoolID string // set only when Outcome == Matched
	Tier     Tier   // resolving tier, or the tier that was ambiguous
}

// Stats aggregates outcomes over a full pass.
type Stats struct {
	Matched   int
	Ambiguous int
	Unmatched int
	Manual    int // matched via a manual override tier
	NameOnly  int // matched via the gated name-only tier
}

type pairKey struct {
	a, b string
}

// Matcher holds the denormalized read model over one canonical snapshot:
// four lookup indexes rebuilt fresh each run.
type Matcher struct {
	nameOnly  bool
	overrides Overrides

	byID           map[string]*store.School
	byDUO          map[string]*store.School
	byNamePostcode map[pairKey][]*store.School
	byName         map[string][]*store.School
	byAddress      map[pairKey][]*store.School

	stats Stats
}

// New indexes the canonical snapshot. The address index is derived from
// each school's legacy free-text address, so records lacking structured
// postcode/house fields still participate in tier-4 matching.
func New(schools []store.School, overrides Overrides, nameOnly bool) *Matcher {
	m := &Matcher{
		nameOnly:       nameOnly,
		overrides:      overrides,
		byID:           make(map[string]*store.School, len(schools)),
		byDUO:          make(map[string]*store.School),
		byNamePostcode: make(map[pairKey][]*store.School),
		byName:         make(map[string][]*store.School),
		byAddress:      make(map[pairKey][]*store.School),
	}

	for i := range schools {
		s := &schools[i]
		m.byID[s.ID] = s

		if s.DUOSchoolID != "" {
			m.byDUO[s.DUOSchoolID] = s
		}

		nameKey := normalize.Text(s.Name)
		postcodeKey := normalize.Postcode(s.Postcode)
		if nameKey != "" {
			m.byName[nameKey] = append(m.byName[nameKey], s)
			if postcodeKey != "" {
				k := pairKey{nameKey, postcodeKey}
				m.byNamePostcode[k] = append(m.byNamePostcode[k], s)
			}
		}

		addrPostcode, addrHouse := normalize.AddressParts(s.Address)
		if addrPostcode != "" && addrHouse != "" {
			k := pairKey{addrPostcode, addrHouse}
			m.byAddress[k] = append(m.byAddress[k], s)
		}
	}
	return m
}

// Match resolves one seed record and updates the pass statistics.
func (m *Matcher) Match(d duo.School) Result {
	res := m.resolve(d)
	switch res.Outcome {
	case Matched:
		m.stats.Matched++
		switch res.Tier {
		case TierManualID, TierManualName:
			m.stats.Manual++
		case TierNameOnly:
			m.stats.NameOnly++
		}
	case Ambiguous:
		m.stats.Ambiguous++
	case Unmatched:
		m.stats.Unmatched++
	}
	return res
}

// Stats returns the aggregate outcome counts so far.
func (m *Matcher) Stats() Stats {
	return m.stats
}

// resolve walks the cascade. First success wins; a tier with two or more
// candidates stops the cascade for this record, even if a weaker tier
// would have resolved uniquely.
func (m *Matcher) resolve(d duo.School) Result {
	nameKey := normalize.Text(d.Name)
	postcodeKey := d.Postcode

	// Tiers 1-2: manual overrides.
	if ov, ok := m.overrides[d.DUOID]; ok {
		if ov.SchoolID != "" {
			if target, ok := m.byID[ov.SchoolID]; ok {
				return Result{Outcome: Matched, SchoolID: target.ID, Tier: TierManualID}
			}
		} else if manualName := normalize.Text(ov.SchoolName); manualName != "" {
			switch candidates := m.byName[manualName]; len(candidates) {
			case 1:
				return Result{Outcome: Matched, SchoolID: candidates[0].ID, Tier: TierManualName}
			case 0:
				// fall through
			default:
				return Result{Outcome: Ambiguous, Tier: TierManualName}
			}
		}
	}

	// Tier 3: existing DUO link.
	if target, ok := m.byDUO[d.DUOID]; ok {
		return Result{Outcome: Matched, SchoolID: target.ID, Tier: TierExistingLink}
	}

	// Tier 4: postcode + house number, against the address-derived index.
	if postcodeKey != "" && d.HouseNr != "" {
		house := strings.TrimSpace(d.HouseNr + d.HouseSuffix)
		switch candidates := m.byAddress[pairKey{postcodeKey, house}]; len(candidates) {
		case 1:
			return Result{Outcome: Matched, SchoolID: candidates[0].ID, Tier: TierPostcodeHouse}
		case 0:
		default:
			return Result{Outcome: Ambiguous, Tier: TierPostcodeHouse}
		}
	}

	// Tier 5: name + postcode.
	if nameKey != "" && postcodeKey != "" {
		switch candidates := m.byNamePostcode[pairKey{nameKey, postcodeKey}]; len(candidates) {
		case 1:
			return Result{Outcome: Matched, SchoolID: candidates[0].ID, Tier: TierNamePostcode}
		case 0:
		default:
			return Result{Outcome: Ambiguous, Tier: TierNamePostcode}
		}
	}

	// Tier 6: name only, opt-in.
	if m.nameOnly && nameKey != "" {
		switch candidates := m.byName[nameKey]; len(candidates) {
		case 1:
			return Result{Outcome: Matched, SchoolID: candidates[0].ID, Tier: TierNameOnly}
		case 0:
		default:
			return Result{Outcome: Ambiguous, Tier: TierNameOnly}
		}
	}

	return Result{Outcome: Unmatched}
}
