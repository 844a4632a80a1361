package address

// Class is the bucket an address lands in after classification.
type Class string

const (
	// ClassOther means the address probably does not exist.
	ClassOther Class = "OTHER"
	// ClassRoute means the street was found but premise details are absent or unreliable.
	ClassRoute Class = "ROUTE"
	// ClassPremise means the address resolved to a premise or sub-premise.
	ClassPremise Class = "PREMISE"
	// ClassIndeterminate covers any other validation granularity.
	ClassIndeterminate Class = "INDETERMINATE"
)

// DefaultSuffixMinComponents is the component count at which an inferred
// ZIP+4 suffix is trusted. Observed complete US responses carry seven
// component types.
const DefaultSuffixMinComponents = 7

// SuffixPolicy decides whether an inferred postal_code_suffix is trusted,
// based on how many distinct component types the response carried.
type SuffixPolicy struct {
	// MinComponents is the component count threshold.
	MinComponents int

	// Exact requires the count to equal MinComponents instead of reaching it.
	Exact bool
}

// DefaultSuffixPolicy trusts the suffix once at least seven component types are present.
var DefaultSuffixPolicy = SuffixPolicy{MinComponents: DefaultSuffixMinComponents}

// Accepts reports whether a response with count component types is populated
// enough to trust its inferred suffix.
func (p SuffixPolicy) Accepts(count int) bool {
	if p.Exact {
		return count == p.MinComponents
	}
	return count >= p.MinComponents
}

// Classification is the outcome for one validated address.
type Classification struct {
	Class                 Class
	FinalZIP              string
	SuffixApplied         bool
	ResponseAddressLines  []string
	ValidationGranularity Granularity
	GeocodeGranularity    Granularity
	PossibleNextAction    string
}

// Classifier turns a validation response into a Classification.
type Classifier struct {
	Suffix SuffixPolicy
}

// NewClassifier creates a classifier with the given suffix policy.
func NewClassifier(policy SuffixPolicy) *Classifier {
	return &Classifier{Suffix: policy}
}

// Classify applies the granularity decision table, first match wins:
//
//	validation  geocode            class
//	OTHER       OTHER              OTHER
//	ROUTE       ROUTE, PREMISE     ROUTE
//	PREMISE+    PREMISE+           PREMISE (ZIP+4 resolution)
//	anything else                  INDETERMINATE
//
// PREMISE+ is PREMISE or SUB_PREMISE. Only the PREMISE row can append a
// suffix. Classify never fails; a nil or sparse response classifies with
// default values.
func (c *Classifier) Classify(resp *Response) Classification {
	if resp == nil {
		resp = &Response{}
	}
	verdict := resp.Result.Verdict
	addr := resp.Result.Address

	components, count := ExtractComponents(addr.AddressComponents)
	baseZIP := components[ComponentPostalCode].Text

	out := Classification{
		FinalZIP:              baseZIP,
		ResponseAddressLines:  append([]string(nil), addr.PostalAddress.AddressLines...),
		ValidationGranularity: verdict.ValidationGranularity,
		GeocodeGranularity:    verdict.GeocodeGranularity,
		PossibleNextAction:    string(verdict.PossibleNextAction),
	}

	validation, geocode := verdict.ValidationGranularity, verdict.GeocodeGranularity
	switch {
	case validation == GranularityOther && geocode == GranularityOther:
		out.Class = ClassOther
	case validation == GranularityRoute && (geocode == GranularityRoute || geocode == GranularityPremise):
		out.Class = ClassRoute
	case isPremiseLevel(validation) && isPremiseLevel(geocode):
		out.Class = ClassPremise
		out.FinalZIP, out.SuffixApplied = c.resolveZIP(baseZIP, components, count)
	default:
		out.Class = ClassIndeterminate
	}

	return out
}

func isPremiseLevel(g Granularity) bool {
	return g == GranularityPremise || g == GranularitySubPremise
}

// resolveZIP appends the ZIP+4 suffix when it is inferred and the policy
// trusts the response.
func (c *Classifier) resolveZIP(baseZIP string, components ComponentTable, count int) (string, bool) {
	suffix, ok := components.Lookup(ComponentPostalCodeSuffix)
	if !ok || !suffix.Inferred || !c.Suffix.Accepts(count) {
		return baseZIP, false
	}
	return baseZIP + "-" + suffix.Text, true
}
