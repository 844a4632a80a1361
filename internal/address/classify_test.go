package address_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dukerupert/addrcheck/internal/address"
)

// premiseResponse builds a response with the given granularity, a postal
// code of 94043, a suffix of 1351 and enough filler components to reach
// componentCount distinct types.
func premiseResponse(granularity address.Granularity, inferred bool, componentCount int) *address.Response {
	components := []address.RawComponent{
		{ComponentType: address.ComponentPostalCode, ComponentName: address.ComponentName{Text: "94043"}},
		{ComponentType: address.ComponentPostalCodeSuffix, ComponentName: address.ComponentName{Text: "1351"}, Inferred: inferred},
	}
	for i := len(components); i < componentCount; i++ {
		components = append(components, address.RawComponent{ComponentType: fmt.Sprintf("filler_%d", i)})
	}

	return &address.Response{
		Result: address.Result{
			Verdict: address.Verdict{
				ValidationGranularity: granularity,
				GeocodeGranularity:    granularity,
				PossibleNextAction:    "ACCEPT",
			},
			Address: address.ResponseAddress{
				PostalAddress: address.PostalAddress{
					AddressLines: []string{"1600 Amphitheatre Pkwy"},
				},
				AddressComponents: components,
			},
		},
	}
}

func TestClassifier_Classify_OtherIgnoresSuffix(t *testing.T) {
	c := address.NewClassifier(address.DefaultSuffixPolicy)

	result := c.Classify(premiseResponse(address.GranularityOther, true, 7))

	assert.Equal(t, address.ClassOther, result.Class)
	assert.Equal(t, "94043", result.FinalZIP, "OTHER must never get a +4 suffix")
	assert.False(t, result.SuffixApplied)
}

func TestClassifier_Classify_RouteIgnoresSuffix(t *testing.T) {
	c := address.NewClassifier(address.DefaultSuffixPolicy)

	result := c.Classify(premiseResponse(address.GranularityRoute, true, 7))

	assert.Equal(t, address.ClassRoute, result.Class)
	assert.Equal(t, "94043", result.FinalZIP)
}

func TestClassifier_Classify_PremiseInferredSuffix(t *testing.T) {
	c := address.NewClassifier(address.DefaultSuffixPolicy)

	result := c.Classify(premiseResponse(address.GranularityPremise, true, 7))

	assert.Equal(t, address.ClassPremise, result.Class)
	assert.Equal(t, "94043-1351", result.FinalZIP)
	assert.True(t, result.SuffixApplied)
}

func TestClassifier_Classify_SubPremiseInferredSuffix(t *testing.T) {
	c := address.NewClassifier(address.DefaultSuffixPolicy)

	result := c.Classify(premiseResponse(address.GranularitySubPremise, true, 7))

	assert.Equal(t, address.ClassPremise, result.Class)
	assert.Equal(t, "94043-1351", result.FinalZIP)
}

func TestClassifier_Classify_PremiseSuffixNotInferred(t *testing.T) {
	c := address.NewClassifier(address.DefaultSuffixPolicy)

	result := c.Classify(premiseResponse(address.GranularityPremise, false, 7))

	assert.Equal(t, address.ClassPremise, result.Class)
	assert.Equal(t, "94043", result.FinalZIP, "a suffix the service did not infer is not appended")
	assert.False(t, result.SuffixApplied)
}

func TestClassifier_Classify_SuffixPolicy(t *testing.T) {
	tests := []struct {
		name   string
		policy address.SuffixPolicy
		count  int
		want   string
	}{
		{"below threshold", address.DefaultSuffixPolicy, 6, "94043"},
		{"at threshold", address.DefaultSuffixPolicy, 7, "94043-1351"},
		{"above threshold", address.DefaultSuffixPolicy, 8, "94043-1351"},
		{"exact at threshold", address.SuffixPolicy{MinComponents: 7, Exact: true}, 7, "94043-1351"},
		{"exact above threshold", address.SuffixPolicy{MinComponents: 7, Exact: true}, 8, "94043"},
		{"lowered threshold", address.SuffixPolicy{MinComponents: 2}, 2, "94043-1351"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := address.NewClassifier(tt.policy)

			result := c.Classify(premiseResponse(address.GranularityPremise, true, tt.count))

			assert.Equal(t, tt.want, result.FinalZIP)
		})
	}
}

func TestClassifier_Classify_IndeterminateGranularity(t *testing.T) {
	c := address.NewClassifier(address.DefaultSuffixPolicy)

	for _, g := range []address.Granularity{"", address.GranularityBlock, address.GranularityPremiseProximity, "SOMETHING_NEW"} {
		result := c.Classify(premiseResponse(g, true, 7))

		assert.Equal(t, address.ClassIndeterminate, result.Class, "granularity %q", g)
		assert.Equal(t, "94043", result.FinalZIP)
		assert.Equal(t, g, result.ValidationGranularity, "granularity is carried through unchanged")
	}
}

func TestClassifier_Classify_GeocodeGranularityGatesEachRow(t *testing.T) {
	c := address.NewClassifier(address.DefaultSuffixPolicy)

	tests := []struct {
		name       string
		validation address.Granularity
		geocode    address.Granularity
		wantClass  address.Class
		wantZIP    string
	}{
		{"premise with route geocode", address.GranularityPremise, address.GranularityRoute, address.ClassIndeterminate, "94043"},
		{"premise with proximity geocode", address.GranularityPremise, address.GranularityPremiseProximity, address.ClassIndeterminate, "94043"},
		{"premise with other geocode", address.GranularityPremise, address.GranularityOther, address.ClassIndeterminate, "94043"},
		{"sub-premise with premise geocode", address.GranularitySubPremise, address.GranularityPremise, address.ClassPremise, "94043-1351"},
		{"premise with sub-premise geocode", address.GranularityPremise, address.GranularitySubPremise, address.ClassPremise, "94043-1351"},
		{"other with premise geocode", address.GranularityOther, address.GranularityPremise, address.ClassIndeterminate, "94043"},
		{"route with premise geocode", address.GranularityRoute, address.GranularityPremise, address.ClassRoute, "94043"},
		{"route with other geocode", address.GranularityRoute, address.GranularityOther, address.ClassIndeterminate, "94043"},
		{"route with block geocode", address.GranularityRoute, address.GranularityBlock, address.ClassIndeterminate, "94043"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := premiseResponse(tt.validation, true, 7)
			resp.Result.Verdict.GeocodeGranularity = tt.geocode

			result := c.Classify(resp)

			assert.Equal(t, tt.wantClass, result.Class)
			assert.Equal(t, tt.wantZIP, result.FinalZIP)
			assert.Equal(t, tt.wantZIP != "94043", result.SuffixApplied)
			assert.Equal(t, tt.geocode, result.GeocodeGranularity)
		})
	}
}

func TestClassifier_Classify_SurfacesVerdictFields(t *testing.T) {
	c := address.NewClassifier(address.DefaultSuffixPolicy)
	resp := premiseResponse(address.GranularityPremise, true, 7)
	resp.Result.Verdict.GeocodeGranularity = address.GranularityRoute
	resp.Result.Verdict.PossibleNextAction = "CONFIRM_ADD_SUBPREMISES"
	resp.Result.Address.PostalAddress.AddressLines = []string{"1600 Amphitheatre Pkwy", "Bldg 40"}

	result := c.Classify(resp)

	assert.Equal(t, address.GranularityPremise, result.ValidationGranularity)
	assert.Equal(t, address.GranularityRoute, result.GeocodeGranularity)
	assert.Equal(t, "CONFIRM_ADD_SUBPREMISES", result.PossibleNextAction)
	assert.Equal(t, []string{"1600 Amphitheatre Pkwy", "Bldg 40"}, result.ResponseAddressLines)
}

func TestClassifier_Classify_NilAndEmptyResponse(t *testing.T) {
	c := address.NewClassifier(address.DefaultSuffixPolicy)

	for _, resp := range []*address.Response{nil, {}} {
		result := c.Classify(resp)

		assert.Equal(t, address.ClassIndeterminate, result.Class)
		assert.Empty(t, result.FinalZIP)
		assert.Empty(t, result.ResponseAddressLines)
		assert.Empty(t, result.PossibleNextAction)
	}
}

func TestClassifier_Classify_MissingPostalCode(t *testing.T) {
	c := address.NewClassifier(address.DefaultSuffixPolicy)
	resp := &address.Response{
		Result: address.Result{
			Verdict: address.Verdict{ValidationGranularity: address.GranularityPremise},
			Address: address.ResponseAddress{
				AddressComponents: []address.RawComponent{
					{ComponentType: address.ComponentPostalCodeSuffix, ComponentName: address.ComponentName{Text: "1351"}, Inferred: true},
				},
			},
		},
	}

	result := c.Classify(resp)

	assert.Equal(t, "", result.FinalZIP, "suffix resolution is skipped below the component threshold")
}

func TestSuffixPolicy_Accepts(t *testing.T) {
	assert.False(t, address.DefaultSuffixPolicy.Accepts(6))
	assert.True(t, address.DefaultSuffixPolicy.Accepts(7))
	assert.True(t, address.DefaultSuffixPolicy.Accepts(12))

	exact := address.SuffixPolicy{MinComponents: 7, Exact: true}
	assert.False(t, exact.Accepts(6))
	assert.True(t, exact.Accepts(7))
	assert.False(t, exact.Accepts(8))
}
