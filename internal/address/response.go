package address

import (
	"bytes"
	"encoding/json"
)

// Granularity is the precision the service reached for an address.
type Granularity string

const (
	GranularityUnspecified      Granularity = "GRANULARITY_UNSPECIFIED"
	GranularityOther            Granularity = "OTHER"
	GranularityRoute            Granularity = "ROUTE"
	GranularityBlock            Granularity = "BLOCK"
	GranularityPremiseProximity Granularity = "PREMISE_PROXIMITY"
	GranularityPremise          Granularity = "PREMISE"
	GranularitySubPremise       Granularity = "SUB_PREMISE"
)

// ConfirmationLevel reports how sure the service is about one component.
// Values outside this list are kept as sent.
type ConfirmationLevel string

const (
	ConfirmationUnknown                  ConfirmationLevel = ""
	ConfirmationUnspecified              ConfirmationLevel = "CONFIRMATION_LEVEL_UNSPECIFIED"
	ConfirmationConfirmed                ConfirmationLevel = "CONFIRMED"
	ConfirmationUnconfirmed              ConfirmationLevel = "UNCONFIRMED"
	ConfirmationUnconfirmedButPlausible  ConfirmationLevel = "UNCONFIRMED_BUT_PLAUSIBLE"
	ConfirmationUnconfirmedAndSuspicious ConfirmationLevel = "UNCONFIRMED_AND_SUSPICIOUS"
)

// Component types the classifier looks up.
const (
	ComponentPostalCode       = "postal_code"
	ComponentPostalCodeSuffix = "postal_code_suffix"
)

// Response is the decoded body of a successful v1:validateAddress call.
// Every field is optional on the wire; absent keys leave the zero value,
// which is the documented default (empty string, false, empty list).
type Response struct {
	Result     Result `json:"result"`
	ResponseID string `json:"responseId"`
}

// Result holds the verdict and the parsed address.
type Result struct {
	Verdict Verdict         `json:"verdict"`
	Address ResponseAddress `json:"address"`
}

// Verdict is the service's summary judgment about an address.
type Verdict struct {
	InputGranularity            Granularity `json:"inputGranularity"`
	ValidationGranularity       Granularity `json:"validationGranularity"`
	GeocodeGranularity          Granularity `json:"geocodeGranularity"`
	AddressComplete             bool        `json:"addressComplete"`
	HasUnconfirmedComponents    bool        `json:"hasUnconfirmedComponents"`
	HasInferredComponents       bool        `json:"hasInferredComponents"`
	HasReplacedComponents       bool        `json:"hasReplacedComponents"`
	HasSpellCorrectedComponents bool        `json:"hasSpellCorrectedComponents"`
	PossibleNextAction          NextAction  `json:"possibleNextAction"`
}

// ResponseAddress is the address as the service understood it.
type ResponseAddress struct {
	FormattedAddress          string         `json:"formattedAddress"`
	PostalAddress             PostalAddress  `json:"postalAddress"`
	AddressComponents         []RawComponent `json:"addressComponents"`
	MissingComponentTypes     []string       `json:"missingComponentTypes"`
	UnconfirmedComponentTypes []string       `json:"unconfirmedComponentTypes"`
	UnresolvedTokens          []string       `json:"unresolvedTokens"`
}

// RawComponent is one entry of addressComponents as it appears on the wire.
type RawComponent struct {
	ComponentName     ComponentName     `json:"componentName"`
	ComponentType     string            `json:"componentType"`
	ConfirmationLevel ConfirmationLevel `json:"confirmationLevel"`
	Inferred          bool              `json:"inferred"`
	SpellCorrected    bool              `json:"spellCorrected"`
	Replaced          bool              `json:"replaced"`
	Unexpected        bool              `json:"unexpected"`
}

// ComponentName is the text of a component plus its language.
type ComponentName struct {
	Text         string `json:"text"`
	LanguageCode string `json:"languageCode"`
}

// NextAction is the verdict's suggested follow-up. Older response
// versions send a plain string, newer ones a list; the first list
// element is kept.
type NextAction string

// UnmarshalJSON accepts a string, a list of strings, or null.
func (a *NextAction) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}

	if data[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		if len(list) == 0 {
			*a = ""
			return nil
		}
		*a = NextAction(list[0])
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*a = NextAction(s)
	return nil
}
