package address

import (
	"context"
	"strings"
)

// RegionUS is the only region code the batch validates.
const RegionUS = "US"

// Validator defines the interface for address validation.
// GoogleValidator talks to the Address Validation API; MockValidator is for tests.
type Validator interface {
	// Validate sends one request and returns the parsed response.
	// A non-200 answer from the service is reported as *TransportError.
	Validate(ctx context.Context, req ValidationRequest) (*Response, error)
}

// InputRecord is one spreadsheet row to validate.
// PostalCode is kept as text so leading zeros survive.
type InputRecord struct {
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	PostalCode   string
}

// AddressLine returns line 1, joined with line 2 by a single space when
// line 2 holds anything other than whitespace.
func (r InputRecord) AddressLine() string {
	if strings.TrimSpace(r.AddressLine2) == "" {
		return r.AddressLine1
	}
	return r.AddressLine1 + " " + r.AddressLine2
}

// ValidationRequest is the body of a v1:validateAddress call.
type ValidationRequest struct {
	Address        PostalAddress `json:"address"`
	EnableUspsCass bool          `json:"enableUspsCass"`
}

// PostalAddress is the postal address shape shared by requests and responses.
type PostalAddress struct {
	RegionCode         string   `json:"regionCode,omitempty"`
	LanguageCode       string   `json:"languageCode,omitempty"`
	PostalCode         string   `json:"postalCode,omitempty"`
	AdministrativeArea string   `json:"administrativeArea,omitempty"`
	Locality           string   `json:"locality,omitempty"`
	AddressLines       []string `json:"addressLines,omitempty"`
}

// NewValidationRequest maps an input row onto the request shape.
func NewValidationRequest(rec InputRecord) ValidationRequest {
	return ValidationRequest{
		Address: PostalAddress{
			RegionCode:         RegionUS,
			Locality:           rec.City,
			AdministrativeArea: rec.State,
			PostalCode:         rec.PostalCode,
			AddressLines:       []string{rec.AddressLine()},
		},
		EnableUspsCass: true,
	}
}
