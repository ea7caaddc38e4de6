package registration

import (
	"dario.cat/mergo"

	"github.com/redhat/browser-e2e-tests/test/framework/fixtures"
)

// Entry point values the customer service expects from test traffic
const (
	EntryPointID   = 111
	ManagedGroupID = 20
)

// DefaultPassword is used when a request leaves the password empty
const DefaultPassword = "password"

// Request describes the customer to register. Zero fields take their values
// from DefaultRequest; a non-zero Customer or Address is used as is.
type Request struct {
	Email          string
	Password       string
	Customer       fixtures.Customer
	Address        fixtures.Address
	DPA1984Consent bool
	DPA2003Consent bool
}

// DefaultRequest registers the default customer at the default UK address
// under a fresh e-mail address
func DefaultRequest() Request {
	return Request{
		Email:    fixtures.UniqueEmailAddress("", ""),
		Password: DefaultPassword,
		Customer: fixtures.DefaultRegisteredCustomer(),
		Address:  fixtures.DefaultUKAddress(),
	}
}

// withDefaults fills zero fields from DefaultRequest. Customer and Address
// are replaced as a whole: a partly set customer is sent as given.
func (r Request) withDefaults() (Request, error) {
	defaults := DefaultRequest()
	if r.Customer != (fixtures.Customer{}) {
		defaults.Customer = fixtures.Customer{}
	}
	if r.Address != (fixtures.Address{}) {
		defaults.Address = fixtures.Address{}
	}
	if err := mergo.Merge(&r, defaults); err != nil {
		return r, err
	}
	return r, nil
}

// Payload is the Register request body
type Payload struct {
	Credentials                        Credentials                        `json:"Credentials"`
	CustomerType                       CustomerType                       `json:"CustomerType"`
	DataProtectionInformationIndicator DataProtectionInformationIndicator `json:"DataProtectionInformationIndicator"`
}

type Credentials struct {
	EmailAddress   string         `json:"EmailAddress"`
	Password       string         `json:"Password"`
	EntryParameter EntryParameter `json:"EntryParameter"`
}

type EntryParameter struct {
	EntryPointID   int `json:"entryPointId"`
	ManagedGroupID int `json:"managedGroupId"`
}

type CustomerType struct {
	Address  PostalAddress `json:"Address"`
	ForeName string        `json:"ForeName"`
	SurName  string        `json:"SurName"`
}

type PostalAddress struct {
	PostCode    string `json:"PostCode"`
	CountryCode string `json:"CountryCode"`
	Line1       string `json:"Line1"`
	Line2       string `json:"Line2"`
}

type DataProtectionInformationIndicator struct {
	DataProtectionAct1984ConsentIndicator bool `json:"DataProtectionAct1984ConsentIndicator"`
	DataProtectionAct2003ConsentIndicator bool `json:"DataProtectionAct2003ConsentIndicator"`
}

// NewPayload maps a request onto the service's body layout
func NewPayload(r Request) Payload {
	return Payload{
		Credentials: Credentials{
			EmailAddress: r.Email,
			Password:     r.Password,
			EntryParameter: EntryParameter{
				EntryPointID:   EntryPointID,
				ManagedGroupID: ManagedGroupID,
			},
		},
		CustomerType: CustomerType{
			Address: PostalAddress{
				PostCode:    r.Address.PostCode,
				CountryCode: r.Address.CountryCode,
				Line1:       r.Address.Line1,
				Line2:       r.Address.Line2,
			},
			ForeName: r.Customer.FirstName,
			SurName:  r.Customer.Surname,
		},
		DataProtectionInformationIndicator: DataProtectionInformationIndicator{
			DataProtectionAct1984ConsentIndicator: r.DPA1984Consent,
			DataProtectionAct2003ConsentIndicator: r.DPA2003Consent,
		},
	}
}
