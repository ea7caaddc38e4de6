// Package fixtures holds the customer data the suites sign in and register with.
package fixtures

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Customer types
const (
	CustomerRegistered = "REGISTERED"
	CustomerGuest      = "GUEST"
)

// Defaults for UniqueEmailAddress
const (
	DefaultEmailName   = "name"
	DefaultEmailDomain = "someurl.com"
)

// Customer is a shopper account
type Customer struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	FirstName string `json:"firstName"`
	Surname   string `json:"surname"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Address is a postal address
type Address struct {
	Line1       string `json:"line1"`
	Line2       string `json:"line2"`
	PostCode    string `json:"postCode"`
	CountryCode string `json:"countryCode"`
}

// DefaultRegisteredCustomer returns the account that exists in every environment
func DefaultRegisteredCustomer() Customer {
	return Customer{
		Type:      CustomerRegistered,
		Title:     "Miss",
		FirstName: "Default Registered",
		Surname:   "Customer",
		FullName:  "Default Registered Customer",
		Email:     "some@email.com",
		Password:  "password",
	}
}

// DefaultUKAddress returns a placeholder address in GB
func DefaultUKAddress() Address {
	return Address{
		Line1:       "address line 1",
		Line2:       "address line 2",
		PostCode:    "post code",
		CountryCode: "GB",
	}
}

// UniqueEmailAddress builds <name>-<YYYYMMDDHH-mmssSSS>-<5 letters>@<domain>.
// Empty arguments use the defaults.
func UniqueEmailAddress(name, domain string) string {
	return uniqueEmailAddress(name, domain, time.Now(), randomLetters(5))
}

func uniqueEmailAddress(name, domain string, now time.Time, suffix string) string {
	if name == "" {
		name = DefaultEmailName
	}
	if domain == "" {
		domain = DefaultEmailDomain
	}
	stamp := now.Format("2006010215-0405") + fmt.Sprintf("%03d", now.Nanosecond()/int(time.Millisecond))
	return fmt.Sprintf("%s-%s-%s@%s", name, stamp, suffix, domain)
}

// randomLetters draws n lowercase letters from fresh random UUIDs
func randomLetters(n int) string {
	var b strings.Builder
	for b.Len() < n {
		id := uuid.New()
		for _, c := range id {
			if b.Len() == n {
				break
			}
			b.WriteByte('a' + c%26)
		}
	}
	return b.String()
}
