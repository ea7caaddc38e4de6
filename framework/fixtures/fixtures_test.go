package fixtures

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

var emailPattern = regexp.MustCompile(`^([a-z.]+)-\d{10}-\d{7}-[a-z]{5}@([a-z.]+)$`)

func TestUniqueEmailAddress_Format(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 7, 42*int(time.Millisecond), time.UTC)

	got := uniqueEmailAddress("", "", now, "abcde")
	assert.Equal(t, "name-2024030914-0507042-abcde@someurl.com", got)

	got = uniqueEmailAddress("jane", "shop.test", now, "vwxyz")
	assert.Equal(t, "jane-2024030914-0507042-vwxyz@shop.test", got)
}

func TestUniqueEmailAddress_Shape(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		name := rapid.StringMatching(`[a-z]{1,8}(\.[a-z]{1,8})?`).Draw(rt, "name")
		domain := rapid.StringMatching(`[a-z]{1,8}\.[a-z]{2,3}`).Draw(rt, "domain")

		got := UniqueEmailAddress(name, domain)
		m := emailPattern.FindStringSubmatch(got)
		if m == nil {
			rt.Fatalf("%q does not match the address pattern", got)
		}
		if m[1] != name || m[2] != domain {
			rt.Fatalf("%q lost name %q or domain %q", got, name, domain)
		}
	})
}

func TestUniqueEmailAddress_Distinct(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		e := UniqueEmailAddress("", "")
		assert.False(t, seen[e], "duplicate %s", e)
		seen[e] = true
	}
}

func TestDefaults(t *testing.T) {
	c := DefaultRegisteredCustomer()
	assert.Equal(t, CustomerRegistered, c.Type)
	assert.Equal(t, c.FirstName+" "+c.Surname, c.FullName)
	assert.Equal(t, "GB", DefaultUKAddress().CountryCode)
}
