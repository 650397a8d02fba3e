package query

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilterEmpty(t *testing.T) {
	f := ParseFilter(url.Values{})
	assert.Empty(t, f.Conditions())
	assert.False(t, f.Constrains(EntityTransaction))
	assert.False(t, f.Constrains(EntityCustomer))
	assert.False(t, f.Constrains(EntityProduct))
}

func TestParseFilterNeverFails(t *testing.T) {
	inputs := []url.Values{
		{},
		{"startDate": {"not-a-date"}, "endDate": {""}},
		{"minAge": {"abc"}, "maxAge": {"12.5"}},
		{"paymentMethod": {""}, "tags": {",,,"}},
		{"gender": {"Female", "Female", "Male"}},
		{"page": {"-3"}, "limit": {"huge"}, "orderBy": {"; DROP TABLE"}},
		{"customerNamePrefix": {"   "}},
		{"unknownParam": {"whatever"}},
	}
	for _, vs := range inputs {
		f := ParseFilter(vs)
		// a malformed input can only widen the predicate, never error
		for _, c := range f.Conditions() {
			assert.NotNil(t, c.Value)
		}
	}

	garbage := ParseFilter(url.Values{
		"startDate": {"13/45/9999"},
		"minAge":    {"NaN"},
		"maxAge":    {"twenty"},
	})
	assert.Empty(t, garbage.Conditions())
}

func TestParseFilterDates(t *testing.T) {
	f := ParseFilter(url.Values{
		"startDate": {"2024-01-01"},
		"endDate":   {"2024-02-01"},
	})
	require.NotNil(t, f.StartDate)
	require.NotNil(t, f.EndDate)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *f.StartDate)

	conds := f.Conditions()
	require.Len(t, conds, 2)
	assert.Equal(t, OpGte, conds[0].Op) // inclusive lower bound
	assert.Equal(t, OpLt, conds[1].Op)  // exclusive upper bound
}

func TestParseFilterListForms(t *testing.T) {
	// repeated keys and comma separated values are interchangeable
	repeated := ParseFilter(url.Values{"customerRegion": {"North", "South"}})
	comma := ParseFilter(url.Values{"customerRegion": {"North,South"}})
	mixed := ParseFilter(url.Values{"customerRegion": {"North, South", "East"}})

	assert.Equal(t, []string{"North", "South"}, repeated.Regions)
	assert.Equal(t, []string{"North", "South"}, comma.Regions)
	assert.Equal(t, []string{"North", "South", "East"}, mixed.Regions)

	scalar := ParseFilter(url.Values{"paymentMethod": {"Cash"}})
	assert.Equal(t, []string{"Cash"}, scalar.PaymentMethods)
}

func TestParseFilterAges(t *testing.T) {
	f := ParseFilter(url.Values{"minAge": {"18"}, "maxAge": {"30"}})
	require.NotNil(t, f.MinAge)
	require.NotNil(t, f.MaxAge)
	assert.Equal(t, 18, *f.MinAge)
	assert.Equal(t, 30, *f.MaxAge)

	lenient := ParseFilter(url.Values{"minAge": {"18"}, "maxAge": {"oops"}})
	require.NotNil(t, lenient.MinAge)
	assert.Nil(t, lenient.MaxAge)
}

func TestConditionsGrouping(t *testing.T) {
	f := ParseFilter(url.Values{
		"gender":          {"Female"},
		"productCategory": {"Electronics"},
		"tags":            {"sale,eco"},
	})
	assert.True(t, f.Constrains(EntityCustomer))
	assert.True(t, f.Constrains(EntityProduct))
	assert.False(t, f.Constrains(EntityTransaction))

	byField := map[string]Condition{}
	for _, c := range f.Conditions() {
		byField[c.Field] = c
	}
	assert.Equal(t, OpIn, byField[FieldGender].Op)
	assert.Equal(t, OpInFold, byField[FieldProductCategory].Op)
	assert.Equal(t, OpHasAllTags, byField[FieldTags].Op)
	assert.Equal(t, []string{"sale", "eco"}, byField[FieldTags].Value)
}

func TestFilterRoundTrip(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	minAge, maxAge := 21, 65
	f := Filter{
		StartDate:      &start,
		EndDate:        &end,
		PaymentMethods: []string{"Cash", "UPI"},
		Genders:        []string{"Other"},
		Regions:        []string{"West", "Central"},
		MinAge:         &minAge,
		MaxAge:         &maxAge,
		NamePrefix:     "An",
		PhonePrefix:    "+91",
		Categories:     []string{"Beauty"},
		Tags:           []string{"gift", "premium"},
	}

	decoded := ParseFilter(f.Values())
	assert.Equal(t, f, decoded)
	assert.Equal(t, f.Conditions(), decoded.Conditions())
}
