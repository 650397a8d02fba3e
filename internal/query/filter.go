package query

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Entity identifies which table a condition constrains.
type Entity int

const (
	EntityTransaction Entity = iota
	EntityCustomer
	EntityProduct
)

// Op is the comparison a condition applies to its field.
type Op int

const (
	OpGte        Op = iota // field >= value
	OpLt                   // field < value
	OpLte                  // field <= value
	OpIn                   // field in set, case sensitive
	OpInFold               // field in set, case insensitive
	OpPrefixFold           // field starts with value, case insensitive
	OpHasAllTags           // tag array contains every value
)

// Fields a condition may reference, named after their columns.
const (
	FieldDate            = "date"
	FieldPaymentMethod   = "payment_method"
	FieldGender          = "gender"
	FieldCustomerRegion  = "customer_region"
	FieldAge             = "age"
	FieldCustomerName    = "customer_name"
	FieldPhoneNumber     = "phone_number"
	FieldProductCategory = "product_category"
	FieldTags            = "tags"
)

// Condition is one constraint of a predicate. Value holds a time.Time for
// date bounds, an int for age bounds, a string for prefixes and a []string
// for membership and tag tests. Conditions are combined with AND.
type Condition struct {
	Entity Entity
	Field  string
	Op     Op
	Value  any
}

// Filter is the structured form of the recognized query parameters. A zero
// Filter matches everything; nil/empty members mean "unconstrained".
type Filter struct {
	StartDate      *time.Time
	EndDate        *time.Time
	PaymentMethods []string
	Genders        []string
	Regions        []string
	MinAge         *int
	MaxAge         *int
	NamePrefix     string
	PhonePrefix    string
	Categories     []string
	Tags           []string
}

// ParseFilter builds a Filter from raw query parameters. It is total: any
// input shape yields a usable filter. Malformed numeric or date values drop
// the bound instead of failing, so the worst case is an overly permissive
// predicate. List parameters accept repeated keys and comma separated values
// interchangeably.
func ParseFilter(vs url.Values) Filter {
	return Filter{
		StartDate:      parseTime(vs.Get("startDate")),
		EndDate:        parseTime(vs.Get("endDate")),
		PaymentMethods: listValues(vs, "paymentMethod"),
		Genders:        listValues(vs, "gender"),
		Regions:        listValues(vs, "customerRegion"),
		MinAge:         parseInt(vs.Get("minAge")),
		MaxAge:         parseInt(vs.Get("maxAge")),
		NamePrefix:     strings.TrimSpace(vs.Get("customerNamePrefix")),
		PhonePrefix:    strings.TrimSpace(vs.Get("phonePrefix")),
		Categories:     listValues(vs, "productCategory"),
		Tags:           listValues(vs, "tags"),
	}
}

// Conditions flattens the filter into its condition fragments. Absent fields
// contribute nothing, so an empty filter yields an empty (match-all) slice.
func (f Filter) Conditions() []Condition {
	var conds []Condition
	if f.StartDate != nil {
		conds = append(conds, Condition{EntityTransaction, FieldDate, OpGte, *f.StartDate})
	}
	if f.EndDate != nil {
		conds = append(conds, Condition{EntityTransaction, FieldDate, OpLt, *f.EndDate})
	}
	if len(f.PaymentMethods) > 0 {
		conds = append(conds, Condition{EntityTransaction, FieldPaymentMethod, OpInFold, f.PaymentMethods})
	}
	if len(f.Genders) > 0 {
		conds = append(conds, Condition{EntityCustomer, FieldGender, OpIn, f.Genders})
	}
	if len(f.Regions) > 0 {
		conds = append(conds, Condition{EntityCustomer, FieldCustomerRegion, OpIn, f.Regions})
	}
	if f.MinAge != nil {
		conds = append(conds, Condition{EntityCustomer, FieldAge, OpGte, *f.MinAge})
	}
	if f.MaxAge != nil {
		conds = append(conds, Condition{EntityCustomer, FieldAge, OpLte, *f.MaxAge})
	}
	if f.NamePrefix != "" {
		conds = append(conds, Condition{EntityCustomer, FieldCustomerName, OpPrefixFold, f.NamePrefix})
	}
	if f.PhonePrefix != "" {
		conds = append(conds, Condition{EntityCustomer, FieldPhoneNumber, OpPrefixFold, f.PhonePrefix})
	}
	if len(f.Categories) > 0 {
		conds = append(conds, Condition{EntityProduct, FieldProductCategory, OpInFold, f.Categories})
	}
	if len(f.Tags) > 0 {
		conds = append(conds, Condition{EntityProduct, FieldTags, OpHasAllTags, f.Tags})
	}
	return conds
}

// Constrains reports whether any condition targets the given entity. Repos
// use it to decide which joins a count or aggregate query needs.
func (f Filter) Constrains(e Entity) bool {
	for _, c := range f.Conditions() {
		if c.Entity == e {
			return true
		}
	}
	return false
}

// Values encodes the filter back to the wire parameter vocabulary, the same
// one the frontend codec produces. ParseFilter(f.Values()) is equivalent to f.
func (f Filter) Values() url.Values {
	vs := url.Values{}
	if f.StartDate != nil {
		vs.Set("startDate", f.StartDate.Format(time.RFC3339))
	}
	if f.EndDate != nil {
		vs.Set("endDate", f.EndDate.Format(time.RFC3339))
	}
	for _, v := range f.PaymentMethods {
		vs.Add("paymentMethod", v)
	}
	for _, v := range f.Genders {
		vs.Add("gender", v)
	}
	for _, v := range f.Regions {
		vs.Add("customerRegion", v)
	}
	if f.MinAge != nil {
		vs.Set("minAge", strconv.Itoa(*f.MinAge))
	}
	if f.MaxAge != nil {
		vs.Set("maxAge", strconv.Itoa(*f.MaxAge))
	}
	if f.NamePrefix != "" {
		vs.Set("customerNamePrefix", f.NamePrefix)
	}
	if f.PhonePrefix != "" {
		vs.Set("phonePrefix", f.PhonePrefix)
	}
	for _, v := range f.Categories {
		vs.Add("productCategory", v)
	}
	for _, v := range f.Tags {
		vs.Add("tags", v)
	}
	return vs
}

// listValues collects every occurrence of key, splitting comma separated
// entries, trimming whitespace and dropping empties. A single scalar becomes
// a one element set.
func listValues(vs url.Values, key string) []string {
	raw, ok := vs[key]
	if !ok {
		return nil
	}
	var out []string
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

func parseTime(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	// unparseable dates mean "no bound", same leniency as numeric inputs
	return nil
}

func parseInt(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
