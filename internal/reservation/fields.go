package reservation

import "unicode/utf8"

type Field string

const (
	Name            Field = "name"
	Email           Field = "email"
	Phone           Field = "phone"
	Date            Field = "date"
	Time            Field = "time"
	Guests          Field = "guests"
	Occasion        Field = "occasion"
	SpecialRequests Field = "specialRequests"
)

// Fields lists every form field in display order.
var Fields = []Field{Name, Email, Phone, Date, Time, Guests, Occasion, SpecialRequests}

// Required fields must be non-empty for the form to be submittable.
var Required = []Field{Name, Email, Phone, Date, Time, Guests}

const MaxSpecialRequests = 500

// Occasions are the choices offered for the optional occasion field.
var Occasions = []string{"none", "birthday", "anniversary", "date", "business", "special"}

func ParseField(s string) (Field, bool) {
	for _, f := range Fields {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// Values holds the raw form input keyed by field.
type Values map[Field]string

// Errors maps a field to its message. A missing key means the field is valid.
type Errors map[Field]string

func defaultValues() Values {
	v := make(Values, len(Fields))
	for _, f := range Fields {
		v[f] = ""
	}
	v[Guests] = "2"
	v[Occasion] = "none"
	return v
}

func (v Values) clone() Values {
	out := make(Values, len(v))
	for k, s := range v {
		out[k] = s
	}
	return out
}

func (e Errors) clone() Errors {
	out := make(Errors, len(e))
	for k, s := range e {
		out[k] = s
	}
	return out
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
