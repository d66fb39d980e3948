package address

// Field names of the shipping address payload.
const (
	FieldName      = "name"
	FieldSurname   = "surname"
	FieldStreet    = "street"
	FieldState     = "state"
	FieldZip       = "zip"
	FieldCountry   = "country"
	FieldPhone     = "phone"
	FieldIsExpress = "is_express"
)

// RequiredFields lists the payload keys that must always be present.
var RequiredFields = []string{
	FieldName, FieldSurname, FieldStreet, FieldCountry, FieldPhone, FieldIsExpress,
}

// Payload is the decoded shipping address request body. Pointer fields
// distinguish absent keys from empty values; IsExpress accepts either a JSON
// boolean or a "y"/"n" string and is normalized later by enums.ParseFlag.
type Payload struct {
	Name      *string     `json:"name"`
	Surname   *string     `json:"surname"`
	Street    *string     `json:"street"`
	State     *string     `json:"state"`
	Zip       *string     `json:"zip"`
	Country   *string     `json:"country"`
	Phone     *string     `json:"phone"`
	IsExpress interface{} `json:"is_express"`
}

// fieldValue returns the payload value for a field name and whether the key
// was present in the request.
func (p *Payload) fieldValue(field string) (string, bool) {
	lookup := map[string]*string{
		FieldName:    p.Name,
		FieldSurname: p.Surname,
		FieldStreet:  p.Street,
		FieldState:   p.State,
		FieldZip:     p.Zip,
		FieldCountry: p.Country,
		FieldPhone:   p.Phone,
	}

	if field == FieldIsExpress {
		if p.IsExpress == nil {
			return "", false
		}

		return "", true
	}

	v, ok := lookup[field]
	if v == nil || !ok {
		return "", false
	}

	return *v, true
}
