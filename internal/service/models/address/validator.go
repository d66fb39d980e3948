package address

import (
	"regexp"

	"github.com/wareline/shipping-svc/internal/service/errs"
)

// MissingFieldSuffix is appended to a quoted field name in missing-key errors.
const MissingFieldSuffix = " field is missing."

// InvalidFieldSuffix is appended to a quoted field name when a present value
// fails its format rule.
const InvalidFieldSuffix = " field is invalid."

// Rules maps a payload field to the pattern its value must match. The exact
// character classes are deployment configuration, not business law, so they
// are injected rather than hard-coded.
type Rules map[string]*regexp.Regexp

// DefaultRules returns the rule set used when the config does not override
// per-field patterns.
func DefaultRules() Rules {
	return Rules{
		FieldName:    regexp.MustCompile(`^[\p{L} '-]{1,30}$`),
		FieldSurname: regexp.MustCompile(`^[\p{L} '-]{1,30}$`),
		FieldStreet:  regexp.MustCompile(`^[\p{L}\p{N} .,/'-]{1,50}$`),
		FieldState:   regexp.MustCompile(`^[\p{L} '-]{0,30}$`),
		FieldZip:     regexp.MustCompile(`^[0-9A-Za-z -]{0,20}$`),
		FieldCountry: regexp.MustCompile(`^[A-Za-z]{2}$`),
		FieldPhone:   regexp.MustCompile(`^\+?[0-9 ()-]{5,30}$`),
	}
}

// Validator performs required-key and per-field format checks on shipping
// address payloads, independent of any order.
type Validator struct {
	rules Rules
}

func NewValidator(rules Rules) *Validator {
	if rules == nil {
		rules = DefaultRules()
	}

	return &Validator{rules: rules}
}

// HasRequiredKeys collects every absent required key into a field -> messages
// map. It returns nil when nothing is missing.
func (v *Validator) HasRequiredKeys(p *Payload) map[string][]string {
	missing := map[string][]string{}
	for _, field := range RequiredFields {
		if _, ok := p.fieldValue(field); !ok {
			missing[field] = []string{"'" + field + "'" + MissingFieldSuffix}
		}
	}

	if len(missing) == 0 {
		return nil
	}

	return missing
}

// InvalidFields collects every present field whose value fails its format
// rule into a field -> messages map. It returns nil when nothing is invalid.
func (v *Validator) InvalidFields(p *Payload) map[string][]string {
	invalid := map[string][]string{}
	for field, rule := range v.rules {
		value, ok := p.fieldValue(field)
		if !ok {
			continue
		}
		if !rule.MatchString(value) {
			invalid[field] = []string{"'" + field + "'" + InvalidFieldSuffix}
		}
	}

	if len(invalid) == 0 {
		return nil
	}

	return invalid
}

// IsAddressValid runs the per-field format rules over the present fields.
func (v *Validator) IsAddressValid(p *Payload) bool {
	return v.InvalidFields(p) == nil
}

// Validate fails with a ValidationError (code 1) aggregating all missing
// required keys and all format violations in one pass.
func (v *Validator) Validate(p *Payload) error {
	fields := v.HasRequiredKeys(p)
	if fields == nil {
		fields = map[string][]string{}
	}
	for field, messages := range v.InvalidFields(p) {
		fields[field] = append(fields[field], messages...)
	}

	if len(fields) == 0 {
		return nil
	}

	return errs.NewValidationError(1, fields)
}
