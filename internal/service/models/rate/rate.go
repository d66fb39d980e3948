package rate

import "github.com/wareline/shipping-svc/internal/service/models/enums"

// Rate is one row of the shipping rate table, keyed by product type,
// domestic/international region, standard/express speed and whether the unit
// is an additional (non-first) unit of the same product within an order.
// The table is a pure lookup, never mutated at runtime.
type Rate struct {
	ID           int64      `json:"id"`
	ProductType  string     `json:"productType"`
	IsDomestic   enums.Flag `json:"isDomestic"`
	IsExpress    enums.Flag `json:"isExpress"`
	IsAdditional enums.Flag `json:"isAdditional"`
	Cost         int64      `json:"cost"`
}
