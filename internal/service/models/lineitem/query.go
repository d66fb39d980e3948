package lineitem

// QueryLineItemsModel represents filter parameters for querying line items.
type QueryLineItemsModel struct {
	Ids         []int64 `json:"ids,omitempty"`
	OrderIds    []int64 `json:"orderIds,omitempty"`
	ProductIds  []int64 `json:"productIds,omitempty"`
	CustomerIds []int64 `json:"customerIds,omitempty"`
	Limit       int     `json:"limit,omitempty"`
	Offset      int     `json:"offset,omitempty"`
}
