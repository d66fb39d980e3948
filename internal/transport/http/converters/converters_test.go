package converters

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wareline/shipping-svc/internal/service/errs"
	"github.com/wareline/shipping-svc/internal/service/models/enums"
	"github.com/wareline/shipping-svc/internal/service/models/lineitem"
	"github.com/wareline/shipping-svc/internal/service/models/order"
)

func TestWriteErrorNotFound(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(rec, &errs.NotFoundError{Field: "id", Message: "invalid user"})

	assert.Equal(t, 404, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]string{"id": "invalid user"}, body)
}

func TestWriteErrorValidation(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(rec, errs.NewValidationError(1, map[string][]string{
		"name":  {"'name' field is missing."},
		"phone": {"'phone' field is missing."},
	}))

	assert.Equal(t, 400, rec.Code)

	var body map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"'name' field is missing."}, body["name"])
	assert.Equal(t, []string{"'phone' field is missing."}, body["phone"])
}

func TestWriteErrorEligibility(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(rec, &errs.EligibilityError{
		Code:    errs.CodeExpressOnlyInDomesticRegion,
		Field:   "is_express",
		Message: "Express shipping is allowed only in domestic regions.",
	})

	assert.Equal(t, 400, rec.Code)

	var body map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"Express shipping is allowed only in domestic regions."}, body["is_express"])
}

func TestWriteErrorState(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(rec, &errs.StateError{Field: "status", Message: "Must have at least 1 product."})

	assert.Equal(t, 400, rec.Code)
}

func TestWriteErrorUnknown(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(rec, errors.New("connection refused"))

	assert.Equal(t, 500, rec.Code)
}

func TestToOrderView(t *testing.T) {
	cost := int64(500)
	o := &order.Order{
		ID:         7,
		CustomerID: 1,
		Status:     order.StatusDraft,
		IsDomestic: enums.FlagYes,
		IsExpress:  enums.FlagNo,
		TotalCost:  &cost,
		Name:       "John",
		LineItems: []lineitem.LineItem{
			{ID: 1, OrderID: 7, ProductTitle: "Just a T-shirt", ProductCost: 100},
		},
	}

	view := ToOrderView(o, true)
	assert.Equal(t, int64(7), view.ID)
	assert.Equal(t, "draft", view.Status)
	assert.Equal(t, "y", view.IsDomestic)
	assert.Equal(t, "n", view.IsExpress)
	assert.Equal(t, int64(500), *view.TotalCost)
	require.Len(t, view.Products, 1)
	assert.Equal(t, "Just a T-shirt", view.Products[0].ProductTitle)

	bare := ToOrderView(o, false)
	assert.Empty(t, bare.Products)
}

func TestOrderViewOmitsUnsetFields(t *testing.T) {
	view := ToOrderView(&order.Order{ID: 7, Status: order.StatusDraft}, false)

	raw, err := json.Marshal(view)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.NotContains(t, decoded, "is_domestic")
	assert.NotContains(t, decoded, "total_cost")
	assert.NotContains(t, decoded, "name")
}
