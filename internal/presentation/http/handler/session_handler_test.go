package handler_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionHandler_CartTotals(t *testing.T) {
	r := newTestRouter(t)
	id := newCart(t, r)

	var sess sessionJSON
	w := do(t, r, http.MethodGet, "/api/v1/sessions/"+id.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &sess)

	assert.Equal(t, 2, sess.ItemCount)
	assert.Equal(t, 200.0, sess.Subtotal)
	assert.Equal(t, 10.0, sess.TaxAmount)
	assert.Equal(t, 10.0, sess.Discount)
	assert.Equal(t, 200.0, sess.Total)
	assert.Nil(t, sess.BillID)
}

func TestSessionHandler_SaveFlow(t *testing.T) {
	r := newTestRouter(t)
	id := newCart(t, r)

	w := do(t, r, http.MethodPost, "/api/v1/sessions/"+id.String()+"/save", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result saveJSON
	decode(t, w, &result)
	assert.Equal(t, "saved", result.Bill.Status)
	assert.Equal(t, int64(1), result.Bill.BillNumber)
	assert.Equal(t, 200.0, result.Bill.Total)
	assert.Empty(t, result.Drafts)
	assert.NotNil(t, result.Drafts)
	assert.Equal(t, 200.0, result.TodayRevenue.TotalRevenue)
	assert.Equal(t, 1, result.TodayRevenue.BillCount)
	require.NotNil(t, result.Session.BillID)
	assert.Equal(t, result.Bill.ID, *result.Session.BillID)

	// saving again updates the bound bill instead of creating another
	w = do(t, r, http.MethodPost, "/api/v1/sessions/"+id.String()+"/save", map[string]interface{}{"print": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &result)
	assert.Equal(t, "printed", result.Bill.Status)
	assert.Equal(t, int64(1), result.Bill.BillNumber)
	assert.Empty(t, result.Warning)
	assert.Equal(t, 1, result.TodayRevenue.BillCount)
}

func TestSessionHandler_SaveEmptyCart(t *testing.T) {
	r := newTestRouter(t)

	var sess sessionJSON
	decode(t, do(t, r, http.MethodPost, "/api/v1/sessions", nil), &sess)

	w := do(t, r, http.MethodPost, "/api/v1/sessions/"+sess.ID.String()+"/save", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	env := decode(t, w, nil)
	assert.False(t, env.Success)
	assert.Equal(t, "Cart is empty", env.Message)
}

func TestSessionHandler_IdempotentSave(t *testing.T) {
	r := newTestRouter(t)
	id := newCart(t, r)
	path := "/api/v1/sessions/" + id.String() + "/save"

	first := do(t, r, http.MethodPost, path, nil, "Idempotency-Key", "till-1-0001")
	require.Equal(t, http.StatusOK, first.Code)

	second := do(t, r, http.MethodPost, path, nil, "Idempotency-Key", "till-1-0001")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	var page struct {
		Items      []billJSON `json:"items"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	decode(t, do(t, r, http.MethodGet, "/api/v1/bills", nil), &page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(1), page.Pagination.Total)
	assert.Equal(t, "saved", page.Items[0].Status)
}

func TestSessionHandler_DraftLoadClear(t *testing.T) {
	r := newTestRouter(t)
	id := newCart(t, r)
	base := "/api/v1/sessions/" + id.String()

	w := do(t, r, http.MethodPost, base+"/draft", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result saveJSON
	decode(t, w, &result)
	assert.Equal(t, "draft", result.Bill.Status)
	require.Len(t, result.Drafts, 1)
	assert.Zero(t, result.TodayRevenue.BillCount, "drafts are not revenue")

	w = do(t, r, http.MethodPost, base+"/clear", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var sess sessionJSON
	decode(t, w, &sess)
	assert.Zero(t, sess.ItemCount)
	assert.Nil(t, sess.BillID)

	w = do(t, r, http.MethodPost, base+"/load", map[string]interface{}{"bill_id": result.Bill.ID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &sess)
	require.Len(t, sess.Items, 1)
	assert.Equal(t, "Thali", sess.Items[0].Name)
	assert.Equal(t, "Uncategorized", sess.Items[0].Category)
	assert.Equal(t, 2, sess.Items[0].Quantity)
	assert.Equal(t, 10.0, sess.Discount)
	assert.Equal(t, 200.0, sess.Total)
	require.NotNil(t, sess.BillID)
	assert.Equal(t, result.Bill.ID, *sess.BillID)

	w = do(t, r, http.MethodPost, base+"/load", map[string]interface{}{"bill_id": uuid.New()})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionHandler_CartEdits(t *testing.T) {
	r := newTestRouter(t)
	item := createMenuItem(t, r, "Tea", 10)

	var sess sessionJSON
	decode(t, do(t, r, http.MethodPost, "/api/v1/sessions", nil), &sess)
	base := "/api/v1/sessions/" + sess.ID.String()

	w := do(t, r, http.MethodPost, base+"/items", map[string]interface{}{"menu_item_id": item.ID})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &sess)
	assert.Equal(t, 1, sess.ItemCount, "quantity defaults to one")

	w = do(t, r, http.MethodPut, base+"/items/"+item.ID.String(), map[string]interface{}{"quantity": 4})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &sess)
	assert.Equal(t, 40.0, sess.Subtotal)

	w = do(t, r, http.MethodPut, base+"/items/"+item.ID.String(), map[string]interface{}{"quantity": -1})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, r, http.MethodDelete, base+"/items/"+item.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &sess)
	assert.Zero(t, sess.ItemCount)

	w = do(t, r, http.MethodDelete, base+"/items/"+item.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodPut, base+"/payment-method", map[string]interface{}{"payment_method": "cheque"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, r, http.MethodPost, base+"/items", map[string]interface{}{"menu_item_id": uuid.New()})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionHandler_UnknownSession(t *testing.T) {
	r := newTestRouter(t)

	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/api/v1/sessions/"+uuid.NewString(), nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/api/v1/sessions/abc", nil).Code)

	var sess sessionJSON
	decode(t, do(t, r, http.MethodPost, "/api/v1/sessions", nil), &sess)
	assert.Equal(t, http.StatusOK, do(t, r, http.MethodDelete, "/api/v1/sessions/"+sess.ID.String(), nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodDelete, "/api/v1/sessions/"+sess.ID.String(), nil).Code)
}
