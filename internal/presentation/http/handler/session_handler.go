package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/billing-api/internal/application/service"
	"github.com/sangkips/billing-api/internal/domain/billing"
	"github.com/sangkips/billing-api/internal/domain/enum"
	"github.com/sangkips/billing-api/internal/presentation/http/dto/request"
	"github.com/sangkips/billing-api/internal/presentation/http/dto/response"
	"github.com/sangkips/billing-api/pkg/apperror"
)

// SessionHandler handles billing session HTTP requests. Every call runs
// while holding the session's lock.
type SessionHandler struct {
	sessions       *service.SessionStore
	billingService *service.BillingService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *service.SessionStore, billingService *service.BillingService) *SessionHandler {
	return &SessionHandler{sessions: sessions, billingService: billingService}
}

// withView runs fn on the session named by :id and answers with its view
func (h *SessionHandler) withView(c *gin.Context, message string, fn func(*billing.Session) error) {
	id, ok := parseUUIDParam(c, "id", "session")
	if !ok {
		return
	}

	var view *service.SessionView
	err := h.sessions.With(id, func(sess *billing.Session) error {
		if err := fn(sess); err != nil {
			return err
		}
		var err error
		view, err = h.billingService.View(c.Request.Context(), sess)
		return err
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, message, view)
}

// Create starts a new session
func (h *SessionHandler) Create(c *gin.Context) {
	sess := h.sessions.Create()

	var view *service.SessionView
	err := h.sessions.With(sess.ID, func(sess *billing.Session) error {
		var err error
		view, err = h.billingService.View(c.Request.Context(), sess)
		return err
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Session created successfully", view)
}

// Get returns the session cart with freshly computed totals
func (h *SessionHandler) Get(c *gin.Context) {
	h.withView(c, "Session retrieved successfully", func(*billing.Session) error { return nil })
}

// Delete discards a session
func (h *SessionHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "session")
	if !ok {
		return
	}

	if !h.sessions.Delete(id) {
		response.Error(c, apperror.NewNotFoundError("Session"))
		return
	}

	response.OK(c, "Session deleted successfully", nil)
}

// AddItem adds a menu item to the cart
func (h *SessionHandler) AddItem(c *gin.Context) {
	var req request.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	h.withView(c, "Item added to cart", func(sess *billing.Session) error {
		return h.billingService.AddItem(c.Request.Context(), sess, req.MenuItemID, req.Quantity)
	})
}

// SetQuantity changes the quantity of a cart line
func (h *SessionHandler) SetQuantity(c *gin.Context) {
	menuItemID, ok := parseUUIDParam(c, "menu_item_id", "menu item")
	if !ok {
		return
	}

	var req request.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	h.withView(c, "Cart updated", func(sess *billing.Session) error {
		return h.billingService.SetQuantity(sess, menuItemID, *req.Quantity)
	})
}

// RemoveItem drops a line from the cart
func (h *SessionHandler) RemoveItem(c *gin.Context) {
	menuItemID, ok := parseUUIDParam(c, "menu_item_id", "menu item")
	if !ok {
		return
	}

	h.withView(c, "Item removed from cart", func(sess *billing.Session) error {
		return h.billingService.RemoveItem(sess, menuItemID)
	})
}

// SetDiscount sets the flat discount
func (h *SessionHandler) SetDiscount(c *gin.Context) {
	var req request.SetDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	h.withView(c, "Discount updated", func(sess *billing.Session) error {
		sess.SetDiscount(*req.Discount)
		return nil
	})
}

// SetPaymentMethod sets or clears the payment method
func (h *SessionHandler) SetPaymentMethod(c *gin.Context) {
	var req request.SetPaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	var method *enum.PaymentMethod
	if req.PaymentMethod != nil && *req.PaymentMethod != "" {
		m, err := enum.ParsePaymentMethod(*req.PaymentMethod)
		if err != nil {
			response.Error(c, apperror.NewValidationError(apperror.FieldError{Field: "payment_method", Message: err.Error()}))
			return
		}
		method = &m
	}

	h.withView(c, "Payment method updated", func(sess *billing.Session) error {
		sess.SetPaymentMethod(method)
		return nil
	})
}

// Save finalizes the cart; {"print": true} also prints the receipt
func (h *SessionHandler) Save(c *gin.Context) {
	var req request.SaveBillRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			response.BadRequest(c, "Invalid request body")
			return
		}
	}

	h.save(c, func(sess *billing.Session) (*service.SaveResult, error) {
		return h.billingService.Save(c.Request.Context(), sess, req.Print)
	})
}

// SaveDraft persists the cart as a draft
func (h *SessionHandler) SaveDraft(c *gin.Context) {
	h.save(c, func(sess *billing.Session) (*service.SaveResult, error) {
		return h.billingService.SaveDraft(c.Request.Context(), sess)
	})
}

func (h *SessionHandler) save(c *gin.Context, fn func(*billing.Session) (*service.SaveResult, error)) {
	id, ok := parseUUIDParam(c, "id", "session")
	if !ok {
		return
	}

	var result *service.SaveResult
	err := h.sessions.With(id, func(sess *billing.Session) error {
		var err error
		result, err = fn(sess)
		return err
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Bill saved successfully"
	if result.Warning != "" {
		message = "Bill saved but printing failed"
	}
	response.OK(c, message, result)
}

// Load replaces the cart with a stored bill
func (h *SessionHandler) Load(c *gin.Context) {
	var req request.LoadBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	h.withView(c, "Bill loaded into session", func(sess *billing.Session) error {
		return h.billingService.Load(c.Request.Context(), sess, req.BillID)
	})
}

// Clear empties the session without touching stored bills
func (h *SessionHandler) Clear(c *gin.Context) {
	h.withView(c, "Session cleared", func(sess *billing.Session) error {
		h.billingService.Clear(sess)
		return nil
	})
}
