package main

import (
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/imkonsowa/restaurants-ordering/apperrors"
	"github.com/imkonsowa/restaurants-ordering/square"
)

func (a *Agent) squareFail(c *gin.Context, op string, err error) {
	slog.Error("square request failed", "op", op, "error", err)
	if square.IsAPIError(err) {
		a.metrics.RecordUpstreamError("square")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	if !apperrors.IsValidation(err) && apperrors.ServiceOf(err) == "" {
		err = apperrors.Upstream("square", op, err)
	}

	a.fail(c, err)
}

func rawJSON(c *gin.Context, body json.RawMessage) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func (a *Agent) createCatalogItem(c *gin.Context) {
	var req CatalogCreateRequest
	if !a.bind(c, &req) {
		return
	}
	if err := required("name", req.Name); err != nil {
		a.fail(c, err)
		return
	}

	// prices arrive in major units, Square stores cents
	amount := int64(math.Round(req.Price * 100))
	body, err := a.squareFor(c).UpsertItem(c, req.Name, amount, req.Currency)
	if err != nil {
		a.squareFail(c, "creating catalog item", err)
		return
	}

	rawJSON(c, body)
}

func (a *Agent) listCatalog(c *gin.Context) {
	var req CatalogListRequest
	if !a.bind(c, &req) {
		return
	}

	body, err := a.squareFor(c).ListCatalog(c, req.Types)
	if err != nil {
		a.squareFail(c, "listing catalog", err)
		return
	}

	rawJSON(c, body)
}

func (a *Agent) deleteCatalogObjects(c *gin.Context) {
	var req CatalogDeleteRequest
	if !a.bind(c, &req) {
		return
	}
	if len(req.IDs) == 0 {
		a.fail(c, apperrors.Invalid("catalog_object_id", "is required"))
		return
	}

	body, err := a.squareFor(c).DeleteObjects(c, req.IDs)
	if err != nil {
		a.squareFail(c, "deleting catalog objects", err)
		return
	}

	rawJSON(c, body)
}

func (a *Agent) createCatalogImage(c *gin.Context) {
	objectID := c.PostForm("catalog_object_id")
	if err := required("catalog_object_id", objectID); err != nil {
		a.fail(c, err)
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		a.fail(c, apperrors.Invalid("image", "is required"))
		return
	}
	contentType := header.Header.Get("Content-Type")
	if err := square.ValidateImageContentType(contentType); err != nil {
		a.fail(c, err)
		return
	}

	file, err := header.Open()
	if err != nil {
		a.fail(c, apperrors.Invalid("image", err.Error()))
		return
	}
	defer file.Close()

	body, err := a.squareFor(c).CreateImage(c, objectID, c.PostForm("caption"), header.Filename, contentType, file)
	if err != nil {
		a.squareFail(c, "creating catalog image", err)
		return
	}

	rawJSON(c, body)
}

type orderLine struct {
	Name           string        `json:"name"`
	DishName       string        `json:"dish name"`
	Quantity       json.Number   `json:"quantity"`
	BasePriceMoney *square.Money `json:"base_price_money"`
	BasePrice      *square.Money `json:"base price"`
	Note           string        `json:"note"`
}

// parseLineItems reads the orders field, accepting both Square line items and
// the order summary shape ({"dish name", "quantity", "base price"}).
func parseLineItems(raw string) ([]square.LineItem, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, apperrors.Invalid("orders", "is required")
	}

	var lines []orderLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil, apperrors.Invalid("orders", err.Error())
	}
	if len(lines) == 0 {
		return nil, apperrors.Invalid("orders", "must contain at least one line item")
	}

	items := make([]square.LineItem, 0, len(lines))
	for _, l := range lines {
		item := square.LineItem{Name: l.Name, Quantity: l.Quantity.String(), Note: l.Note}
		if item.Name == "" {
			item.Name = l.DishName
		}
		if item.Quantity == "" {
			item.Quantity = "1"
		}
		switch {
		case l.BasePriceMoney != nil:
			item.BasePriceMoney = *l.BasePriceMoney
		case l.BasePrice != nil:
			item.BasePriceMoney = *l.BasePrice
		}
		if item.BasePriceMoney.Currency == "" {
			item.BasePriceMoney.Currency = "USD"
		}
		if item.Name == "" {
			return nil, apperrors.Invalid("orders", "every line item needs a name")
		}
		items = append(items, item)
	}

	return items, nil
}

func (a *Agent) createOrder(c *gin.Context) {
	var req OrderCreateRequest
	if !a.bind(c, &req) {
		return
	}

	items, err := parseLineItems(req.Orders)
	if err != nil {
		a.fail(c, err)
		return
	}

	client := a.squareFor(c)
	location, err := a.locationFor(c, client)
	if err != nil {
		a.fail(c, err)
		return
	}

	body, err := client.CreateOrder(c, location, items)
	if err != nil {
		a.squareFail(c, "creating order", err)
		return
	}

	rawJSON(c, body)
}

func (a *Agent) getOrder(c *gin.Context) {
	var req OrderRequest
	if !a.bind(c, &req) {
		return
	}
	if err := required("order_id", req.OrderID); err != nil {
		a.fail(c, err)
		return
	}

	body, err := a.squareFor(c).GetOrder(c, req.OrderID)
	if err != nil {
		a.squareFail(c, "getting order", err)
		return
	}

	rawJSON(c, body)
}

func (a *Agent) payOrder(c *gin.Context) {
	var req OrderRequest
	if !a.bind(c, &req) {
		return
	}
	if err := required("order_id", req.OrderID); err != nil {
		a.fail(c, err)
		return
	}

	body, err := a.squareFor(c).PayOrder(c, req.OrderID, req.PaymentIDs)
	if err != nil {
		a.squareFail(c, "paying order", err)
		return
	}

	rawJSON(c, body)
}

func (a *Agent) createPayment(c *gin.Context) {
	var req PaymentCreateRequest
	if !a.bind(c, &req) {
		return
	}
	if err := required("source_id", req.SourceID); err != nil {
		a.fail(c, err)
		return
	}

	client := a.squareFor(c)
	location, err := a.locationFor(c, client)
	if err != nil {
		a.fail(c, err)
		return
	}

	result, err := client.CreatePayment(c, square.PaymentRequest{
		SourceID:   req.SourceID,
		Amount:     req.Amount,
		Tip:        req.Tip,
		Currency:   req.Currency,
		CustomerID: req.CustomerID,
		LocationID: location,
	})
	if err != nil {
		a.squareFail(c, "creating payment", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"body":         result.Body,
		"reference_id": result.ReferenceID,
		"idempotency":  result.IdempotencyKey,
		"status":       "success",
	})
}

func (a *Agent) getPayment(c *gin.Context) {
	var req PaymentRequest
	if !a.bind(c, &req) {
		return
	}
	if err := required("payment_id", req.PaymentID); err != nil {
		a.fail(c, err)
		return
	}

	body, err := a.squareFor(c).GetPayment(c, req.PaymentID)
	if err != nil {
		a.squareFail(c, "getting payment", err)
		return
	}

	rawJSON(c, body)
}

func (a *Agent) cancelPayment(c *gin.Context) {
	var req PaymentRequest
	if !a.bind(c, &req) {
		return
	}
	if err := required("idempotency_key", req.IdempotencyKey); err != nil {
		a.fail(c, err)
		return
	}

	body, err := a.squareFor(c).CancelPaymentByIdempotencyKey(c, req.IdempotencyKey)
	if err != nil {
		a.squareFail(c, "cancelling payment", err)
		return
	}

	rawJSON(c, body)
}

func (a *Agent) completePayment(c *gin.Context) {
	var req PaymentRequest
	if !a.bind(c, &req) {
		return
	}
	if err := required("payment_id", req.PaymentID); err != nil {
		a.fail(c, err)
		return
	}

	body, err := a.squareFor(c).CompletePayment(c, req.PaymentID)
	if err != nil {
		a.squareFail(c, "completing payment", err)
		return
	}

	rawJSON(c, body)
}

func (a *Agent) createCustomer(c *gin.Context) {
	var req CustomerRequest
	if !a.bind(c, &req) {
		return
	}

	body, err := a.squareFor(c).CreateCustomer(c, square.Customer{
		GivenName:    req.FirstName,
		FamilyName:   req.LastName,
		EmailAddress: req.Email,
		PhoneNumber:  req.PhoneNumber,
		Birthday:     req.Birthday,
		ReferenceID:  req.ReferenceID,
		Note:         req.Note,
	})
	if err != nil {
		a.squareFail(c, "creating customer", err)
		return
	}

	rawJSON(c, body)
}

func (a *Agent) createInvoice(c *gin.Context) {
	var req InvoiceRequest
	if !a.bind(c, &req) {
		return
	}
	if err := required("order_id", req.OrderID, "customer_id", req.CustomerID); err != nil {
		a.fail(c, err)
		return
	}

	client := a.squareFor(c)
	location, err := a.locationFor(c, client)
	if err != nil {
		a.fail(c, err)
		return
	}

	body, err := client.CreateInvoice(c, square.InvoiceRequest{
		LocationID:  location,
		OrderID:     req.OrderID,
		CustomerID:  req.CustomerID,
		ReferenceID: req.ReferenceID,
	})
	if err != nil {
		a.squareFail(c, "creating invoice", err)
		return
	}

	rawJSON(c, body)
}

func (a *Agent) getInvoice(c *gin.Context) {
	var req InvoiceRequest
	if !a.bind(c, &req) {
		return
	}
	if err := required("invoice_id", req.InvoiceID); err != nil {
		a.fail(c, err)
		return
	}

	body, err := a.squareFor(c).GetInvoice(c, req.InvoiceID)
	if err != nil {
		a.squareFail(c, "getting invoice", err)
		return
	}

	rawJSON(c, body)
}

func (a *Agent) publishInvoice(c *gin.Context) {
	var req InvoiceRequest
	if !a.bind(c, &req) {
		return
	}
	if err := required("invoice_id", req.InvoiceID); err != nil {
		a.fail(c, err)
		return
	}

	body, err := a.squareFor(c).PublishInvoice(c, req.InvoiceID, req.Version)
	if err != nil {
		a.squareFail(c, "publishing invoice", err)
		return
	}

	rawJSON(c, body)
}

func (a *Agent) cancelInvoice(c *gin.Context) {
	var req InvoiceRequest
	if !a.bind(c, &req) {
		return
	}
	if err := required("invoice_id", req.InvoiceID); err != nil {
		a.fail(c, err)
		return
	}

	body, err := a.squareFor(c).CancelInvoice(c, req.InvoiceID, req.Version)
	if err != nil {
		a.squareFail(c, "cancelling invoice", err)
		return
	}

	rawJSON(c, body)
}
