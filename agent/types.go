package main

import (
	"strings"

	"github.com/imkonsowa/restaurants-ordering/apperrors"
	"github.com/imkonsowa/restaurants-ordering/models"
)

// rawHistory captures the history field untouched, whether it arrives as a
// JSON array, a JSON string or a form value.
type rawHistory string

func (h *rawHistory) UnmarshalJSON(data []byte) error {
	*h = rawHistory(data)
	return nil
}

func (h *rawHistory) UnmarshalParam(param string) error {
	*h = rawHistory(param)
	return nil
}

func (h rawHistory) Parse() (models.History, error) {
	history, err := models.ParseHistory(string(h))
	if err != nil {
		return nil, apperrors.Invalid("history", err.Error())
	}

	return history, nil
}

type ChatRequest struct {
	Message string     `form:"message" json:"message"`
	History rawHistory `form:"history" json:"history"`
}

type SummaryRequest struct {
	History rawHistory `form:"history" json:"history"`
}

type MenuRequest struct {
	PreferredCuisine  string `form:"preferred_cuisine" json:"preferred_cuisine"`
	PrepTimeBreakfast string `form:"prep_time_breakfast" json:"prep_time_breakfast"`
	PrepTimeLunch     string `form:"prep_time_lunch" json:"prep_time_lunch"`
	PrepTimeDinner    string `form:"prep_time_dinner" json:"prep_time_dinner"`
	CookTimeBreakfast string `form:"cook_time_breakfast" json:"cook_time_breakfast"`
	CookTimeLunch     string `form:"cook_time_lunch" json:"cook_time_lunch"`
	CookTimeDinner    string `form:"cook_time_dinner" json:"cook_time_dinner"`
}

type DishRequest struct {
	DishName         string `form:"dish_name" json:"dish_name"`
	PreferredCuisine string `form:"preferred_cuisine" json:"preferred_cuisine"`
}

type IngredientRequest struct {
	Name              string  `form:"name" json:"name"`
	IngredientName    string  `form:"ingredient_name" json:"ingredient_name"`
	IngredientType    string  `form:"ingredient_type" json:"ingredient_type"`
	IngredientSubType string  `form:"ingredient_sub_type" json:"ingredient_sub_type"`
	ShelfLifeDays     int     `form:"shelf_life_days" json:"shelf_life_days"`
	Quantity          float64 `form:"quantity" json:"quantity"`
	Unit              string  `form:"unit" json:"unit"`
	UnitPrice         float64 `form:"unit_price" json:"unit_price"`
}

// ToModel accepts both the name and the older ingredient_name field.
func (r *IngredientRequest) ToModel() *models.Ingredient {
	name := r.Name
	if name == "" {
		name = r.IngredientName
	}

	return &models.Ingredient{
		Name:              strings.TrimSpace(name),
		IngredientType:    r.IngredientType,
		IngredientSubType: r.IngredientSubType,
		ShelfLifeDays:     r.ShelfLifeDays,
		Quantity:          r.Quantity,
		Unit:              r.Unit,
		UnitPrice:         r.UnitPrice,
	}
}

type CatalogCreateRequest struct {
	Name     string  `form:"name" json:"name"`
	Price    float64 `form:"price" json:"price"`
	Currency string  `form:"currency" json:"currency"`
}

type CatalogListRequest struct {
	Types []string `form:"types" json:"types"`
}

type CatalogDeleteRequest struct {
	IDs []string `form:"catalog_object_id" json:"catalog_object_id"`
}

type OrderCreateRequest struct {
	Orders string `form:"orders" json:"orders"`
}

type OrderRequest struct {
	OrderID    string   `form:"order_id" json:"order_id"`
	PaymentIDs []string `form:"payment_ids" json:"payment_ids"`
}

type PaymentCreateRequest struct {
	SourceID   string `form:"source_id" json:"source_id"`
	Amount     int64  `form:"amount" json:"amount"`
	Currency   string `form:"currency" json:"currency"`
	Tip        int64  `form:"tip" json:"tip"`
	CustomerID string `form:"customer_id" json:"customer_id"`
}

type PaymentRequest struct {
	PaymentID      string `form:"payment_id" json:"payment_id"`
	IdempotencyKey string `form:"idempotency_key" json:"idempotency_key"`
}

type CustomerRequest struct {
	FirstName   string `form:"first_name" json:"first_name"`
	LastName    string `form:"last_name" json:"last_name"`
	Email       string `form:"email" json:"email"`
	PhoneNumber string `form:"phone_number" json:"phone_number"`
	Birthday    string `form:"birthday" json:"birthday"`
	ReferenceID string `form:"reference_id" json:"reference_id"`
	Note        string `form:"note" json:"note"`
}

type InvoiceRequest struct {
	InvoiceID   string `form:"invoice_id" json:"invoice_id"`
	OrderID     string `form:"order_id" json:"order_id"`
	CustomerID  string `form:"customer_id" json:"customer_id"`
	ReferenceID string `form:"reference_id" json:"reference_id"`
	Version     int    `form:"version" json:"version"`
}

// required returns a validation error for the first empty value of the
// name/value pairs.
func required(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			return apperrors.Invalid(pairs[i], "is required")
		}
	}

	return nil
}
