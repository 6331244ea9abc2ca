package models

import (
	"fmt"
	"time"
)

// Ingredient is one row of the kitchen inventory. It is read fresh on every
// chat turn and menu request.
type Ingredient struct {
	ID                uint64    `gorm:"primaryKey" json:"-"`
	CreatedAt         time.Time `json:"-"`
	Name              string    `gorm:"column:ingredient_name;uniqueIndex;not null" json:"name"`
	IngredientType    string    `json:"ingredient_type"`
	IngredientSubType string    `json:"ingredient_sub_type"`
	ShelfLifeDays     int       `json:"shelf_life_days"`
	Quantity          float64   `json:"quantity"`
	Unit              string    `json:"unit"`
	UnitPrice         float64   `gorm:"column:unitprice" json:"unit_price"`
}

func (i *Ingredient) TableName() string {
	return "ingredients"
}

func (i *Ingredient) Stringify() string {
	return fmt.Sprintf("Ingredient: %s, Type: %s/%s, Quantity: %.2f %s, Shelf life: %d days, Unit price: %.2f",
		i.Name, i.IngredientType, i.IngredientSubType, i.Quantity, i.Unit, i.ShelfLifeDays, i.UnitPrice)
}

// MenuEntry is a sellable catalog item. Price is in major currency units.
type MenuEntry struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency,omitempty"`
}

func (m *MenuEntry) Stringify() string {
	return fmt.Sprintf("MenuItem: %s, Price: %.2f %s", m.Name, m.Price, m.Currency)
}

// EventRecord is an event received by the ledger from the message bus.
type EventRecord struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	Kind       string    `gorm:"index" json:"kind"`
	Subject    string    `json:"subject"`
	Payload    string    `gorm:"type:text" json:"payload"`
	OccurredAt time.Time `json:"occurred_at"`
	ReceivedAt time.Time `json:"received_at"`
}

func (e *EventRecord) TableName() string {
	return "order_events"
}
