package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/imkonsowa/restaurants-ordering/events"
	"github.com/imkonsowa/restaurants-ordering/models"
)

func (a *Agent) listIngredients(c *gin.Context) {
	ingredients, err := a.inventory.ListIngredients(c)
	if err != nil {
		a.fail(c, err)
		return
	}
	if ingredients == nil {
		ingredients = []models.Ingredient{}
	}

	c.JSON(http.StatusOK, ingredients)
}

func (a *Agent) createIngredient(c *gin.Context) {
	var req IngredientRequest
	if !a.bind(c, &req) {
		return
	}

	in := req.ToModel()
	if err := a.inventory.CreateIngredient(c, in); err != nil {
		a.fail(c, err)
		return
	}
	a.publish(c, events.KindIngredientChanged, events.IngredientChanged{Action: "created", Name: in.Name, Ingredient: in})

	c.JSON(http.StatusCreated, gin.H{"message": "Ingredient added successfully"})
}

func (a *Agent) deleteIngredient(c *gin.Context) {
	var req IngredientRequest
	if !a.bind(c, &req) {
		return
	}

	name := req.ToModel().Name
	if err := required("name", name); err != nil {
		a.fail(c, err)
		return
	}
	if err := a.inventory.DeleteIngredient(c, name); err != nil {
		a.fail(c, err)
		return
	}
	a.publish(c, events.KindIngredientChanged, events.IngredientChanged{Action: "deleted", Name: name})

	c.JSON(http.StatusOK, gin.H{"message": "Ingredient deleted successfully"})
}

func (a *Agent) updateIngredient(c *gin.Context) {
	var req IngredientRequest
	if !a.bind(c, &req) {
		return
	}

	in := req.ToModel()
	if err := a.inventory.UpdateIngredient(c, in.Name, in); err != nil {
		a.fail(c, err)
		return
	}
	a.publish(c, events.KindIngredientChanged, events.IngredientChanged{Action: "updated", Name: in.Name, Ingredient: in})

	c.JSON(http.StatusOK, gin.H{"message": "Ingredient updated successfully"})
}

func (a *Agent) updateQuantity(c *gin.Context) {
	var req IngredientRequest
	if !a.bind(c, &req) {
		return
	}

	name := req.ToModel().Name
	if err := required("name", name); err != nil {
		a.fail(c, err)
		return
	}
	if err := a.inventory.UpdateQuantity(c, name, req.Quantity); err != nil {
		a.fail(c, err)
		return
	}
	a.publish(c, events.KindIngredientChanged, events.IngredientChanged{Action: "quantity_updated", Name: name, Ingredient: gin.H{"quantity": req.Quantity}})

	c.JSON(http.StatusOK, gin.H{"message": "Ingredient quantity updated successfully"})
}

func (a *Agent) updateShelfLife(c *gin.Context) {
	var req IngredientRequest
	if !a.bind(c, &req) {
		return
	}

	name := req.ToModel().Name
	if err := required("name", name); err != nil {
		a.fail(c, err)
		return
	}
	if err := a.inventory.UpdateShelfLife(c, name, req.ShelfLifeDays); err != nil {
		a.fail(c, err)
		return
	}
	a.publish(c, events.KindIngredientChanged, events.IngredientChanged{Action: "shelf_life_updated", Name: name, Ingredient: gin.H{"shelf_life_days": req.ShelfLifeDays}})

	c.JSON(http.StatusOK, gin.H{"message": "Ingredient shelf life updated successfully"})
}
