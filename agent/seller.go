package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/imkonsowa/restaurants-ordering/cleaner"
	"github.com/imkonsowa/restaurants-ordering/events"
	"github.com/imkonsowa/restaurants-ordering/kitchen"
)

func (a *Agent) recommendMenu(c *gin.Context) {
	var req MenuRequest
	if !a.bind(c, &req) {
		return
	}

	result, err := a.kitchen.RecommendMenu(c, kitchen.MenuRequest{
		Cuisine:  req.PreferredCuisine,
		PrepTime: kitchen.MealTimes{Breakfast: req.PrepTimeBreakfast, Lunch: req.PrepTimeLunch, Dinner: req.PrepTimeDinner},
		CookTime: kitchen.MealTimes{Breakfast: req.CookTimeBreakfast, Lunch: req.CookTimeLunch, Dinner: req.CookTimeDinner},
	})
	if err != nil {
		a.fail(c, err)
		return
	}

	respondResult(c, result, "menu")
}

func (a *Agent) reengineerDish(c *gin.Context) {
	var req DishRequest
	if !a.bind(c, &req) {
		return
	}

	result, err := a.kitchen.ReengineerDish(c, req.DishName, req.PreferredCuisine)
	if err != nil {
		a.fail(c, err)
		return
	}

	respondResult(c, result, "dish")
}

func (a *Agent) catalogImageGenerator(c *gin.Context) {
	var req DishRequest
	if !a.bind(c, &req) {
		return
	}

	image, err := a.kitchen.GenerateDishImage(c, req.DishName)
	if err != nil {
		a.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, image)
}

func (a *Agent) orderSummaries(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	records, err := a.eventLog.ListRecent(c, events.KindOrderSummarized, limit)
	if err != nil {
		a.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order_summaries": records})
}

// respondResult sends structured model output as is and wraps raw text under
// key.
func respondResult(c *gin.Context, result cleaner.Result, key string) {
	switch r := result.(type) {
	case cleaner.Structured:
		c.JSON(http.StatusOK, r.Value)
	case cleaner.Raw:
		c.JSON(http.StatusOK, gin.H{key: r.Text})
	}
}
