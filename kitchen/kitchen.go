// Package kitchen holds the seller flows: menu planning from the current
// inventory, dish re-engineering and catalog image generation.
package kitchen

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/imkonsowa/restaurants-ordering/apperrors"
	"github.com/imkonsowa/restaurants-ordering/cleaner"
	"github.com/imkonsowa/restaurants-ordering/llm"
	"github.com/imkonsowa/restaurants-ordering/models"
	"github.com/imkonsowa/restaurants-ordering/prompts"
)

type IngredientLister interface {
	ListIngredients(ctx context.Context) ([]models.Ingredient, error)
}

// MealTimes are upper bounds per meal, passed to the model as written
// (for example "30 minutes").
type MealTimes struct {
	Breakfast string
	Lunch     string
	Dinner    string
}

type MenuRequest struct {
	Cuisine  string
	PrepTime MealTimes
	CookTime MealTimes
}

func (r MenuRequest) Validate() error {
	required := map[string]string{
		"preferred_cuisine":   r.Cuisine,
		"prep_time_breakfast": r.PrepTime.Breakfast,
		"prep_time_lunch":     r.PrepTime.Lunch,
		"prep_time_dinner":    r.PrepTime.Dinner,
		"cook_time_breakfast": r.CookTime.Breakfast,
		"cook_time_lunch":     r.CookTime.Lunch,
		"cook_time_dinner":    r.CookTime.Dinner,
	}
	for _, field := range []string{
		"preferred_cuisine",
		"prep_time_breakfast", "prep_time_lunch", "prep_time_dinner",
		"cook_time_breakfast", "cook_time_lunch", "cook_time_dinner",
	} {
		if strings.TrimSpace(required[field]) == "" {
			return apperrors.Invalid(field, "is required")
		}
	}

	return nil
}

type DishImage struct {
	ImageURL string `json:"image_url"`
	Prompt   string `json:"prompt"`
}

type Kitchen struct {
	ingredients IngredientLister
	llm         llm.Completer
	images      llm.ImageGenerator
}

func New(ingredients IngredientLister, completer llm.Completer, images llm.ImageGenerator) *Kitchen {
	return &Kitchen{ingredients: ingredients, llm: completer, images: images}
}

// RecommendMenu asks the model for a priced menu. The time bounds are hints
// to the model and are not checked against its answer.
func (k *Kitchen) RecommendMenu(ctx context.Context, req MenuRequest) (cleaner.Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ingredients, err := k.inventory(ctx)
	if err != nil {
		return nil, err
	}

	prompt, err := prompts.Render(prompts.MenuRecommendation, map[string]string{
		"cuisine":             req.Cuisine,
		"ingredients":         ingredients,
		"prep_time_breakfast": req.PrepTime.Breakfast,
		"prep_time_lunch":     req.PrepTime.Lunch,
		"prep_time_dinner":    req.PrepTime.Dinner,
		"cook_time_breakfast": req.CookTime.Breakfast,
		"cook_time_lunch":     req.CookTime.Lunch,
		"cook_time_dinner":    req.CookTime.Dinner,
	})
	if err != nil {
		return nil, err
	}

	raw, err := k.llm.Complete(ctx, prompt)
	if err != nil {
		slog.Error("failed to generate menu", "cuisine", req.Cuisine, "error", err)
		return nil, apperrors.Upstream("llm", "generating menu using the LLM", err)
	}

	return cleaner.Decode(raw), nil
}

// ReengineerDish suggests another dish cooked from the same ingredients.
func (k *Kitchen) ReengineerDish(ctx context.Context, dishName, cuisine string) (cleaner.Result, error) {
	if strings.TrimSpace(dishName) == "" {
		return nil, apperrors.Invalid("dish_name", "is required")
	}
	if strings.TrimSpace(cuisine) == "" {
		return nil, apperrors.Invalid("preferred_cuisine", "is required")
	}

	ingredients, err := k.inventory(ctx)
	if err != nil {
		return nil, err
	}

	prompt, err := prompts.Render(prompts.DishReengineering, map[string]string{
		"cuisine":     cuisine,
		"dish_name":   dishName,
		"ingredients": ingredients,
	})
	if err != nil {
		return nil, err
	}

	raw, err := k.llm.Complete(ctx, prompt)
	if err != nil {
		slog.Error("failed to reengineer dish", "dish", dishName, "error", err)
		return nil, apperrors.Upstream("llm", "reengineering dish using the LLM", err)
	}

	return cleaner.Decode(raw), nil
}

// GenerateDishImage has the model write an image prompt for the dish and
// renders it with the image service.
func (k *Kitchen) GenerateDishImage(ctx context.Context, dishName string) (*DishImage, error) {
	if strings.TrimSpace(dishName) == "" {
		return nil, apperrors.Invalid("dish_name", "is required")
	}

	prompt, err := prompts.Render(prompts.ImagePrompt, map[string]string{"dish_name": dishName})
	if err != nil {
		return nil, err
	}

	imagePrompt, err := k.llm.Complete(ctx, prompt)
	if err != nil {
		slog.Error("failed to write image prompt", "dish", dishName, "error", err)
		return nil, apperrors.Upstream("llm", "writing the image prompt", err)
	}
	imagePrompt = cleaner.Unfence(imagePrompt)

	url, err := k.images.GenerateImage(ctx, imagePrompt)
	if err != nil {
		slog.Error("failed to generate dish image", "dish", dishName, "error", err)
		return nil, apperrors.Upstream("images", "generating the dish image", err)
	}

	return &DishImage{ImageURL: url, Prompt: imagePrompt}, nil
}

func (k *Kitchen) inventory(ctx context.Context) (string, error) {
	ingredients, err := k.ingredients.ListIngredients(ctx)
	if err != nil {
		slog.Error("failed to read ingredients", "error", err)
		return "", apperrors.Upstream("postgres", "reading ingredients from Postgres", err)
	}
	slog.Info("Read ingredients from Postgres", "count", len(ingredients))

	if ingredients == nil {
		ingredients = []models.Ingredient{}
	}
	data, err := json.Marshal(ingredients)
	if err != nil {
		return "", fmt.Errorf("failed to marshal ingredients: %w", err)
	}

	return string(data), nil
}
