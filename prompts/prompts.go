// Package prompts holds the fixed instruction templates sent to the LLM. A
// template never branches: callers decide which one to render and with what.
package prompts

import (
	"errors"
	"fmt"
	"sort"

	lcprompts "github.com/tmc/langchaingo/prompts"
)

const (
	Ordering           = "ordering"
	HistorySummary     = "history_summary"
	OrderExtraction    = "order_extraction"
	MenuRecommendation = "menu_recommendation"
	DishReengineering  = "dish_reengineering"
	ImagePrompt        = "image_prompt"
)

var ErrUnknownTemplate = errors.New("unknown prompt template")

var registry = map[string]lcprompts.PromptTemplate{
	Ordering: lcprompts.NewPromptTemplate(orderingTemplate,
		[]string{"message", "history", "menu", "ingredients"}),
	HistorySummary: lcprompts.NewPromptTemplate(historySummaryTemplate,
		[]string{"history"}),
	OrderExtraction: lcprompts.NewPromptTemplate(orderExtractionTemplate,
		[]string{"history"}),
	MenuRecommendation: lcprompts.NewPromptTemplate(menuRecommendationTemplate,
		[]string{
			"cuisine", "ingredients",
			"prep_time_breakfast", "prep_time_lunch", "prep_time_dinner",
			"cook_time_breakfast", "cook_time_lunch", "cook_time_dinner",
		}),
	DishReengineering: lcprompts.NewPromptTemplate(dishReengineeringTemplate,
		[]string{"cuisine", "dish_name", "ingredients"}),
	ImagePrompt: lcprompts.NewPromptTemplate(imagePromptTemplate,
		[]string{"dish_name"}),
}

// Names lists every registered template.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Variables returns the slots a template must be given.
func Variables(name string) ([]string, error) {
	t, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTemplate, name)
	}

	return append([]string(nil), t.InputVariables...), nil
}

// Render substitutes vars into the named template. Every declared variable
// is required; extra entries are ignored.
func Render(name string, vars map[string]string) (string, error) {
	t, ok := registry[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTemplate, name)
	}

	values := make(map[string]any, len(t.InputVariables))
	for _, v := range t.InputVariables {
		val, ok := vars[v]
		if !ok {
			return "", fmt.Errorf("missing variable %q for prompt %s", v, name)
		}
		values[v] = val
	}

	out, err := t.Format(values)
	if err != nil {
		return "", fmt.Errorf("failed to render prompt %s: %w", name, err)
	}

	return out, nil
}
