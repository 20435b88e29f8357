package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Meal is a recipe-like value as delivered by the recipe API or authored by a
// doctor. The sources disagree on where nutrition lives (top-level calories,
// nutrition.calories, or a nutrients list), so anything that may be absent is
// a pointer and consumers go through the extractor instead of reading fields
// directly.
type Meal struct {
	ID             int64      `json:"id,omitempty"`
	Title          string     `json:"title,omitempty"`
	Image          string     `json:"image,omitempty"`
	SourceURL      string     `json:"sourceUrl,omitempty"`
	ReadyInMinutes *FlexFloat `json:"readyInMinutes,omitempty"`
	Servings       *FlexFloat `json:"servings,omitempty"`
	Calories       *FlexFloat `json:"calories,omitempty"`
	Nutrition      *Nutrition `json:"nutrition,omitempty"`
}

type Nutrition struct {
	Calories  *FlexFloat `json:"calories,omitempty"`
	Nutrients []Nutrient `json:"nutrients,omitempty"`
}

// Nutrient is one {name, amount, unit} triple from the recipe API.
type Nutrient struct {
	Name   string    `json:"name"`
	Amount FlexFloat `json:"amount"`
	Unit   string    `json:"unit,omitempty"`
}

// FlexFloat decodes a JSON number or a numeric string. Older stored documents
// carry nutrient values as strings ("350"); anything unparseable degrades to 0
// rather than failing the whole document.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = FlexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		*f = 0
		return nil
	}
	*f = FlexFloat(v)
	return nil
}

// Flex wraps a float64 for struct literals.
func Flex(v float64) *FlexFloat {
	f := FlexFloat(v)
	return &f
}
