// Package forms applies the per-field validation and sanitization rules for
// the category and item forms. Raw form values are trimmed, rule-checked and
// HTML-escaped; a failing form yields a list of field errors alongside the
// escaped values so the caller can redisplay the form prefilled. Validation
// always runs strictly before any store write.
package forms

import (
	"errors"
	"fmt"
	"html"
	"math"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// FieldError names an offending field and carries a human-readable message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator wraps a validator.Validate instance with the form rule sets.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the default rule engine.
func New() *Validator {
	return &Validator{validate: validator.New()}
}

// --- Category form ---

// CategoryForm is the typed input for category create and update. The same
// length bounds apply to both operations.
type CategoryForm struct {
	Name        string `validate:"required,alphanum,max=100"`
	Description string `validate:"required,max=400"`
}

// ParseCategory builds a CategoryForm from raw form values, trimming
// leading/trailing whitespace.
func ParseCategory(values url.Values) CategoryForm {
	return CategoryForm{
		Name:        strings.TrimSpace(values.Get("category_name")),
		Description: strings.TrimSpace(values.Get("category_description")),
	}
}

var categoryMessages = map[string]string{
	"Name.required":        "Category name must be specified.",
	"Name.alphanum":        "Category name has non-alphanumeric characters.",
	"Name.max":             "Category name must be at most 100 characters.",
	"Description.required": "Category description must be specified.",
	"Description.max":      "Category description must be at most 400 characters.",
}

// ValidateCategory runs the category rule set and escapes the fields in
// place. The fields are escaped whether or not the rules pass, so the form
// can always be redisplayed safely.
func (v *Validator) ValidateCategory(f *CategoryForm) []FieldError {
	errs := v.collect(f, categoryMessages, map[string]string{
		"Name":        "category_name",
		"Description": "category_description",
	})
	f.Name = html.EscapeString(f.Name)
	f.Description = html.EscapeString(f.Description)
	return errs
}

// --- Item form ---

// ItemForm is the typed input for item create and update. Price and Stock
// stay raw strings here; their numeric values are produced by ValidateItem.
// Categories is the normalized selector list: a bare scalar becomes a
// one-element list and an absent field an empty one.
type ItemForm struct {
	Name        string   `validate:"required"`
	Description string   `validate:"required"`
	Price       string   `validate:"required"`
	Stock       string   `validate:"required"`
	ImageURL    string   `validate:"required"`
	Categories  []string `validate:"len=1,dive,required"`
}

// ItemValues holds the parsed numeric values of a valid item form.
type ItemValues struct {
	Price decimal.Decimal
	Stock int32
}

// ParseItem builds an ItemForm from raw form values. The category selector
// is normalized before any rule runs.
func ParseItem(values url.Values) ItemForm {
	return ItemForm{
		Name:        strings.TrimSpace(values.Get("name")),
		Description: strings.TrimSpace(values.Get("description")),
		Price:       strings.TrimSpace(values.Get("price")),
		Stock:       strings.TrimSpace(values.Get("stock")),
		ImageURL:    strings.TrimSpace(values.Get("imageUrl")),
		Categories:  normalizeSelector(values["categories"]),
	}
}

// normalizeSelector maps an absent selector to an empty list and keeps any
// submitted values as-is. Form encoding already delivers a bare scalar as a
// one-element slice.
func normalizeSelector(raw []string) []string {
	if raw == nil {
		return []string{}
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		out = append(out, strings.TrimSpace(v))
	}
	return out
}

var itemMessages = map[string]string{
	"Name.required":        "Name must not be empty.",
	"Description.required": "Description must not be empty.",
	"Price.required":       "Price must not be empty.",
	"Stock.required":       "Stock must not be empty.",
	"ImageURL.required":    "Image must not be empty.",
	"Categories.len":       "A category must be selected.",
}

var itemFieldNames = map[string]string{
	"Name":        "name",
	"Description": "description",
	"Price":       "price",
	"Stock":       "stock",
	"ImageURL":    "imageUrl",
	"Categories":  "categories",
}

// ValidateItem runs the item rule set, parses price and stock, and escapes
// all string fields in place (each selector value included). On failure the
// returned values are nil and the escaped form is suitable for redisplay.
func (v *Validator) ValidateItem(f *ItemForm) (*ItemValues, []FieldError) {
	errs := v.collect(f, itemMessages, itemFieldNames)

	var vals ItemValues
	if f.Price != "" {
		price, err := decimal.NewFromString(f.Price)
		switch {
		case err != nil:
			errs = append(errs, FieldError{Field: "price", Message: "Price must be a decimal number."})
		case price.IsNegative():
			errs = append(errs, FieldError{Field: "price", Message: "Price must not be negative."})
		default:
			vals.Price = price
		}
	}
	if f.Stock != "" {
		stock, err := decimal.NewFromString(f.Stock)
		switch {
		case err != nil:
			errs = append(errs, FieldError{Field: "stock", Message: "Stock must be a number."})
		case stock.IsNegative():
			errs = append(errs, FieldError{Field: "stock", Message: "Stock must not be negative."})
		case !stock.IsInteger():
			errs = append(errs, FieldError{Field: "stock", Message: "Stock must be a whole number."})
		case stock.GreaterThan(decimal.NewFromInt(math.MaxInt32)):
			errs = append(errs, FieldError{Field: "stock", Message: "Stock is too large."})
		default:
			vals.Stock = int32(stock.IntPart())
		}
	}

	f.Name = html.EscapeString(f.Name)
	f.Description = html.EscapeString(f.Description)
	f.Price = html.EscapeString(f.Price)
	f.Stock = html.EscapeString(f.Stock)
	f.ImageURL = html.EscapeString(f.ImageURL)
	for i, c := range f.Categories {
		f.Categories[i] = html.EscapeString(c)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return &vals, nil
}

// collect runs struct validation and translates validator namespaces into
// form field names and messages.
func (v *Validator) collect(s interface{}, messages, fieldNames map[string]string) []FieldError {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.StructField()
		name, ok := fieldNames[field]
		if !ok {
			name = field
		}
		msg, ok := messages[field+"."+fe.Tag()]
		if !ok {
			msg = fmt.Sprintf("%s is invalid.", name)
		}
		out = append(out, FieldError{Field: name, Message: msg})
	}
	return out
}
