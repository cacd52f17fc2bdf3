package inventory

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"github.com/talkincode/inventory/internal/domain"
)

const (
	fieldName        = "name"
	fieldDescription = "description"
	fieldPrice       = "price"
	fieldQuantity    = "quantity"
	fieldCategory    = "category"
	fieldImageURL    = "imageUrl"

	maxQuantity = math.MaxInt32
)

var errNotANumber = errors.New("not a number")

// ProductInput is the caller-supplied shape for Create and Update. Every field
// holds the raw decoded JSON value so that a wrongly typed field is reported
// by name instead of failing the whole body.
type ProductInput struct {
	Name        interface{} `json:"name"`
	Description interface{} `json:"description"`
	Price       interface{} `json:"price"`
	Quantity    interface{} `json:"quantity"`
	Category    interface{} `json:"category"`
	ImageURL    interface{} `json:"imageUrl"`
}

// validProduct is a ProductInput that passed validation with defaults applied.
type validProduct struct {
	name        string
	description string
	price       float64
	quantity    int
	category    string
	imageURL    string
}

func (in ProductInput) validate() (validProduct, error) {
	verr := &ValidationError{}

	name, nerr := parseText(fieldName, in.Name)
	verr.add(nerr)
	if nerr == nil && strings.TrimSpace(name) == "" {
		verr.add(&FieldError{Field: fieldName, Reason: ReasonMissing})
	}
	price, perr := parsePrice(in.Price)
	verr.add(perr)
	qty, qerr := parseQuantity(in.Quantity)
	verr.add(qerr)
	description, derr := parseText(fieldDescription, in.Description)
	verr.add(derr)
	category, cerr := parseText(fieldCategory, in.Category)
	verr.add(cerr)
	imageURL, ierr := parseText(fieldImageURL, in.ImageURL)
	verr.add(ierr)

	if err := verr.orNil(); err != nil {
		return validProduct{}, err
	}

	p := validProduct{
		name:        strings.TrimSpace(name),
		description: description,
		price:       price,
		quantity:    qty,
		category:    strings.TrimSpace(category),
		imageURL:    strings.TrimSpace(imageURL),
	}
	if p.category == "" {
		p.category = domain.DefaultCategory
	}
	if p.imageURL == "" {
		p.imageURL = domain.DefaultImageURL
	}
	return p, nil
}

func (p validProduct) columns() map[string]interface{} {
	return map[string]interface{}{
		"name":        p.name,
		"description": p.description,
		"price":       p.price,
		"quantity":    p.quantity,
		"category":    p.category,
		"image_url":   p.imageURL,
	}
}

// toNumber coerces a decoded JSON value into a float64. ok is false when the
// value is absent (nil or blank string).
func toNumber(raw interface{}) (f float64, ok bool, err error) {
	switch v := raw.(type) {
	case nil:
		return 0, false, nil
	case bool:
		return 0, true, errNotANumber
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			return 0, false, nil
		}
		raw = v
	}
	f, err = cast.ToFloat64E(raw)
	return f, true, err
}

// parseText accepts strings and plain numbers. Absent values yield "".
func parseText(field string, raw interface{}) (string, *FieldError) {
	switch v := raw.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case bool, map[string]interface{}, []interface{}:
		return "", &FieldError{Field: field, Reason: ReasonInvalid, Detail: "must be a string"}
	}
	s, err := cast.ToStringE(raw)
	if err != nil {
		return "", &FieldError{Field: field, Reason: ReasonInvalid, Detail: "must be a string"}
	}
	return s, nil
}

func parsePrice(raw interface{}) (float64, *FieldError) {
	f, ok, err := toNumber(raw)
	switch {
	case !ok:
		return 0, &FieldError{Field: fieldPrice, Reason: ReasonMissing}
	case err != nil, math.IsNaN(f), math.IsInf(f, 0):
		return 0, &FieldError{Field: fieldPrice, Reason: ReasonInvalid}
	case f < 0:
		return 0, &FieldError{Field: fieldPrice, Reason: ReasonNegative}
	}
	return f, nil
}

func parseQuantity(raw interface{}) (int, *FieldError) {
	f, ok, err := toNumber(raw)
	switch {
	case !ok:
		return 0, &FieldError{Field: fieldQuantity, Reason: ReasonMissing}
	case err != nil, math.IsNaN(f), math.IsInf(f, 0):
		return 0, &FieldError{Field: fieldQuantity, Reason: ReasonInvalid}
	case f != math.Trunc(f):
		return 0, &FieldError{Field: fieldQuantity, Reason: ReasonInvalid, Detail: "must be a whole number"}
	case f > maxQuantity:
		return 0, &FieldError{Field: fieldQuantity, Reason: ReasonInvalid, Detail: fmt.Sprintf("must be at most %d", maxQuantity)}
	case f < 0:
		return 0, &FieldError{Field: fieldQuantity, Reason: ReasonNegative}
	}
	return int(f), nil
}
