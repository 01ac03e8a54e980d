package models

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"

	"checkout-session-service/internal/apperror"
	"checkout-session-service/pkg/validator"
)

const (
	MsgInvalidBody       = "Invalid request body."
	MsgSuccessURLEmpty   = "'success_url' cannot be empty."
	MsgSuccessURLInvalid = "Invalid value for 'success_url'."
	MsgCancelURLEmpty    = "'cancel_url' cannot be empty."
	MsgCancelURLInvalid  = "Invalid value for 'cancel_url'."
	MsgItemsEmpty        = "'items' cannot be empty."
	MsgItemsNotArray     = "'items' should be an array of objects."
	MsgItemsNoElements   = "'items' should contain atleast an element."
	MsgPriceIDMissing    = "items should contain a property 'price_id'"
	MsgQuantityMissing   = "items should contain a property 'quantity'"
	MsgPriceIDEmpty      = "'price_id' cannot be empty."
	MsgPriceIDNotString  = "'price_id' should be a string."
	MsgQuantityNotNumber = "'quantity' should be a number."
)

// ValidateSessionRequest checks a decoded body and returns the typed request.
//
// Checks run in a fixed order and only the first failure is reported: the body
// shape, the required top-level keys, the two URLs, the items array, then each
// item in turn. Scalars are coerced before type checks, so "3" is a valid
// quantity and 42 a valid price id.
func ValidateSessionRequest(body interface{}) (*SessionRequest, error) {
	obj, ok := body.(map[string]interface{})
	if !ok {
		return nil, apperror.Validation(MsgInvalidBody)
	}

	required := []struct {
		key string
		msg string
	}{
		{"success_url", MsgSuccessURLEmpty},
		{"cancel_url", MsgCancelURLEmpty},
		{"items", MsgItemsEmpty},
	}
	for _, r := range required {
		if _, present := obj[r.key]; !present {
			return nil, apperror.Validation(r.msg)
		}
	}

	successURL, ok := coerceString(obj["success_url"])
	if !ok || !validator.ValidateURI(successURL) {
		return nil, apperror.Validation(MsgSuccessURLInvalid)
	}

	cancelURL, ok := coerceString(obj["cancel_url"])
	if !ok || !validator.ValidateURI(cancelURL) {
		return nil, apperror.Validation(MsgCancelURLInvalid)
	}

	rawItems, ok := obj["items"].([]interface{})
	if !ok {
		return nil, apperror.Validation(MsgItemsNotArray)
	}
	if len(rawItems) == 0 {
		return nil, apperror.Validation(MsgItemsNoElements)
	}

	items := make([]LineItemInput, 0, len(rawItems))
	for _, raw := range rawItems {
		item, err := validateLineItem(raw)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	req := &SessionRequest{
		SuccessURL: successURL,
		CancelURL:  cancelURL,
		Items:      items,
	}
	if err := validator.Validate(req); err != nil {
		return nil, apperror.Wrap(apperror.KindValidation, http.StatusBadRequest, MsgInvalidBody, err)
	}

	return req, nil
}

func validateLineItem(raw interface{}) (LineItemInput, error) {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return LineItemInput{}, apperror.Validation(MsgItemsNotArray)
	}

	rawPriceID, present := obj["price_id"]
	if !present {
		return LineItemInput{}, apperror.Validation(MsgPriceIDMissing)
	}
	rawQuantity, present := obj["quantity"]
	if !present {
		return LineItemInput{}, apperror.Validation(MsgQuantityMissing)
	}

	priceID, ok := coerceString(rawPriceID)
	if !ok {
		return LineItemInput{}, apperror.Validation(MsgPriceIDNotString)
	}
	if priceID == "" {
		return LineItemInput{}, apperror.Validation(MsgPriceIDEmpty)
	}

	quantity, ok := coerceNumber(rawQuantity)
	if !ok {
		return LineItemInput{}, apperror.Validation(MsgQuantityNotNumber)
	}

	return LineItemInput{PriceID: priceID, Quantity: quantity}, nil
}

// coerceString accepts strings and stringifies other scalars; null becomes "".
func coerceString(v interface{}) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	case nil:
		return "", true
	default:
		return "", false
	}
}

// coerceNumber accepts numbers, numeric strings and booleans; null becomes 0.
// Surrounding whitespace is ignored and a blank non-empty string is 0.
func coerceNumber(v interface{}) (float64, bool) {
	var (
		f   float64
		err error
	)
	switch t := v.(type) {
	case json.Number:
		f, err = t.Float64()
	case float64:
		f = t
	case string:
		if t == "" {
			return 0, false
		}
		trimmed := strings.TrimSpace(t)
		if trimmed == "" {
			return 0, true
		}
		f, err = strconv.ParseFloat(trimmed, 64)
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case nil:
		return 0, true
	default:
		return 0, false
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
