package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// SessionRequest is the validated body of a checkout session request.
type SessionRequest struct {
	SuccessURL string          `json:"success_url" validate:"required,url"`
	CancelURL  string          `json:"cancel_url" validate:"required,url"`
	Items      []LineItemInput `json:"items" validate:"required,min=1,dive"`
}

// LineItemInput is one cart entry. Quantity is kept as a number because the
// request accepts any numeric value, including numeric strings.
type LineItemInput struct {
	PriceID  string  `json:"price_id" validate:"required"`
	Quantity float64 `json:"quantity"`
}

// SessionResponse wraps the provider payload returned on success.
type SessionResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data"`
}

var errTrailingData = errors.New("unexpected data after JSON body")

// DecodeBody decodes a JSON request body keeping numbers as json.Number. An
// empty body decodes to an empty object.
func DecodeBody(data []byte) (interface{}, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return map[string]interface{}{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var body interface{}
	if err := dec.Decode(&body); err != nil {
		return nil, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, errTrailingData
	}
	return body, nil
}
