// Package dto holds the JSON shapes of the HTTP API.
package dto

import "github.com/shopspring/decimal"

func init() {
	// money is rendered as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// MessageResponse is a bare acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}
