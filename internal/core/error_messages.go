package core

// error_messages.go maps domain errors to user-friendly messages with codes
// for support reference. The console prints these instead of raw errors.
//
// Error codes are grouped by category:
//
//	FILE001 - File unavailable: a catalog, account or order file could not be opened
//	VAL001  - Malformed record: a line or value does not fit the file format
//	VAL002  - Invalid product: name, price or stock out of range
//	ACC001  - Username taken: registration conflict
//	ACC002  - Invalid credentials: login mismatch
//	ACC003  - Not authorized: operation needs a role that is not logged in
//	CAT001  - Product not found: no catalog entry with that name
//	CART001 - Empty cart: checkout with nothing in the cart
//	MENU001 - Invalid choice: menu selection out of range
//	ERR000  - Unknown error: anything else; check the logs

import (
	"errors"
	"fmt"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorMessage binds a sentinel to its user message.
type errorMessage struct {
	target error
	msg    UserMessage
}

// errorMessages is matched in order with errors.Is; the first match wins.
// A ParseError unwraps to ErrMalformedRecord, so it lands on VAL001.
var errorMessages = []errorMessage{
	{
		target: ErrUsernameTaken,
		msg: UserMessage{
			Message: "Username already exists",
			Action:  "Please try again with a different username",
			Code:    "ACC001",
		},
	},
	{
		target: ErrInvalidCredentials,
		msg: UserMessage{
			Message: "Invalid username or password",
			Action:  "Check your credentials and try again",
			Code:    "ACC002",
		},
	},
	{
		target: ErrNotAuthorized,
		msg: UserMessage{
			Message: "You are not logged in for this action",
			Action:  "Log in with the right account first",
			Code:    "ACC003",
		},
	},
	{
		target: ErrEmptyCart,
		msg: UserMessage{
			Message: "Your cart is empty",
			Action:  "Add products to your cart before checking out",
			Code:    "CART001",
		},
	},
	{
		target: ErrProductNotFound,
		msg: UserMessage{
			Message: "Product not found",
			Action:  "Browse the catalog and use the exact product name",
			Code:    "CAT001",
		},
	},
	{
		target: ErrInvalidProduct,
		msg: UserMessage{
			Message: "Invalid product details",
			Action:  "Use a non-empty name without commas, a non-negative price and a non-negative whole stock",
			Code:    "VAL002",
		},
	},
	{
		target: ErrMalformedRecord,
		msg: UserMessage{
			Message: "Malformed record",
			Action:  "Records are comma-separated; names and usernames cannot contain commas or line breaks",
			Code:    "VAL001",
		},
	},
	{
		target: ErrFileUnavailable,
		msg: UserMessage{
			Message: "File could not be opened",
			Action:  "Check that the file exists and is readable and writable",
			Code:    "FILE001",
		},
	},
	{
		target: ErrInvalidMenuChoice,
		msg: UserMessage{
			Message: "Invalid choice",
			Action:  "Please try again",
			Code:    "MENU001",
		},
	},
}

// defaultMessage is returned when no sentinel matches.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again",
	Code:    "ERR000",
}

// MapError converts an error to a user-friendly message.
// Returns an empty UserMessage for nil and defaultMessage for unknown errors.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, em := range errorMessages {
		if errors.Is(err, em.target) {
			return em.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
//
// Example output: "Your cart is empty (Code: CART001). Add products to your cart before checking out"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than
// the generic ERR000 fallback. Callers log non-user-facing errors in full.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
