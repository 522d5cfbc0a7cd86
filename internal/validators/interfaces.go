// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators cleans and validates untrusted request input.
//
// Core concepts:
//   - Sanitization: every string reachable from a decoded JSON body is
//     stripped of '<' and '>', trimmed and bounded to [MaxStringLength]
//     runes before any other check sees it.
//   - Rules: required fields, email shape, password strength and name
//     length checks that report per-field messages.
//   - Validator: struct-tag validation backed by go-playground/validator
//     whose failures are translated into the same per-field messages.
//
// All failures surface as [apierr.KindValidation] errors so the HTTP layer
// can render them without inspecting this package's types.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
// Implementations may perform structural validation, semantic checks,
// cross-field rules.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
