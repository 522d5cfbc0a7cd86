// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line side of the marketplace.
//
// [Session] keeps the access token and user snapshot on disk and installs
// the token on the server adapter. [App] runs one command per invocation on
// top of it and prints the result.
package client
