// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package constants holds process-wide fixed values: identity, HTTP server
// timing, abuse limits, token lifetimes, header names and cache key prefixes.
//
// Values readers or operators may want to tune (dwell time, page size, pool
// sizes) live in config instead.
package constants

import "time"

const (
	AppName    = "folio-api"
	AppVersion = "0.1.0-dev"
)

// # HTTP Server

const (
	DefaultReadHeaderTimeout = 2 * time.Second
	DefaultReadTimeout       = 5 * time.Second
	DefaultWriteTimeout      = 10 * time.Second
	DefaultIdleTimeout       = 2 * time.Minute

	// GlobalRequestTimeout cancels the request context, which also aborts
	// in-flight queries and retry loops.
	GlobalRequestTimeout = 30 * time.Second

	ShutdownTimeout = 30 * time.Second
)

// # Abuse Limits

const (
	// Per client IP. Navigation is one request per page every dwell period,
	// so these only bite on scripted clients.
	DefaultRateLimitRPS   = 20.0
	DefaultRateLimitBurst = 40

	RateLimitCleanupInterval = time.Minute
	RateLimitClientTTL       = 3 * time.Minute
)

// # Tokens

const (
	AuthIssuer     = "folio.app"
	AccessTokenTTL = time.Hour
)

// # Headers

const (
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
)

// # Envelope Fields

const (
	FieldError  = "error"
	FieldCode   = "code"
	FieldStatus = "status"
	FieldChecks = "checks"
)

// # Cache Keys

const (
	// RedisPrefixBookPages is followed by <book id>:v<pagination version>:<page size>.
	RedisPrefixBookPages = "catalog:pages:"
)
