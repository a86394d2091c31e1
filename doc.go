// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Polls server.

Quickly Polls is a small polling site: visitors see the latest published
questions, vote for a choice and read the results. Questions and choices
are created through a JSON admin API.

# Starting the Server

The server reads a .env file if present, then environment variables or CLI
flags:

	ADMIN_KEY_SALT=secret DATABASE_URL=polls.db go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -admin-salt secret

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file path or PostgreSQL connection string
  - ADMIN_KEY_SALT (-admin-salt): Secret for admin key HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - LOG_LEVEL (-log-level): debug, info, warn or error (default: info)

# Architecture

  - handlers: page and admin API handlers
  - router: route definitions using Go 1.22+ routing
  - urls: named routes and Reverse
  - views: embedded HTML templates
  - store: question and choice repository
  - middleware: CORS, logging, JSON helpers
  - models: domain and request/response types
  - auth: admin key generation and validation
  - db: driver selection and schema creation
  - cliparse: configuration parsing
  - logging: slog setup

See package documentation for each component.
*/
package main
