// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the polls app.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux, err := router.NewRouter(db, cfg)

It fails only if the embedded templates do not parse.

# Endpoints

Health:

	GET /health

Poll pages (public, registered from the named routes in package urls):

	GET  /polls/              - polls:index
	GET  /polls/{id}/         - polls:detail
	GET  /polls/{id}/results/ - polls:results
	POST /polls/{id}/vote/    - polls:vote

Question management (admin, requires X-Admin-Key):

	POST /api/questions              - Create question
	GET  /api/questions/{id}         - Question with choices and votes
	POST /api/questions/{id}/choices - Add choice

GET / redirects to the index.
*/
package router
