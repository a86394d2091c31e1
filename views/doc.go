// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package views renders the HTML pages.

Templates are embedded in the binary and parsed once at startup:

	renderer, err := views.New()
	err = renderer.Render(w, http.StatusOK, views.PageIndex, views.IndexPage{...})

Every page is defined as "title" and "content" blocks inside the shared
"base" layout. Templates build links with the url function, which resolves
named routes through urls.Reverse:

	<a href="{{url "polls:detail" .ID}}">

Other template functions:

  - since: humanized age of a timestamp relative to the page time ("5 days ago")
  - votes: vote count with thousands separators and plural ("1 vote")
  - statusText: HTTP status text for error pages
*/
package views
