// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types.

# Request Types

Types for parsing incoming JSON on the admin API:

  - CreateQuestionRequest: question_text, optional pub_date
  - AddChoiceRequest: choice_text

# Response Types

  - CreateQuestionResponse: question_id, admin_key
  - AddChoiceResponse: choice_id
  - ErrorResponse: error, message

# Domain Types

  - Question: poll prompt with a publication timestamp
  - Choice: one answer of a question with its vote tally

# Publication

A question is published once its pub date is at or before the current time,
and recently published while the pub date lies in the last 24 hours:

	q.IsPublished(now)          // pub_date <= now
	q.WasPublishedRecently(now) // now-24h < pub_date <= now
*/
package models
