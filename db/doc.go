// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens database connections and creates the schema.

# Connections

Open selects the driver from the configured database type:

	conn, err := db.Open(db.TypePostgres, "postgres://...")
	conn, err := db.Open(db.TypeSQLite, "file:polls.db")

PostgreSQL uses github.com/lib/pq; SQLite uses the pure-Go modernc.org/sqlite.
SQLite connections are limited to a single open connection so that
":memory:" databases survive across queries, and run with foreign keys on.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - question: prompt text and publication timestamp
  - choice: answers per question with a vote counter (default 0) and an
    insertion position

# Relationships

	question 1──* choice

The foreign key uses ON DELETE CASCADE.

# Indexes

  - question.pub_date
  - choice.question_id
*/
package db
