package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column layout. Tables are created and altered by ent's migrator
// on Open.

var (
	blobsColumns = []*schema.Column{
		{Name: "key", Type: field.TypeString, Unique: true},
		{Name: "data", Type: field.TypeBytes},
		{Name: "updated_at", Type: field.TypeTime},
	}
	blobsTable = &schema.Table{
		Name:       "blobs",
		Columns:    blobsColumns,
		PrimaryKey: []*schema.Column{blobsColumns[0]},
	}

	sequenceColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "next_val", Type: field.TypeInt64, Default: 1},
	}
	sequenceTable = &schema.Table{
		Name:       "global_sequence",
		Columns:    sequenceColumns,
		PrimaryKey: []*schema.Column{sequenceColumns[0]},
	}

	reviewEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "deck_id", Type: field.TypeString},
		{Name: "card_id", Type: field.TypeString},
		{Name: "term", Type: field.TypeString},
		{Name: "quality", Type: field.TypeInt},
		{Name: "correct", Type: field.TypeBool},
		{Name: "interval", Type: field.TypeInt},
		{Name: "ease_factor", Type: field.TypeFloat64},
	}
	reviewEventsTable = &schema.Table{
		Name:       "review_events",
		Columns:    reviewEventsColumns,
		PrimaryKey: []*schema.Column{reviewEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "reviewevent_card_id", Columns: []*schema.Column{reviewEventsColumns[4]}},
		},
	}

	attemptEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "session_id", Type: field.TypeInt},
		{Name: "char", Type: field.TypeString},
		{Name: "correct", Type: field.TypeBool},
		{Name: "graded", Type: field.TypeBool},
		{Name: "overridden", Type: field.TypeBool},
		{Name: "verdicts", Type: field.TypeJSON, Nullable: true},
	}
	attemptEventsTable = &schema.Table{
		Name:       "attempt_events",
		Columns:    attemptEventsColumns,
		PrimaryKey: []*schema.Column{attemptEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "attemptevent_char", Columns: []*schema.Column{attemptEventsColumns[4]}},
		},
	}

	sessionEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "session_id", Type: field.TypeInt},
		{Name: "action", Type: field.TypeString},
		{Name: "mode", Type: field.TypeString},
		{Name: "cards_studied", Type: field.TypeInt},
		{Name: "correct", Type: field.TypeInt},
		{Name: "duration_secs", Type: field.TypeInt},
	}
	sessionEventsTable = &schema.Table{
		Name:       "session_events",
		Columns:    sessionEventsColumns,
		PrimaryKey: []*schema.Column{sessionEventsColumns[0]},
	}

	llmEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt},
		{Name: "output_tokens", Type: field.TypeInt},
		{Name: "latency_ms", Type: field.TypeInt64},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Nullable: true},
		{Name: "request_body", Type: field.TypeString, Nullable: true, Size: 2147483647},
		{Name: "response_body", Type: field.TypeString, Nullable: true, Size: 2147483647},
	}
	llmEventsTable = &schema.Table{
		Name:       "llm_request_events",
		Columns:    llmEventsColumns,
		PrimaryKey: []*schema.Column{llmEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{llmEventsColumns[5]}},
		},
	}

	tables = []*schema.Table{
		blobsTable,
		sequenceTable,
		reviewEventsTable,
		attemptEventsTable,
		sessionEventsTable,
		llmEventsTable,
	}
)
