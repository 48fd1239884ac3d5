package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names shared by the migration and the queries.
const (
	sessionEventsTable = "session_events"
	answerEventsTable  = "answer_events"
	uploadEventsTable  = "upload_events"

	colID        = "id"
	colSequence  = "sequence"
	colTimestamp = "timestamp"
)

// eventColumns are the base columns every event table carries: a global
// sequence number for cross-table ordering and a wall-clock timestamp.
func eventColumns() []*schema.Column {
	return []*schema.Column{
		{Name: colID, Type: field.TypeInt, Increment: true},
		{Name: colSequence, Type: field.TypeInt64, Unique: true},
		{Name: colTimestamp, Type: field.TypeTime},
	}
}

func eventTable(name string, cols []*schema.Column, indexed ...string) *schema.Table {
	all := append(eventColumns(), cols...)
	t := &schema.Table{
		Name:       name,
		Columns:    all,
		PrimaryKey: []*schema.Column{all[0]},
	}
	byName := make(map[string]*schema.Column, len(all))
	for _, c := range all {
		byName[c.Name] = c
	}
	for _, col := range append([]string{colTimestamp}, indexed...) {
		t.Indexes = append(t.Indexes, &schema.Index{
			Name:    fmt.Sprintf("%s_%s", name, col),
			Columns: []*schema.Column{byName[col]},
		})
	}
	return t
}

// tables returns the schema of every event table.
func tables() []*schema.Table {
	return []*schema.Table{
		eventTable(sessionEventsTable, []*schema.Column{
			{Name: "session_id", Type: field.TypeString},
			{Name: "assessment_id", Type: field.TypeString},
			{Name: "assessment_title", Type: field.TypeString, Default: ""},
			{Name: "action", Type: field.TypeString},
			{Name: "questions_total", Type: field.TypeInt, Default: 0},
			{Name: "questions_answered", Type: field.TypeInt, Default: 0},
			{Name: "correct_answers", Type: field.TypeInt, Default: 0},
			{Name: "score", Type: field.TypeInt, Nullable: true},
			{Name: "duration_secs", Type: field.TypeInt, Default: 0},
		}, "session_id", "assessment_id", "action"),

		eventTable(answerEventsTable, []*schema.Column{
			{Name: "session_id", Type: field.TypeString},
			{Name: "assessment_id", Type: field.TypeString},
			{Name: "question_id", Type: field.TypeInt},
			{Name: "topic", Type: field.TypeString},
			{Name: "prompt", Type: field.TypeString, Size: 2048},
			{Name: "selected", Type: field.TypeInt},
			{Name: "correct_index", Type: field.TypeInt},
			{Name: "selected_text", Type: field.TypeString, Default: ""},
			{Name: "correct_text", Type: field.TypeString, Default: ""},
			{Name: "correct", Type: field.TypeBool},
		}, "session_id", "topic"),

		eventTable(uploadEventsTable, []*schema.Column{
			{Name: "file_name", Type: field.TypeString},
			{Name: "size_bytes", Type: field.TypeInt64},
			{Name: "mime_type", Type: field.TypeString, Default: ""},
			{Name: "status", Type: field.TypeString},
			{Name: "topics", Type: field.TypeJSON, Nullable: true},
			{Name: "error_message", Type: field.TypeString, Default: ""},
		}, "status"),
	}
}

// migrate creates or upgrades the event tables.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	return m.Create(ctx, tables()...)
}
