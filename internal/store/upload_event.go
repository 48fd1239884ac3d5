package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

var uploadEventColumns = []string{
	"file_name", "size_bytes", "mime_type", "status", "topics", "error_message",
}

func (r *eventRepo) AppendUploadEvent(ctx context.Context, data UploadEventData) error {
	var topics any
	if len(data.Topics) > 0 {
		b, err := json.Marshal(data.Topics)
		if err != nil {
			return fmt.Errorf("marshal topics: %w", err)
		}
		topics = string(b)
	}
	err := r.insert(ctx, uploadEventsTable, data.Timestamp, uploadEventColumns, []any{
		data.FileName, data.SizeBytes, data.MIMEType, data.Status, topics, data.ErrorMessage,
	})
	if err != nil {
		return fmt.Errorf("save upload event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryUploads(ctx context.Context, opts QueryOpts) ([]UploadEvent, error) {
	query, args := selectEvents(uploadEventsTable, uploadEventColumns, opts)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query upload events: %w", err)
	}
	defer rows.Close()

	var out []UploadEvent
	for rows.Next() {
		var (
			e      UploadEvent
			topics sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.Sequence, &e.Timestamp,
			&e.FileName, &e.SizeBytes, &e.MIMEType, &e.Status, &topics, &e.ErrorMessage,
		); err != nil {
			return nil, fmt.Errorf("scan upload event: %w", err)
		}
		if topics.Valid && topics.String != "" {
			if err := json.Unmarshal([]byte(topics.String), &e.Topics); err != nil {
				return nil, fmt.Errorf("decode topics: %w", err)
			}
		}
		e.UploadEventData.Timestamp = e.Timestamp
		out = append(out, e)
	}
	return out, rows.Err()
}
