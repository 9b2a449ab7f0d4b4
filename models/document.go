package models

import (
	"encoding/json"
	"fmt"
)

// MarshalDocument renders a store record as the indented JSON document that
// is written to disk or to the database.
func MarshalDocument(record StoreRecord) ([]byte, error) {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode store document: %w", err)
	}
	return append(data, '\n'), nil
}

// UnmarshalDocument parses a store document.
func UnmarshalDocument(data []byte) (StoreRecord, error) {
	var record StoreRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return StoreRecord{}, fmt.Errorf("decode store document: %w", err)
	}
	if record.Secrets == nil {
		record.Secrets = SecretEntries{}
	}
	return record, nil
}
