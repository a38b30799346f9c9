package content

import (
	"encoding/json"
	"fmt"

	"portfolio-backend/internal/validation"
)

// Decode maps projected documents onto T and validates each record. Records
// that fail are left out and reported; the rest keep their order.
func Decode[T any](docs []Document, val *validation.Validator) ([]T, []error) {
	items := make([]T, 0, len(docs))
	var errs []error
	for i, doc := range docs {
		raw, err := json.Marshal(doc)
		if err != nil {
			errs = append(errs, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			errs = append(errs, fmt.Errorf("record %d (%v): %w", i, doc["id"], err))
			continue
		}
		if err := val.Struct(item); err != nil {
			errs = append(errs, fmt.Errorf("record %d (%v): %w", i, doc["id"], err))
			continue
		}
		items = append(items, item)
	}
	return items, errs
}

// Sanitize validates already-typed records, such as those decoded from an
// HTTP response.
func Sanitize[T any](in []T, val *validation.Validator) ([]T, []error) {
	items := make([]T, 0, len(in))
	var errs []error
	for i, item := range in {
		if err := val.Struct(item); err != nil {
			errs = append(errs, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		items = append(items, item)
	}
	return items, errs
}
