package record

import (
	_ "embed"
	"encoding/json"
)

//go:embed default_record.json
var defaultRecordJSON []byte

// Default returns the baked-in record used when no live data exists for a
// market yet. It is injected explicitly wherever fallback data is needed so
// tests can substitute their own. Each call returns a fresh copy.
func Default() *Record {
	var rec Record
	if err := json.Unmarshal(defaultRecordJSON, &rec); err != nil {
		// the embedded document is validated by tests, this cannot
		// happen at runtime
		panic(err)
	}
	return &rec
}
