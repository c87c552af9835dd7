package model

import (
	"encoding/json"
	"fmt"
)

// Extra holds the wallet.json keys a type does not model (address_book,
// tx_notes, fee_per_kb, created_time and the like). They are written back
// unchanged on save.
type Extra map[string]json.RawMessage

// splitExtra returns every key of the object in data not listed in known, nil if none
func splitExtra(data []byte, known ...string) (Extra, error) {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	for _, k := range known {
		delete(all, k)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return Extra(all), nil
}

// mergeExtra adds extra keys to the encoded object base. Keys already in base win.
func mergeExtra(base []byte, extra Extra) ([]byte, error) {
	if len(extra) == 0 {
		return base, nil
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(base, &all); err != nil {
		return nil, fmt.Errorf("failed to merge extra fields: %w", err)
	}
	for k, v := range extra {
		if _, ok := all[k]; !ok {
			all[k] = v
		}
	}
	return json.Marshal(all)
}
