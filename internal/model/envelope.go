package model

import "strconv"

// Wire format versions
const (
	VersionLegacy   FormatVersion = 2.0
	VersionUpgraded FormatVersion = 3.0
)

// FormatVersion is the envelope version, always rendered with one decimal
type FormatVersion float64

func (v FormatVersion) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(v), 'f', 1, 64)), nil
}

func (v FormatVersion) String() string {
	return strconv.FormatFloat(float64(v), 'f', 1, 64)
}

// Envelope is the versioned wrapper around the encrypted payload
type Envelope struct {
	Version          FormatVersion `json:"version"`
	Pbkdf2Iterations int           `json:"pbkdf2_iterations"`
	Payload          string        `json:"payload"`
}
