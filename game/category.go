package game

import "fmt"

// ShotCategory is the strategic class of a shot chosen by the planner
type ShotCategory int

const (
	ShotPutt ShotCategory = iota
	ShotChip
	ShotLayup
	ShotDrive
	ShotLob
)

// AllCategories lists every category in declaration order
var AllCategories = []ShotCategory{ShotPutt, ShotChip, ShotLayup, ShotDrive, ShotLob}

// PowerRange is an inclusive power bracket
type PowerRange struct {
	Min, Max float64
}

// String returns the category name
func (c ShotCategory) String() string {
	switch c {
	case ShotPutt:
		return "putt"
	case ShotChip:
		return "chip"
	case ShotLayup:
		return "layup"
	case ShotDrive:
		return "drive"
	case ShotLob:
		return "lob"
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// MarshalText lets categories appear by name in JSON and YAML
func (c ShotCategory) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses a category name written by MarshalText
func (c *ShotCategory) UnmarshalText(b []byte) error {
	for _, cat := range AllCategories {
		if cat.String() == string(b) {
			*c = cat
			return nil
		}
	}
	return fmt.Errorf("unknown shot category %q", b)
}

// AngleHint is the canonical launch angle in degrees for the category
func (c ShotCategory) AngleHint() float64 {
	switch c {
	case ShotDrive:
		return 38.0
	case ShotLayup:
		return 35.0
	case ShotChip:
		return 30.0
	case ShotLob:
		return 75.0
	case ShotPutt:
		return 5.0
	}
	return 35.0
}

// PowerRange is the recommended power bracket for the category
func (c ShotCategory) PowerRange() PowerRange {
	switch c {
	case ShotDrive:
		return PowerRange{Min: 80, Max: 150}
	case ShotLayup:
		return PowerRange{Min: 40, Max: 80}
	case ShotChip:
		return PowerRange{Min: 20, Max: 50}
	case ShotLob:
		return PowerRange{Min: 100, Max: 150}
	case ShotPutt:
		return PowerRange{Min: 5, Max: 30}
	}
	return PowerRange{Min: 40, Max: 80}
}
