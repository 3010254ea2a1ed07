package data

import (
	"fmt"
	"strconv"
)

// Sector identifies a flat file on the backend holding the content of one
// virtual file. Its decimal form is the name of that file.
type Sector uint64

func (s Sector) String() string {
	return strconv.FormatUint(uint64(s), 10)
}

// ParseSector parses the decimal form of a sector identifier.
// Only the canonical form is accepted, so "+1", "-0" or "007" are rejected.
func ParseSector(value string) (Sector, error) {
	if value == "" {
		return 0, fmt.Errorf("empty sector identifier")
	}

	if len(value) > 1 && value[0] == '0' {
		return 0, fmt.Errorf("non-canonical sector identifier '%s'", value)
	}

	for _, r := range value {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("invalid sector identifier '%s'", value)
		}
	}

	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, err
	}

	return Sector(n), nil
}

// IsSectorName reports whether name could be the name of a sector file.
func IsSectorName(name string) bool {
	_, err := ParseSector(name)
	return err == nil
}
