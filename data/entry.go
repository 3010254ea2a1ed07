package data

// IndexEntry maps one absolute virtual path to the sector holding its content.
type IndexEntry struct {
	Path   string `json:"path"`
	Sector Sector `json:"sector"`
}

func NewIndexEntry(path string, sector Sector) IndexEntry {
	return IndexEntry{
		Path:   path,
		Sector: sector,
	}
}
