package domain

// ImportedRow is one successfully imported spreadsheet row. Row numbers are
// 1-based source row numbers as reported by the certificate service.
type ImportedRow struct {
	Row  int    `json:"row"`
	Name string `json:"name"`
}

// ImportReport is the per-row outcome of one bulk import call. It is
// ephemeral: rendered once to the operator and discarded.
type ImportReport struct {
	Created []ImportedRow `json:"created"`
	Errors  []string      `json:"errors"`
}
