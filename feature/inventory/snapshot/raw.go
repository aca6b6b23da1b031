package snapshot

// Raw is the snapshot document written by the scraper. Numeric fields are left
// untyped because the export is loosely shaped; Parse coerces them.
type Raw struct {
	ExportedAt string              `json:"exported_at,omitempty"`
	Items      []RawItem           `json:"items"`
	Loads      []RawLoad           `json:"loads"`
	LoadItems  map[string][]string `json:"load_items"`
}

// RawItem is one external inventory row.
type RawItem struct {
	Serial              string `json:"serial"`
	Model               string `json:"model" validate:"required_without=Serial"`
	Qty                 any    `json:"qty"`
	AvailabilityStatus  string `json:"availability_status"`
	AvailabilityMessage string `json:"availability_message"`
	CSO                 string `json:"cso"`
	SubInventory        string `json:"sub_inventory"`
}

// RawLoad is one load/report metadata row.
type RawLoad struct {
	LoadNumber    string `json:"load_number" validate:"required"`
	Status        string `json:"status"`
	CSOStatus     string `json:"cso_status"`
	Units         any    `json:"units"`
	Notes         string `json:"notes"`
	SubmittedDate string `json:"submitted_date"`
	CSO           string `json:"cso"`
}
