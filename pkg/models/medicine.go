package models

import "strings"

// Medicine holds the static product information shown in the info view.
// Name, API and contents are not translated; the descriptive texts live in
// the medinfo package so they can be localized.
type Medicine struct {
	Name     string
	API      string
	Contents string
}

// DefaultMedicine is the product this build is packaged for.
var DefaultMedicine = Medicine{
	Name:     "Udapa Gold",
	API:      "Dapagliflozin + Metformin",
	Contents: "Dapagliflozin 10 mg + Metformin 500 mg",
}

// Slug returns the storage namespace for this product: lowercased name with
// whitespace runs collapsed to underscores.
func (m Medicine) Slug() string {
	return strings.ToLower(strings.Join(strings.Fields(m.Name), "_"))
}
