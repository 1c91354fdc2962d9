package domain

import "time"

type Chemical struct {
	ID               int64     `json:"id"`
	CASNumber        string    `json:"cas_number"`
	Name             string    `json:"name"`
	MolecularFormula string    `json:"molecular_formula,omitempty"`
	HazardClass      string    `json:"hazard_class,omitempty"`
	FlashPointF      *float64  `json:"flash_point_f,omitempty"`
	BoilingPointF    *float64  `json:"boiling_point_f,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type SDSFile struct {
	ID         int64     `json:"id"`
	ChemicalID int64     `json:"chemical_id"`
	FileName   string    `json:"file_name"`
	FilePath   string    `json:"file_path"`
	FileSize   int64     `json:"file_size"`
	Checksum   string    `json:"checksum"`
	Source     string    `json:"source,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// HazardRegisterEntry is one report row: a chemical and its latest stored classification, if any.
type HazardRegisterEntry struct {
	Chemical       Chemical
	Classification *GHSClassification
}

type HazardRegisterRow struct {
	CASNumber        string
	Name             string
	HazardClass      string
	FlashPointF      *float64
	BoilingPointF    *float64
	SignalWord       string
	Pictograms       []string
	HazardStatements []string
	ClassifiedAt     *time.Time
	NFPA             NFPARating
}
