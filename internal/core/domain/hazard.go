package domain

import "time"

const (
	SignalDanger  = "Danger"
	SignalWarning = "Warning"
)

const (
	SourcePDFExtraction  = "pdf_extraction"
	SourceTextExtraction = "text_extraction"
	SourceManual         = "manual"
)

// HazardInfo is the record produced by one extraction call over SDS text.
// Set-valued fields are deduplicated, sorted ascending and never nil.
type HazardInfo struct {
	SignalWord              string   `json:"signal_word,omitempty"`
	HazardStatements        []string `json:"hazard_statements"`
	PrecautionaryStatements []string `json:"precautionary_statements"`
	Pictograms              []string `json:"pictograms"`
	HazardClasses           []string `json:"hazard_classes"`

	Flammable bool `json:"flammable"`
	Explosive bool `json:"explosive"`
	Oxidizing bool `json:"oxidizing"`
	Toxic     bool `json:"toxic"`
	Corrosive bool `json:"corrosive"`

	AcuteToxicity            string `json:"acute_toxicity"`
	SeriousEyeDamage         string `json:"serious_eye_damage"`
	SkinCorrosion            string `json:"skin_corrosion"`
	ReproductiveToxicity     string `json:"reproductive_toxicity"`
	Carcinogenicity          string `json:"carcinogenicity"`
	GermCellMutagenicity     string `json:"germ_cell_mutagenicity"`
	RespiratorySensitization string `json:"respiratory_sensitization"`
	AquaticToxicity          string `json:"aquatic_toxicity"`
}

// GHSClassification is the persisted form of HazardInfo for one chemical.
type GHSClassification struct {
	ID           int64      `json:"id"`
	ChemicalID   int64      `json:"chemical_id"`
	Hazard       HazardInfo `json:"hazard_info"`
	Source       string     `json:"classification_source"`
	ClassifiedAt time.Time  `json:"classified_at"`
}

// NFPARating is the display-only NFPA 704 flammability result for a chemical
// or an ad-hoc translation. Classified is false when no rule matched.
type NFPARating struct {
	Category                string   `json:"category"`
	FlashPointF             *float64 `json:"flash_point_f,omitempty"`
	BoilingPointF           *float64 `json:"boiling_point_f,omitempty"`
	Classified              bool     `json:"classified"`
	NFPAClass               string   `json:"nfpa_class"`
	Flammability            int      `json:"nfpa_flammability"`
	FireCodeType            string   `json:"fire_code_type"`
	FlashPointDescription   string   `json:"flash_point_description"`
	BoilingPointDescription string   `json:"boiling_point_description"`
	Color                   string   `json:"color"`
	Description             string   `json:"description"`
}
