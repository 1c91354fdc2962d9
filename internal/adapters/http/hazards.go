package httpadapter

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/kirillkom/chemical-safety-registry/internal/core/domain"
)

const maxTextBodyBytes = 4 << 20

type classificationResponse struct {
	Success          bool              `json:"success"`
	ClassificationID int64             `json:"classification_id,omitempty"`
	Source           string            `json:"classification_source,omitempty"`
	HazardInfo       domain.HazardInfo `json:"hazard_info"`
}

// manualClassificationRequest accepts the list fields in any HazardList shape.
type manualClassificationRequest struct {
	SignalWord              string            `json:"signal_word"`
	HazardStatements        domain.HazardList `json:"hazard_statements"`
	PrecautionaryStatements domain.HazardList `json:"precautionary_statements"`
	Pictograms              domain.HazardList `json:"pictograms"`
	HazardClasses           domain.HazardList `json:"hazard_classes"`

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

func (m manualClassificationRequest) toHazardInfo() domain.HazardInfo {
	return domain.HazardInfo{
		SignalWord:               strings.TrimSpace(m.SignalWord),
		HazardStatements:         m.HazardStatements,
		PrecautionaryStatements:  m.PrecautionaryStatements,
		Pictograms:               m.Pictograms,
		HazardClasses:            m.HazardClasses,
		Flammable:                m.Flammable,
		Explosive:                m.Explosive,
		Oxidizing:                m.Oxidizing,
		Toxic:                    m.Toxic,
		Corrosive:                m.Corrosive,
		AcuteToxicity:            m.AcuteToxicity,
		SeriousEyeDamage:         m.SeriousEyeDamage,
		SkinCorrosion:            m.SkinCorrosion,
		ReproductiveToxicity:     m.ReproductiveToxicity,
		Carcinogenicity:          m.Carcinogenicity,
		GermCellMutagenicity:     m.GermCellMutagenicity,
		RespiratorySensitization: m.RespiratorySensitization,
		AquaticToxicity:          m.AquaticToxicity,
	}
}

func classificationOK(cls *domain.GHSClassification) classificationResponse {
	return classificationResponse{
		Success:          true,
		ClassificationID: cls.ID,
		Source:           cls.Source,
		HazardInfo:       cls.Hazard,
	}
}

// previewGHS extracts from a text/plain body or a JSON {"text": ...} body.
func (rt *Router) previewGHS(w http.ResponseWriter, r *http.Request) {
	text, present, err := readText(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if !present {
		writeBadRequest(w, "text is required")
		return
	}

	info := rt.svc.Hazards.Preview(text)
	rt.recordExtraction("preview", len(info.HazardStatements), nil)
	writeJSON(w, http.StatusOK, classificationResponse{Success: true, HazardInfo: info})
}

// extractChemicalGHS stores an extraction for the chemical. Supplied text is
// used directly; an empty body reads the chemical's latest SDS.
func (rt *Router) extractChemicalGHS(w http.ResponseWriter, r *http.Request) {
	text, present, err := readText(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	var cls *domain.GHSClassification
	source := domain.SourcePDFExtraction
	if present {
		source = domain.SourceTextExtraction
		cls, err = rt.svc.Hazards.ExtractAndStore(r.Context(), casParam(r), text)
	} else {
		cls, err = rt.svc.Hazards.ExtractAndStoreFromSDS(r.Context(), casParam(r))
	}
	if err != nil {
		rt.recordExtraction(source, 0, err)
		rt.writeError(w, r, err)
		return
	}
	rt.recordExtraction(source, len(cls.Hazard.HazardStatements), nil)
	writeJSON(w, http.StatusOK, classificationOK(cls))
}

func (rt *Router) getChemicalGHS(w http.ResponseWriter, r *http.Request) {
	cls, err := rt.svc.Hazards.Latest(r.Context(), casParam(r))
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, classificationOK(cls))
}

func (rt *Router) putChemicalGHS(w http.ResponseWriter, r *http.Request) {
	var req manualClassificationRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxTextBodyBytes)).Decode(&req); err != nil {
		writeBadRequest(w, "invalid json: "+err.Error())
		return
	}

	cls, err := rt.svc.Hazards.StoreManual(r.Context(), casParam(r), req.toHazardInfo())
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, classificationOK(cls))
}

func (rt *Router) recordExtraction(source string, statements int, err error) {
	if rt.metrics != nil {
		rt.metrics.RecordExtraction(source, statements, err)
	}
}

// readText reports whether the request carried any text to extract from.
func readText(r *http.Request) (string, bool, error) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxTextBodyBytes))
	if err != nil {
		return "", false, errors.New("could not read request body")
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return "", false, nil
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		return string(raw), true, nil
	}

	var req struct {
		Text *string `json:"text"`
	}
	if err := json.Unmarshal(raw, &req); err != nil {
		return "", false, errors.New("invalid json")
	}
	if req.Text == nil {
		return "", false, nil
	}
	return *req.Text, true, nil
}
