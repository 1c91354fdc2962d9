package httpadapter

import (
	"encoding/json"
	"io"
	"net/http"
)

const maxJSONBodyBytes = 64 << 10

type translateRequest struct {
	Category      string   `json:"category"`
	FlashPointF   *float64 `json:"flash_point_f"`
	BoilingPointF *float64 `json:"boiling_point_f"`
}

func (rt *Router) nfpaCategories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"categories": rt.svc.NFPA.Categories()})
}

func (rt *Router) nfpaTranslate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxJSONBodyBytes)).Decode(&req); err != nil {
		writeBadRequest(w, "invalid json")
		return
	}

	rating := rt.svc.NFPA.Translate(req.Category, req.FlashPointF, req.BoilingPointF)
	rt.recordTranslation(rating.Category, rating.Classified)
	writeJSON(w, http.StatusOK, rating)
}

func (rt *Router) getChemicalNFPA(w http.ResponseWriter, r *http.Request) {
	rating, err := rt.svc.NFPA.RateChemical(r.Context(), casParam(r), r.URL.Query().Get("category"))
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	rt.recordTranslation(rating.Category, rating.Classified)
	writeJSON(w, http.StatusOK, rating)
}

func (rt *Router) recordTranslation(category string, classified bool) {
	if rt.metrics != nil {
		rt.metrics.RecordTranslation(category, classified)
	}
}
