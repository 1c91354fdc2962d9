package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kirillkom/chemical-safety-registry/internal/core/domain"
)

type chemicalRequest struct {
	Name             string   `json:"name"`
	MolecularFormula string   `json:"molecular_formula"`
	HazardClass      string   `json:"hazard_class"`
	FlashPointF      *float64 `json:"flash_point_f"`
	BoilingPointF    *float64 `json:"boiling_point_f"`
}

func casParam(r *http.Request) string {
	return strings.TrimSpace(chi.URLParam(r, "cas"))
}

func (rt *Router) getChemical(w http.ResponseWriter, r *http.Request) {
	chem, err := rt.svc.Chemicals.GetByCAS(r.Context(), casParam(r))
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, chem)
}

func (rt *Router) putChemical(w http.ResponseWriter, r *http.Request) {
	var req chemicalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid json")
		return
	}

	chem := &domain.Chemical{
		CASNumber:        casParam(r),
		Name:             req.Name,
		MolecularFormula: req.MolecularFormula,
		HazardClass:      req.HazardClass,
		FlashPointF:      req.FlashPointF,
		BoilingPointF:    req.BoilingPointF,
	}
	if err := rt.svc.Chemicals.Upsert(r.Context(), chem); err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, chem)
}

func (rt *Router) uploadSDS(w http.ResponseWriter, r *http.Request) {
	limit := int64(rt.cfg.MaxUploadMB) << 20
	if limit > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, limit)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "file exceeds upload limit"})
			return
		}
		writeBadRequest(w, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	sds, err := rt.svc.SDS.Upload(r.Context(), casParam(r), header.Filename, file)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sds)
}
