package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/kirillkom/chemical-safety-registry/internal/config"
	"github.com/kirillkom/chemical-safety-registry/internal/core/domain"
	"github.com/kirillkom/chemical-safety-registry/internal/core/ghs"
	"github.com/kirillkom/chemical-safety-registry/internal/core/nfpa"
	"github.com/kirillkom/chemical-safety-registry/internal/core/usecase"
)

type chemicalsFake struct {
	byCAS map[string]*domain.Chemical
}

func (f *chemicalsFake) GetByCAS(_ context.Context, cas string) (*domain.Chemical, error) {
	chem, ok := f.byCAS[cas]
	if !ok {
		return nil, domain.WrapError(domain.ErrChemicalNotFound, "get chemical", errors.New(cas))
	}
	return chem, nil
}

func (f *chemicalsFake) Upsert(_ context.Context, chem *domain.Chemical) error {
	if chem.Name == "" {
		return domain.WrapError(domain.ErrInvalidInput, "upsert", errors.New("name is required"))
	}
	chem.ID = 1
	f.byCAS[chem.CASNumber] = chem
	return nil
}

func (f *chemicalsFake) ListHazardRegister(context.Context) ([]domain.HazardRegisterEntry, error) {
	return nil, nil
}

type hazardsFake struct {
	sdsErr    error
	latestErr error
	manual    domain.HazardInfo
	storedCAS string
}

func (f *hazardsFake) Preview(text string) domain.HazardInfo { return ghs.Extract(text) }

func (f *hazardsFake) ExtractAndStore(_ context.Context, cas, text string) (*domain.GHSClassification, error) {
	f.storedCAS = cas
	return &domain.GHSClassification{ID: 11, Hazard: ghs.Extract(text), Source: domain.SourceTextExtraction}, nil
}

func (f *hazardsFake) ExtractAndStoreFromSDS(context.Context, string) (*domain.GHSClassification, error) {
	if f.sdsErr != nil {
		return nil, f.sdsErr
	}
	return &domain.GHSClassification{ID: 12, Hazard: ghs.Extract("H225 Flammable."), Source: domain.SourcePDFExtraction}, nil
}

func (f *hazardsFake) StoreManual(_ context.Context, _ string, info domain.HazardInfo) (*domain.GHSClassification, error) {
	f.manual = info
	return &domain.GHSClassification{ID: 13, Hazard: info, Source: domain.SourceManual}, nil
}

func (f *hazardsFake) Latest(context.Context, string) (*domain.GHSClassification, error) {
	if f.latestErr != nil {
		return nil, f.latestErr
	}
	return &domain.GHSClassification{ID: 14, Source: domain.SourceManual}, nil
}

type sdsFake struct {
	body string
	err  error
}

func (f *sdsFake) Upload(_ context.Context, cas, filename string, body io.Reader) (*domain.SDSFile, error) {
	if f.err != nil {
		return nil, f.err
	}
	raw, _ := io.ReadAll(body)
	f.body = string(raw)
	return &domain.SDSFile{ID: 5, FileName: filename, FileSize: int64(len(raw))}, nil
}

type reportFake struct{ err error }

func (f reportFake) WriteRegister(_ context.Context, w io.Writer) error {
	if f.err != nil {
		return f.err
	}
	_, err := io.WriteString(w, "PK-xlsx")
	return err
}

type testEnv struct {
	handler http.Handler
	hazards *hazardsFake
	sds     *sdsFake
}

func newTestEnv(t *testing.T, cfg config.Config) *testEnv {
	t.Helper()
	tr, err := nfpa.LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault() error = %v", err)
	}
	fp, bp := 81.0, 281.0
	chems := &chemicalsFake{byCAS: map[string]*domain.Chemical{
		"1330-20-7": {ID: 2, CASNumber: "1330-20-7", Name: "Xylene", HazardClass: "Category 3", FlashPointF: &fp, BoilingPointF: &bp},
	}}
	env := &testEnv{hazards: &hazardsFake{}, sds: &sdsFake{}}
	env.handler = NewRouter(cfg, Services{
		Chemicals: chems,
		Hazards:   env.hazards,
		NFPA:      usecase.NewNFPAUseCase(tr, chems),
		SDS:       env.sds,
		Reports:   reportFake{},
	}, nil, nil).Handler()
	return env
}

func (e *testEnv) do(method, path, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	res := httptest.NewRecorder()
	e.handler.ServeHTTP(res, req)
	return res
}

func decodeBody(t *testing.T, res *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(res.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", res.Body.String(), err)
	}
	return out
}

func TestHealthzSetsRequestID(t *testing.T) {
	env := newTestEnv(t, config.Config{})
	res := env.do(http.MethodGet, "/healthz", "", "")
	if res.Code != http.StatusOK || res.Header().Get(requestIDHeader) == "" {
		t.Fatalf("expected 200 with request id, got %d %v", res.Code, res.Header())
	}
}

func TestPreviewGHSAcceptsTextAndJSON(t *testing.T) {
	env := newTestEnv(t, config.Config{})

	plain := env.do(http.MethodPost, "/v1/ghs/extract", "text/plain", "Signal word: Warning H315 Causes skin irritation.")
	jsonRes := env.do(http.MethodPost, "/v1/ghs/extract", "application/json", `{"text":"Signal word: Warning H315 Causes skin irritation."}`)
	for _, res := range []*httptest.ResponseRecorder{plain, jsonRes} {
		if res.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
		}
		body := decodeBody(t, res)
		info := body["hazard_info"].(map[string]any)
		if body["success"] != true || info["signal_word"] != "Warning" {
			t.Fatalf("unexpected body %v", body)
		}
	}

	if res := env.do(http.MethodPost, "/v1/ghs/extract", "text/plain", "  "); res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty body, got %d", res.Code)
	}
}

func TestExtractChemicalGHSWithText(t *testing.T) {
	env := newTestEnv(t, config.Config{})

	res := env.do(http.MethodPost, "/v1/chemicals/67-64-1/extract-ghs", "application/json", `{"text":"H225 Highly flammable liquid and vapour."}`)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	body := decodeBody(t, res)
	if body["classification_id"] != float64(11) || body["classification_source"] != domain.SourceTextExtraction {
		t.Fatalf("unexpected body %v", body)
	}
	if env.hazards.storedCAS != "67-64-1" {
		t.Fatalf("expected cas from path, got %q", env.hazards.storedCAS)
	}
}

func TestExtractChemicalGHSFromSDSMapsErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{name: "unreadable", err: domain.WrapError(domain.ErrSourceUnavailable, "extract", errors.New("no text layer")), status: http.StatusUnprocessableEntity},
		{name: "no sds", err: domain.WrapError(domain.ErrSDSNotFound, "latest", errors.New("none")), status: http.StatusNotFound},
		{name: "unknown chemical", err: domain.WrapError(domain.ErrChemicalNotFound, "find", errors.New("x")), status: http.StatusNotFound},
		{name: "db failure", err: errors.New("pq: connection reset"), status: http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t, config.Config{})
			env.hazards.sdsErr = tc.err

			res := env.do(http.MethodPost, "/v1/chemicals/67-64-1/extract-ghs", "", "")
			if res.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, res.Code)
			}
			body := decodeBody(t, res)
			if body["success"] != false {
				t.Fatalf("expected success=false, got %v", body)
			}
			if tc.status == http.StatusUnprocessableEntity && body["hint"] == nil {
				t.Fatalf("expected retry hint, got %v", body)
			}
			if tc.status == http.StatusInternalServerError && strings.Contains(body["error"].(string), "pq:") {
				t.Fatalf("internal error details must not leak: %v", body)
			}
		})
	}
}

func TestPutChemicalGHSAcceptsLegacyListShapes(t *testing.T) {
	env := newTestEnv(t, config.Config{})

	payload := `{
		"signal_word": "Danger",
		"hazard_statements": "[\"H319\",\"H225\"]",
		"pictograms": "GHS07, GHS02",
		"precautionary_statements": ["P210"],
		"hazard_classes": null,
		"flammable": true
	}`
	res := env.do(http.MethodPut, "/v1/chemicals/67-64-1/ghs", "application/json", payload)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}

	got := env.hazards.manual
	if !reflect.DeepEqual(got.HazardStatements, []string{"H225", "H319"}) {
		t.Fatalf("unexpected hazard statements %v", got.HazardStatements)
	}
	if !reflect.DeepEqual(got.Pictograms, []string{"GHS02", "GHS07"}) {
		t.Fatalf("unexpected pictograms %v", got.Pictograms)
	}
	if got.HazardClasses == nil || !got.Flammable {
		t.Fatalf("unexpected manual record %+v", got)
	}

	if res := env.do(http.MethodPut, "/v1/chemicals/67-64-1/ghs", "application/json", `{"pictograms": 7}`); res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for numeric list, got %d", res.Code)
	}
}

func TestGetChemicalGHSNotFound(t *testing.T) {
	env := newTestEnv(t, config.Config{})
	env.hazards.latestErr = domain.WrapError(domain.ErrClassificationNotFound, "latest", errors.New("none"))

	if res := env.do(http.MethodGet, "/v1/chemicals/67-64-1/ghs", "", ""); res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
}

func TestNFPATranslate(t *testing.T) {
	env := newTestEnv(t, config.Config{})

	res := env.do(http.MethodPost, "/v1/nfpa/translate", "application/json", `{"category":"Category 2","flash_point_f":-4,"boiling_point_f":133}`)
	body := decodeBody(t, res)
	if body["classified"] != true || body["nfpa_class"] != "Class IB" || body["color"] != "#FFFF00" {
		t.Fatalf("unexpected rating %v", body)
	}

	res = env.do(http.MethodPost, "/v1/nfpa/translate", "application/json", `{"category":"Category 7","flash_point_f":10}`)
	body = decodeBody(t, res)
	if res.Code != http.StatusOK || body["classified"] != false || body["nfpa_class"] != "Not classified" {
		t.Fatalf("expected not classified display record, got %d %v", res.Code, body)
	}
}

func TestNFPACategoriesInTableOrder(t *testing.T) {
	env := newTestEnv(t, config.Config{})
	body := decodeBody(t, env.do(http.MethodGet, "/v1/nfpa/categories", "", ""))
	cats := body["categories"].([]any)
	if len(cats) != 4 || cats[0] != "Category 1" || cats[3] != "Category 4" {
		t.Fatalf("unexpected categories %v", cats)
	}
}

func TestChemicalNFPAUsesStoredProperties(t *testing.T) {
	env := newTestEnv(t, config.Config{})

	body := decodeBody(t, env.do(http.MethodGet, "/v1/chemicals/1330-20-7/nfpa", "", ""))
	if body["nfpa_class"] != "Class IC" {
		t.Fatalf("expected Class IC from hazard class, got %v", body)
	}
	body = decodeBody(t, env.do(http.MethodGet, "/v1/chemicals/1330-20-7/nfpa?category=Category+4", "", ""))
	if body["nfpa_class"] != "Class IIIA" {
		t.Fatalf("expected override category, got %v", body)
	}
	if res := env.do(http.MethodGet, "/v1/chemicals/0-0-0/nfpa", "", ""); res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
}

func TestPutAndGetChemical(t *testing.T) {
	env := newTestEnv(t, config.Config{})

	res := env.do(http.MethodPut, "/v1/chemicals/64-17-5", "application/json", `{"name":"Ethanol","hazard_class":"Category 2","flash_point_f":55}`)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	body := decodeBody(t, env.do(http.MethodGet, "/v1/chemicals/64-17-5", "", ""))
	if body["name"] != "Ethanol" || body["flash_point_f"] != float64(55) {
		t.Fatalf("unexpected chemical %v", body)
	}
	if res := env.do(http.MethodPut, "/v1/chemicals/64-17-5", "application/json", `{}`); res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing name, got %d", res.Code)
	}
}

func TestUploadSDS(t *testing.T) {
	env := newTestEnv(t, config.Config{MaxUploadMB: 1})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, _ := mw.CreateFormFile("file", "acetone.pdf")
	_, _ = part.Write([]byte("%PDF-1.4 sheet"))
	_ = mw.Close()

	res := env.do(http.MethodPost, "/v1/chemicals/67-64-1/sds", mw.FormDataContentType(), buf.String())
	if res.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", res.Code, res.Body.String())
	}
	if env.sds.body != "%PDF-1.4 sheet" {
		t.Fatalf("unexpected uploaded body %q", env.sds.body)
	}

	if res := env.do(http.MethodPost, "/v1/chemicals/67-64-1/sds", "text/plain", "nope"); res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without multipart file, got %d", res.Code)
	}
}

func TestHazardRegisterDownload(t *testing.T) {
	env := newTestEnv(t, config.Config{})
	res := env.do(http.MethodGet, "/v1/reports/hazard-register.xlsx", "", "")
	if res.Code != http.StatusOK || res.Header().Get("Content-Type") != xlsxContentType {
		t.Fatalf("unexpected response %d %v", res.Code, res.Header())
	}
	if res.Body.String() != "PK-xlsx" {
		t.Fatalf("unexpected body %q", res.Body.String())
	}
}

func TestNFPATranslateRejectsOversizedBody(t *testing.T) {
	env := newTestEnv(t, config.Config{})
	body := `{"category":"` + strings.Repeat("x", maxJSONBodyBytes) + `"}`

	res := env.do(http.MethodPost, "/v1/nfpa/translate", "application/json", body)
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for oversized body, got %d", res.Code)
	}
}
