package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"

	"github.com/kirillkom/chemical-safety-registry/internal/core/domain"
)

type chemicalRepoFake struct {
	mu       sync.Mutex
	byCAS    map[string]*domain.Chemical
	register []domain.HazardRegisterEntry
	err      error
}

func newChemicalRepoFake(chems ...domain.Chemical) *chemicalRepoFake {
	f := &chemicalRepoFake{byCAS: map[string]*domain.Chemical{}}
	for i := range chems {
		c := chems[i]
		f.byCAS[c.CASNumber] = &c
	}
	return f
}

func (f *chemicalRepoFake) GetByCAS(_ context.Context, cas string) (*domain.Chemical, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.byCAS[cas]
	if !ok {
		return nil, domain.WrapError(domain.ErrChemicalNotFound, "get chemical", errors.New(cas))
	}
	cp := *c
	return &cp, nil
}

func (f *chemicalRepoFake) Upsert(_ context.Context, chem *domain.Chemical) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	cp := *chem
	if cp.ID == 0 {
		cp.ID = int64(len(f.byCAS) + 1)
		chem.ID = cp.ID
	}
	f.byCAS[cp.CASNumber] = &cp
	return nil
}

func (f *chemicalRepoFake) ListHazardRegister(context.Context) ([]domain.HazardRegisterEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.register, nil
}

type classificationRepoFake struct {
	mu       sync.Mutex
	ids      map[string]int64
	stored   map[int64]domain.GHSClassification
	nextID   int64
	replaces int
	err      error
}

func newClassificationRepoFake(ids map[string]int64) *classificationRepoFake {
	return &classificationRepoFake{ids: ids, stored: map[int64]domain.GHSClassification{}}
}

func (f *classificationRepoFake) FindChemicalIDByCAS(_ context.Context, cas string) (int64, error) {
	id, ok := f.ids[cas]
	if !ok {
		return 0, domain.WrapError(domain.ErrChemicalNotFound, "find chemical", errors.New(cas))
	}
	return id, nil
}

func (f *classificationRepoFake) ReplaceClassification(_ context.Context, chemicalID int64, cls domain.GHSClassification) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.nextID++
	f.replaces++
	cls.ID = f.nextID
	f.stored[chemicalID] = cls
	return cls.ID, nil
}

func (f *classificationRepoFake) LatestClassification(_ context.Context, chemicalID int64) (*domain.GHSClassification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cls, ok := f.stored[chemicalID]
	if !ok {
		return nil, domain.WrapError(domain.ErrClassificationNotFound, "latest classification", errors.New("none"))
	}
	return &cls, nil
}

type sdsRepoFake struct {
	created *domain.SDSFile
	latest  map[int64]*domain.SDSFile
	err     error
}

func (f *sdsRepoFake) CreateSDSFile(_ context.Context, file *domain.SDSFile) error {
	if f.err != nil {
		return f.err
	}
	cp := *file
	f.created = &cp
	file.ID = 1
	return nil
}

func (f *sdsRepoFake) LatestSDSFile(_ context.Context, chemicalID int64) (*domain.SDSFile, error) {
	file, ok := f.latest[chemicalID]
	if !ok {
		return nil, domain.WrapError(domain.ErrSDSNotFound, "latest sds", errors.New("none"))
	}
	return file, nil
}

type storageFake struct {
	savedKey  string
	savedBody []byte
	err       error
}

func (f *storageFake) Save(_ context.Context, key string, data io.Reader) error {
	if f.err != nil {
		return f.err
	}
	raw, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	f.savedKey = key
	f.savedBody = raw
	return nil
}

func (f *storageFake) Open(context.Context, string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.savedBody)), nil
}

type queueFake struct {
	published []string
	err       error
}

func (f *queueFake) PublishSDSUploaded(_ context.Context, cas string) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, cas)
	return nil
}

func (f *queueFake) SubscribeSDSUploaded(context.Context, func(context.Context, string) error) error {
	return errors.New("not implemented")
}

type textSourceFake struct {
	texts map[string]string
	err   error
}

func (f *textSourceFake) ExtractText(_ context.Context, key string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	text, ok := f.texts[key]
	if !ok {
		return "", errors.New("no such object")
	}
	return text, nil
}

type registerWriterFake struct {
	rows []domain.HazardRegisterRow
}

func (f *registerWriterFake) WriteRegister(w io.Writer, rows []domain.HazardRegisterRow) error {
	f.rows = rows
	_, err := io.WriteString(w, "ok")
	return err
}

func fp(v float64) *float64 { return &v }
