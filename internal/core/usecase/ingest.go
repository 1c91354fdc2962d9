package usecase

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kirillkom/chemical-safety-registry/internal/core/domain"
	"github.com/kirillkom/chemical-safety-registry/internal/core/ports"
)

var pdfMagic = []byte("%PDF")

type SDSIngestUseCase struct {
	chemicals ports.ChemicalRepository
	files     ports.SDSFileRepository
	storage   ports.ObjectStorage
	queue     ports.MessageQueue
}

func NewSDSIngestUseCase(
	chemicals ports.ChemicalRepository,
	files ports.SDSFileRepository,
	storage ports.ObjectStorage,
	queue ports.MessageQueue,
) *SDSIngestUseCase {
	return &SDSIngestUseCase{
		chemicals: chemicals,
		files:     files,
		storage:   storage,
		queue:     queue,
	}
}

// Upload stores an SDS PDF for the chemical and announces it on the queue.
func (uc *SDSIngestUseCase) Upload(
	ctx context.Context,
	cas, filename string,
	body io.Reader,
) (*domain.SDSFile, error) {
	chem, err := uc.chemicals.GetByCAS(ctx, strings.TrimSpace(cas))
	if err != nil {
		return nil, fmt.Errorf("load chemical: %w", err)
	}

	br := bufio.NewReader(body)
	head, err := br.Peek(len(pdfMagic))
	if err != nil || !bytes.Equal(head, pdfMagic) {
		return nil, domain.WrapError(domain.ErrInvalidInput, "upload sds", fmt.Errorf("file is not a PDF document"))
	}

	hasher := sha256.New()
	counter := &countingWriter{}
	tee := io.TeeReader(br, io.MultiWriter(hasher, counter))

	storageKey := fmt.Sprintf("%s_%s", uuid.NewString(), sanitizeFilename(filename))
	if err := uc.storage.Save(ctx, storageKey, tee); err != nil {
		return nil, fmt.Errorf("save to object storage: %w", err)
	}

	file := &domain.SDSFile{
		ChemicalID: chem.ID,
		FileName:   filename,
		FilePath:   storageKey,
		FileSize:   counter.n,
		Checksum:   hex.EncodeToString(hasher.Sum(nil)),
		Source:     "upload",
		UploadedAt: time.Now().UTC(),
	}
	if err := uc.files.CreateSDSFile(ctx, file); err != nil {
		return nil, fmt.Errorf("create sds metadata: %w", err)
	}

	if err := uc.queue.PublishSDSUploaded(ctx, chem.CASNumber); err != nil {
		return nil, fmt.Errorf("publish sds event: %w", err)
	}

	return file, nil
}

type countingWriter struct{ n int64 }

func (c *countingWriter) Write(p []byte) (int, error) {
	c.n += int64(len(p))
	return len(p), nil
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" || base == "." || base == "_" {
		return "sds.pdf"
	}
	return base
}
