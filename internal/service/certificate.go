package service

import (
	"archive/zip"
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/myflowlab/stem-certification-quiz/internal/certificate"
	"github.com/myflowlab/stem-certification-quiz/internal/domain/entities"
)

const archivePrefix = "certificates/"

type CertificateService struct {
	users     UserRepository
	generator CertificateGenerator
	archive   CertificateArchive
	logger    *zap.Logger
}

func NewCertificateService(
	users UserRepository,
	generator CertificateGenerator,
	archive CertificateArchive,
	logger *zap.Logger,
) *CertificateService {
	return &CertificateService{
		users:     users,
		generator: generator,
		archive:   archive,
		logger:    logger,
	}
}

// Issue renders the certificate of a certified user and archives a copy.
func (s *CertificateService) Issue(ctx context.Context, username string) ([]byte, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !user.Certified {
		return nil, entities.ErrNotCertified
	}

	doc, err := s.generator.Generate(user.Username, user.Score)
	if err != nil {
		return nil, err
	}

	// Archiving is best effort; the user still gets the document.
	if err := s.archive.Put(ctx, archivePrefix+certificate.FileName(user.Username), doc); err != nil {
		s.logger.Warn("failed to archive certificate",
			zap.String("username", user.Username),
			zap.Error(err),
		)
	}

	return doc, nil
}

// WriteBundle writes a ZIP with the certificate of every certified user and returns how many it holds.
func (s *CertificateService) WriteBundle(ctx context.Context, w io.Writer) (int, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return 0, err
	}

	zw := zip.NewWriter(w)
	count := 0
	for _, u := range users {
		if !u.Certified {
			continue
		}
		doc, err := s.generator.Generate(u.Username, u.Score)
		if err != nil {
			_ = zw.Close()
			return count, err
		}
		f, err := zw.Create(certificate.FileName(u.Username))
		if err != nil {
			_ = zw.Close()
			return count, fmt.Errorf("add %s to bundle: %w", u.Username, err)
		}
		if _, err := f.Write(doc); err != nil {
			_ = zw.Close()
			return count, fmt.Errorf("write %s to bundle: %w", u.Username, err)
		}
		count++
	}

	if err := zw.Close(); err != nil {
		return count, fmt.Errorf("close bundle: %w", err)
	}
	return count, nil
}
