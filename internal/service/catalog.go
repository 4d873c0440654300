package service

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"polarproperty/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const catalogCaption = "📘 Каталог объектов недвижимости\n\n" +
	"В каталоге представлены лучшие предложения нашего агентства."

// CatalogService delivers the catalog document from local storage
type CatalogService struct {
	sender Sender
	path   string
	logger *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(sender Sender, path string, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		sender: sender,
		path:   path,
		logger: logger,
	}
}

// Path returns the configured catalog location
func (s *CatalogService) Path() string {
	return s.path
}

// Available reports whether the catalog document exists
func (s *CatalogService) Available() bool {
	info, err := os.Stat(s.path)
	return err == nil && !info.IsDir()
}

// Send uploads the catalog document unchanged to the recipient
func (s *CatalogService) Send(to tele.Recipient) error {
	info, err := os.Stat(s.path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir()) {
		s.logger.Error("Catalog file not found", zap.String("path", s.path))
		return fmt.Errorf("%w: %s", domain.ErrCatalogNotFound, s.path)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrDeliveryFailed, err)
	}

	s.logger.Info("Sending catalog",
		zap.String("path", s.path),
		zap.String("recipient", to.Recipient()),
	)

	doc := &tele.Document{
		File:     tele.FromDisk(s.path),
		FileName: filepath.Base(s.path),
		Caption:  catalogCaption,
	}
	if _, err := s.sender.Send(to, doc); err != nil {
		s.logger.Error("Failed to send catalog",
			zap.Error(err),
			zap.String("recipient", to.Recipient()),
		)
		return fmt.Errorf("%w: %w", domain.ErrDeliveryFailed, err)
	}
	return nil
}
