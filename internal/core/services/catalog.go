package services

import (
	"context"
	"fmt"

	"github.com/opencourse-ai/tutor-cli/internal/core/domain"
	"github.com/opencourse-ai/tutor-cli/internal/core/ports/driven"
	"github.com/opencourse-ai/tutor-cli/internal/core/ports/driving"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

// CatalogService exposes read-only course statistics from the catalog
// store.
type CatalogService struct {
	catalog driven.CatalogStore
}

// NewCatalogService creates the catalog service.
func NewCatalogService(catalog driven.CatalogStore) *CatalogService {
	return &CatalogService{catalog: catalog}
}

// Stats returns the indexed course count and titles.
func (s *CatalogService) Stats(ctx context.Context) (domain.CourseStats, error) {
	titles, err := s.catalog.ListTitles(ctx)
	if err != nil {
		return domain.CourseStats{}, fmt.Errorf("listing courses: %w", err)
	}
	return domain.CourseStats{
		TotalCourses: len(titles),
		CourseTitles: titles,
	}, nil
}
