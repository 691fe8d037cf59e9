package services

import (
	"context"

	"github.com/mkowalski/coursehub/internal/app/models"
	"github.com/mkowalski/coursehub/internal/app/models/dto"
)

// EditionService defines the interface for course edition operations
type EditionService interface {
	CreateEdition(ctx context.Context, req *dto.CreateEditionRequest) (*dto.EditionResponse, error)
	GetEditionByID(ctx context.Context, id int64) (*dto.EditionResponse, error)
	GetAllEditions(ctx context.Context) ([]dto.EditionResponse, error)
	UpdateEdition(ctx context.Context, id int64, req *dto.UpdateEditionRequest) (*dto.EditionResponse, error)
	DeleteEdition(ctx context.Context, id int64) error
}

// editionServiceImpl implements EditionService
type editionServiceImpl struct {
	editionRepo EditionRepository
}

// NewEditionService creates a new EditionService
func NewEditionService(editionRepo EditionRepository) EditionService {
	return &editionServiceImpl{editionRepo: editionRepo}
}

func newEditionResponse(edition *models.CourseEdition) *dto.EditionResponse {
	return &dto.EditionResponse{
		ID:   edition.ID,
		Name: edition.Name,
	}
}

// CreateEdition creates a new course edition.
func (s *editionServiceImpl) CreateEdition(ctx context.Context, req *dto.CreateEditionRequest) (*dto.EditionResponse, error) {
	edition := &models.CourseEdition{Name: req.Name}
	id, err := s.editionRepo.CreateEdition(ctx, edition)
	if err != nil {
		return nil, err
	}
	edition.ID = id

	return newEditionResponse(edition), nil
}

// GetEditionByID retrieves a single edition.
func (s *editionServiceImpl) GetEditionByID(ctx context.Context, id int64) (*dto.EditionResponse, error) {
	edition, err := s.editionRepo.GetEditionByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return newEditionResponse(edition), nil
}

// GetAllEditions retrieves all editions.
func (s *editionServiceImpl) GetAllEditions(ctx context.Context) ([]dto.EditionResponse, error) {
	editions, err := s.editionRepo.GetAllEditions(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.EditionResponse, 0, len(editions))
	for _, edition := range editions {
		responses = append(responses, *newEditionResponse(edition))
	}

	return responses, nil
}

// UpdateEdition renames an edition.
func (s *editionServiceImpl) UpdateEdition(ctx context.Context, id int64, req *dto.UpdateEditionRequest) (*dto.EditionResponse, error) {
	edition := &models.CourseEdition{ID: id, Name: req.Name}
	if err := s.editionRepo.UpdateEdition(ctx, edition); err != nil {
		return nil, err
	}

	return newEditionResponse(edition), nil
}

// DeleteEdition removes an edition that no course references.
func (s *editionServiceImpl) DeleteEdition(ctx context.Context, id int64) error {
	return s.editionRepo.DeleteEdition(ctx, id)
}
