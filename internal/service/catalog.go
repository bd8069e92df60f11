package service

import (
	"context"

	"learntechnotes-backend/internal/model"
	"learntechnotes-backend/internal/repository"
)

type CatalogService interface {
	GetCourses(ctx context.Context) ([]*model.Course, error)
}

type catalogServiceImpl struct {
	courseRepo repository.CourseRepository
}

func NewCatalogService(
	courseRepo repository.CourseRepository,
) CatalogService {
	return &catalogServiceImpl{
		courseRepo: courseRepo,
	}
}

func (s *catalogServiceImpl) GetCourses(ctx context.Context) ([]*model.Course, error) {
	return s.courseRepo.List(ctx)
}
