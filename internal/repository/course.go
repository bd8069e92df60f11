package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"learntechnotes-backend/internal/model"
)

type CourseRepository interface {
	Seed(ctx context.Context) error
	FindByName(ctx context.Context, name string) (*model.Course, error)
	List(ctx context.Context) ([]*model.Course, error)
}

type courseRepoImpl struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepoImpl{
		db: db,
	}
}

func (r *courseRepoImpl) Seed(ctx context.Context) error {
	courses := []model.Course{
		{Name: "C Language Notes", Price: 49, Currency: "INR", DownloadURL: "https://drive.google.com/file/d/1A9TOmPqxol29Vo4NQxNMXZ4ym_XDEFPf/view?usp=drivesdk"},
		{Name: "Web Development Notes", Price: 99, Currency: "INR", DownloadURL: "https://drive.google.com/file/d/1T7Sa8a6EPciOSycRFjGZE-Bs4AFDPBhE/view?usp=drivesdk"},
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&courses).Error
}

func (r *courseRepoImpl) FindByName(ctx context.Context, name string) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&course).Error

	if err != nil {
		return nil, err
	}

	return &course, nil
}

func (r *courseRepoImpl) List(ctx context.Context) ([]*model.Course, error) {
	var courses []*model.Course
	err := r.db.WithContext(ctx).
		Order("name").
		Find(&courses).Error

	if err != nil {
		return nil, err
	}

	return courses, nil
}
