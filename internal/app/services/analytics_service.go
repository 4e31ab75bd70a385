package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/campustrack/campustrack/internal/app/models"
	"github.com/campustrack/campustrack/internal/app/repositories"
	"github.com/campustrack/campustrack/internal/cache"
)

const statisticsCacheKey = "analytics:statistics"

// AnalyticsService defines the interface for aggregate read models
type AnalyticsService interface {
	GetStatistics(ctx context.Context) (models.Statistics, error)
	InvalidateStatistics(ctx context.Context)
}

// analyticsServiceImpl implements the AnalyticsService interface
type analyticsServiceImpl struct {
	repos *repositories.Repositories
	cache *cache.Redis
}

// NewAnalyticsService creates a new analytics service instance
func NewAnalyticsService(repos *repositories.Repositories, analyticsCache *cache.Redis) AnalyticsService {
	return &analyticsServiceImpl{
		repos: repos,
		cache: analyticsCache,
	}
}

// GetStatistics computes the dashboard counters across all collections.
// The result is cached briefly; a cold or unreachable cache falls back to
// a full recount.
func (s *analyticsServiceImpl) GetStatistics(ctx context.Context) (models.Statistics, error) {
	var stats models.Statistics
	if s.cache.GetJSON(ctx, statisticsCacheKey, &stats) {
		return stats, nil
	}

	var (
		activities   []models.Activity
		certificates []models.Certificate
		events       []models.Event
		students     []models.Student
		faculty      []models.Faculty
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		activities, err = s.repos.ActivityRepository.GetAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		certificates, err = s.repos.CertificateRepository.GetAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		events, err = s.repos.EventRepository.GetAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		students, err = s.repos.StudentRepository.GetAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		faculty, err = s.repos.FacultyRepository.GetAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.Statistics{}, fmt.Errorf("error computing statistics: %w", err)
	}

	stats = models.Statistics{}
	stats.TallyActivities(activities)
	stats.TallyCertificates(certificates)
	stats.TallyEvents(events)
	stats.TotalStudents = len(students)
	stats.TotalFaculty = len(faculty)

	s.cache.SetJSON(ctx, statisticsCacheKey, stats)
	return stats, nil
}

// InvalidateStatistics drops the cached counters after a mutation
func (s *analyticsServiceImpl) InvalidateStatistics(ctx context.Context) {
	s.cache.Invalidate(ctx, statisticsCacheKey)
}
