package services

import (
	"github.com/campustrack/campustrack/internal/app/repositories"
	"github.com/campustrack/campustrack/internal/cache"
	"github.com/campustrack/campustrack/internal/pkg/auth"
)

// Services holds all the service instances
type Services struct {
	AuthService        AuthService
	StudentService     StudentService
	FacultyService     FacultyService
	ActivityService    ActivityService
	CertificateService CertificateService
	EventService       EventService
	AnalyticsService   AnalyticsService
}

// NewServices initializes all services
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, analyticsCache *cache.Redis) *Services {
	return &Services{
		AuthService:        NewAuthService(repos.UserRepository, repos.StudentRepository, repos.FacultyRepository, jwtService),
		StudentService:     NewStudentService(repos.StudentRepository),
		FacultyService:     NewFacultyService(repos.FacultyRepository),
		ActivityService:    NewActivityService(repos.ActivityRepository, repos.StudentRepository),
		CertificateService: NewCertificateService(repos.CertificateRepository, repos.StudentRepository),
		EventService:       NewEventService(repos.EventRepository, repos.RegistrationRepository, repos.FacultyRepository),
		AnalyticsService:   NewAnalyticsService(repos, analyticsCache),
	}
}
