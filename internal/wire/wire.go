// Package wire provides dependency injection for the Lakra application.
// It creates singleton services with lazy initialization.
package wire

import (
	"io"
	"log"
	"sync"

	cliadapter "github.com/wimarka-uic/lakra-sub002/internal/adapters/cli"
	"github.com/wimarka-uic/lakra-sub002/internal/adapters/sqlite"
	"github.com/wimarka-uic/lakra-sub002/internal/app"
	"github.com/wimarka-uic/lakra-sub002/internal/db"
	"github.com/wimarka-uic/lakra-sub002/internal/ports/primary"
)

var (
	sentenceService   primary.SentenceService
	annotationService primary.AnnotationService
	revisionService   primary.RevisionService
	evaluationService primary.EvaluationService
	userService       primary.UserService
	logService        primary.LogService
	once              sync.Once
)

// SentenceService returns the singleton SentenceService instance.
func SentenceService() primary.SentenceService {
	once.Do(initServices)
	return sentenceService
}

// AnnotationService returns the singleton AnnotationService instance.
func AnnotationService() primary.AnnotationService {
	once.Do(initServices)
	return annotationService
}

// RevisionService returns the singleton RevisionService instance.
func RevisionService() primary.RevisionService {
	once.Do(initServices)
	return revisionService
}

// EvaluationService returns the singleton EvaluationService instance.
func EvaluationService() primary.EvaluationService {
	once.Do(initServices)
	return evaluationService
}

// UserService returns the singleton UserService instance.
func UserService() primary.UserService {
	once.Do(initServices)
	return userService
}

// LogService returns the singleton LogService instance.
func LogService() primary.LogService {
	once.Do(initServices)
	return logService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	logRepo := sqlite.NewActivityLogRepository(database)
	logWriter := sqlite.NewLogWriterAdapter(logRepo)

	sentenceRepo := sqlite.NewSentenceRepository(database)
	annotationRepo := sqlite.NewAnnotationRepository(database, logWriter)
	revisionRepo := sqlite.NewRevisionRepository(database, logWriter)
	evaluationRepo := sqlite.NewEvaluationRepository(database, logWriter)
	userRepo := sqlite.NewUserRepository(database)

	sentenceService = app.NewSentenceService(sentenceRepo)
	annotationService = app.NewAnnotationService(annotationRepo, sentenceRepo)
	revisionService = app.NewRevisionService(revisionRepo, annotationRepo, sentenceRepo)
	evaluationService = app.NewEvaluationService(evaluationRepo, annotationRepo)
	userService = app.NewUserService(userRepo)
	logService = app.NewLogService(logRepo)
}

// AnnotationAdapter returns a new AnnotationAdapter writing to out.
// Each call creates a new adapter (adapters are stateless translators).
func AnnotationAdapter(out io.Writer) *cliadapter.AnnotationAdapter {
	return cliadapter.NewAnnotationAdapter(AnnotationService(), out)
}

// ReviewAdapter returns a new ReviewAdapter writing to out.
func ReviewAdapter(out io.Writer) *cliadapter.ReviewAdapter {
	return cliadapter.NewReviewAdapter(RevisionService(), out)
}
