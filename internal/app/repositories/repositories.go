package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all repository instances
type Repositories struct {
	UserRepository              *UserRepository
	DriveRepository             *DriveRepository
	InterviewQuestionRepository *InterviewQuestionRepository
	PlacementMaterialRepository *PlacementMaterialRepository
}

// NewRepositories creates all repositories sharing one connection pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:              NewUserRepository(db),
		DriveRepository:             NewDriveRepository(db),
		InterviewQuestionRepository: NewInterviewQuestionRepository(db),
		PlacementMaterialRepository: NewPlacementMaterialRepository(db),
	}
}
