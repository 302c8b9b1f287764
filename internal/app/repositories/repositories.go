package repositories

import (
	"github.com/vmerk/tutorium/internal/db"
)

// Repositories bundles every repository over one connection pool. Constructed
// once at startup and handed to the service layer.
type Repositories struct {
	Users         *UserRepository
	Associations  *AssociationRepository
	Disciplines   *DisciplineRepository
	Branches      *BranchRepository
	Classrooms    *ClassroomRepository
	Subscriptions *SubscriptionRepository
	Lessons       *LessonRepository
	Tokens        *TokenRepository
}

// NewRepositories creates a Repositories container bound to the given store
func NewRepositories(store *db.PostgresDB) *Repositories {
	return &Repositories{
		Users:         NewUserRepository(store),
		Associations:  NewAssociationRepository(store),
		Disciplines:   NewDisciplineRepository(store.Pool),
		Branches:      NewBranchRepository(store.Pool),
		Classrooms:    NewClassroomRepository(store.Pool),
		Subscriptions: NewSubscriptionRepository(store.Pool),
		Lessons:       NewLessonRepository(store.Pool),
		Tokens:        NewTokenRepository(store.Pool),
	}
}
