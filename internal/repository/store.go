package repository

import (
	"github.com/localnerve/notary-records/internal/models"
	"gorm.io/gorm"
)

// Store bundles one repository per entity over a shared connection
type Store struct {
	Users       *Repository[models.User]
	Customers   *Repository[models.Customer]
	Contacts    *Repository[models.Contact]
	Addresses   *Repository[models.Address]
	Commissions *Repository[models.Commission]
	Assignments *Repository[models.Assignment]
}

// NewStore returns the entity repositories backed by db
func NewStore(db *gorm.DB) *Store {
	return &Store{
		Users:       New[models.User](db),
		Customers:   New[models.Customer](db),
		Contacts:    New[models.Contact](db),
		Addresses:   New[models.Address](db),
		Commissions: New[models.Commission](db),
		Assignments: New[models.Assignment](db),
	}
}
