package database

import (
	"context"
	"errors"

	"gst-billing/models"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a record id does not resolve.
var ErrNotFound = errors.New("record not found")

// Collection names used for change notifications.
const (
	ProductsCollection = "products"
	PartiesCollection  = "parties"
	InvoicesCollection = "invoices"
	SettingsCollection = "settings"
)

// Store is the persistence boundary: one typed collection per table plus
// transactions spanning any of them.
type Store struct {
	db      *gorm.DB
	hub     *hub
	changes changeSet // non-nil inside Transaction

	Products *Collection[models.Product]
	Parties  *Collection[models.Party]
	Invoices *Collection[models.Invoice]
	Settings *Settings
}

func NewStore(db *gorm.DB) *Store {
	return newStore(db, newHub(), nil)
}

func newStore(db *gorm.DB, h *hub, changes changeSet) *Store {
	s := &Store{db: db, hub: h, changes: changes}
	s.Products = newCollection[models.Product](s, ProductsCollection)
	s.Parties = newCollection[models.Party](s, PartiesCollection)
	s.Invoices = newCollection[models.Invoice](s, InvoicesCollection, "Items")
	s.Settings = &Settings{Collection: newCollection[models.CompanyProfile](s, SettingsCollection)}
	return s
}

// DB exposes the underlying handle for reporting queries.
func (s *Store) DB() *gorm.DB { return s.db }

// Transaction runs fn against a store bound to one database transaction.
// Any error returned by fn rolls back every write made through tx. Nested
// calls become savepoints. Watchers are notified after the outermost
// commit, never for a rolled back transaction.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	changes := changeSet{}
	err := s.db.WithContext(ctx).Transaction(func(gtx *gorm.DB) error {
		return fn(newStore(gtx, s.hub, changes))
	})
	if err != nil {
		return err
	}
	if s.changes != nil {
		s.changes.merge(changes)
		return nil
	}
	s.hub.publish(changes.names()...)
	return nil
}

func (s *Store) touched(collection string) {
	if s.changes != nil {
		s.changes.add(collection)
		return
	}
	s.hub.publish(collection)
}
