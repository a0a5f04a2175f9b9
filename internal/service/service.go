// Package service runs the create, read, update, delete and list operations
// for tasks, users, task statuses and labels.
//
// Every mutation runs in one store transaction: references are resolved,
// uniqueness and integrity are checked, and only then is anything written.
// Mutations take the acting principal explicitly and log it.
package service

import (
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"task-manager/internal/auth"
	"task-manager/internal/store"
)

// Services bundles the per-entity services over one store.
type Services struct {
	Tasks    *TaskService
	Users    *UserService
	Statuses *StatusService
	Labels   *LabelService
}

// New wires all services against st.
func New(st store.Store, hasher auth.Hasher, log logrus.FieldLogger) *Services {
	b := base{store: st, validate: newValidator(), log: log}
	return &Services{
		Tasks:    &TaskService{base: b},
		Users:    &UserService{base: b, hasher: hasher},
		Statuses: &StatusService{base: b},
		Labels:   &LabelService{base: b},
	}
}

type base struct {
	store    store.Store
	validate *validator.Validate
	log      logrus.FieldLogger
}

func (b base) audit(who auth.Principal, entity string, id int64) *logrus.Entry {
	return b.log.WithFields(logrus.Fields{
		"principal": who.String(),
		"actor_id":  who.UserID,
		entity:      id,
	})
}
