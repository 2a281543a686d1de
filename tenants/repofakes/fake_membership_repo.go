package tenantrepofakes

import (
	"sync"

	"github.com/invoiceslite/go-invoices-server/internal/errors"
	"github.com/invoiceslite/go-invoices-server/tenants"
)

var _ tenants.MembershipRepo = (*FakeMembershipRepo)(nil)

type FakeMembershipRepo struct {
	byUser map[string][]*tenants.Membership // in creation order
	lock   sync.RWMutex
}

func NewFakeMembershipRepo() *FakeMembershipRepo {
	return &FakeMembershipRepo{
		byUser: make(map[string][]*tenants.Membership),
	}
}

func (mr *FakeMembershipRepo) Create(membership *tenants.Membership) error {
	mr.lock.Lock()
	defer mr.lock.Unlock()

	stored := *membership
	mr.byUser[membership.UserID] = append(mr.byUser[membership.UserID], &stored)
	return nil
}

func (mr *FakeMembershipRepo) Get(userID, tenantID string) (*tenants.Membership, error) {
	mr.lock.RLock()
	defer mr.lock.RUnlock()

	for _, m := range mr.byUser[userID] {
		if m.TenantID == tenantID {
			copied := *m
			return &copied, nil
		}
	}
	return nil, errors.ErrNotFound
}

func (mr *FakeMembershipRepo) FirstForUser(userID string) (*tenants.Membership, error) {
	mr.lock.RLock()
	defer mr.lock.RUnlock()

	memberships := mr.byUser[userID]
	if len(memberships) == 0 {
		return nil, errors.ErrNotFound
	}
	copied := *memberships[0]
	return &copied, nil
}
