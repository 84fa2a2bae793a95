package market

import (
	"github.com/nspcc-dev/tokenmart/pkg/market/dao"
	"github.com/nspcc-dev/tokenmart/pkg/market/state"
	"github.com/nspcc-dev/tokenmart/pkg/util"
	"go.uber.org/zap"
)

func (m *Marketplace) hasRole(d *dao.Simple, r state.Role, acc util.Uint160) bool {
	designated, err := d.GetRole(r)
	return err == nil && designated.Equals(acc)
}

// IsOwner checks whether the account is the platform operator.
func (m *Marketplace) IsOwner(acc util.Uint160) bool {
	return m.hasRole(m.dao, state.RoleOwner, acc)
}

// IsService checks whether the account holds the collection-creating
// service role.
func (m *Marketplace) IsService(acc util.Uint160) bool {
	return m.hasRole(m.dao, state.RoleService, acc)
}

// Owner returns the platform operator account.
func (m *Marketplace) Owner() (util.Uint160, error) {
	return m.dao.GetRole(state.RoleOwner)
}

// ServiceAddress returns the account currently designated as the service.
func (m *Marketplace) ServiceAddress() (util.Uint160, error) {
	return m.dao.GetRole(state.RoleService)
}

// SetServiceAddress rotates the service role to the given account. Only
// the owner may do that; the previous service is revoked immediately and
// completely.
func (m *Marketplace) SetServiceAddress(caller, service util.Uint160) error {
	d, err := m.beginCall()
	if err != nil {
		return err
	}
	defer m.endCall()
	if !m.hasRole(d, state.RoleOwner, caller) {
		return ErrUnauthorized
	}
	if service.IsZero() {
		return ErrEmptyService
	}
	if err := d.PutRole(state.RoleService, service); err != nil {
		return err
	}
	if _, err := d.Persist(); err != nil {
		return err
	}
	m.log.Info("service role rotated", zap.Stringer("service", service))
	return nil
}
