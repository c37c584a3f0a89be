package authz

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/SamridhiParajuli/store-dashboard/internal"
	"golang.org/x/sync/errgroup"
)

// RolePermissionRepository is the persistence boundary for grants.
// Upsert must apply a single capability field atomically, keyed on the
// unique (role, permission_id) pair.
type RolePermissionRepository interface {
	GetForRole(role Role) ([]RolePermission, error)
	Upsert(role Role, permissionID int64, capability Capability, value bool) (RolePermission, error)
}

// RoleLoadWarning records one role whose grant fetch failed during a
// bulk load. It is informational; the role simply has no capabilities
// for the session.
type RoleLoadWarning struct {
	Role Role
	Err  error
}

// Matrix is the in-memory role-permission matrix. Decisions read the
// loaded state; only SetCapability touches storage.
type Matrix struct {
	repo    RolePermissionRepository
	catalog *Catalog
	logger  *slog.Logger

	mu     sync.RWMutex
	grants map[Role]map[int64]RolePermission
}

func NewMatrix(repo RolePermissionRepository, catalog *Catalog, logger *slog.Logger) *Matrix {
	return &Matrix{
		repo:    repo,
		catalog: catalog,
		logger:  logger,
		grants:  make(map[Role]map[int64]RolePermission),
	}
}

// Get never fails: absence of a grant means no capability, so an
// all-false row is synthesized for pairs with no explicit grant.
func (m *Matrix) Get(role Role, permissionID int64) RolePermission {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if rows, ok := m.grants[role]; ok {
		if rp, ok := rows[permissionID]; ok {
			return rp
		}
	}
	return RolePermission{Role: role, PermissionID: permissionID}
}

// SetCapability upserts exactly one capability flag, leaving the other
// three untouched. The row is implicitly created all-false on the
// first toggle for a pair.
func (m *Matrix) SetCapability(role Role, permissionID int64, capability Capability, value bool) (RolePermission, error) {
	if _, ok := m.catalog.GetByID(permissionID); !ok {
		return RolePermission{}, internal.ErrPermissionNotFound
	}

	updated, err := m.repo.Upsert(role, permissionID, capability, value)
	if err != nil {
		m.logger.Error("failed to set capability",
			"role", role, "permission_id", permissionID,
			"capability", capability, "value", value, "error", err)
		return RolePermission{}, internal.NewUnavailableError("could not update role permission", err)
	}

	m.mu.Lock()
	if m.grants[role] == nil {
		m.grants[role] = make(map[int64]RolePermission)
	}
	m.grants[role][permissionID] = updated
	m.mu.Unlock()

	m.logger.Info("capability updated",
		"role", role, "permission_id", permissionID,
		"capability", capability, "value", value)
	return updated, nil
}

// ListForRole returns one row per catalog permission, synthesizing
// all-false rows for permissions without an explicit grant. Callers
// rendering a role's full permission sheet never need to
// cross-reference the catalog.
func (m *Matrix) ListForRole(role Role) []RolePermission {
	perms := m.catalog.List(ListFilter{})

	m.mu.RLock()
	defer m.mu.RUnlock()

	rows := make([]RolePermission, 0, len(perms))
	granted := m.grants[role]
	for _, p := range perms {
		if rp, ok := granted[p.ID]; ok {
			rows = append(rows, rp)
		} else {
			rows = append(rows, RolePermission{Role: role, PermissionID: p.ID})
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].PermissionID < rows[j].PermissionID })
	return rows
}

// LoadAll fetches grants for every role in parallel. A failed role is
// isolated: its grants stay empty (all-false on read) for the session
// and the failure comes back as a per-role warning, never as an error
// that aborts the other roles.
func (m *Matrix) LoadAll(ctx context.Context, roles []Role) []RoleLoadWarning {
	var (
		warnMu   sync.Mutex
		warnings []RoleLoadWarning
	)

	g, _ := errgroup.WithContext(ctx)
	for _, role := range roles {
		g.Go(func() error {
			rows, err := m.repo.GetForRole(role)
			if err != nil {
				m.logger.Warn("failed to load role permissions, treating as empty",
					"role", role, "error", err)
				m.mu.Lock()
				m.grants[role] = make(map[int64]RolePermission)
				m.mu.Unlock()

				warnMu.Lock()
				warnings = append(warnings, RoleLoadWarning{Role: role, Err: err})
				warnMu.Unlock()
				return nil
			}

			loaded := make(map[int64]RolePermission, len(rows))
			for _, rp := range rows {
				loaded[rp.PermissionID] = rp
			}
			m.mu.Lock()
			m.grants[role] = loaded
			m.mu.Unlock()
			return nil
		})
	}
	// Goroutines report failures as warnings, never as errors.
	_ = g.Wait()

	sort.Slice(warnings, func(i, j int) bool { return warnings[i].Role < warnings[j].Role })
	return warnings
}

// EvictPermission drops cached rows for a deleted permission so the
// in-memory view matches the cascaded delete.
func (m *Matrix) EvictPermission(permissionID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rows := range m.grants {
		delete(rows, permissionID)
	}
}
