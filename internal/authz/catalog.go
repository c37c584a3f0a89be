package authz

import (
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/SamridhiParajuli/store-dashboard/internal"
)

// PermissionRepository is the persistence boundary for the catalog.
type PermissionRepository interface {
	GetAll() ([]Permission, error)
	GetByID(id int64) (*Permission, error)
	GetByName(name string) (*Permission, error)
	Create(p *Permission) error
	Update(p *Permission) error
	// DeleteCascade removes the permission and every role_permissions
	// row referencing it in one transaction.
	DeleteCascade(id int64) error
}

// ListFilter narrows List results; zero value means everything.
type ListFilter struct {
	Category string
	Search   string
}

// Catalog holds the known named permissions. Reads after Load are
// served from memory so the evaluator can resolve names without I/O.
type Catalog struct {
	repo   PermissionRepository
	logger *slog.Logger

	mu     sync.RWMutex
	byID   map[int64]Permission
	byName map[string]Permission
}

func NewCatalog(repo PermissionRepository, logger *slog.Logger) *Catalog {
	return &Catalog{
		repo:   repo,
		logger: logger,
		byID:   make(map[int64]Permission),
		byName: make(map[string]Permission),
	}
}

// Load populates the in-memory view from the repository.
func (c *Catalog) Load() error {
	perms, err := c.repo.GetAll()
	if err != nil {
		c.logger.Error("failed to load permission catalog", "error", err)
		return internal.NewUnavailableError("could not load permission catalog", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.byID = make(map[int64]Permission, len(perms))
	c.byName = make(map[string]Permission, len(perms))
	for _, p := range perms {
		c.byID[p.ID] = p
		c.byName[p.Name] = p
	}
	c.logger.Info("permission catalog loaded", "count", len(perms))
	return nil
}

func (c *Catalog) List(filter ListFilter) []Permission {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]Permission, 0, len(c.byID))
	for _, p := range c.byID {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(p.Name), needle) &&
				!strings.Contains(strings.ToLower(p.Description), needle) {
				continue
			}
		}
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

func (c *Catalog) GetByName(name string) (Permission, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.byName[name]
	return p, ok
}

func (c *Catalog) GetByID(id int64) (Permission, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.byID[id]
	return p, ok
}

func (c *Catalog) Create(name, description, category string) (Permission, error) {
	if _, exists := c.GetByName(name); exists {
		return Permission{}, internal.ErrDuplicatePermission
	}
	// Re-check against storage; the cache may lag another writer.
	if existing, err := c.repo.GetByName(name); err != nil {
		return Permission{}, internal.NewUnavailableError("could not check permission name", err)
	} else if existing != nil {
		return Permission{}, internal.ErrDuplicatePermission
	}

	perm := Permission{Name: name, Description: description, Category: category}
	if err := c.repo.Create(&perm); err != nil {
		c.logger.Error("failed to create permission", "name", name, "error", err)
		return Permission{}, internal.NewUnavailableError("could not create permission", err)
	}

	c.mu.Lock()
	c.byID[perm.ID] = perm
	c.byName[perm.Name] = perm
	c.mu.Unlock()

	c.logger.Info("permission created", "id", perm.ID, "name", perm.Name)
	return perm, nil
}

// UpdateFields carries the mutable permission attributes; nil fields
// stay untouched.
type UpdateFields struct {
	Description *string
	Category    *string
}

func (c *Catalog) Update(id int64, fields UpdateFields) (Permission, error) {
	current, ok := c.GetByID(id)
	if !ok {
		return Permission{}, internal.ErrPermissionNotFound
	}

	if fields.Description != nil {
		current.Description = *fields.Description
	}
	if fields.Category != nil {
		current.Category = *fields.Category
	}

	if err := c.repo.Update(&current); err != nil {
		c.logger.Error("failed to update permission", "id", id, "error", err)
		return Permission{}, internal.NewUnavailableError("could not update permission", err)
	}

	c.mu.Lock()
	c.byID[current.ID] = current
	c.byName[current.Name] = current
	c.mu.Unlock()

	return current, nil
}

// Delete removes the permission and cascades its role grants. The
// repository performs both in one transaction so no role_permissions
// row can outlive its permission.
func (c *Catalog) Delete(id int64) error {
	perm, ok := c.GetByID(id)
	if !ok {
		return internal.ErrPermissionNotFound
	}

	if err := c.repo.DeleteCascade(id); err != nil {
		c.logger.Error("failed to delete permission", "id", id, "error", err)
		return internal.NewUnavailableError("could not delete permission", err)
	}

	c.mu.Lock()
	delete(c.byID, id)
	delete(c.byName, perm.Name)
	c.mu.Unlock()

	c.logger.Info("permission deleted", "id", id, "name", perm.Name)
	return nil
}
