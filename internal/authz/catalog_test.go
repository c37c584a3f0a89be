package authz_test

import (
	"errors"
	"log/slog"
	"os"

	"github.com/SamridhiParajuli/store-dashboard/internal"
	"github.com/SamridhiParajuli/store-dashboard/internal/authz"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Permission Catalog", func() {
	var (
		repo    *mockPermissionRepo
		catalog *authz.Catalog
		logger  *slog.Logger
	)

	BeforeEach(func() {
		repo = newMockPermissionRepo()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		catalog = authz.NewCatalog(repo, logger)
	})

	Describe("Load", func() {
		Context("when the repository has permissions", func() {
			BeforeEach(func() {
				repo.addPermission(authz.Permission{ID: 1, Name: "task_management", Category: "operations"})
				repo.addPermission(authz.Permission{ID: 2, Name: "user_management", Category: "administration"})
			})

			It("should serve lookups from memory after loading", func() {
				Expect(catalog.Load()).To(Succeed())

				p, ok := catalog.GetByName("task_management")
				Expect(ok).To(BeTrue())
				Expect(p.ID).To(Equal(int64(1)))

				p, ok = catalog.GetByID(2)
				Expect(ok).To(BeTrue())
				Expect(p.Name).To(Equal("user_management"))
			})
		})

		Context("when the repository fails", func() {
			BeforeEach(func() {
				repo.setShouldFail(true, errors.New("connection refused"))
			})

			It("should return an unavailable error", func() {
				err := catalog.Load()
				Expect(err).To(HaveOccurred())

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.StatusCode).To(Equal(503))
			})
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			repo.addPermission(authz.Permission{ID: 1, Name: "task_management", Description: "Manage department tasks", Category: "operations"})
			repo.addPermission(authz.Permission{ID: 2, Name: "user_management", Description: "Manage user accounts", Category: "administration"})
			repo.addPermission(authz.Permission{ID: 3, Name: "complaint_management", Description: "Manage customer complaints", Category: "operations"})
			Expect(catalog.Load()).To(Succeed())
		})

		It("should return all permissions sorted by name", func() {
			perms := catalog.List(authz.ListFilter{})
			Expect(perms).To(HaveLen(3))
			Expect(perms[0].Name).To(Equal("complaint_management"))
			Expect(perms[1].Name).To(Equal("task_management"))
			Expect(perms[2].Name).To(Equal("user_management"))
		})

		It("should filter by category", func() {
			perms := catalog.List(authz.ListFilter{Category: "operations"})
			Expect(perms).To(HaveLen(2))
			for _, p := range perms {
				Expect(p.Category).To(Equal("operations"))
			}
		})

		It("should match search against name and description", func() {
			perms := catalog.List(authz.ListFilter{Search: "customer"})
			Expect(perms).To(HaveLen(1))
			Expect(perms[0].Name).To(Equal("complaint_management"))
		})
	})

	Describe("Create", func() {
		BeforeEach(func() {
			repo.addPermission(authz.Permission{ID: 1, Name: "task_management"})
			Expect(catalog.Load()).To(Succeed())
		})

		It("should create a new permission and make it visible immediately", func() {
			perm, err := catalog.Create("equipment_management", "Manage equipment", "operations")
			Expect(err).NotTo(HaveOccurred())
			Expect(perm.ID).To(BeNumerically(">", 0))

			found, ok := catalog.GetByName("equipment_management")
			Expect(ok).To(BeTrue())
			Expect(found.ID).To(Equal(perm.ID))
		})

		It("should reject a duplicate name", func() {
			_, err := catalog.Create("task_management", "duplicate", "operations")
			Expect(err).To(MatchError(internal.ErrDuplicatePermission))
		})
	})

	Describe("Update", func() {
		BeforeEach(func() {
			repo.addPermission(authz.Permission{ID: 1, Name: "task_management", Description: "old", Category: "operations"})
			Expect(catalog.Load()).To(Succeed())
		})

		It("should update only the provided fields", func() {
			desc := "Manage department tasks"
			perm, err := catalog.Update(1, authz.UpdateFields{Description: &desc})
			Expect(err).NotTo(HaveOccurred())
			Expect(perm.Description).To(Equal("Manage department tasks"))
			Expect(perm.Category).To(Equal("operations"))
		})

		It("should return not found for an unknown id", func() {
			desc := "x"
			_, err := catalog.Update(999, authz.UpdateFields{Description: &desc})
			Expect(err).To(MatchError(internal.ErrPermissionNotFound))
		})
	})

	Describe("Delete", func() {
		BeforeEach(func() {
			repo.addPermission(authz.Permission{ID: 1, Name: "task_management"})
			Expect(catalog.Load()).To(Succeed())
		})

		It("should cascade through the repository and evict the cache", func() {
			Expect(catalog.Delete(1)).To(Succeed())
			Expect(repo.cascaded).To(ContainElement(int64(1)))

			_, ok := catalog.GetByID(1)
			Expect(ok).To(BeFalse())
			_, ok = catalog.GetByName("task_management")
			Expect(ok).To(BeFalse())
		})

		It("should return not found for an unknown id", func() {
			Expect(catalog.Delete(999)).To(MatchError(internal.ErrPermissionNotFound))
		})
	})
})
