package authz_test

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/SamridhiParajuli/store-dashboard/internal"
	"github.com/SamridhiParajuli/store-dashboard/internal/authz"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Role Permission Matrix", func() {
	var (
		permRepo *mockPermissionRepo
		grantRepo *mockRolePermissionRepo
		catalog  *authz.Catalog
		matrix   *authz.Matrix
		logger   *slog.Logger
	)

	BeforeEach(func() {
		permRepo = newMockPermissionRepo()
		grantRepo = newMockRolePermissionRepo()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		permRepo.addPermission(authz.Permission{ID: 1, Name: "task_management", Category: "operations"})
		permRepo.addPermission(authz.Permission{ID: 2, Name: "user_management", Category: "administration"})

		catalog = authz.NewCatalog(permRepo, logger)
		Expect(catalog.Load()).To(Succeed())

		matrix = authz.NewMatrix(grantRepo, catalog, logger)
	})

	Describe("Get", func() {
		It("should synthesize an all-false row for a pair with no grant", func() {
			rp := matrix.Get(authz.RoleStaff, 1)
			Expect(rp.Role).To(Equal(authz.RoleStaff))
			Expect(rp.PermissionID).To(Equal(int64(1)))
			Expect(rp.CanView).To(BeFalse())
			Expect(rp.CanCreate).To(BeFalse())
			Expect(rp.CanEdit).To(BeFalse())
			Expect(rp.CanDelete).To(BeFalse())
		})

		It("should return the loaded grant when one exists", func() {
			grantRepo.seed(authz.RolePermission{Role: authz.RoleManager, PermissionID: 1, CanView: true, CanEdit: true})
			warnings := matrix.LoadAll(context.Background(), authz.AllRoles())
			Expect(warnings).To(BeEmpty())

			rp := matrix.Get(authz.RoleManager, 1)
			Expect(rp.CanView).To(BeTrue())
			Expect(rp.CanEdit).To(BeTrue())
			Expect(rp.CanCreate).To(BeFalse())
		})
	})

	Describe("SetCapability", func() {
		It("should reject a permission id missing from the catalog", func() {
			_, err := matrix.SetCapability(authz.RoleLead, 999, authz.CapabilityView, true)
			Expect(err).To(MatchError(internal.ErrPermissionNotFound))
		})

		It("should create the row all-false on the first toggle", func() {
			rp, err := matrix.SetCapability(authz.RoleLead, 1, authz.CapabilityCreate, true)
			Expect(err).NotTo(HaveOccurred())
			Expect(rp.CanCreate).To(BeTrue())
			Expect(rp.CanView).To(BeFalse())
			Expect(rp.CanEdit).To(BeFalse())
			Expect(rp.CanDelete).To(BeFalse())
		})

		It("should flip exactly one flag and leave the others untouched", func() {
			_, err := matrix.SetCapability(authz.RoleLead, 1, authz.CapabilityView, true)
			Expect(err).NotTo(HaveOccurred())

			rp, err := matrix.SetCapability(authz.RoleLead, 1, authz.CapabilityDelete, true)
			Expect(err).NotTo(HaveOccurred())
			Expect(rp.CanView).To(BeTrue())
			Expect(rp.CanDelete).To(BeTrue())
			Expect(rp.CanCreate).To(BeFalse())
		})

		It("should make the updated grant visible to subsequent reads", func() {
			_, err := matrix.SetCapability(authz.RoleStaff, 2, authz.CapabilityView, true)
			Expect(err).NotTo(HaveOccurred())

			Expect(matrix.Get(authz.RoleStaff, 2).CanView).To(BeTrue())
		})

		It("should surface a storage failure without touching the cache", func() {
			grantRepo.failRole(authz.RoleStaff, errors.New("deadlock detected"))

			_, err := matrix.SetCapability(authz.RoleStaff, 1, authz.CapabilityView, true)
			Expect(err).To(HaveOccurred())
			Expect(matrix.Get(authz.RoleStaff, 1).CanView).To(BeFalse())
		})
	})

	Describe("ListForRole", func() {
		It("should return one row per catalog permission", func() {
			grantRepo.seed(authz.RolePermission{Role: authz.RoleManager, PermissionID: 1, CanView: true})
			matrix.LoadAll(context.Background(), []authz.Role{authz.RoleManager})

			rows := matrix.ListForRole(authz.RoleManager)
			Expect(rows).To(HaveLen(2))
			Expect(rows[0].PermissionID).To(Equal(int64(1)))
			Expect(rows[0].CanView).To(BeTrue())
			Expect(rows[1].PermissionID).To(Equal(int64(2)))
			Expect(rows[1].CanView).To(BeFalse())
		})

		It("should synthesize every row for a role with no grants", func() {
			rows := matrix.ListForRole(authz.RoleStaff)
			Expect(rows).To(HaveLen(2))
			for _, rp := range rows {
				Expect(rp.Role).To(Equal(authz.RoleStaff))
				Expect(rp.CanView).To(BeFalse())
			}
		})
	})

	Describe("LoadAll", func() {
		It("should isolate a failed role and keep loading the others", func() {
			grantRepo.seed(authz.RolePermission{Role: authz.RoleAdmin, PermissionID: 1, CanView: true, CanCreate: true, CanEdit: true, CanDelete: true})
			grantRepo.seed(authz.RolePermission{Role: authz.RoleStaff, PermissionID: 1, CanView: true})
			grantRepo.failRole(authz.RoleManager, errors.New("timeout"))

			warnings := matrix.LoadAll(context.Background(), authz.AllRoles())

			Expect(warnings).To(HaveLen(1))
			Expect(warnings[0].Role).To(Equal(authz.RoleManager))
			Expect(warnings[0].Err).To(MatchError("timeout"))

			// the failed role reads as all-false, the others are intact
			Expect(matrix.Get(authz.RoleManager, 1).CanView).To(BeFalse())
			Expect(matrix.Get(authz.RoleAdmin, 1).CanDelete).To(BeTrue())
			Expect(matrix.Get(authz.RoleStaff, 1).CanView).To(BeTrue())
		})

		It("should report no warnings when every role loads", func() {
			warnings := matrix.LoadAll(context.Background(), authz.AllRoles())
			Expect(warnings).To(BeEmpty())
		})
	})

	Describe("EvictPermission", func() {
		It("should drop cached rows for a deleted permission", func() {
			grantRepo.seed(authz.RolePermission{Role: authz.RoleManager, PermissionID: 1, CanView: true})
			matrix.LoadAll(context.Background(), []authz.Role{authz.RoleManager})
			Expect(matrix.Get(authz.RoleManager, 1).CanView).To(BeTrue())

			matrix.EvictPermission(1)
			Expect(matrix.Get(authz.RoleManager, 1).CanView).To(BeFalse())
		})
	})
})
