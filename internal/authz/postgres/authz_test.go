package postgres_test

import (
	"testing"

	"github.com/SamridhiParajuli/store-dashboard/internal/authz"
	authzPostgres "github.com/SamridhiParajuli/store-dashboard/internal/authz/postgres"
	permissionDatamodel "github.com/SamridhiParajuli/store-dashboard/internal/core/datamodel/permission"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestAuthzPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Authz Postgres Suite")
}

var _ = Describe("Authz Repositories", func() {
	var (
		db        *gorm.DB
		permRepo  authz.PermissionRepository
		grantRepo authz.RolePermissionRepository
	)

	BeforeEach(func() {
		var err error
		// Use SQLite in-memory database for testing
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&permissionDatamodel.Permission{}, &permissionDatamodel.RolePermission{})
		Expect(err).NotTo(HaveOccurred())

		permRepo = authzPostgres.NewPermissionRepository(db)
		grantRepo = authzPostgres.NewRolePermissionRepository(db)
	})

	Describe("PermissionRepository", func() {
		It("should create a permission and assign an id", func() {
			perm := authz.Permission{Name: "task_management", Description: "Manage department tasks", Category: "operations"}
			Expect(permRepo.Create(&perm)).To(Succeed())
			Expect(perm.ID).To(BeNumerically(">", 0))
			Expect(perm.CreatedAt).NotTo(BeZero())
		})

		It("should enforce the unique permission name", func() {
			first := authz.Permission{Name: "task_management"}
			Expect(permRepo.Create(&first)).To(Succeed())

			dup := authz.Permission{Name: "task_management"}
			Expect(permRepo.Create(&dup)).To(HaveOccurred())
		})

		It("should list permissions ordered by name", func() {
			for _, name := range []string{"user_management", "complaint_management", "task_management"} {
				p := authz.Permission{Name: name}
				Expect(permRepo.Create(&p)).To(Succeed())
			}

			perms, err := permRepo.GetAll()
			Expect(err).NotTo(HaveOccurred())
			Expect(perms).To(HaveLen(3))
			Expect(perms[0].Name).To(Equal("complaint_management"))
			Expect(perms[1].Name).To(Equal("task_management"))
			Expect(perms[2].Name).To(Equal("user_management"))
		})

		It("should return nil for a missing name", func() {
			found, err := permRepo.GetByName("nonexistent")
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeNil())
		})

		It("should update description and category", func() {
			perm := authz.Permission{Name: "task_management", Description: "old"}
			Expect(permRepo.Create(&perm)).To(Succeed())

			perm.Description = "new description"
			perm.Category = "operations"
			Expect(permRepo.Update(&perm)).To(Succeed())

			found, err := permRepo.GetByID(perm.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Description).To(Equal("new description"))
			Expect(found.Category).To(Equal("operations"))
		})
	})

	Describe("DeleteCascade", func() {
		var perm authz.Permission

		BeforeEach(func() {
			perm = authz.Permission{Name: "task_management"}
			Expect(permRepo.Create(&perm)).To(Succeed())

			_, err := grantRepo.Upsert(authz.RoleManager, perm.ID, authz.CapabilityView, true)
			Expect(err).NotTo(HaveOccurred())
			_, err = grantRepo.Upsert(authz.RoleStaff, perm.ID, authz.CapabilityView, true)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should remove the permission and every grant referencing it", func() {
			Expect(permRepo.DeleteCascade(perm.ID)).To(Succeed())

			found, err := permRepo.GetByID(perm.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeNil())

			var count int64
			err = db.Model(&permissionDatamodel.RolePermission{}).
				Where("permission_id = ?", perm.ID).Count(&count).Error
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(BeZero())
		})

		It("should fail for a missing permission without touching other rows", func() {
			Expect(permRepo.DeleteCascade(999)).To(MatchError(gorm.ErrRecordNotFound))

			rows, err := grantRepo.GetForRole(authz.RoleManager)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
		})
	})

	Describe("RolePermissionRepository.Upsert", func() {
		var perm authz.Permission

		BeforeEach(func() {
			perm = authz.Permission{Name: "task_management"}
			Expect(permRepo.Create(&perm)).To(Succeed())
		})

		It("should insert an all-false row with one flag set on first toggle", func() {
			row, err := grantRepo.Upsert(authz.RoleLead, perm.ID, authz.CapabilityCreate, true)
			Expect(err).NotTo(HaveOccurred())
			Expect(row.CanCreate).To(BeTrue())
			Expect(row.CanView).To(BeFalse())
			Expect(row.CanEdit).To(BeFalse())
			Expect(row.CanDelete).To(BeFalse())
		})

		It("should not create a duplicate row for the same pair", func() {
			first, err := grantRepo.Upsert(authz.RoleLead, perm.ID, authz.CapabilityView, true)
			Expect(err).NotTo(HaveOccurred())

			second, err := grantRepo.Upsert(authz.RoleLead, perm.ID, authz.CapabilityEdit, true)
			Expect(err).NotTo(HaveOccurred())
			Expect(second.ID).To(Equal(first.ID))

			var count int64
			err = db.Model(&permissionDatamodel.RolePermission{}).
				Where("role = ? AND permission_id = ?", authz.RoleLead, perm.ID).Count(&count).Error
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(1)))
		})

		It("should flip one column and preserve the other three", func() {
			_, err := grantRepo.Upsert(authz.RoleManager, perm.ID, authz.CapabilityView, true)
			Expect(err).NotTo(HaveOccurred())
			_, err = grantRepo.Upsert(authz.RoleManager, perm.ID, authz.CapabilityEdit, true)
			Expect(err).NotTo(HaveOccurred())

			row, err := grantRepo.Upsert(authz.RoleManager, perm.ID, authz.CapabilityView, false)
			Expect(err).NotTo(HaveOccurred())
			Expect(row.CanView).To(BeFalse())
			Expect(row.CanEdit).To(BeTrue())
			Expect(row.CanCreate).To(BeFalse())
			Expect(row.CanDelete).To(BeFalse())
		})

		It("should keep pairs for different roles independent", func() {
			_, err := grantRepo.Upsert(authz.RoleManager, perm.ID, authz.CapabilityDelete, true)
			Expect(err).NotTo(HaveOccurred())

			staffRows, err := grantRepo.GetForRole(authz.RoleStaff)
			Expect(err).NotTo(HaveOccurred())
			Expect(staffRows).To(BeEmpty())

			managerRows, err := grantRepo.GetForRole(authz.RoleManager)
			Expect(err).NotTo(HaveOccurred())
			Expect(managerRows).To(HaveLen(1))
			Expect(managerRows[0].CanDelete).To(BeTrue())
		})
	})
})
