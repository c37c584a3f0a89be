package authz_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/SamridhiParajuli/store-dashboard/internal"
	"github.com/SamridhiParajuli/store-dashboard/internal/authz"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Evaluator", func() {
	var (
		permRepo  *mockPermissionRepo
		grantRepo *mockRolePermissionRepo
		matrix    *authz.Matrix
		evaluator *authz.Evaluator

		admin, manager, lead, staff authz.Actor
	)

	BeforeEach(func() {
		permRepo = newMockPermissionRepo()
		grantRepo = newMockRolePermissionRepo()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		permRepo.addPermission(authz.Permission{ID: 1, Name: "task_management", Category: "operations"})
		permRepo.addPermission(authz.Permission{ID: 2, Name: "employee_management", Category: "administration"})

		catalog := authz.NewCatalog(permRepo, logger)
		Expect(catalog.Load()).To(Succeed())

		matrix = authz.NewMatrix(grantRepo, catalog, logger)
		evaluator = authz.NewEvaluator(authz.DefaultResourceMap(), matrix, catalog, logger)

		dept := int64(3)
		admin = authz.Actor{UserID: 1, Role: authz.RoleAdmin, IsActive: true}
		manager = authz.Actor{UserID: 2, Role: authz.RoleManager, DepartmentID: &dept, IsActive: true}
		lead = authz.Actor{UserID: 3, Role: authz.RoleLead, DepartmentID: &dept, IsActive: true}
		staff = authz.Actor{UserID: 4, Role: authz.RoleStaff, DepartmentID: &dept, IsActive: true}
	})

	Describe("CanEnter", func() {
		It("should let admin into every resource, listed or not", func() {
			Expect(evaluator.CanEnter("users", admin)).To(BeTrue())
			Expect(evaluator.CanEnter("some_future_screen", admin)).To(BeTrue())
		})

		It("should keep staff out of admin screens", func() {
			Expect(evaluator.CanEnter("users", staff)).To(BeFalse())
			Expect(evaluator.CanEnter("permissions", staff)).To(BeFalse())
		})

		It("should admit every role to shared screens", func() {
			for _, a := range []authz.Actor{admin, manager, lead, staff} {
				Expect(evaluator.CanEnter("tasks", a)).To(BeTrue())
			}
		})

		It("should close unlisted resources to non-admins", func() {
			Expect(evaluator.CanEnter("some_future_screen", manager)).To(BeFalse())
		})
	})

	Describe("CanPerform", func() {
		It("should return an error for an unknown permission name, not a deny", func() {
			_, err := evaluator.CanPerform("no_such_permission", authz.CapabilityView, staff)
			Expect(err).To(MatchError(internal.ErrUnknownPermission))
		})

		It("should check admin against the matrix like everyone else", func() {
			allowed, err := evaluator.CanPerform("task_management", authz.CapabilityDelete, admin)
			Expect(err).NotTo(HaveOccurred())
			Expect(allowed).To(BeFalse())

			_, err = matrix.SetCapability(authz.RoleAdmin, 1, authz.CapabilityDelete, true)
			Expect(err).NotTo(HaveOccurred())

			allowed, err = evaluator.CanPerform("task_management", authz.CapabilityDelete, admin)
			Expect(err).NotTo(HaveOccurred())
			Expect(allowed).To(BeTrue())
		})
	})

	Describe("Decide", func() {
		It("should deny staff at the resource gate before any capability check", func() {
			decision, err := evaluator.Decide("employees", "employee_management", authz.CapabilityDelete, staff)
			Expect(err).NotTo(HaveOccurred())
			Expect(decision.Allowed).To(BeFalse())
			Expect(decision.Reason).To(Equal(authz.DenyResourceForbidden))
		})

		It("should deny at the capability check when entry passes but the grant is missing", func() {
			decision, err := evaluator.Decide("tasks", "task_management", authz.CapabilityCreate, lead)
			Expect(err).NotTo(HaveOccurred())
			Expect(decision.Allowed).To(BeFalse())
			Expect(decision.Reason).To(Equal(authz.DenyCapabilityDenied))
		})

		It("should allow after the capability is granted", func() {
			_, err := matrix.SetCapability(authz.RoleLead, 1, authz.CapabilityCreate, true)
			Expect(err).NotTo(HaveOccurred())

			decision, err := evaluator.Decide("tasks", "task_management", authz.CapabilityCreate, lead)
			Expect(err).NotTo(HaveOccurred())
			Expect(decision.Allowed).To(BeTrue())
			Expect(decision.Reason).To(BeZero())
		})

		It("should reflect a revoked capability on the next decision", func() {
			_, err := matrix.SetCapability(authz.RoleLead, 1, authz.CapabilityCreate, true)
			Expect(err).NotTo(HaveOccurred())
			_, err = matrix.SetCapability(authz.RoleLead, 1, authz.CapabilityCreate, false)
			Expect(err).NotTo(HaveOccurred())

			decision, err := evaluator.Decide("tasks", "task_management", authz.CapabilityCreate, lead)
			Expect(err).NotTo(HaveOccurred())
			Expect(decision.Allowed).To(BeFalse())
			Expect(decision.Reason).To(Equal(authz.DenyCapabilityDenied))
		})

		It("should propagate an unknown permission name as an error", func() {
			_, err := evaluator.Decide("tasks", "no_such_permission", authz.CapabilityView, manager)
			Expect(err).To(MatchError(internal.ErrUnknownPermission))
		})
	})

	Describe("grants loaded from storage", func() {
		It("should drive decisions from the persisted matrix", func() {
			grantRepo.seed(authz.RolePermission{Role: authz.RoleStaff, PermissionID: 1, CanView: true})
			warnings := matrix.LoadAll(context.Background(), authz.AllRoles())
			Expect(warnings).To(BeEmpty())

			decision, err := evaluator.Decide("tasks", "task_management", authz.CapabilityView, staff)
			Expect(err).NotTo(HaveOccurred())
			Expect(decision.Allowed).To(BeTrue())

			decision, err = evaluator.Decide("tasks", "task_management", authz.CapabilityEdit, staff)
			Expect(err).NotTo(HaveOccurred())
			Expect(decision.Allowed).To(BeFalse())
		})
	})
})
