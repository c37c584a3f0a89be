package authz_test

import (
	"github.com/SamridhiParajuli/store-dashboard/internal/authz"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type scopedRecord struct {
	name string
	dept *int64
}

func (r scopedRecord) DepartmentRef() *int64 { return r.dept }

func ptr(v int64) *int64 { return &v }

var _ = Describe("Department Scoping", func() {
	var (
		admin       authz.Actor
		manager     authz.Actor
		staffNoDept authz.Actor
	)

	BeforeEach(func() {
		admin = authz.Actor{UserID: 1, Role: authz.RoleAdmin, IsActive: true}
		manager = authz.Actor{UserID: 2, Role: authz.RoleManager, DepartmentID: ptr(3), IsActive: true}
		staffNoDept = authz.Actor{UserID: 4, Role: authz.RoleStaff, IsActive: true}
	})

	Describe("ScopeQuery", func() {
		It("should leave admin queries untouched", func() {
			params := authz.QueryParams{DepartmentID: ptr(7), Status: "pending"}
			scoped := authz.ScopeQuery(params, admin)
			Expect(*scoped.DepartmentID).To(Equal(int64(7)))
			Expect(scoped.Status).To(Equal("pending"))
		})

		It("should pin a manager to their own department even when they ask for another", func() {
			params := authz.QueryParams{DepartmentID: ptr(7)}
			scoped := authz.ScopeQuery(params, manager)
			Expect(*scoped.DepartmentID).To(Equal(int64(3)))
		})

		It("should pin a manager with no requested department", func() {
			scoped := authz.ScopeQuery(authz.QueryParams{}, manager)
			Expect(*scoped.DepartmentID).To(Equal(int64(3)))
		})

		It("should drop the constraint for a non-admin without a department", func() {
			params := authz.QueryParams{DepartmentID: ptr(7)}
			scoped := authz.ScopeQuery(params, staffNoDept)
			Expect(scoped.DepartmentID).To(BeNil())
		})

		It("should keep the non-department filters intact", func() {
			urgent := true
			params := authz.QueryParams{DepartmentID: ptr(7), IsUrgent: &urgent, Search: "fridge", Limit: 10}
			scoped := authz.ScopeQuery(params, manager)
			Expect(*scoped.IsUrgent).To(BeTrue())
			Expect(scoped.Search).To(Equal("fridge"))
			Expect(scoped.Limit).To(Equal(10))
		})
	})

	Describe("ScopeCollection", func() {
		var records []scopedRecord

		BeforeEach(func() {
			records = []scopedRecord{
				{name: "global", dept: nil},
				{name: "own", dept: ptr(3)},
				{name: "other", dept: ptr(7)},
			}
		})

		It("should keep everything for admin", func() {
			Expect(authz.ScopeCollection(records, admin)).To(HaveLen(3))
		})

		It("should keep department-less and own-department records for a manager", func() {
			filtered := authz.ScopeCollection(records, manager)
			Expect(filtered).To(HaveLen(2))
			Expect(filtered[0].name).To(Equal("global"))
			Expect(filtered[1].name).To(Equal("own"))
		})

		It("should keep only department-less records for an actor without a department", func() {
			filtered := authz.ScopeCollection(records, staffNoDept)
			Expect(filtered).To(HaveLen(1))
			Expect(filtered[0].name).To(Equal("global"))
		})
	})

	Describe("CanAccessDepartment", func() {
		It("should allow admin into any department", func() {
			Expect(authz.CanAccessDepartment(7, admin)).To(BeTrue())
		})

		It("should restrict a manager to their own department", func() {
			Expect(authz.CanAccessDepartment(3, manager)).To(BeTrue())
			Expect(authz.CanAccessDepartment(7, manager)).To(BeFalse())
		})

		It("should deny an actor without a department", func() {
			Expect(authz.CanAccessDepartment(3, staffNoDept)).To(BeFalse())
		})
	})
})
