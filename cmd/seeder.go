package cmd

import (
	"fmt"
	"log"

	"github.com/SamridhiParajuli/store-dashboard/internal/authz"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with baseline data",
	Long:  `Seed departments, the permission catalog, baseline role grants and an admin account.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			for _, table := range []string{"role_permissions", "sessions", "tasks", "users", "permissions", "departments"} {
				if _, err := db.Exec("DELETE FROM " + table); err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		seedDepartments(db)
		seedPermissions(db)
		seedRoleGrants(db)
		seedAdminUser(db, cfg.Security.BCryptCost)

		fmt.Println("Seeding completed")
	},
}

func seedDepartments(db *sqlx.DB) {
	departments := []struct {
		Name string
		Code string
	}{
		{"Grocery", "GRC"},
		{"Produce", "PRD"},
		{"Bakery", "BKY"},
		{"Meat", "MEA"},
		{"Cash", "CSH"},
		{"Prepared Foods", "PRF"},
		{"Dairy", "DRY"},
		{"Bulk", "BLK"},
	}

	for _, d := range departments {
		var exists int
		if err := db.QueryRow("SELECT 1 FROM departments WHERE name = $1", d.Name).Scan(&exists); err == nil {
			continue
		}
		if _, err := db.Exec(
			"INSERT INTO departments (name, department_code, is_active, created_at, updated_at) VALUES ($1, $2, true, now(), now())",
			d.Name, d.Code,
		); err != nil {
			log.Fatalf("failed to insert department %s: %v", d.Name, err)
		}
		fmt.Println("Seeded department:", d.Name)
	}
}

func seedPermissions(db *sqlx.DB) {
	permissions := []struct {
		Name     string
		Desc     string
		Category string
	}{
		{"user_management", "Manage user accounts", "administration"},
		{"employee_management", "Manage employee records", "administration"},
		{"department_management", "Manage departments", "administration"},
		{"permission_management", "Manage the permission catalog and role grants", "administration"},
		{"task_management", "Manage department tasks", "operations"},
		{"complaint_management", "Manage customer complaints", "operations"},
		{"preorder_management", "Manage customer pre-orders", "operations"},
		{"inventory_requests", "Manage inventory requests", "operations"},
		{"equipment_management", "Manage equipment and maintenance", "operations"},
		{"temperature_logs", "Record and review temperature logs", "compliance"},
		{"training_records", "Manage training records", "compliance"},
		{"announcement_management", "Manage store announcements", "communication"},
	}

	for _, p := range permissions {
		var pid int64
		if err := db.QueryRow("SELECT id FROM permissions WHERE permission_name = $1", p.Name).Scan(&pid); err == nil {
			continue
		}
		if _, err := db.Exec(
			"INSERT INTO permissions (permission_name, description, category, created_at, updated_at) VALUES ($1, $2, $3, now(), now())",
			p.Name, p.Desc, p.Category,
		); err != nil {
			log.Fatalf("failed to insert permission %s: %v", p.Name, err)
		}
		fmt.Println("Seeded permission:", p.Name)
	}
}

// seedRoleGrants writes a baseline row for every (role, permission)
// pair. Administrative permissions stay admin only; the other roles
// get progressively narrower capabilities.
func seedRoleGrants(db *sqlx.DB) {
	type caps struct{ View, Create, Edit, Delete bool }

	adminOnly := map[string]bool{
		"user_management":       true,
		"permission_management": true,
	}

	defaults := map[authz.Role]caps{
		authz.RoleAdmin:   {View: true, Create: true, Edit: true, Delete: true},
		authz.RoleManager: {View: true, Create: true, Edit: true},
		authz.RoleLead:    {View: true, Create: true},
		authz.RoleStaff:   {View: true},
	}

	rows, err := db.Query("SELECT id, permission_name FROM permissions")
	if err != nil {
		log.Fatalf("failed to list permissions: %v", err)
	}
	defer rows.Close()

	type perm struct {
		ID   int64
		Name string
	}
	var perms []perm
	for rows.Next() {
		var p perm
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			log.Fatalf("failed to scan permission: %v", err)
		}
		perms = append(perms, p)
	}

	for _, role := range authz.AllRoles() {
		for _, p := range perms {
			c := defaults[role]
			if adminOnly[p.Name] && role != authz.RoleAdmin {
				c = caps{}
			}

			var exists int
			if err := db.QueryRow(
				"SELECT 1 FROM role_permissions WHERE role = $1 AND permission_id = $2",
				string(role), p.ID,
			).Scan(&exists); err == nil {
				continue
			}
			if _, err := db.Exec(
				`INSERT INTO role_permissions (role, permission_id, can_view, can_create, can_edit, can_delete, created_at, updated_at)
				 VALUES ($1, $2, $3, $4, $5, $6, now(), now())`,
				string(role), p.ID, c.View, c.Create, c.Edit, c.Delete,
			); err != nil {
				log.Fatalf("failed to grant %s to role %s: %v", p.Name, role, err)
			}
		}
	}

	fmt.Println("Seeded baseline role grants")
}

func seedAdminUser(db *sqlx.DB, bcryptCost int) {
	const adminUsername = "admin"

	var exists int
	if err := db.QueryRow("SELECT 1 FROM users WHERE username = $1", adminUsername).Scan(&exists); err == nil {
		fmt.Println("admin user already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcryptCost)
	if err != nil {
		log.Fatalf("failed to hash admin password: %v", err)
	}

	if _, err := db.Exec(
		`INSERT INTO users (username, email, name, password_hash, role, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, true, now(), now())`,
		adminUsername, "admin@store.local", "Store Admin", string(hash), string(authz.RoleAdmin),
	); err != nil {
		log.Fatalf("failed to insert admin user: %v", err)
	}

	fmt.Println("Seeded admin user:", adminUsername)
}
