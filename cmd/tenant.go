// Copyright 2026 ClimaBill Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/climabill/climabill/internal/db"
	"github.com/climabill/climabill/internal/logging"
	"github.com/climabill/climabill/internal/monitoring"
	"github.com/climabill/climabill/internal/storage"
	"github.com/climabill/climabill/internal/tracing"
	"github.com/climabill/climabill/internal/types"
	"github.com/climabill/climabill/pkg/authentication"
)

var tenantCmd = &cobra.Command{
	Use:   "tenant",
	Short: "Manage tenants",
}

var createTenantCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new tenant with its first admin user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dsn, _ := cmd.Flags().GetString("dsn")
		domain, _ := cmd.Flags().GetString("domain")
		plan, _ := cmd.Flags().GetString("plan")
		email, _ := cmd.Flags().GetString("admin-email")
		password, _ := cmd.Flags().GetString("admin-password")

		store, closeDB, err := openStorage(dsn)
		if err != nil {
			return err
		}
		defer closeDB()

		p := types.Plan(plan)
		if !p.Valid() {
			return fmt.Errorf("invalid plan: %q", plan)
		}

		tenant := &types.Tenant{
			Name:            args[0],
			Domain:          domain,
			Plan:            p,
			IsActive:        true,
			MaxUsers:        authentication.PlanMaxUsers(p),
			FeaturesEnabled: authentication.PlanFeatures(p),
		}
		tenant, err = store.CreateTenant(cmd.Context(), tenant)
		if err != nil {
			return fmt.Errorf("failed to create tenant: %w", err)
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := &types.User{
			TenantID:       tenant.ID,
			Email:          email,
			HashedPassword: string(hashed),
			Role:           types.RoleAdmin,
			IsActive:       true,
		}
		user, err = store.CreateUser(cmd.Context(), user)
		if err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
		if err := store.UpdateTenantUserCount(cmd.Context(), tenant.ID, 1); err != nil {
			return fmt.Errorf("failed to update user count: %w", err)
		}

		fmt.Printf("Tenant created: %s (ID: %s)\n", tenant.Name, tenant.ID)
		fmt.Printf("Admin user: %s (ID: %s)\n", user.Email, user.ID)
		return nil
	},
}

var suspendTenantCmd = &cobra.Command{
	Use:   "suspend [id]",
	Short: "Suspend a tenant",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dsn, _ := cmd.Flags().GetString("dsn")

		store, closeDB, err := openStorage(dsn)
		if err != nil {
			return err
		}
		defer closeDB()

		if err := store.SetTenantStatus(cmd.Context(), args[0], false); err != nil {
			return fmt.Errorf("failed to suspend tenant: %w", err)
		}

		fmt.Printf("Tenant suspended: %s\n", args[0])
		return nil
	},
}

var tenantKeysCmd = &cobra.Command{
	Use:   "keys [tenant-id]",
	Short: "List a tenant's API keys",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dsn, _ := cmd.Flags().GetString("dsn")

		store, closeDB, err := openStorage(dsn)
		if err != nil {
			return err
		}
		defer closeDB()

		keys, err := store.ListAPIKeysByTenant(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to list API keys: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tACTIVE\tUSAGE")
		for _, key := range keys {
			fmt.Fprintf(w, "%s\t%s\t%v\t%d\n", key.ID, key.Name, key.IsActive, key.UsageCount)
		}
		return w.Flush()
	},
}

func openStorage(dsn string) (*storage.Storage, func(), error) {
	logger := logging.NewNoopLogger()
	monitor := monitoring.NewNoopMonitor()
	tracer := tracing.NewNoopTracer()

	dbClient, err := db.NewDBClient(db.Config{DSN: dsn}, tracer, monitor, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create database client: %w", err)
	}

	return storage.NewStorage(dbClient, tracer, monitor, logger), func() { dbClient.Close() }, nil
}

func init() {
	tenantCmd.PersistentFlags().String("dsn", "", "PostgreSQL DSN connection string")
	_ = tenantCmd.MarkPersistentFlagRequired("dsn")

	createTenantCmd.Flags().String("domain", "", "Unique tenant domain")
	createTenantCmd.Flags().String("plan", "starter", "Subscription plan (starter, professional, enterprise)")
	createTenantCmd.Flags().String("admin-email", "", "Email address of the first admin user")
	createTenantCmd.Flags().String("admin-password", "", "Password of the first admin user")
	_ = createTenantCmd.MarkFlagRequired("domain")
	_ = createTenantCmd.MarkFlagRequired("admin-email")
	_ = createTenantCmd.MarkFlagRequired("admin-password")

	tenantCmd.AddCommand(createTenantCmd)
	tenantCmd.AddCommand(suspendTenantCmd)
	tenantCmd.AddCommand(tenantKeysCmd)
	rootCmd.AddCommand(tenantCmd)
}
