package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ignatzorin/collabhub-backend/internal/db"
)

func newMigrateCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "migrate",
		Short: "Применить SQL миграции",
		RunE:  runMigrate,
	}
	c.Flags().String("dir", "", "каталог миграций (по умолчанию MIGRATIONS_PATH)")
	return c
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, conn, err := bootstrap(cmd)
	if err != nil {
		return err
	}
	defer closeDB(conn)

	dir := cfg.MigrationsPath
	if flagDir, _ := cmd.Flags().GetString("dir"); flagDir != "" {
		dir = flagDir
	}

	applied, err := db.RunMigrations(commandContext(cmd), conn, dir)
	if err != nil {
		return err
	}

	if len(applied) == 0 {
		cmd.Println("Новых миграций нет.")
		return nil
	}
	for _, name := range applied {
		cmd.Printf("применена %s\n", name)
	}
	return nil
}
