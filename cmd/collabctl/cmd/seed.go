package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ignatzorin/collabhub-backend/internal/repository"
	"github.com/ignatzorin/collabhub-backend/internal/service"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Загрузить демо-авторов и бренд",
		Long:  "Создаёт демонстрационных авторов и бренд Nike. Существующие email пропускаются.",
		RunE:  runSeed,
	}
}

func runSeed(cmd *cobra.Command, _ []string) error {
	_, conn, err := bootstrap(cmd)
	if err != nil {
		return err
	}
	defer closeDB(conn)

	result, err := service.NewSeedService(repository.NewSeedRepository(conn)).Seed(commandContext(cmd))
	if err != nil {
		return err
	}

	cmd.Printf("создано: %d, пропущено: %d\n", result.Created, result.Skipped)
	return nil
}
