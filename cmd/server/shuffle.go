package main

import (
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/yukikurage/team-management-api/internal/database"
	"github.com/yukikurage/team-management-api/internal/repository"
	"github.com/yukikurage/team-management-api/internal/services"
)

var shuffleDeadlinesCmd = &cobra.Command{
	Use:   "shuffle-deadlines",
	Short: "Move every task deadline to a random nearby date (demo data)",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, err := bootstrap()
		if err != nil {
			return err
		}

		db := database.GetDB()
		taskService := services.NewTaskService(
			repository.NewTaskRepository(db),
			repository.NewEmployeeRepository(db),
			repository.NewTaskTypeRepository(db),
			repository.NewTaskTagRepository(db),
			nil,
		)

		n, err := taskService.ShuffleDeadlines(cmd.Context(), rand.IntN)
		if err != nil {
			return err
		}
		log.WithField("tasks", n).Info("Task deadlines shuffled")
		return nil
	},
}
