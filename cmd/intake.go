package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rabwill/fieldops/config"
	"github.com/rabwill/fieldops/core/dispatch"
	"github.com/rabwill/fieldops/core/model"
	"github.com/rabwill/fieldops/infra/logger"
	"github.com/rabwill/fieldops/infra/store"
)

var (
	intakePriority string
	intakeRegion   string
	intakeTeam     string
	intakeHours    int
)

var intakeCmd = &cobra.Command{
	Use:   "intake",
	Short: "List new assignments awaiting dispatch",
	RunE:  runIntake,
}

func init() {
	intakeCmd.Flags().StringVar(&intakePriority, "priority", "", "priority filter (Low, Medium, High)")
	intakeCmd.Flags().StringVar(&intakeRegion, "region", "", "region filter")
	intakeCmd.Flags().StringVar(&intakeTeam, "team", "", "team filter")
	intakeCmd.Flags().IntVar(&intakeHours, "max-hours-old", 0, "recency window in hours (0 uses the default window with fallback)")
	rootCmd.AddCommand(intakeCmd)
}

func newCLIService() (*dispatch.Service, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	assignments, err := store.LoadAssignments(cfg.Data.AssignmentsFile)
	if err != nil {
		return nil, err
	}
	technicians, err := store.LoadTechnicians(cfg.Data.TechniciansFile)
	if err != nil {
		return nil, err
	}
	return dispatch.NewService(
		store.NewMemoryAssignments(assignments),
		store.NewMemoryTechnicians(technicians),
		cfg.Dispatch,
		logger.New("cli"),
		nil,
	)
}

func runIntake(cmd *cobra.Command, args []string) error {
	svc, err := newCLIService()
	if err != nil {
		return err
	}
	filter := dispatch.IntakeFilter{
		Priority: model.Priority(intakePriority),
		Region:   intakeRegion,
		Team:     intakeTeam,
	}
	if intakeHours > 0 {
		filter.MaxHoursOld = &intakeHours
	}
	assignments, err := svc.ListNewAssignments(context.Background(), filter)
	if err != nil {
		return err
	}
	for _, a := range assignments {
		fmt.Printf("%s\t%-8s\t%s\t%s\n", a.ID, a.Priority, a.Region, a.Site)
	}
	return nil
}
