package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var techRegion string

var techniciansCmd = &cobra.Command{
	Use:   "technicians",
	Short: "List available technicians",
	RunE:  runTechnicians,
}

func init() {
	techniciansCmd.Flags().StringVar(&techRegion, "region", "", "region filter")
	rootCmd.AddCommand(techniciansCmd)
}

func runTechnicians(cmd *cobra.Command, args []string) error {
	svc, err := newCLIService()
	if err != nil {
		return err
	}
	technicians, err := svc.AvailableTechnicians(context.Background(), techRegion)
	if err != nil {
		return err
	}
	for _, t := range technicians {
		fmt.Printf("%s\t%-16s\t%s\t%s\n", t.ID, t.Name, t.Region, strings.Join(t.Skills, ","))
	}
	return nil
}
