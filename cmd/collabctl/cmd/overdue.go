package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ignatzorin/collabhub-backend/internal/models"
	"github.com/ignatzorin/collabhub-backend/internal/repository"
	"github.com/ignatzorin/collabhub-backend/internal/service"
)

func newOverdueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overdue",
		Short: "Показать просроченные платежи",
		RunE:  runOverdue,
	}
}

func runOverdue(cmd *cobra.Command, _ []string) error {
	cfg, conn, err := bootstrap(cmd)
	if err != nil {
		return err
	}
	defer closeDB(conn)

	contracts := repository.NewContractRepository(conn)
	payments := service.NewPaymentService(repository.NewPaymentRepository(conn), contracts, nil, service.PaymentServiceOptions{
		DueSoon: cfg.PaymentDueSoon(),
	})

	overdue, err := payments.ListOverdue(commandContext(cmd))
	if err != nil {
		return err
	}

	return printOverdue(cmd.OutOrStdout(), overdue, time.Now())
}

// printOverdue выводит таблицу просроченных платежей.
func printOverdue(w io.Writer, payments []models.PaymentWithDetails, now time.Time) error {
	if len(payments) == 0 {
		_, err := fmt.Fprintln(w, "Просроченных платежей нет.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PAYMENT\tAMOUNT\tDUE\tDAYS\tCAMPAIGN\tCREATOR")
	for _, p := range payments {
		days := int(now.Sub(p.DueDate).Hours() / 24)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
			p.ID,
			p.Amount.StringFixed(2),
			p.DueDate.Format("2006-01-02"),
			days,
			p.Contract.Offer.Campaign.Name,
			p.Contract.Offer.Creator.DisplayName,
		)
	}
	return tw.Flush()
}
