package main

import (
	"errors"
	"fmt"

	"printdelivery/internal/core/application/usecases/queries"
	"printdelivery/internal/core/domain/model/pricing"

	"github.com/spf13/cobra"
)

func quoteCmd() *cobra.Command {
	var (
		size, paper, mode string
		pages             int
		mono              bool
	)

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a print job against the configured rate card",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, domain, err := loadDomain()
			if err != nil {
				return err
			}

			s, sizeErr := pricing.ParseSize(size)
			p, paperErr := pricing.ParsePaper(paper)
			m, modeErr := pricing.ParsePrintMode(mode)
			if err = errors.Join(sizeErr, paperErr, modeErr); err != nil {
				return err
			}
			req, err := pricing.NewRequest(s, p, m, pages, mono)
			if err != nil {
				return err
			}
			query, err := queries.NewQuoteQuery(req)
			if err != nil {
				return err
			}

			res, err := queries.NewQuoteQueryHandler(domain.Calculator).Handle(cmd.Context(), query)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Unit price: %s %s\n", res.UnitPrice, res.Currency)
			fmt.Fprintf(out, "Subtotal:   %s %s\n", res.Subtotal, res.Currency)
			if !res.Discount.IsZero() {
				fmt.Fprintf(out, "Discount:   %s %s\n", res.Discount, res.Currency)
			}
			fmt.Fprintf(out, "Total:      %s %s\n", res.Total, res.Currency)
			return nil
		},
	}

	cmd.Flags().StringVar(&size, "size", "A4", "paper size (A4, A3, A2, A1, A0)")
	cmd.Flags().StringVar(&paper, "paper", "plain", "paper type (plain, coated, glossy, sticker)")
	cmd.Flags().StringVar(&mode, "mode", "single-sided", "print mode (single-sided, double-sided)")
	cmd.Flags().IntVar(&pages, "pages", 1, "number of pages")
	cmd.Flags().BoolVar(&mono, "mono", false, "monochrome print")
	return cmd
}
