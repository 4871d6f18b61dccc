package main

import (
	"fmt"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"hookprobe/internal/pkg/errors"
	"hookprobe/internal/platform/repositories"
)

func newHistoryCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded deliveries, newest first",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openHistory()
			if err != nil {
				return err
			}
			defer db.Close()

			repo := repositories.NewDeliveryRepository(db)
			deliveries, err := repo.List(limit)
			if err != nil {
				return errors.New(errors.ErrCodeInternal, "failed to list deliveries", err)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSENT\tSTATUS\tDURATION\tURL\tERROR")
			for _, d := range deliveries {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%dms\t%s\t%s\n",
					d.ID,
					time.Unix(d.CreatedAt, 0).UTC().Format(time.RFC3339),
					d.StatusCode,
					d.DurationMs,
					d.URL,
					d.Error,
				)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			counts, err := repo.CountByStatus()
			if err != nil {
				log.Warn().Err(err).Msg("failed to count deliveries")
				return nil
			}
			codes := make([]int, 0, len(counts))
			for code := range counts {
				codes = append(codes, code)
			}
			sort.Ints(codes)
			for _, code := range codes {
				fmt.Fprintf(cmd.OutOrStdout(), "status %d: %d\n", code, counts[code])
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of deliveries to show")
	return cmd
}

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the delivery history schema",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openHistory()
			if err != nil {
				return err
			}
			defer db.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "history schema ready at %s\n", a.cfg.History.Path)
			return nil
		},
	}
}
