package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aristath/investa/internal/reliability"
	"github.com/spf13/cobra"
)

func (a *app) backupService(ctx context.Context) (*reliability.BackupService, error) {
	if !a.cfg.Backup.Enabled() {
		return nil, fmt.Errorf("backups are not configured: set BACKUP_S3_BUCKET")
	}
	client, err := reliability.NewS3Client(ctx, a.cfg.Backup, a.log)
	if err != nil {
		return nil, err
	}
	return reliability.NewBackupService(client, a.cfg.DataDir, a.log), nil
}

func newBackupCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Create, list and verify data backups",
	}

	run := &cobra.Command{
		Use:   "run",
		Short: "Archive the data directory and upload it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.backupService(cmd.Context())
			if err != nil {
				return err
			}
			info, err := svc.CreateAndUpload(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s (%d bytes)\n", info.Filename, info.SizeBytes)
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List remote backups, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.backupService(cmd.Context())
			if err != nil {
				return err
			}
			backups, err := svc.ListBackups(cmd.Context())
			if err != nil {
				return err
			}
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "FILENAME\tSIZE\tAGE (h)")
			for _, b := range backups {
				fmt.Fprintf(tw, "%s\t%d\t%d\n", b.Filename, b.SizeBytes, b.AgeHours)
			}
			return tw.Flush()
		},
	}

	var retentionDays int
	rotate := &cobra.Command{
		Use:   "rotate",
		Short: "Delete remote backups past the retention period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.backupService(cmd.Context())
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("retention-days") {
				retentionDays = a.cfg.Backup.RetentionDays
			}
			deleted, err := svc.RotateOldBackups(cmd.Context(), retentionDays)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d old backups\n", deleted)
			return nil
		},
	}
	rotate.Flags().IntVar(&retentionDays, "retention-days", 0, "days to keep (default $BACKUP_RETENTION_DAYS)")

	verify := &cobra.Command{
		Use:   "verify ARCHIVE",
		Short: "Check the checksums of a downloaded backup archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			metadata, files, err := reliability.ReadArchive(f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backup %s from %s: %d files OK\n",
				metadata.BackupID, metadata.Timestamp.Format("2006-01-02 15:04:05"), len(files))
			return nil
		},
	}

	cmd.AddCommand(run, list, rotate, verify)
	return cmd
}
