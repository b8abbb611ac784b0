package cmd

import (
	"context"
	"fmt"
	"time"

	"fevertracker/logger"
	"fevertracker/storage"

	"github.com/spf13/cobra"
)

var (
	archivePrefix  string
	archiveTracks  bool
	archiveTimeout time.Duration
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Upload exported documents to MinIO",
	Long: `Upload every exported document (and optionally every track file and chart)
to the configured MinIO bucket. The bucket is created if it does not exist.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		client, err := storage.NewMinioClient(
			a.cfg.MinioEndpoint,
			a.cfg.MinioAccessKey,
			a.cfg.MinioSecretKey,
			a.cfg.MinioBucket,
			a.cfg.MinioRegion,
			a.cfg.MinioUseSSL,
		)
		if err != nil {
			return err
		}

		dirs := []string{a.cfg.DocumentsDir}
		if archiveTracks {
			dirs = append(dirs, a.cfg.TracksDir, a.cfg.ChartsDir)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), archiveTimeout)
		defer cancel()
		logger.Info("archive started",
			logger.String("bucket", a.cfg.MinioBucket),
			logger.Int("dirs", len(dirs)),
			logger.Duration("timeout", archiveTimeout))

		n, err := client.ArchiveDirs(ctx, archivePrefix, dirs...)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Archived %d files to bucket %s\n", n, a.cfg.MinioBucket)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(archiveCmd)

	archiveCmd.Flags().StringVarP(&archivePrefix, "prefix", "p", "", "object key prefix inside the bucket")
	archiveCmd.Flags().BoolVarP(&archiveTracks, "all", "a", false, "also upload track files and charts")
	archiveCmd.Flags().DurationVarP(&archiveTimeout, "timeout", "t", 2*time.Minute, "upload timeout")

	archiveCmd.Example = `  # upload documents
  fevertracker archive

  # upload documents, tracks and charts under backup/2024
  fevertracker archive -a -p backup/2024`
}
