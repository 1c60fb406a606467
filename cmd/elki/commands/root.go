package commands

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/spf13/cobra"

	"github.com/kshimauchi/elki"
	"github.com/kshimauchi/elki/blobstore"
	miniostore "github.com/kshimauchi/elki/blobstore/minio"
	s3store "github.com/kshimauchi/elki/blobstore/s3"
)

var (
	// Global flags
	verbose bool
	jsonLog bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "elki",
	Short: "Density-based clustering CLI",
	Long: `elki - density-based clustering over vector datasets.

Runs DBSCAN over a dataset file, reports progress, and optionally
persists the resulting partition to a blob store and records the run
in a DynamoDB registry table.

Store URLs:
  ./results                      local directory
  s3://bucket/prefix             Amazon S3 (credentials from the environment)
  minio://endpoint/bucket/prefix MinIO (MINIO_ACCESS_KEY / MINIO_SECRET_KEY)

Examples:
  # Cluster a raw float32 matrix and print a summary
  elki cluster -f vectors.f32 --dim 128 --epsilon 0.5 --minpts 10

  # Persist the partition compressed, recording the run
  elki cluster -f vectors.f32 --dim 128 --epsilon 0.5 --minpts 10 \
    --store s3://experiments/clustering --name run-42 --codec zstd+json \
    --registry-table clustering-runs --dataset vectors-v1
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug level logs)")
	rootCmd.PersistentFlags().BoolVar(&jsonLog, "json", false, "log as JSON")

	rootCmd.AddCommand(clusterCmd)
	rootCmd.AddCommand(resultsCmd)
}

// newLogger builds the logger from the global flags.
func newLogger() *elki.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if jsonLog {
		return elki.NewJSONLogger(level)
	}
	return elki.NewTextLogger(level)
}

// openStore resolves a store URL into a blobstore implementation.
func openStore(ctx context.Context, rawURL string) (blobstore.Store, error) {
	switch {
	case strings.HasPrefix(rawURL, "s3://"):
		u, err := url.Parse(rawURL)
		if err != nil {
			return nil, fmt.Errorf("invalid store URL %q: %w", rawURL, err)
		}
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load AWS config: %w", err)
		}
		return s3store.NewStore(s3.NewFromConfig(cfg), u.Host, strings.Trim(u.Path, "/")), nil

	case strings.HasPrefix(rawURL, "minio://"):
		u, err := url.Parse(rawURL)
		if err != nil {
			return nil, fmt.Errorf("invalid store URL %q: %w", rawURL, err)
		}
		bucket, prefix, ok := strings.Cut(strings.Trim(u.Path, "/"), "/")
		if !ok {
			bucket = strings.Trim(u.Path, "/")
		}
		if bucket == "" {
			return nil, fmt.Errorf("store URL %q: missing bucket", rawURL)
		}
		client, err := minio.New(u.Host, &minio.Options{
			Creds:  credentials.NewStaticV4(os.Getenv("MINIO_ACCESS_KEY"), os.Getenv("MINIO_SECRET_KEY"), ""),
			Secure: minioSecure(os.Getenv("MINIO_INSECURE")),
		})
		if err != nil {
			return nil, fmt.Errorf("minio client: %w", err)
		}
		return miniostore.NewStore(client, bucket, prefix), nil

	default:
		return blobstore.NewLocalStore(rawURL)
	}
}

// minioSecure reports whether MinIO connections should use TLS, based
// on the MINIO_INSECURE environment value. The value is parsed as a
// boolean; unset or unparsable values keep TLS on.
func minioSecure(insecureEnv string) bool {
	insecure, err := strconv.ParseBool(insecureEnv)
	if err != nil {
		return true
	}
	return !insecure
}
