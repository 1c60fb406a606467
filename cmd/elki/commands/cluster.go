package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/spf13/cobra"

	"github.com/kshimauchi/elki"
	"github.com/kshimauchi/elki/codec"
	"github.com/kshimauchi/elki/database"
	"github.com/kshimauchi/elki/dbscan"
	"github.com/kshimauchi/elki/distance"
	"github.com/kshimauchi/elki/registry"
)

var (
	clusterInput     string
	clusterDim       int
	clusterEpsilon   float32
	clusterMinPts    int
	clusterMetric    string
	clusterNormalize bool
	clusterStore     string
	clusterName      string
	clusterCodec     string
	clusterProgress  bool
	clusterTable     string
	clusterDataset   string
)

var clusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "Run density-based clustering over a dataset",
	Long: `Run density-based clustering over a dataset file.

Input formats:
  .f32          row-major little-endian float32 matrix (requires --dim)
  .json         JSON array of float arrays

The command prints a partition summary. With --store and --name the
partition is persisted; with --registry-table and --dataset the run is
recorded in DynamoDB with the next free version number.

Example:
  elki cluster -f vectors.f32 --dim 128 --epsilon 0.5 --minpts 10 --progress`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if clusterInput == "" {
			return fmt.Errorf("input file is required, use -f flag")
		}

		ctx := cmd.Context()
		logger := newLogger()

		db, closeDB, err := openDatabase(clusterInput)
		if err != nil {
			return err
		}
		defer closeDB()

		opts := []elki.Option{elki.WithLogger(logger)}
		if clusterProgress {
			opts = append(opts, elki.WithProgress(printProgress(db.Size())))
		}

		result, err := elki.Cluster(ctx, db, clusterEpsilon, clusterMinPts, opts...)
		if err != nil {
			return err
		}

		printSummary(result)

		if clusterStore != "" && clusterName != "" {
			if err := persistResult(cmd, result); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	clusterCmd.Flags().StringVarP(&clusterInput, "file", "f", "", "input dataset file (.f32 or .json)")
	clusterCmd.Flags().IntVar(&clusterDim, "dim", 0, "vector dimensionality (required for .f32 input)")
	clusterCmd.Flags().Float32VarP(&clusterEpsilon, "epsilon", "e", 0, "neighborhood radius")
	clusterCmd.Flags().IntVarP(&clusterMinPts, "minpts", "m", 0, "density threshold (minimum neighborhood size)")
	clusterCmd.Flags().StringVar(&clusterMetric, "metric", "l2", "distance metric (l2, cosine, dot, manhattan)")
	clusterCmd.Flags().BoolVar(&clusterNormalize, "normalize", false, "L2-normalize vectors on load (JSON input only)")
	clusterCmd.Flags().StringVar(&clusterStore, "store", "", "result store URL (directory, s3:// or minio://)")
	clusterCmd.Flags().StringVar(&clusterName, "name", "", "result blob name")
	clusterCmd.Flags().StringVar(&clusterCodec, "codec", "json", "result codec (json, gob, zstd+json, lz4+gob, ...)")
	clusterCmd.Flags().BoolVar(&clusterProgress, "progress", false, "print progress to stderr")
	clusterCmd.Flags().StringVar(&clusterTable, "registry-table", "", "DynamoDB table to record the run in")
	clusterCmd.Flags().StringVar(&clusterDataset, "dataset", "", "dataset name for the registry record")
}

// openDatabase loads the dataset file into a Database. The returned
// close function releases the file mapping for .f32 input and is a
// no-op otherwise.
func openDatabase(path string) (database.Database, func(), error) {
	metric, err := distance.ParseMetric(clusterMetric)
	if err != nil {
		return nil, nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".f32":
		if clusterDim <= 0 {
			return nil, nil, fmt.Errorf("--dim is required for .f32 input")
		}
		m, err := database.OpenMatrix(path,
			database.WithDimension(clusterDim),
			database.WithMetric(metric),
		)
		if err != nil {
			return nil, nil, err
		}
		return m, func() { _ = m.Close() }, nil

	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, err
		}
		var vectors [][]float32
		if err := json.Unmarshal(data, &vectors); err != nil {
			return nil, nil, fmt.Errorf("parse %s: %w", path, err)
		}
		if len(vectors) == 0 {
			return nil, nil, fmt.Errorf("%s: no vectors", path)
		}

		optFns := []func(o *database.Options){
			database.WithDimension(len(vectors[0])),
			database.WithMetric(metric),
		}
		if clusterNormalize {
			optFns = append(optFns, func(o *database.Options) { o.NormalizeVectors = true })
		}
		db, err := database.NewMemory(optFns...)
		if err != nil {
			return nil, nil, err
		}
		if _, err := db.BatchInsert(context.Background(), vectors); err != nil {
			return nil, nil, err
		}
		return db, func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unsupported input format: %s", path)
	}
}

// printProgress writes a single updating progress line to stderr.
func printProgress(total int) dbscan.ProgressFunc {
	return func(p dbscan.Progress) {
		fmt.Fprintf(os.Stderr, "\rprocessed %d/%d objects, %d clusters", p.Processed, total, p.Clusters)
		if p.Processed == p.Total {
			fmt.Fprintln(os.Stderr)
		}
	}
}

func printSummary(result *dbscan.Result) {
	fmt.Printf("clusters: %d\n", len(result.Clusters))
	for i, c := range result.Clusters {
		fmt.Printf("  cluster %d: %d objects\n", i, len(c))
	}
	fmt.Printf("noise: %d objects\n", len(result.Noise))
}

// persistResult writes the partition to the configured store and, if a
// registry table is set, records the run under the next free version.
func persistResult(cmd *cobra.Command, result *dbscan.Result) error {
	ctx := cmd.Context()
	logger := newLogger()

	c, ok := codec.ByName(clusterCodec)
	if !ok {
		return fmt.Errorf("unknown codec %q", clusterCodec)
	}

	store, err := openStore(ctx, clusterStore)
	if err != nil {
		return err
	}

	err = elki.SaveResult(ctx, store, clusterName, result, c)
	logger.LogSave(ctx, clusterName, c.Name(), err)
	if err != nil {
		return err
	}

	if clusterTable == "" {
		return nil
	}
	if clusterDataset == "" {
		return fmt.Errorf("--dataset is required with --registry-table")
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("load AWS config: %w", err)
	}
	reg := registry.New(dynamodb.NewFromConfig(cfg), clusterTable)

	version, err := reg.NextVersion(ctx, clusterDataset)
	if err != nil {
		return err
	}
	run := registry.Run{
		Dataset:   clusterDataset,
		Version:   version,
		Epsilon:   float64(clusterEpsilon),
		MinPts:    clusterMinPts,
		Clusters:  len(result.Clusters),
		Noise:     len(result.Noise),
		ResultKey: clusterName,
		CreatedAt: time.Now().UTC(),
	}
	if err := reg.Record(ctx, run); err != nil {
		return err
	}
	fmt.Printf("recorded %s version %d in %s\n", clusterDataset, version, clusterTable)
	return nil
}
