// Package main provides the elki clustering CLI.
//
// Usage:
//
//	elki [flags] <command> [args]
//
// Commands:
//
//	cluster  - Run density-based clustering over a dataset
//	results  - List and inspect persisted clustering results
//
// Datasets are read from row-major float32 matrix files (.f32) or JSON
// vector arrays. Results can be written to a local directory, an S3
// bucket (s3://bucket/prefix) or a MinIO deployment
// (minio://endpoint/bucket/prefix).
package main

import (
	"fmt"
	"os"

	"github.com/kshimauchi/elki/cmd/elki/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
