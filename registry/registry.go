// Package registry records clustering runs in DynamoDB.
//
// Each run of a named dataset gets a monotonically increasing version.
// Conditional writes make concurrent recorders safe: two writers racing
// for the same version cannot both succeed, and the loser retries with
// the next version.
//
// Table schema:
//   - Partition key: dataset (string)
//   - Sort key: version (number)
//
// Create the table with:
//
//	aws dynamodb create-table \
//	  --table-name elki-runs \
//	  --attribute-definitions AttributeName=dataset,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=dataset,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
package registry

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ErrVersionExists is returned when the (dataset, version) pair is
// already recorded, i.e. a concurrent recorder won the race.
var ErrVersionExists = errors.New("registry: version already recorded")

// ErrNotFound is returned when a dataset has no recorded runs.
var ErrNotFound = errors.New("registry: no runs recorded")

// Run describes one completed clustering run.
type Run struct {
	// Dataset names the clustered dataset (partition key).
	Dataset string

	// Version is the run's sequence number within the dataset (sort key).
	Version uint64

	// Epsilon and MinPts are the parameters the run used.
	Epsilon float64
	MinPts  int

	// Clusters and Noise are the result counts.
	Clusters int
	Noise    int

	// ResultKey is the blob name the partition was written to.
	ResultKey string

	// CreatedAt is when the run was recorded.
	CreatedAt time.Time
}

// Client is the interface for the DynamoDB operations the registry uses.
type Client interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// Registry records and looks up clustering runs.
type Registry struct {
	client Client
	table  string
}

// New creates a Registry on the given table.
func New(client Client, table string) *Registry {
	return &Registry{client: client, table: table}
}

// Record writes a run. It fails with ErrVersionExists if the
// (dataset, version) pair is already taken; callers should re-read the
// latest version and retry with the next one.
func (r *Registry) Record(ctx context.Context, run Run) error {
	if run.Dataset == "" {
		return errors.New("registry: dataset must not be empty")
	}
	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item: map[string]types.AttributeValue{
			"dataset":    &types.AttributeValueMemberS{Value: run.Dataset},
			"version":    &types.AttributeValueMemberN{Value: strconv.FormatUint(run.Version, 10)},
			"epsilon":    &types.AttributeValueMemberN{Value: strconv.FormatFloat(run.Epsilon, 'g', -1, 64)},
			"min_pts":    &types.AttributeValueMemberN{Value: strconv.Itoa(run.MinPts)},
			"clusters":   &types.AttributeValueMemberN{Value: strconv.Itoa(run.Clusters)},
			"noise":      &types.AttributeValueMemberN{Value: strconv.Itoa(run.Noise)},
			"result_key": &types.AttributeValueMemberS{Value: run.ResultKey},
			"created_at": &types.AttributeValueMemberS{Value: createdAt.Format(time.RFC3339Nano)},
		},
		ConditionExpression: aws.String("attribute_not_exists(dataset) AND attribute_not_exists(version)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("%w: %s@%d", ErrVersionExists, run.Dataset, run.Version)
		}
		return err
	}
	return nil
}

// Latest returns the most recent run recorded for a dataset.
func (r *Registry) Latest(ctx context.Context, dataset string) (*Run, error) {
	resp, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.table),
		KeyConditionExpression: aws.String("dataset = :d"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":d": &types.AttributeValueMemberS{Value: dataset},
		},
		ScanIndexForward: aws.Bool(false), // descending: newest first
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, dataset)
	}
	return parseRun(resp.Items[0])
}

// NextVersion returns the version a new run of the dataset should use.
func (r *Registry) NextVersion(ctx context.Context, dataset string) (uint64, error) {
	latest, err := r.Latest(ctx, dataset)
	if errors.Is(err, ErrNotFound) {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return latest.Version + 1, nil
}

func parseRun(item map[string]types.AttributeValue) (*Run, error) {
	run := &Run{}

	var err error
	if run.Dataset, err = stringAttr(item, "dataset"); err != nil {
		return nil, err
	}
	if run.ResultKey, err = stringAttr(item, "result_key"); err != nil {
		return nil, err
	}
	if run.Version, err = uintAttr(item, "version"); err != nil {
		return nil, err
	}

	epsilon, err := stringNumberAttr(item, "epsilon")
	if err != nil {
		return nil, err
	}
	if run.Epsilon, err = strconv.ParseFloat(epsilon, 64); err != nil {
		return nil, fmt.Errorf("registry: invalid epsilon attribute: %w", err)
	}

	minPts, err := uintAttr(item, "min_pts")
	if err != nil {
		return nil, err
	}
	run.MinPts = int(minPts)

	clusters, err := uintAttr(item, "clusters")
	if err != nil {
		return nil, err
	}
	run.Clusters = int(clusters)

	noise, err := uintAttr(item, "noise")
	if err != nil {
		return nil, err
	}
	run.Noise = int(noise)

	createdAt, err := stringAttr(item, "created_at")
	if err != nil {
		return nil, err
	}
	if run.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("registry: invalid created_at attribute: %w", err)
	}

	return run, nil
}

func stringAttr(item map[string]types.AttributeValue, name string) (string, error) {
	attr, ok := item[name].(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("registry: missing or invalid %s attribute", name)
	}
	return attr.Value, nil
}

func stringNumberAttr(item map[string]types.AttributeValue, name string) (string, error) {
	attr, ok := item[name].(*types.AttributeValueMemberN)
	if !ok {
		return "", fmt.Errorf("registry: missing or invalid %s attribute", name)
	}
	return attr.Value, nil
}

func uintAttr(item map[string]types.AttributeValue, name string) (uint64, error) {
	raw, err := stringNumberAttr(item, name)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("registry: invalid %s attribute: %w", name, err)
	}
	return v, nil
}
