// Package db keeps rendered images in DynamoDB so they can be fetched again
// by id.
package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/staffnote/config"
	"github.com/jsphweid/staffnote/note"
)

var ErrNotFound = errors.New("rendering not found")

// Rendering is one archived image.
type Rendering struct {
	ID      string            `dynamodbav:"PK"`
	Notes   []note.Descriptor `dynamodbav:"Notes"`
	SVG     []byte            `dynamodbav:"SVG"`
	Created time.Time         `dynamodbav:"Created"`
}

type Archive interface {
	Put(ctx context.Context, r Rendering) error
	Get(ctx context.Context, id string) (Rendering, error)
}

type DynamoArchive struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

// NewDynamoArchive connects to the table named in cfg. Endpoint and region
// default to a local DynamoDB.
func NewDynamoArchive(cfg config.ArchiveConfig) (*DynamoArchive, error) {
	awsCfg := &aws.Config{Region: aws.String(cfg.Region)}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("create dynamodb session: %w", err)
	}
	return NewDynamoArchiveWithClient(dynamodb.New(sess), cfg.Table), nil
}

func NewDynamoArchiveWithClient(client dynamodbiface.DynamoDBAPI, table string) *DynamoArchive {
	return &DynamoArchive{client: client, table: table}
}

func (a *DynamoArchive) Put(ctx context.Context, r Rendering) error {
	item, err := dynamodbattribute.MarshalMap(r)
	if err != nil {
		return fmt.Errorf("marshal rendering %s: %w", r.ID, err)
	}
	_, err = a.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(a.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put rendering %s: %w", r.ID, err)
	}
	return nil
}

func (a *DynamoArchive) Get(ctx context.Context, id string) (Rendering, error) {
	out, err := a.client.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(a.table),
		Key: map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(id)},
		},
	})
	if err != nil {
		return Rendering{}, fmt.Errorf("get rendering %s: %w", id, err)
	}
	if len(out.Item) == 0 {
		return Rendering{}, ErrNotFound
	}

	var r Rendering
	if err := dynamodbattribute.UnmarshalMap(out.Item, &r); err != nil {
		return Rendering{}, fmt.Errorf("unmarshal rendering %s: %w", id, err)
	}
	return r, nil
}
