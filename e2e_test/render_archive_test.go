//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/jsphweid/staffnote/cmd"
	"github.com/jsphweid/staffnote/config"
	"github.com/jsphweid/staffnote/db"
	"github.com/jsphweid/staffnote/model"
	"github.com/jsphweid/staffnote/note"
	"github.com/stretchr/testify/assert"
)

var router http.Handler

// Needs a DynamoDB at archive.endpoint, e.g.
// docker run -p 8000:8000 amazon/dynamodb-local
func TestMain(m *testing.M) {
	cfg, err := config.Load()
	if err != nil {
		panic(err.Error())
	}
	cfg.Archive.Table = "staffnote-e2e"
	createTable(cfg.Archive)

	archive, err := db.NewDynamoArchive(cfg.Archive)
	if err != nil {
		panic(err.Error())
	}
	router = cmd.NewServer(note.NewRenderer(cfg.Layout, nil), archive).Router()

	os.Exit(m.Run())
}

func createTable(cfg config.ArchiveConfig) {
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String(cfg.Region),
		Endpoint: aws.String(cfg.Endpoint),
	})
	if err != nil {
		panic("Could not create a new DynamoDB session because " + err.Error())
	}
	client := dynamodb.New(sess)
	client.DeleteTable(&dynamodb.DeleteTableInput{TableName: aws.String(cfg.Table)})
	_, err = client.CreateTable(&dynamodb.CreateTableInput{
		TableName: aws.String(cfg.Table),
		AttributeDefinitions: []*dynamodb.AttributeDefinition{
			{AttributeName: aws.String("PK"), AttributeType: aws.String(dynamodb.ScalarAttributeTypeS)},
		},
		KeySchema: []*dynamodb.KeySchemaElement{
			{AttributeName: aws.String("PK"), KeyType: aws.String(dynamodb.KeyTypeHash)},
		},
		BillingMode: aws.String(dynamodb.BillingModePayPerRequest),
	})
	if err != nil {
		panic("Could not create table: " + err.Error())
	}
}

func createRenderReqBody(notes ...note.Descriptor) io.Reader {
	data, err := json.Marshal(model.RenderRequestBody{Notes: notes})
	if err != nil {
		panic(err.Error())
	}
	return bytes.NewReader(data)
}

func TestEighthPairIsArchived(t *testing.T) {
	body := createRenderReqBody(
		note.Descriptor{Pitch: 2, Duration: note.Eighth},
		note.Descriptor{Pitch: 6, Duration: note.Eighth},
	)
	req := httptest.NewRequest(http.MethodPost, "/render", body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := w.Result()
	rendered, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)
	id := resp.Header.Get("X-Render-Id")
	assert.NotEmpty(id)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/renderings/"+id, nil))
	assert.Equal(200, w.Code)
	assert.Equal(string(rendered), w.Body.String())
}

func TestRefusedNoteIsNotArchived(t *testing.T) {
	body := createRenderReqBody(note.Descriptor{Pitch: 3, Duration: note.Eighth})
	req := httptest.NewRequest(http.MethodPost, "/render", body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert := assert.New(t)
	assert.Equal(http.StatusUnprocessableEntity, w.Code)
	assert.Empty(w.Header().Get("X-Render-Id"))
}
