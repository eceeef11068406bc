package persistence

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/dfryer1193/blogify/shared/db/mongo"
)

func TestMongoPostRepository_Contract(t *testing.T) {
	uri := os.Getenv("BLOGIFY_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("BLOGIFY_TEST_MONGO_URI not set")
	}

	ctx := context.Background()
	client, database, err := mongo.Connect(ctx, uri, fmt.Sprintf("blogify_test_%d", time.Now().UnixNano()))
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	testRepositoryContract(t, NewMongoPostRepository(database.Collection(mongo.PostsCollection)))
}
