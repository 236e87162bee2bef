package aiquiz

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/saulo-duarte/lessonquiz-lambda/internal/completion"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&Quiz{}, &Question{}))
	return db
}

func validQuizJSON(prefix string) string {
	q := `{"question":"%s question %d?","options":{"A":"one","B":"two","C":"three","D":"four"},"answer":"%s"}`
	return fmt.Sprintf(`{"questions":[%s,%s,%s,%s]}`,
		fmt.Sprintf(q, prefix, 1, "A"),
		fmt.Sprintf(q, prefix, 2, "B"),
		fmt.Sprintf(q, prefix, 3, "C"),
		fmt.Sprintf(q, prefix, 4, "D"),
	)
}

type scriptedReply struct {
	text string
	err  error
}

// fakeClient replays replies in order and repeats the last one.
type fakeClient struct {
	mu       sync.Mutex
	replies  []scriptedReply
	requests []completion.Request
}

func (f *fakeClient) Complete(ctx context.Context, req completion.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, req)
	i := len(f.requests) - 1
	if i >= len(f.replies) {
		i = len(f.replies) - 1
	}
	return f.replies[i].text, f.replies[i].err
}

func (f *fakeClient) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}
