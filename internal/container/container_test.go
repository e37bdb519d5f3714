package container

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"cardsense/cardsense-india/internal/config"
	"cardsense/cardsense-india/internal/insights"
	"cardsense/cardsense-india/internal/logging"
	"cardsense/cardsense-india/internal/models"
	"cardsense/cardsense-india/internal/pdfparser"
	"cardsense/cardsense-india/internal/store"
	"cardsense/cardsense-india/internal/upload"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Database.Path = filepath.Join(t.TempDir(), "cardsense.db")
	cfg.AI.Model = "gemini-2.0-flash"
	cfg.AI.RequestsPerMinute = 10
	cfg.AI.TimeoutSeconds = 30
	cfg.Cache.SummaryTTLMinutes = 15
	return cfg
}

func TestNewContainer_NilConfig(t *testing.T) {
	_, err := NewContainer(context.Background(), nil)
	assert.EqualError(t, err, "configuration cannot be nil")
}

func TestNewContainer_WiresDependencies(t *testing.T) {
	logger := logging.NewMockLogger()
	c, err := NewContainer(context.Background(), testConfig(t), WithLogger(logger))
	require.NoError(t, err)
	defer c.Close()

	assert.Same(t, logger, c.GetLogger())
	assert.NotNil(t, c.GetConfig())
	assert.NotNil(t, c.GetCategorizer())
	assert.NotNil(t, c.GetExtractor())
	assert.NotNil(t, c.GetCSVParser())
	assert.NotNil(t, c.GetUploadService())
	assert.NotNil(t, c.GetReportGenerator())
	assert.IsType(t, &store.SQLiteStore{}, c.GetStore())
	assert.False(t, c.GetAnalyzer().Enabled())
	assert.True(t, logger.HasEntry("INFO", "AI analysis disabled"))
}

func TestNewContainer_EndToEndCSVUpload(t *testing.T) {
	c, err := NewContainer(context.Background(), testConfig(t), WithLogger(logging.NewMockLogger()))
	require.NoError(t, err)
	defer c.Close()

	result, err := c.GetUploadService().Process(context.Background(), upload.Upload{
		UserID:   "user-1",
		Filename: "statement.csv",
		Data:     []byte("12/01/2024,SWIGGY ORDER,450.00\n13/01/2024,UBER TRIP,120\n"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Inserted)

	rows, err := c.GetStore().ListTransactions(context.Background(), "user-1", 0)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestNewContainer_KeywordsFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.Categorization.KeywordsFile = filepath.Join(t.TempDir(), "keywords.yaml")
	require.NoError(t, os.WriteFile(cfg.Categorization.KeywordsFile,
		[]byte("categories:\n  - name: dining\n    keywords: [truffles]\n"), 0o600))

	c, err := NewContainer(context.Background(), cfg, WithLogger(logging.NewMockLogger()), WithStore(store.NewMemoryStore()))
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, models.CategoryDining, c.GetCategorizer().Categorize("TRUFFLES CAFE"))
	assert.Equal(t, models.CategoryDining, c.GetCategorizer().Categorize("TRUFFLES"))
}

func TestNewContainer_BadKeywordsFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.Categorization.KeywordsFile = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := NewContainer(context.Background(), cfg, WithLogger(logging.NewMockLogger()))
	assert.ErrorContains(t, err, "failed to load categorization keywords")
}

func TestNewContainer_Overrides(t *testing.T) {
	cfg := testConfig(t)
	cfg.AI.Enabled = true
	memory := store.NewMemoryStore()
	ai := new(insights.MockAIClient)

	c, err := NewContainer(context.Background(), cfg,
		WithLogger(logging.NewMockLogger()),
		WithStore(memory),
		WithPDFExtractor(pdfparser.NewMockExtractor("12/01/2024 SWIGGY ORDER ₹450.00", nil)),
		WithAIClient(ai))
	require.NoError(t, err)
	defer c.Close()

	assert.Same(t, memory, c.GetStore())
	assert.True(t, c.GetAnalyzer().Enabled())

	result, err := c.GetUploadService().Process(context.Background(), upload.Upload{
		UserID: "u", Filename: "s.pdf", ContentType: "application/pdf", Data: []byte("%PDF"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Inserted)
	assert.Equal(t, 1, memory.Len())
}
