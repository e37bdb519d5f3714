// Package container provides dependency injection for the cardsense application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"context"
	"errors"
	"fmt"

	"cardsense/cardsense-india/internal/categorizer"
	"cardsense/cardsense-india/internal/config"
	"cardsense/cardsense-india/internal/csvparser"
	"cardsense/cardsense-india/internal/extractor"
	"cardsense/cardsense-india/internal/insights"
	"cardsense/cardsense-india/internal/logging"
	"cardsense/cardsense-india/internal/pdfparser"
	"cardsense/cardsense-india/internal/report"
	"cardsense/cardsense-india/internal/store"
	"cardsense/cardsense-india/internal/upload"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger      logging.Logger
	config      *config.Config
	categorizer *categorizer.Categorizer
	extractor   *extractor.Extractor
	csvParser   *csvparser.Parser
	pdf         pdfparser.TextExtractor
	store       store.TransactionStore
	uploads     *upload.Service
	analyzer    *insights.Analyzer
	reports     *report.Generator
	gemini      *insights.GeminiClient
}

// Option overrides a dependency before wiring.
type Option func(*overrides)

type overrides struct {
	logger   logging.Logger
	store    store.TransactionStore
	pdf      pdfparser.TextExtractor
	aiClient insights.AIClient
}

// WithLogger replaces the logger built from cfg.Log.
func WithLogger(logger logging.Logger) Option {
	return func(o *overrides) { o.logger = logger }
}

// WithStore replaces the SQLite store opened from cfg.Database.Path.
func WithStore(s store.TransactionStore) Option {
	return func(o *overrides) { o.store = s }
}

// WithPDFExtractor replaces the library PDF reader.
func WithPDFExtractor(e pdfparser.TextExtractor) Option {
	return func(o *overrides) { o.pdf = e }
}

// WithAIClient replaces the Gemini client. Analysis still requires cfg.AI.Enabled.
func WithAIClient(c insights.AIClient) Option {
	return func(o *overrides) { o.aiClient = c }
}

// NewContainer creates and wires all application dependencies.
func NewContainer(ctx context.Context, cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	var o overrides
	for _, opt := range opts {
		opt(&o)
	}

	// Create logger first as it's needed by other components
	logger := o.logger
	if logger == nil {
		logger = config.NewLogger(cfg)
	}

	cat, err := NewCategorizer(cfg, logger)
	if err != nil {
		return nil, err
	}

	lineExtractor := extractor.New(cat, logger)
	csvParser := csvparser.New(cat, logger)

	pdf := o.pdf
	if pdf == nil {
		pdf = pdfparser.NewLibraryExtractor(logger)
	}

	transactionStore := o.store
	if transactionStore == nil {
		sqliteStore, err := store.Open(cfg.Database.Path, logger)
		if err != nil {
			return nil, err
		}
		transactionStore = sqliteStore
	}

	c := &Container{
		logger:      logger,
		config:      cfg,
		categorizer: cat,
		extractor:   lineExtractor,
		csvParser:   csvParser,
		pdf:         pdf,
		store:       transactionStore,
		reports:     report.NewGenerator(logger),
	}

	// Create AI client (if enabled)
	aiClient := o.aiClient
	if aiClient == nil && cfg.AI.Enabled {
		gemini, err := insights.NewGeminiClient(ctx, cfg.AI.APIKey, cfg.AI.Model)
		if err != nil {
			transactionStore.Close()
			return nil, err
		}
		c.gemini = gemini
		aiClient = gemini
		logger.Debug("Gemini client created", logging.F(logging.FieldModel, gemini.ModelName()))
	}
	if cfg.AI.Enabled {
		logger.Info("AI analysis enabled", logging.F(logging.FieldModel, cfg.AI.Model))
	} else {
		logger.Info("AI analysis disabled")
	}

	c.analyzer = insights.NewAnalyzer(aiClient, insights.Options{
		Enabled:           cfg.AI.Enabled,
		Model:             cfg.AI.Model,
		RequestsPerMinute: cfg.AI.RequestsPerMinute,
		Timeout:           cfg.AITimeout(),
	}, logger)
	c.uploads = upload.NewService(pdf, lineExtractor, csvParser, transactionStore, logger)

	logger.Info("Container initialized successfully",
		logging.F("database", cfg.Database.Path),
		logging.F("ai_enabled", cfg.AI.Enabled))
	return c, nil
}

// NewCategorizer builds the keyword categorizer, adding the keywords file
// from cfg.Categorization when one is configured. Commands that only
// categorize use it without opening the store.
func NewCategorizer(cfg *config.Config, logger logging.Logger) (*categorizer.Categorizer, error) {
	var catOpts []categorizer.Option
	if cfg.Categorization.KeywordsFile != "" {
		extra, err := categorizer.LoadKeywordFile(cfg.Categorization.KeywordsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load categorization keywords: %w", err)
		}
		catOpts = append(catOpts, categorizer.WithExtraKeywords(extra))
		logging.OrDefault(logger).Info("Loaded extra categorization keywords", logging.F(logging.FieldFile, cfg.Categorization.KeywordsFile))
	}
	return categorizer.New(logger, catOpts...), nil
}

// GetLogger returns the configured logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the application configuration.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetCategorizer returns the configured categorizer.
func (c *Container) GetCategorizer() *categorizer.Categorizer {
	return c.categorizer
}

// GetExtractor returns the line-based text extractor.
func (c *Container) GetExtractor() *extractor.Extractor {
	return c.extractor
}

// GetCSVParser returns the CSV statement parser.
func (c *Container) GetCSVParser() *csvparser.Parser {
	return c.csvParser
}

// GetStore returns the transaction store.
func (c *Container) GetStore() store.TransactionStore {
	return c.store
}

// GetUploadService returns the upload orchestrator.
func (c *Container) GetUploadService() *upload.Service {
	return c.uploads
}

// GetAnalyzer returns the insights analyzer.
func (c *Container) GetAnalyzer() *insights.Analyzer {
	return c.analyzer
}

// GetReportGenerator returns the summary renderer.
func (c *Container) GetReportGenerator() *report.Generator {
	return c.reports
}

// Close releases the store and the Gemini connection.
func (c *Container) Close() error {
	var errs []error
	if c.gemini != nil {
		errs = append(errs, c.gemini.Close())
	}
	if c.store != nil {
		errs = append(errs, c.store.Close())
	}
	return errors.Join(errs...)
}
