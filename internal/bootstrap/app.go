package bootstrap

import (
	"fmt"
	"time"

	"pdfchat/internal/ai"
	"pdfchat/internal/config"
	"pdfchat/internal/extractor"
	"pdfchat/internal/ocr"
	"pdfchat/internal/session"
	"pdfchat/internal/worker"
)

type App struct {
	Config    *config.Config
	LLM       *ai.Conversation
	OCR       *ocr.Client
	Extractor *extractor.Extractor
	Registry  *session.Registry
	Sweeper   *worker.ExpirySweeper

	StartedAt time.Time
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	chatCfg := ai.ChatConfig{
		BaseURL:     cfg.LLM.BaseURL,
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	}
	conversation := ai.NewConversation(ai.NewOpenAICompatibleClient(), chatCfg)

	ocrClient := ocr.NewClient(cfg.OCR.APIURL, cfg.OCR.APIKey, cfg.OCR.Language, cfg.OCRTimeout())
	docExtractor := extractor.New(ocrClient)

	registry := session.NewRegistry(func(id string) *session.Session {
		return session.New(id, conversation, docExtractor, cfg.LLM.ContextWindow)
	})

	sweeper := worker.NewExpirySweeper(registry, cfg.SessionTimeout(), cfg.SweepInterval())
	if err := sweeper.Start(); err != nil {
		return nil, fmt.Errorf("start expiry sweeper failed: %w", err)
	}

	return &App{
		Config:    cfg,
		LLM:       conversation,
		OCR:       ocrClient,
		Extractor: docExtractor,
		Registry:  registry,
		Sweeper:   sweeper,
		StartedAt: time.Now(),
	}, nil
}

func (a *App) Close() error {
	if a.Sweeper != nil {
		a.Sweeper.Close()
	}
	return nil
}
