package main

import (
	"bufio"
	"faq-agent/config"
	"faq-agent/engine"
	"faq-agent/knowledge"
	"faq-agent/nlp"
	"faq-agent/session"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

func main() {
	// Initialize logger with default level to load config
	tempLogger, err := config.InitLogger("info")
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	// Load config (which includes log level setting)
	cfg := config.Load(tempLogger)

	// Re-initialize logger with configured level
	logger, err := config.InitLogger(cfg.LogLevel)
	if err != nil {
		fmt.Printf("Failed to re-initialize logger with configured level: %v\n", err)
		os.Exit(1)
	}
	defer config.Cleanup()

	norm, err := nlp.New(nlp.SnowballLemmatizer{}, cfg.LemmaCacheSize, logger)
	if err != nil {
		logger.Fatal("Failed to initialize normalizer", zap.Error(err))
	}

	entries, err := knowledge.LoadFile(cfg.KnowledgeBasePath)
	if err != nil {
		logger.Fatal("Failed to load knowledge base", zap.Error(err))
	}

	sessions := session.NewMemoryStore(cfg, nil, logger)
	sink := engine.NewLogSink(logger)

	faq := engine.New(cfg, norm, sessions, sink, logger)
	faq.Rebuild(entries)

	logger.Info("FAQ engine ready",
		zap.Int("entries", len(entries)),
		zap.String("knowledge_base", cfg.KnowledgeBasePath))

	// Simple console chat loop; one local user.
	const userID int64 = 0
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			fmt.Print("> ")
			continue
		}
		if question == "/exit" || question == "/quit" {
			break
		}

		reply := faq.Ask(userID, question)
		switch reply.Outcome {
		case engine.OutcomeDirect:
			if reply.Suggestion != "" {
				fmt.Printf("(рассматриваю как: %s)\n", reply.Suggestion)
			}
			fmt.Println(reply.Answer)
			if reply.Booking {
				fmt.Println("[Записаться на консультацию]")
			}
		case engine.OutcomeClarify:
			fmt.Println("Уточните, что вы имели в виду:")
			for i, c := range reply.Candidates {
				fmt.Printf("  %d. %s\n", i+1, c.Topic)
			}
		case engine.OutcomeUnknown:
			fmt.Println("К сожалению, я не знаю ответа на этот вопрос. Мы записали его и дополним базу.")
		}
		fmt.Print("> ")
	}

	if err := scanner.Err(); err != nil {
		logger.Error("Input error", zap.Error(err))
	}
}
