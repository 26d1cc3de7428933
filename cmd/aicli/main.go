// Command aicli is an interactive console for exercising the AI
// endpoints without a browser or database: chat with the clinical
// assistant, or feed it raw visit notes and inspect the generated SOAP
// structure.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"soapify/internal/config"
	"soapify/internal/domain/models"
	"soapify/internal/domain/services"
	"soapify/internal/llm"
	"soapify/internal/llm/prompts"
	"soapify/internal/service"

	"github.com/joho/godotenv"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorBlue   = "\033[34m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

type cli struct {
	ctx          context.Context
	soap         services.SOAPService
	scanner      *bufio.Scanner
	conversation []models.ChatMessage
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.OpenAIAPIKey == "" {
		log.Fatal("OPENAI_API_KEY is required")
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	promptRegistry, err := prompts.Load()
	if err != nil {
		log.Fatalf("Failed to load prompts: %v", err)
	}

	client, err := llm.NewClient(llm.Config{
		APIKey:     cfg.OpenAIAPIKey,
		ChatModel:  cfg.ChatModel,
		AudioModel: cfg.AudioModel,
	}, logger)
	if err != nil {
		log.Fatalf("Failed to create inference client: %v", err)
	}

	c := &cli{
		ctx:     context.Background(),
		soap:    service.NewSOAPService(client, promptRegistry, logger),
		scanner: bufio.NewScanner(os.Stdin),
	}

	fmt.Printf("%sSOAPify AI console%s (model: %s)\n", colorCyan, colorReset, cfg.ChatModel)
	fmt.Println("Type a message to chat with the clinical assistant.")
	fmt.Println("Commands: /generate <notes>, /explain <section> <text>, /reset, /quit")

	c.loop()
}

func (c *cli) loop() {
	for {
		fmt.Printf("%s> %s", colorGreen, colorReset)
		if !c.scanner.Scan() {
			return
		}
		line := strings.TrimSpace(c.scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case line == "/quit" || line == "/exit":
			return
		case line == "/reset":
			c.conversation = nil
			fmt.Println("conversation cleared")
		case strings.HasPrefix(line, "/generate "):
			c.generate(strings.TrimPrefix(line, "/generate "))
		case strings.HasPrefix(line, "/explain "):
			c.explain(strings.TrimPrefix(line, "/explain "))
		default:
			c.chat(line)
		}
	}
}

func (c *cli) chat(message string) {
	c.conversation = append(c.conversation, models.ChatMessage{
		Role:    models.RoleUser,
		Content: message,
	})

	reply, err := c.soap.Assist(c.ctx, c.conversation)
	if err != nil {
		fmt.Printf("%serror:%s %v\n", colorYellow, colorReset, err)
		// Drop the failed turn so a retry doesn't duplicate it
		c.conversation = c.conversation[:len(c.conversation)-1]
		return
	}

	c.conversation = append(c.conversation, models.ChatMessage{
		Role:    models.RoleAssistant,
		Content: reply,
	})
	fmt.Printf("%s%s%s\n", colorBlue, reply, colorReset)
}

func (c *cli) generate(notes string) {
	content, err := c.soap.GenerateNote(c.ctx, notes)
	if err != nil {
		fmt.Printf("%serror:%s %v\n", colorYellow, colorReset, err)
		return
	}

	pretty, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		fmt.Printf("%serror:%s %v\n", colorYellow, colorReset, err)
		return
	}
	fmt.Printf("%s%s%s\n", colorBlue, pretty, colorReset)
}

func (c *cli) explain(args string) {
	section, text, found := strings.Cut(args, " ")
	if !found || !models.ValidSOAPSection(section) {
		fmt.Printf("%susage:%s /explain <subjective|objective|assessment|plan> <text>\n", colorYellow, colorReset)
		return
	}

	explanation, err := c.soap.ExplainSection(c.ctx, &services.ExplainSectionRequest{
		Section: section,
		Content: text,
	})
	if err != nil {
		fmt.Printf("%serror:%s %v\n", colorYellow, colorReset, err)
		return
	}
	fmt.Printf("%s%s%s\n", colorBlue, explanation, colorReset)
}
