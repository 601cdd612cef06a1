package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"docuchat/backend/internal/client"
)

var serverURL string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "chat",
	Short: "Terminal client for the docuchat service",
	Long: `Interactive terminal chat backed by the docuchat HTTP API.

Type a question and press enter; the answer is grounded in the documents
the service has indexed. Use "/quit" to leave.

Examples:
  chat
  chat --server http://localhost:5001
  chat status`,
	RunE: runChat,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show service readiness",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:5001", "Base URL of the chat service")
}

func runChat(cmd *cobra.Command, args []string) error {
	api := client.NewAPIClient(serverURL, 2*time.Minute)
	session := client.NewSession(api, "")

	fmt.Printf("Connected to %s\n", serverURL)
	fmt.Println(`Type your question and press enter. Use "/quit" to leave.`)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("you> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := scanner.Text()
		if line == "/quit" || line == "/exit" {
			break
		}
		if !session.Submit(cmd.Context(), line) {
			continue
		}
		if last, ok := session.Last(); ok {
			fmt.Printf("assistant> %s\n", last.Content)
		}
	}
	return scanner.Err()
}

func runStatus(cmd *cobra.Command, args []string) error {
	api := client.NewAPIClient(serverURL, 10*time.Second)
	status, err := api.Status(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println(status.Message)
	fmt.Printf("llm_ready=%t rag_ready=%t db_ready=%t\n", status.LLMReady, status.RAGReady, status.DBReady)
	if len(status.LoadedPDFs) > 0 {
		fmt.Printf("documents: %s\n", strings.Join(status.LoadedPDFs, ", "))
	}
	return nil
}
