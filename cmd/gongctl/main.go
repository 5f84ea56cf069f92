// gongctl posts slash commands to a running gong server, standing in for
// Slack during local development and smoke tests.
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const requestTimeout = 10 * time.Second

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "gongctl",
	Short: "Slash-command client for a running gong server",
	Long: `Posts form-encoded slash commands to a gong server the way Slack
would, and prints the JSON response.

Reads GONG_URL and GONG_VERIFY_TOKEN from the environment or a .env file.`,
}

var sendCmd = &cobra.Command{
	Use:   "send <command text>...",
	Short: "Send one slash command and print the response",
	Example: `  gongctl send record arr Sarah 50000 Acme Corp
  gongctl send leaderboard arr
  gongctl send help`,
	RunE: func(cmd *cobra.Command, args []string) error {
		form := url.Values{"text": {strings.Join(args, " ")}}
		if token := os.Getenv("GONG_VERIFY_TOKEN"); token != "" {
			form.Set("token", token)
		}

		client := &http.Client{Timeout: requestTimeout}
		resp, err := client.PostForm(strings.TrimRight(serverURL, "/")+"/slack/command", form)
		if err != nil {
			return fmt.Errorf("post command: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			var body struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			}
			_ = json.NewDecoder(resp.Body).Decode(&body)
			color.Red("%s: %s", resp.Status, body.Message)
			return fmt.Errorf("server answered %s", resp.Status)
		}

		var msg struct {
			ResponseType string `json:"response_type"`
			Text         string `json:"text"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}

		if msg.ResponseType == "ephemeral" {
			color.Yellow("(only you would see this)")
		}
		fmt.Println(msg.Text)
		return nil
	},
}

func init() {
	// Load .env if present (for GONG_URL and GONG_VERIFY_TOKEN)
	_ = godotenv.Load()

	defaultURL := "http://localhost:8080"
	if v := os.Getenv("GONG_URL"); v != "" {
		defaultURL = v
	}
	rootCmd.PersistentFlags().StringVar(&serverURL, "url", defaultURL, "base URL of the gong server")
	rootCmd.AddCommand(sendCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
