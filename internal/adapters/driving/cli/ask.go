package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opencourse-ai/tutor-cli/internal/core/domain"
)

var (
	askSession string
	askJSON    bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the indexed courses",
	Long: `Asks the course tutor a question. The answer is grounded in the
indexed course material and cites the lessons it drew from.

Pass --session to continue a conversation; the session id is printed
with every answer.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askSession, "session", "s", "", "session id to continue a conversation")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if assistantService == nil {
		if err := initAssistant(); err != nil {
			return err
		}
	}

	answer, err := assistantService.Answer(cmd.Context(), args[0], askSession)
	if err != nil {
		return fmt.Errorf("answering question: %w", err)
	}

	if askJSON {
		return outputAnswerJSON(cmd, answer)
	}

	return outputAnswerText(cmd, answer)
}

func outputAnswerJSON(cmd *cobra.Command, answer *domain.Answer) error {
	type sourceInfo struct {
		Label string `json:"label"`
		Link  string `json:"link,omitempty"`
	}
	type answerInfo struct {
		Answer    string       `json:"answer"`
		Sources   []sourceInfo `json:"sources"`
		SessionID string       `json:"session_id"`
	}

	info := answerInfo{
		Answer:    answer.Text,
		Sources:   []sourceInfo{},
		SessionID: answer.SessionID,
	}
	for _, src := range answer.Sources {
		info.Sources = append(info.Sources, sourceInfo{Label: src.Label(), Link: src.Link})
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal answer: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputAnswerText(cmd *cobra.Command, answer *domain.Answer) error {
	cmd.Println(answer.Text)

	if len(answer.Sources) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for _, src := range answer.Sources {
			if src.Link != "" {
				cmd.Printf("  %s (%s)\n", src.Label(), src.Link)
			} else {
				cmd.Printf("  %s\n", src.Label())
			}
		}
	}

	cmd.Println()
	cmd.Printf("Session: %s\n", answer.SessionID)
	return nil
}
