package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api"

// Simplified DTOs for the script
type createSessionResponse struct {
	Data struct {
		ID       string `json:"id"`
		Greeting string `json:"greeting"`
	} `json:"data"`
}

type sendMessageRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type sendMessageResponse struct {
	Data struct {
		Reply    string `json:"reply"`
		NewField *struct {
			FieldKey string `json:"field_key"`
		} `json:"new_field"`
		CompletedField *struct {
			FieldKey string `json:"field_key"`
		} `json:"completed_field"`
		SessionEnd *struct {
			Score      float64 `json:"score"`
			Assessment string  `json:"assessment"`
		} `json:"session_end"`
	} `json:"data"`
}

var (
	userColor   = color.New(color.FgCyan, color.Bold)
	mentorColor = color.New(color.FgGreen)
	eventColor  = color.New(color.FgYellow)
)

func main() {
	fmt.Println("=== Idea Passport Mentor Simulation Client ===")

	sessionID, greeting, err := createSession()
	if err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}
	fmt.Printf("Session Created: %s\n", sessionID)
	mentorColor.Printf("MENTOR: %s\n", greeting)

	turns := []string{
		"მინდა გავაკეთო აპლიკაცია, რომელიც ფერმერებს პირდაპირ აკავშირებს რესტორნებთან.",
		"რესტორნები ვერ პოულობენ სტაბილურ ადგილობრივ მომწოდებლებს და ფერმერები კარგავენ მოსავალს.",
		"პატარა და საშუალო რესტორნები თბილისში, დაახლოებით 500 ობიექტი.",
		"ყოველ შეკვეთაზე 8% საკომისიო.",
		"კონკურენტები არიან დისტრიბუტორები, მაგრამ ისინი მხოლოდ დიდ ქსელებთან მუშაობენ.",
		"MVP იქნება კატალოგი, შეკვეთის ფორმა და მიწოდების კალენდარი.",
	}

	for _, text := range turns {
		userColor.Printf("\nUSER: %s\n", text)

		start := time.Now()
		res, err := sendMessage(sessionID, text)
		elapsed := time.Since(start)

		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}

		mentorColor.Printf("MENTOR (%s): %s\n", elapsed.Round(time.Millisecond), res.Data.Reply)
		if res.Data.NewField != nil {
			eventColor.Printf("  [field opened: %s]\n", res.Data.NewField.FieldKey)
		}
		if res.Data.CompletedField != nil {
			eventColor.Printf("  [field completed: %s]\n", res.Data.CompletedField.FieldKey)
		}
		if res.Data.SessionEnd != nil {
			eventColor.Printf("  [session ended, score %.1f]\n  %s\n", res.Data.SessionEnd.Score, res.Data.SessionEnd.Assessment)
			break
		}
	}
}

func createSession() (string, string, error) {
	payload := []byte(`{"idea_text": ""}`)
	resp, err := http.Post(baseURL+"/session/v1", "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}

	var res createSessionResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return "", "", err
	}
	return res.Data.ID, res.Data.Greeting, nil
}

func sendMessage(sessionID, text string) (*sendMessageResponse, error) {
	payload, err := json.Marshal(sendMessageRequest{SessionID: sessionID, Message: text})
	if err != nil {
		return nil, err
	}

	resp, err := http.Post(baseURL+"/chat/v1/message", "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}

	var res sendMessageResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
