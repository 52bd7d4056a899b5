package voicecall

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go-voice-call-reminder/config"
)

// Client initiates outbound calls through the voice-call provider's REST API.
type Client struct {
	baseURL        string
	apiKey         string
	agentID        string
	callerIdentity string
	httpClient     *http.Client
}

func NewClient(cfg config.CallAPIConfig) *Client {
	return &Client{
		baseURL:        cfg.BaseURL,
		apiKey:         cfg.APIKey,
		agentID:        cfg.AgentID,
		callerIdentity: cfg.CallerIdentity,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// CallRequest is the provider's call-initiation payload. Variable1 carries
// the configured caller identity, Variable2 the recipient's name when known.
type CallRequest struct {
	AgentID              string   `json:"agent_id"`
	RecipientPhoneNumber string   `json:"recipient_phone_number"`
	UserData             UserData `json:"user_data"`
}

type UserData struct {
	Variable1 string  `json:"variable1"`
	Variable2 *string `json:"variable2"`
}

// CallResponse is the provider's response; both fields are optional.
type CallResponse struct {
	Status string `json:"status"`
	CallID string `json:"call_id"`
}

// InitiateCall places one call. recipientName may be nil when the phone
// number has no contact entry; the provider receives a JSON null then.
func (c *Client) InitiateCall(ctx context.Context, phoneNumber string, recipientName *string) (*CallResponse, error) {
	payload := CallRequest{
		AgentID:              c.agentID,
		RecipientPhoneNumber: phoneNumber,
		UserData: UserData{
			Variable1: c.callerIdentity,
			Variable2: recipientName,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal call request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build call request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call api request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read call api response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("call api returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var callResp CallResponse
	if err := json.Unmarshal(respBody, &callResp); err != nil {
		return nil, fmt.Errorf("decode call api response: %w", err)
	}

	return &callResp, nil
}
