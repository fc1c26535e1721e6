// Copyright 2025 EPITAG contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package proposer obtains annotation proposals from an external LLM.
// The model is a black box here: whatever comes back is parsed into
// tokens and handed to the validator, never trusted as-is.
package proposer

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"epitag/annot"
	"epitag/records"
)

const (
	dfltMaxTokens      = 4096
	dfltReqPerMin      = 6
	systemInstructions = "You are an expert epigrapher and Latin/Greek linguist annotating " +
		"inscriptions with Universal Dependencies part-of-speech tags. You answer " +
		"with a JSON array only, no prose around it."
)

type Conf struct {
	APIKey    string `json:"apiKey"`
	BaseURL   string `json:"baseUrl"`
	Model     string `json:"model"`
	MaxTokens int    `json:"maxTokens"`
	ReqPerMin int    `json:"reqPerMin"`
}

func (conf *Conf) ValidateAndDefaults() error {
	if conf.APIKey == "" {
		return fmt.Errorf("proposer: missing apiKey")
	}
	if conf.Model == "" {
		conf.Model = openai.GPT4oMini
	}
	if conf.MaxTokens == 0 {
		conf.MaxTokens = dfltMaxTokens
	}
	if conf.ReqPerMin == 0 {
		conf.ReqPerMin = dfltReqPerMin
	}
	return nil
}

// Proposer is safe for concurrent use; the rate limiter serializes
// request admission across workers sharing one API quota.
type Proposer struct {
	client  *openai.Client
	conf    *Conf
	limiter *rate.Limiter
}

func NewProposer(conf *Conf) *Proposer {
	clientConf := openai.DefaultConfig(conf.APIKey)
	if conf.BaseURL != "" {
		clientConf.BaseURL = conf.BaseURL
	}
	return &Proposer{
		client:  openai.NewClientWithConfig(clientConf),
		conf:    conf,
		limiter: rate.NewLimiter(rate.Limit(float64(conf.ReqPerMin)/60), 1),
	}
}

func (p *Proposer) Model() string {
	return p.conf.Model
}

// Propose asks the model for one annotation per whitespace token of
// the record's interpretive text.
func (p *Proposer) Propose(ctx context.Context, rec records.Record) ([]annot.Token, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.conf.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemInstructions,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildPrompt(rec),
			},
		},
		MaxTokens:   p.conf.MaxTokens,
		Temperature: 0.2,
	})
	if err != nil {
		return nil, fmt.Errorf("annotation request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("annotation request returned no choices")
	}

	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	surfaces := strings.Fields(rec.TextInterpretiveWord)
	tokens, err := ParseReply(reply, surfaces)
	if err != nil {
		return nil, fmt.Errorf("failed to parse model reply: %w", err)
	}
	return tokens, nil
}
