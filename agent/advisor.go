// Package agent implements the AI financial advisor chat.
//
// The advisor is an opaque text-generation collaborator: it receives a
// snapshot of the tracked finances and free-text questions, and answers in
// markdown. It is read-only with respect to the ledger; a failing call
// degrades to an error message and never touches ledger state.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

const systemPrompt = `You are a pragmatic personal finance advisor.
The user tracks accounts, transactions and recurring payments in a local ledger.
Below is the current snapshot of their finances, followed by their recent transactions.
Ground every answer in these numbers, answer in concise markdown, and say so when
the data is not sufficient to answer.`

// Advisor is a chat session with the finance expert.
type Advisor struct {
	ModelName string
	snapshot  string
	chat      *genai.Chat
}

// New creates a new Advisor seeded with the given snapshot: a markdown
// rendering of the financial summary and the recent transactions.
func New(snapshot string) *Advisor {
	return &Advisor{ModelName: model, snapshot: snapshot}
}

// Start creates the chat session with the snapshot as system instruction.
func (a *Advisor) Start(ctx context.Context, client *genai.Client) error {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{
			{Text: systemPrompt + "\n\n" + a.snapshot},
		}},
	}
	chat, err := client.Chats.Create(ctx, a.ModelName, config, nil)
	if err != nil {
		return err
	}
	a.chat = chat
	return nil
}

// Ask sends one question and returns the advisor's markdown answer.
func (a *Advisor) Ask(ctx context.Context, question string) (string, error) {
	resp, err := a.chat.Send(ctx, &genai.Part{Text: question})
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from advisor")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

const prompt = "advisor> "

// Run starts the interactive REPL session for the advisor. Initial prompts,
// if any, are consumed before reading from r. 'bye' or EOF ends the session.
// Each answer is passed to display, which renders it to the user.
func (a *Advisor) Run(ctx context.Context, client *genai.Client, w io.Writer, r io.Reader, display func(markdown string), prompts ...string) error {
	if a.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(w, "Welcome to the finbook advisor. Type 'bye' to exit.")

	reader := bufio.NewReader(r)
	for {
		fmt.Fprint(w, prompt)
		var input string

		// Flush prompts from the list and then ask the user.
		if len(prompts) > 0 {
			input, prompts = prompts[0], prompts[1:]
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			fmt.Fprintln(w, input)
		} else {
			var err error
			input, err = reader.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil // Clean exit on Ctrl+D
				}
				return err
			}
		}

		if strings.TrimSpace(input) == "bye" {
			return nil
		}

		answer, err := a.Ask(ctx, input)
		if err != nil {
			// surface and keep the session alive, the ledger is untouched
			fmt.Fprintf(w, "advisor error: %v\n", err)
			continue
		}
		display(answer)
	}
}
