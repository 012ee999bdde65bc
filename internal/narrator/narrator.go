// Package narrator asks Gemini for a line of flavor text when a monster shows up.
package narrator

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"github.com/tatianab/step-quest/internal/models"
	"google.golang.org/api/option"
)

//go:embed prompts/describe_encounter.txt
var describeEncounterPrompt string

const DefaultModel = "gemini-2.5-flash"

var encounterTmpl = template.Must(template.New("describe_encounter").Parse(describeEncounterPrompt))

type Narrator struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func New(ctx context.Context, apiKey, modelName string) (*Narrator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = DefaultModel
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	model := client.GenerativeModel(modelName)
	model.SetCandidateCount(1)
	model.SetMaxOutputTokens(80)
	return &Narrator{
		client: client,
		model:  model,
	}, nil
}

func (n *Narrator) Close() {
	n.client.Close()
}

// Describe returns one sentence setting the scene for the encounter.
func (n *Narrator) Describe(ctx context.Context, playerName string, m models.Monster) (string, error) {
	prompt, err := encounterPrompt(playerName, m)
	if err != nil {
		return "", err
	}

	resp, err := n.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content returned from Gemini")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response type from Gemini")
	}
	return cleanLine(string(text)), nil
}

func encounterPrompt(playerName string, m models.Monster) (string, error) {
	var buf bytes.Buffer
	data := struct {
		PlayerName     string
		MonsterName    string
		MonsterHP      int
		MonsterAttack  int
		MonsterDefense int
	}{
		PlayerName:     playerName,
		MonsterName:    m.Name,
		MonsterHP:      m.HP,
		MonsterAttack:  m.Attack,
		MonsterDefense: m.Defense,
	}
	if err := encounterTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// cleanLine strips code fences, quotes and anything after the first line.
func cleanLine(text string) string {
	line := strings.TrimSpace(text)
	line = strings.TrimPrefix(line, "```text")
	line = strings.TrimPrefix(line, "```")
	line = strings.TrimSuffix(line, "```")
	line = strings.TrimSpace(line)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	return strings.Trim(strings.TrimSpace(line), `"`)
}
