package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/yukikurage/portal-api/internal/config"
	"github.com/yukikurage/portal-api/internal/constants"
	"github.com/yukikurage/portal-api/internal/models"
)

type AIService struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	now         func() time.Time
}

// SuggestedTask is a task proposed by the model; it is not stored
type SuggestedTask struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Priority    models.TaskPriority `json:"priority"`
	DueDate     *string             `json:"dueDate"`
}

func NewAIService(cfg config.OpenAIConfig) *AIService {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &AIService{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		now:         time.Now,
	}
}

// Complete sends a single user prompt and returns the first answer
func (s *AIService) Complete(ctx context.Context, prompt string) (string, error) {
	if s.client == nil {
		return "", ErrAIServiceNotConfigured
	}

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: s.temperature,
			MaxTokens:   s.maxTokens,
		},
	)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// SuggestTasks extracts concrete tasks from free text
func (s *AIService) SuggestTasks(ctx context.Context, text string) ([]SuggestedTask, error) {
	today := s.now().Format(constants.DateLayout)
	prompt := fmt.Sprintf(`Eres un asistente que extrae tareas concretas de un texto.

Fecha actual: %s

Texto:
%s

Devuelve un array JSON con las tareas extraídas, con este formato:
[
  {
    "title": "título breve de la tarea",
    "description": "descripción detallada",
    "priority": "alta | media | baja",
    "dueDate": "fecha límite en formato YYYY-MM-DD, o null si no se menciona"
  }
]

Notas:
- Si no hay ninguna tarea devuelve []
- Convierte expresiones relativas ("mañana", "la semana que viene") en fechas concretas
- Devuelve solo el JSON, sin texto adicional`, today, text)

	content, err := s.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}
	content = strings.TrimSuffix(strings.TrimPrefix(content, "```json"), "```")

	var tasks []SuggestedTask
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &tasks); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	suggestions := make([]SuggestedTask, 0, len(tasks))
	for _, task := range tasks {
		task.Title = strings.TrimSpace(task.Title)
		if task.Title == "" {
			continue
		}
		if !task.Priority.Valid() {
			task.Priority = models.TaskPriorityMedium
		}
		suggestions = append(suggestions, task)
		if len(suggestions) == constants.MaxSuggestedTasks {
			break
		}
	}
	return suggestions, nil
}
